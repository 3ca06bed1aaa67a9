package services

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server/auth"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// MaxImageSize caps a single upload.
const MaxImageSize = 20 << 20

type UploadRequest struct {
	Name     string `validate:"required,max=255"`
	MimeType string `validate:"required,startswith=image/"`
	Size     int64  `validate:"gt=0,lte=20971520"`
}

type publicUploadType struct {
	Type string `validate:"required,oneof=team article carousel image"`
}

// UploadTicket tells the client where to PUT the image bytes. Asset is
// already stored and points at the final object URL.
type UploadTicket struct {
	Asset     *models.ImageAsset
	UploadURL string
	Method    string
	ExpiresAt time.Time
}

// ImageService issues presigned S3 uploads and records the resulting assets.
type ImageService struct {
	storage storage.Storage
	config  *config.Config
	logger  logging.Logger
}

func NewImageService(st storage.Storage, cfg *config.Config, logger logging.Logger) *ImageService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ImageService{storage: st, config: cfg, logger: logger.With("module", "images")}
}

// GetRandomStorageKey returns a date-partitioned object key that keeps the
// original file extension.
func GetRandomStorageKey(name string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("images/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(path.Ext(name)))
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *ImageService) objectURL(key string) string {
	return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
}

// RequestUpload presigns a PUT for a new object and stores the matching
// ImageAsset. userID is the uploading user, nil for public uploads.
func (s *ImageService) RequestUpload(ctx context.Context, userID *int64, req UploadRequest) (*UploadTicket, error) {
	return s.requestUpload(ctx, userID, req, "")
}

func (s *ImageService) requestUpload(ctx context.Context, userID *int64, req UploadRequest, details string) (*UploadTicket, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(req.Name)

	presigned, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		ContentType:   aws.String(req.MimeType),
		ContentLength: aws.Int64(req.Size),
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return nil, err
	}

	var asset *models.ImageAsset
	err = s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Storage) error {
		a, err := tx.CreateImageAsset(ctx, models.NewImageAsset{
			Name:       req.Name,
			URL:        s.objectURL(key),
			StorageKey: key,
			MimeType:   req.MimeType,
			Size:       req.Size,
			Source:     models.ImageSourceS3,
		})
		if err != nil {
			return fmt.Errorf("error creating image asset: %w", err)
		}
		asset = a

		return recordActivity(ctx, tx, userID, common.ActionImageUpload, "image",
			strconv.FormatInt(a.ID, 10), details)
	})
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		Asset:     asset,
		UploadURL: presigned.URL,
		Method:    presigned.Method,
		ExpiresAt: time.Now().Add(s.config.PresignValidityDuration),
	}, nil
}

// IssuePublicUploadToken returns a signed token granting anonymous uploads
// of the given type until it expires.
func (s *ImageService) IssuePublicUploadToken(ctx context.Context, uploadType string) (string, error) {
	if err := validateStruct(publicUploadType{Type: uploadType}); err != nil {
		return "", err
	}

	token, err := auth.GenerateUploadToken(uploadType, []byte(s.config.SecretKey), s.config.UploadTokenValidityDuration)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "public upload link issued", "type", uploadType)
	return token, nil
}

// RequestPublicUpload validates token for uploadType and then behaves like
// RequestUpload without a user.
func (s *ImageService) RequestPublicUpload(ctx context.Context, uploadType, token string, req UploadRequest) (*UploadTicket, error) {
	granted, err := auth.ParseUploadToken(token, []byte(s.config.SecretKey))
	if err != nil {
		return nil, err
	}
	if granted != uploadType {
		return nil, common.ErrInvalidToken
	}

	return s.requestUpload(ctx, nil, req, "public:"+uploadType)
}
