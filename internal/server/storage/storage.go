// Package storage is the single entry point the rest of the application uses
// for persistence. It exposes one operation per (entity, action) pair and
// owns the session store.
//
// Lookups report absence as found == false with a nil error; deletes report
// whether a row was removed. Engine failures come back wrapped so that
// errors.Is(err, common.ErrorConstraintViolation) and
// errors.Is(err, common.ErrorConnectionFailure) can be used by callers.
package storage

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

// SessionStore is the durable session backend owned by a Storage.
type SessionStore interface {
	Get(ctx context.Context, sid string) ([]byte, bool, error)
	Set(ctx context.Context, sid string, data []byte, expiresAt time.Time) error
	Destroy(ctx context.Context, sid string) error
	Touch(ctx context.Context, sid string, expiresAt time.Time) (bool, error)
	Length(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Prune(ctx context.Context) (int64, error)
}

// Storage is the persistence facade.
type Storage interface {
	GetUser(ctx context.Context, id int64) (*models.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, bool, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
	UpdateUserLastLogin(ctx context.Context, id int64) (*models.User, bool, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)

	GetTeamMembers(ctx context.Context) ([]*models.TeamMember, error)
	GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, bool, error)
	GetTeamMemberByExternalID(ctx context.Context, externalID string) (*models.TeamMember, bool, error)
	CreateTeamMember(ctx context.Context, member models.NewTeamMember) (*models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id int64, patch models.TeamMemberPatch) (*models.TeamMember, bool, error)
	DeleteTeamMember(ctx context.Context, id int64) (bool, error)

	GetArticles(ctx context.Context) ([]*models.Article, error)
	GetArticle(ctx context.Context, id int64) (*models.Article, bool, error)
	GetArticleByExternalID(ctx context.Context, externalID string) (*models.Article, bool, error)
	CreateArticle(ctx context.Context, article models.NewArticle) (*models.Article, error)
	UpdateArticle(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, bool, error)
	DeleteArticle(ctx context.Context, id int64) (bool, error)
	GetFeaturedArticles(ctx context.Context) ([]*models.Article, error)
	GetArticlesByStatus(ctx context.Context, status string) ([]*models.Article, error)

	GetCarouselQuotes(ctx context.Context) ([]*models.CarouselQuote, error)
	GetCarouselQuote(ctx context.Context, id int64) (*models.CarouselQuote, bool, error)
	CreateCarouselQuote(ctx context.Context, quote models.NewCarouselQuote) (*models.CarouselQuote, error)
	UpdateCarouselQuote(ctx context.Context, id int64, patch models.CarouselQuotePatch) (*models.CarouselQuote, bool, error)
	DeleteCarouselQuote(ctx context.Context, id int64) (bool, error)
	GetQuotesByCarousel(ctx context.Context, carousel string) ([]*models.CarouselQuote, error)

	GetImageAssets(ctx context.Context) ([]*models.ImageAsset, error)
	GetImageAsset(ctx context.Context, id int64) (*models.ImageAsset, bool, error)
	CreateImageAsset(ctx context.Context, asset models.NewImageAsset) (*models.ImageAsset, error)
	DeleteImageAsset(ctx context.Context, id int64) (bool, error)

	GetIntegrationSettings(ctx context.Context, service string) ([]*models.IntegrationSetting, error)
	GetIntegrationSetting(ctx context.Context, id int64) (*models.IntegrationSetting, bool, error)
	GetIntegrationSettingByKey(ctx context.Context, service, key string) (*models.IntegrationSetting, bool, error)
	CreateIntegrationSetting(ctx context.Context, setting models.NewIntegrationSetting) (*models.IntegrationSetting, error)
	UpdateIntegrationSetting(ctx context.Context, id int64, patch models.IntegrationSettingPatch) (*models.IntegrationSetting, bool, error)
	DeleteIntegrationSetting(ctx context.Context, id int64) (bool, error)

	GetActivityLogs(ctx context.Context) ([]*models.ActivityLog, error)
	CreateActivityLog(ctx context.Context, entry models.NewActivityLog) (*models.ActivityLog, error)

	// RunInTx runs fn against a Storage whose writes commit together. Calls
	// made on the outer Storage inside fn are not part of the transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Storage) error) error

	SessionStore() SessionStore
}
