package models

import "time"

// Image asset sources.
const (
	ImageSourceImgBB = "imgbb"
	ImageSourceS3    = "s3"
	ImageSourceURL   = "url"
)

// ImageAsset describes an uploaded or linked image. Assets are created and
// deleted, never updated.
type ImageAsset struct {
	ID         int64
	Name       string
	URL        string
	StorageKey string
	MimeType   string
	Size       int64
	Source     string
	CreatedAt  time.Time
}

type NewImageAsset struct {
	Name       string
	URL        string
	StorageKey string
	MimeType   string
	Size       int64
	Source     string
}
