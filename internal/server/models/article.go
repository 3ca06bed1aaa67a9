package models

import "time"

// Article statuses used by the dashboard. Status is stored as free text, so
// other values are accepted as well.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPending   = "pending"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// Article is a piece of content. CreatedAt is assigned by storage on insert.
type Article struct {
	ID          int64
	ExternalID  *string
	Title       string
	Description string
	Body        string
	ImageURL    string
	Author      string
	Status      string
	Featured    bool
	PublishedAt *time.Time
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

type NewArticle struct {
	ExternalID  *string
	Title       string
	Description string
	Body        string
	ImageURL    string
	Author      string
	Status      string
	Featured    bool
	PublishedAt *time.Time
	ScheduledAt *time.Time
}

// ArticlePatch lists the fields to change. ExternalID, PublishedAt and
// ScheduledAt are nullable and can be cleared with Null.
type ArticlePatch struct {
	ExternalID  Nullable[string]
	Title       *string
	Description *string
	Body        *string
	ImageURL    *string
	Author      *string
	Status      *string
	Featured    *bool
	PublishedAt Nullable[time.Time]
	ScheduledAt Nullable[time.Time]
}

func (p ArticlePatch) IsEmpty() bool {
	return !p.ExternalID.Set && p.Title == nil && p.Description == nil &&
		p.Body == nil && p.ImageURL == nil && p.Author == nil &&
		p.Status == nil && p.Featured == nil &&
		!p.PublishedAt.Set && !p.ScheduledAt.Set
}
