// Package articles declares the repository contract for articles and its
// PostgreSQL implementation.
package articles

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.Article, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Article, bool, error)
	List(ctx context.Context) ([]*models.Article, error)
	ListFeatured(ctx context.Context) ([]*models.Article, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Article, error)
	// Create inserts article with the given creation time.
	Create(ctx context.Context, article models.NewArticle, createdAt time.Time) (*models.Article, error)
	Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
