// Package imageassets declares the repository contract for image assets and
// its PostgreSQL implementation. Assets have no update operation.
package imageassets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.ImageAsset, bool, error)
	List(ctx context.Context) ([]*models.ImageAsset, error)
	Create(ctx context.Context, asset models.NewImageAsset, createdAt time.Time) (*models.ImageAsset, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
