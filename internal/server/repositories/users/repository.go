// Package users declares the repository contract for dashboard users and its
// PostgreSQL implementation.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

// Repository defines persistence operations on users. Lookups report a
// missing row as found == false with a nil error.
type Repository interface {
	Get(ctx context.Context, id int64) (*models.User, bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user models.NewUser) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, bool, error)
	SetLastLogin(ctx context.Context, id int64, at time.Time) (*models.User, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
