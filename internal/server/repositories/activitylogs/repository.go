// Package activitylogs declares the append-only repository contract for the
// activity log and its PostgreSQL implementation. There is deliberately no
// update or delete.
package activitylogs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.ActivityLog, error)
	Create(ctx context.Context, entry models.NewActivityLog, at time.Time) (*models.ActivityLog, error)
}
