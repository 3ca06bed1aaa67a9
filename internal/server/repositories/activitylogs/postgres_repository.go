package activitylogs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, user_id, action, resource, resource_id, details, timestamp`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanLog(s dbx.Scanner) (*models.ActivityLog, error) {
	l := &models.ActivityLog{}
	if err := s.Scan(&l.ID, &l.UserID, &l.Action, &l.Resource, &l.ResourceID, &l.Details, &l.Timestamp); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.ActivityLog, error) {
	query := `SELECT ` + columns + ` FROM activity_logs ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanLog, query)
}

func (r *PostgresRepository) Create(ctx context.Context, e models.NewActivityLog, at time.Time) (*models.ActivityLog, error) {
	query :=
		`INSERT INTO activity_logs (user_id, action, resource, resource_id, details, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanLog, query,
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Details, at)
}
