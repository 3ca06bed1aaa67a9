package imageassets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, name, url, storage_key, mime_type, size, source, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAsset(s dbx.Scanner) (*models.ImageAsset, error) {
	a := &models.ImageAsset{}
	if err := s.Scan(&a.ID, &a.Name, &a.URL, &a.StorageKey, &a.MimeType, &a.Size, &a.Source, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.ImageAsset, bool, error) {
	query := `SELECT ` + columns + ` FROM image_assets WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanAsset, query, id)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.ImageAsset, error) {
	query := `SELECT ` + columns + ` FROM image_assets ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanAsset, query)
}

func (r *PostgresRepository) Create(ctx context.Context, a models.NewImageAsset, createdAt time.Time) (*models.ImageAsset, error) {
	source := a.Source
	if source == "" {
		source = models.ImageSourceURL
	}

	query :=
		`INSERT INTO image_assets (name, url, storage_key, mime_type, size, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanAsset, query,
		a.Name, a.URL, a.StorageKey, a.MimeType, a.Size, source, createdAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM image_assets WHERE id = $1`, id)
}
