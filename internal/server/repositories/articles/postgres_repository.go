package articles

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, external_id, title, description, body, image_url, author, status, featured, published_at, scheduled_at, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanArticle(s dbx.Scanner) (*models.Article, error) {
	a := &models.Article{}
	err := s.Scan(&a.ID, &a.ExternalID, &a.Title, &a.Description, &a.Body, &a.ImageURL,
		&a.Author, &a.Status, &a.Featured, &a.PublishedAt, &a.ScheduledAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Article, bool, error) {
	query := `SELECT ` + columns + ` FROM articles WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanArticle, query, id)
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Article, bool, error) {
	query := `SELECT ` + columns + ` FROM articles WHERE external_id = $1`
	return dbx.QueryOne(ctx, r.db, scanArticle, query, externalID)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + columns + ` FROM articles ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanArticle, query)
}

func (r *PostgresRepository) ListFeatured(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + columns + ` FROM articles WHERE featured ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanArticle, query)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status string) ([]*models.Article, error) {
	query := `SELECT ` + columns + ` FROM articles WHERE status = $1 ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanArticle, query, status)
}

func (r *PostgresRepository) Create(ctx context.Context, a models.NewArticle, createdAt time.Time) (*models.Article, error) {
	status := a.Status
	if status == "" {
		status = models.ArticleStatusDraft
	}

	query :=
		`INSERT INTO articles (external_id, title, description, body, image_url, author,
		                       status, featured, published_at, scheduled_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanArticle, query,
		a.ExternalID, a.Title, a.Description, a.Body, a.ImageURL, a.Author,
		status, a.Featured, a.PublishedAt, a.ScheduledAt, createdAt)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, bool, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	var set dbx.Assignments
	dbx.SetNullable(&set, "external_id", patch.ExternalID.Set, patch.ExternalID.Value)
	dbx.SetIf(&set, "title", patch.Title)
	dbx.SetIf(&set, "description", patch.Description)
	dbx.SetIf(&set, "body", patch.Body)
	dbx.SetIf(&set, "image_url", patch.ImageURL)
	dbx.SetIf(&set, "author", patch.Author)
	dbx.SetIf(&set, "status", patch.Status)
	dbx.SetIf(&set, "featured", patch.Featured)
	dbx.SetNullable(&set, "published_at", patch.PublishedAt.Set, patch.PublishedAt.Value)
	dbx.SetNullable(&set, "scheduled_at", patch.ScheduledAt.Set, patch.ScheduledAt.Value)

	query, args := set.UpdateByID("articles", columns, id)
	return dbx.QueryOne(ctx, r.db, scanArticle, query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM articles WHERE id = $1`, id)
}
