package carouselquotes

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, carousel, main, quote, author`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanQuote(s dbx.Scanner) (*models.CarouselQuote, error) {
	q := &models.CarouselQuote{}
	if err := s.Scan(&q.ID, &q.Carousel, &q.Main, &q.Quote, &q.Author); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.CarouselQuote, bool, error) {
	query := `SELECT ` + columns + ` FROM carousel_quotes WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanQuote, query, id)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.CarouselQuote, error) {
	query := `SELECT ` + columns + ` FROM carousel_quotes ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanQuote, query)
}

func (r *PostgresRepository) ListByCarousel(ctx context.Context, carousel string) ([]*models.CarouselQuote, error) {
	query := `SELECT ` + columns + ` FROM carousel_quotes WHERE carousel = $1 ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanQuote, query, carousel)
}

func (r *PostgresRepository) Create(ctx context.Context, q models.NewCarouselQuote) (*models.CarouselQuote, error) {
	query :=
		`INSERT INTO carousel_quotes (carousel, main, quote, author)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanQuote, query, q.Carousel, q.Main, q.Quote, q.Author)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.CarouselQuotePatch) (*models.CarouselQuote, bool, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	var set dbx.Assignments
	dbx.SetIf(&set, "carousel", patch.Carousel)
	dbx.SetIf(&set, "main", patch.Main)
	dbx.SetIf(&set, "quote", patch.Quote)
	dbx.SetIf(&set, "author", patch.Author)

	query, args := set.UpdateByID("carousel_quotes", columns, id)
	return dbx.QueryOne(ctx, r.db, scanQuote, query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM carousel_quotes WHERE id = $1`, id)
}
