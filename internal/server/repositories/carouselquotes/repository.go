// Package carouselquotes declares the repository contract for carousel quotes
// and its PostgreSQL implementation.
package carouselquotes

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.CarouselQuote, bool, error)
	List(ctx context.Context) ([]*models.CarouselQuote, error)
	ListByCarousel(ctx context.Context, carousel string) ([]*models.CarouselQuote, error)
	Create(ctx context.Context, quote models.NewCarouselQuote) (*models.CarouselQuote, error)
	Update(ctx context.Context, id int64, patch models.CarouselQuotePatch) (*models.CarouselQuote, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
