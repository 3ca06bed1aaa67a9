package carouselquotes

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quoteCols = []string{"id", "carousel", "main", "quote", "author"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+carousel_quotes\s*\(carousel,\s*main,\s*quote,\s*author\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*carousel,\s*main,\s*quote,\s*author\s*$`
	mock.ExpectQuery(q).WithArgs("home", "Welcome", "Stay curious", "A. Nonymous").
		WillReturnRows(sqlmock.NewRows(quoteCols).AddRow(int64(1), "home", "Welcome", "Stay curious", "A. Nonymous"))

	got, err := repo.Create(context.Background(), models.NewCarouselQuote{
		Carousel: "home", Main: "Welcome", Quote: "Stay curious", Author: "A. Nonymous",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestListByCarousel(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^SELECT\s+.*\s+FROM\s+carousel_quotes\s+WHERE\s+carousel\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
	mock.ExpectQuery(q).WithArgs("home").
		WillReturnRows(sqlmock.NewRows(quoteCols).
			AddRow(int64(1), "home", "", "q1", "").
			AddRow(int64(4), "home", "", "q4", ""))

	got, err := repo.ListByCarousel(context.Background(), "home")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].Quote)
	assert.Equal(t, "q4", got[1].Quote)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+carousel_quotes\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(quoteCols).AddRow(int64(1), "home", "", "q1", ""))

	got, ok, err := repo.Update(context.Background(), 1, models.CarouselQuotePatch{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "q1", got.Quote)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Missing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+carousel_quotes`).WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, ok)
}
