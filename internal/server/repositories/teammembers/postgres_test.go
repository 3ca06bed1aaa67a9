package teammembers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberCols = []string{"id", "external_id", "name", "role", "bio", "image_url", "email"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_WithAndWithoutExternalID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	q := `(?s)^INSERT\s+INTO\s+team_members\s*\(external_id,\s*name,\s*role,\s*bio,\s*image_url,\s*email\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,.*email\s*$`

	mock.ExpectQuery(q).
		WithArgs("rec1", "Ann", "Editor", "", "", "ann@example.com").
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(int64(1), "rec1", "Ann", "Editor", "", "", "ann@example.com"))
	mock.ExpectQuery(q).
		WithArgs(nil, "Bob", "", "", "", "").
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(int64(2), nil, "Bob", "", "", "", ""))

	ext := "rec1"
	ann, err := repo.Create(ctx, models.NewTeamMember{ExternalID: &ext, Name: "Ann", Role: "Editor", Email: "ann@example.com"})
	require.NoError(t, err)
	require.NotNil(t, ann.ExternalID)
	assert.Equal(t, "rec1", *ann.ExternalID)

	bob, err := repo.Create(ctx, models.NewTeamMember{Name: "Bob"})
	require.NoError(t, err)
	assert.Nil(t, bob.ExternalID)
	assert.Equal(t, int64(2), bob.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByExternalID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	q := `(?s)^SELECT\s+.*\s+FROM\s+team_members\s+WHERE\s+external_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("rec1").
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(int64(1), "rec1", "Ann", "", "", "", ""))
	mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	got, ok, err := repo.GetByExternalID(ctx, "rec1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ann", got.Name)

	_, ok, err = repo.GetByExternalID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_MergesSuppliedFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+team_members\s+SET\s+name\s*=\s*\$1,\s*bio\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+RETURNING\s+.*$`
	mock.ExpectQuery(q).WithArgs("Ann B.", "Writes things", int64(1)).
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(int64(1), "rec1", "Ann B.", "Editor", "Writes things", "", ""))

	name, bio := "Ann B.", "Writes things"
	got, ok, err := repo.Update(context.Background(), 1, models.TeamMemberPatch{Name: &name, Bio: &bio})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Editor", got.Role)
	assert.Equal(t, "rec1", *got.ExternalID)
}

func TestListAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`FROM\s+team_members\s+ORDER\s+BY\s+id`).
		WillReturnRows(sqlmock.NewRows(memberCols))
	mock.ExpectExec(`DELETE\s+FROM\s+team_members\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err := repo.Delete(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_ClearsExternalID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+team_members\s+SET\s+external_id\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s+RETURNING\s+.*$`
	mock.ExpectQuery(q).WithArgs(nil, int64(1)).
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(int64(1), nil, "Ann", "Editor", "", "", ""))

	got, ok, err := repo.Update(context.Background(), 1, models.TeamMemberPatch{ExternalID: models.Null[string]()})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.ExternalID)
	require.NoError(t, mock.ExpectationsWereMet())
}
