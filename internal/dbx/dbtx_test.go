package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS quotes (id INTEGER PRIMARY KEY, carousel TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func quoteCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&n))
	return n
}

func insertQuote(ctx context.Context, tx DBTX) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO quotes (carousel) VALUES ('home')`)
	return err
}

func TestWithTx_Commit(t *testing.T) {
	db := openSQLite(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := insertQuote(ctx, tx); err != nil {
			return err
		}
		return insertQuote(ctx, tx)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, quoteCount(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openSQLite(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertQuote(ctx, tx))
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, quoteCount(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openSQLite(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertQuote(ctx, tx))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, quoteCount(t, db))
}

func TestWithTx_BeginFailureIsClassified(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.Contains(t, err.Error(), "begin tx")
}

func TestWithTx_CommitFailureIsClassified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorConnectionFailure)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}
