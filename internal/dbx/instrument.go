package dbx

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Observer receives one call per executed statement.
// kind is the lowercased leading SQL keyword ("select", "insert", ...).
type Observer interface {
	ObserveStatement(kind string, elapsed time.Duration, err error)
}

type instrumentedDB struct {
	next     DBTX
	observer Observer
}

// Instrument wraps db so every statement is reported to observer.
// A nil observer returns db unchanged.
func Instrument(db DBTX, observer Observer) DBTX {
	if observer == nil {
		return db
	}
	return &instrumentedDB{next: db, observer: observer}
}

func (i *instrumentedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := i.next.ExecContext(ctx, query, args...)
	i.observer.ObserveStatement(StatementKind(query), time.Since(start), err)
	return res, err
}

func (i *instrumentedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.next.QueryContext(ctx, query, args...)
	i.observer.ObserveStatement(StatementKind(query), time.Since(start), err)
	return rows, err
}

func (i *instrumentedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := i.next.QueryRowContext(ctx, query, args...)
	i.observer.ObserveStatement(StatementKind(query), time.Since(start), row.Err())
	return row
}

// StatementKind returns the lowercased first keyword of query, or "other".
func StatementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "other"
	}
	switch kw := strings.ToLower(fields[0]); kw {
	case "select", "insert", "update", "delete", "create":
		return kw
	default:
		return "other"
	}
}
