package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads one row into a new T.
type ScanFunc[T any] func(Scanner) (*T, error)

// QueryOne runs a single-row query. A missing row is reported as
// found == false with a nil error.
func QueryOne[T any](ctx context.Context, db DBTX, scan ScanFunc[T], query string, args ...any) (*T, bool, error) {
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", ClassifyError(err))
	}
	return item, true, nil
}

// InsertOne runs an INSERT ... RETURNING statement and scans the new row.
func InsertOne[T any](ctx context.Context, db DBTX, scan ScanFunc[T], query string, args ...any) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", ClassifyError(err))
	}
	return item, nil
}

// QueryAll runs a multi-row query. The result is never nil.
func QueryAll[T any](ctx context.Context, db DBTX, scan ScanFunc[T], query string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", ClassifyError(err))
	}
	defer rows.Close()

	result := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", ClassifyError(err))
	}

	return result, nil
}

// DeleteByID executes a DELETE statement and reports whether any row was
// removed.
func DeleteByID(ctx context.Context, db DBTX, query string, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", ClassifyError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	return n > 0, nil
}

// Assignments collects "column = $n" pairs of a partial UPDATE.
type Assignments struct {
	cols []string
	args []any
}

// Set appends an assignment of v to col.
func (a *Assignments) Set(col string, v any) {
	a.args = append(a.args, v)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

// SetIf appends an assignment only when v is non-nil.
func SetIf[T any](a *Assignments, col string, v *T) {
	if v != nil {
		a.Set(col, *v)
	}
}

// SetNullable appends an assignment when set is true. A nil v writes NULL.
func SetNullable[T any](a *Assignments, col string, set bool, v *T) {
	if !set {
		return
	}
	if v == nil {
		a.Set(col, nil)
		return
	}
	a.Set(col, *v)
}

// Len returns the number of assignments.
func (a *Assignments) Len() int { return len(a.cols) }

// UpdateByID renders "UPDATE table SET ... WHERE id = $n RETURNING returning"
// and its arguments, with id bound last.
func (a *Assignments) UpdateByID(table, returning string, id int64) (string, []any) {
	args := append(append([]any{}, a.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(a.cols, ", "), len(args), returning)
	return query, args
}
