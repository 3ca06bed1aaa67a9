package dbx

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ClassifyError tags engine errors with the matching common sentinel while
// keeping the original error in the chain, so both
// errors.Is(err, common.ErrorConstraintViolation) and errors.As(err, &pgErr)
// keep working. Unknown errors are returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return fmt.Errorf("%w: %w", common.ErrorConstraintViolation, err)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.TooManyConnections,
			pgErr.Code == pgerrcode.AdminShutdown:
			return fmt.Errorf("%w: %w", common.ErrorConnectionFailure, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", common.ErrorConnectionFailure, err)
	}

	return err
}
