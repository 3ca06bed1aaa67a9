// Package sessions implements a durable, table-backed store for web session
// state. Session payloads are JSON documents owned by the web session layer;
// the store only checks that they are well-formed JSON, keys them by session
// id and enforces expiry. Set rejects other bytes with common.ErrorValidation.
//
// The table layout matches the one used by connect-pg-simple:
//
//	session (sid VARCHAR PRIMARY KEY, sess JSON, expire TIMESTAMP(6))
package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTableName = "session"
	DefaultTTL       = 24 * time.Hour
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PruneObserver is notified with the number of rows removed by each prune.
type PruneObserver interface {
	SessionsPruned(n int64)
}

// Options configures a Store. Zero values select the defaults.
type Options struct {
	TableName            string
	TTL                  time.Duration
	CreateTableIfMissing bool
	Observer             PruneObserver
	Now                  func() time.Time
}

// Store persists sessions in a single table. It is safe for concurrent use;
// every operation is a single statement.
type Store struct {
	db          dbx.DBTX
	logger      logging.Logger
	table       string
	ttl         time.Duration
	createTable bool
	observer    PruneObserver
	now         func() time.Time

	mu          sync.Mutex
	provisioned bool
}

// New builds a Store. It does not touch the database; the table is created
// lazily by the first operation when CreateTableIfMissing is set.
func New(db dbx.DBTX, logger logging.Logger, opts Options) (*Store, error) {
	if opts.TableName == "" {
		opts.TableName = DefaultTableName
	}
	if !identRe.MatchString(opts.TableName) {
		return nil, fmt.Errorf("invalid session table name %q", opts.TableName)
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	return &Store{
		db:          db,
		logger:      logger.With("module", "session_store"),
		table:       opts.TableName,
		ttl:         opts.TTL,
		createTable: opts.CreateTableIfMissing,
		observer:    opts.Observer,
		now:         func() time.Time { return opts.Now().UTC() },
	}, nil
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// TTL returns the expiry applied when Set is called without one.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) ensureTable(ctx context.Context) error {
	if !s.createTable {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provisioned {
		return nil
	}

	create := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		sid    VARCHAR NOT NULL COLLATE "default" PRIMARY KEY,
		sess   JSON NOT NULL,
		expire TIMESTAMP(6) NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create session table: %w", dbx.ClassifyError(err))
	}

	index := `CREATE INDEX IF NOT EXISTS "IDX_` + s.table + `_expire" ON ` + s.table + ` (expire)`
	if _, err := s.db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("create session index: %w", dbx.ClassifyError(err))
	}

	s.provisioned = true
	return nil
}

// Get returns the payload of a live session. Missing and expired sessions are
// reported as found == false.
func (s *Store) Get(ctx context.Context, sid string) ([]byte, bool, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, false, err
	}

	query := `SELECT sess FROM ` + s.table + ` WHERE sid = $1 AND expire >= $2`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, sid, s.now()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}

	return data, true, nil
}

// validatePayload reports whether data fits the JSON sess column.
func validatePayload(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: session payload is not a JSON document", common.ErrorValidation)
	}
	return nil
}

// Set stores data under sid. data must be a JSON document. A zero expiresAt
// means now + TTL.
func (s *Store) Set(ctx context.Context, sid string, data []byte, expiresAt time.Time) error {
	if err := validatePayload(data); err != nil {
		return err
	}
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.ttl)
	}

	query :=
		`INSERT INTO ` + s.table + ` (sess, expire, sid)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire`

	if _, err := s.db.ExecContext(ctx, query, string(data), expiresAt.UTC(), sid); err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

// Destroy removes sid. Destroying an unknown session is not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	query := `DELETE FROM ` + s.table + ` WHERE sid = $1`
	if _, err := s.db.ExecContext(ctx, query, sid); err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

// Touch extends the expiry of a live session. It reports whether a session
// was updated. A zero expiresAt means now + TTL.
func (s *Store) Touch(ctx context.Context, sid string, expiresAt time.Time) (bool, error) {
	if err := s.ensureTable(ctx); err != nil {
		return false, err
	}

	now := s.now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(s.ttl)
	}

	query := `UPDATE ` + s.table + ` SET expire = $1 WHERE sid = $2 AND expire >= $3`
	res, err := s.db.ExecContext(ctx, query, expiresAt.UTC(), sid, now)
	if err != nil {
		return false, fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

// Length counts live sessions.
func (s *Store) Length(ctx context.Context) (int, error) {
	if err := s.ensureTable(ctx); err != nil {
		return 0, err
	}

	var n int
	query := `SELECT COUNT(sid) FROM ` + s.table + ` WHERE expire >= $1`
	if err := s.db.QueryRowContext(ctx, query, s.now()).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return n, nil
}

// Clear removes every session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+s.table); err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

// Prune deletes expired sessions and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if err := s.ensureTable(ctx); err != nil {
		return 0, err
	}

	query := `DELETE FROM ` + s.table + ` WHERE expire < $1`
	res, err := s.db.ExecContext(ctx, query, s.now())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	if s.observer != nil {
		s.observer.SessionsPruned(n)
	}
	return n, nil
}

// RunPruning calls Prune every interval until ctx is done. Failures are
// logged and the loop keeps going.
func (s *Store) RunPruning(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "Starting session pruning", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping session pruning...")
			return
		case <-ticker.C:
			n, err := s.Prune(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn(ctx, "session prune failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug(ctx, "expired sessions pruned", "count", n)
			}
		}
	}
}
