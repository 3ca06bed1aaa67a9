// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/migrations"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/activitylogs"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/articles"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/carouselquotes"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/imageassets"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/integrationsettings"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/teammembers"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook. A non-nil observer is attached to
// every DBTX handed to a repository.
type PostgresRepositoryManager struct {
	observer dbx.Observer
}

func (m *PostgresRepositoryManager) bind(db dbx.DBTX) dbx.DBTX {
	return dbx.Instrument(db, m.observer)
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(m.bind(db))
}

// TeamMembers returns a teammembers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) TeamMembers(db dbx.DBTX) teammembers.Repository {
	return teammembers.NewPostgresRepository(m.bind(db))
}

// Articles returns an articles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Articles(db dbx.DBTX) articles.Repository {
	return articles.NewPostgresRepository(m.bind(db))
}

// CarouselQuotes returns a carouselquotes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) CarouselQuotes(db dbx.DBTX) carouselquotes.Repository {
	return carouselquotes.NewPostgresRepository(m.bind(db))
}

// ImageAssets returns an imageassets.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) ImageAssets(db dbx.DBTX) imageassets.Repository {
	return imageassets.NewPostgresRepository(m.bind(db))
}

// IntegrationSettings returns an integrationsettings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) IntegrationSettings(db dbx.DBTX) integrationsettings.Repository {
	return integrationsettings.NewPostgresRepository(m.bind(db))
}

// ActivityLogs returns an activitylogs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) ActivityLogs(db dbx.DBTX) activitylogs.Repository {
	return activitylogs.NewPostgresRepository(m.bind(db))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
// observer may be nil.
func NewPostgresRepositoryManager(observer dbx.Observer) RepositoryManager {
	return &PostgresRepositoryManager{observer: observer}
}
