// Package server initializes and runs the contentdesk server process.
// It opens the database pool, applies migrations, bootstraps the admin
// account and runs session pruning, the gRPC health server and the metrics
// server until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contentdesk/internal/server/services"
	"github.com/dmitrijs2005/contentdesk/internal/server/sessions"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
	"github.com/dmitrijs2005/contentdesk/internal/telemetry"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/contentdesk/internal/server/grpc"
)

// MetricsNamespace prefixes every exported Prometheus metric.
const MetricsNamespace = "contentdesk"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	metrics  *telemetry.Metrics
	repos    repomanager.RepositoryManager
	sessions *sessions.Store
	storage  *storage.DatabaseStorage
	accounts *services.AccountService
}

// OpenDB opens a pgx-backed pool and applies the configured limits.
// The pool connects lazily.
func OpenDB(c *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxIdleConns)
	db.SetConnMaxLifetime(c.DBConnMaxLifetime)
	return db, nil
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := OpenDB(c)
	if err != nil {
		return nil, err
	}

	app, err := newApp(c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	metrics := telemetry.NewMetrics(MetricsNamespace)
	repos := repomanager.NewPostgresRepositoryManager(metrics)

	store, err := sessions.New(dbx.Instrument(db, metrics), logger, sessions.Options{
		TableName:            c.SessionTableName,
		TTL:                  c.SessionTTL,
		CreateTableIfMissing: c.SessionCreateTable,
		Observer:             metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}

	st := storage.NewDatabaseStorage(db, repos, store)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		metrics:  metrics,
		repos:    repos,
		sessions: store,
		storage:  st,
		accounts: services.NewAccountService(st, c, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) bootstrapAdmin(ctx context.Context) error {
	created, err := app.accounts.EnsureAdmin(ctx, app.config.AdminUsername, app.config.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin bootstrap error: %w", err)
	}
	if created {
		app.logger.Info(ctx, "Admin account created", "username", app.config.AdminUsername)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server error", "error", err)
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := telemetry.NewMetricsServer(app.config.MetricsAddr, app.metrics, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "metrics server error", "error", err)
		cancelFunc()
	}
}

// Run migrates the schema and serves until ctx is cancelled or a signal
// arrives. The database pool is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if err := app.bootstrapAdmin(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	if app.config.SessionPruneInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.sessions.RunPruning(ctx, app.config.SessionPruneInterval)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
