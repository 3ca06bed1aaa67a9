package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/contentdesk/internal/admincli"
	"github.com/dmitrijs2005/contentdesk/internal/buildinfo"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contentdesk/internal/server/sessions"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, "warn")

	db, err := server.OpenDB(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	repos := repomanager.NewPostgresRepositoryManager(nil)
	if err := repos.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	store, err := sessions.New(db, logger, sessions.Options{
		TableName:            cfg.SessionTableName,
		TTL:                  cfg.SessionTTL,
		CreateTableIfMissing: cfg.SessionCreateTable,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := admincli.NewApp(storage.NewDatabaseStorage(db, repos, store), cfg, logger, os.Stdout)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, admincli.ErrUsage) {
			log.Printf("%v", err)
		}
		db.Close()
		os.Exit(1)
	}

}
