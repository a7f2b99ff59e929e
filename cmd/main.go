package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"salonctl/internal/session"
	"salonctl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store *session.Store
	db, err := shared.NewDatabase(config.Database.Path)
	if err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			store = session.NewStore(db, config.Session.Inactivity(), logger)
		} else {
			logger.Warn("migrations failed, run 'salonctl setup'", "error", err)
		}
		defer db.Close()
	} else {
		logger.Warn("local database unavailable, run 'salonctl setup'", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		DB:     db,
		Store:  store,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "salonctl",
		Usage:    "Book and manage salon appointments from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
