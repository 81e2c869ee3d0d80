package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/luciasjperez85-svg/markersinorder/api"
	"github.com/luciasjperez85-svg/markersinorder/config"
	"github.com/luciasjperez85-svg/markersinorder/datastore"
	"github.com/luciasjperez85-svg/markersinorder/migrations"
	"github.com/luciasjperez85-svg/markersinorder/scheduler"
)

func newLogger(devMode bool) *slog.Logger {
	level := slog.LevelInfo
	if devMode {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		newLogger(false).Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.DevMode)
	slog.SetDefault(logger)

	// Create database connection
	connStr := cfg.SQLitePath
	if cfg.DatabaseType == datastore.DriverPostgres {
		connStr = datastore.BuildDBConnStr(
			cfg.DatabaseHost,
			cfg.DatabasePassword,
			cfg.DatabaseUser,
			cfg.DatabaseName,
			cfg.SSLMode,
		)
	}

	dbConn, err := datastore.NewDB(cfg.DatabaseType, connStr)
	if err != nil {
		logger.Error("failed to connect to database", "type", cfg.DatabaseType, "err", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := migrations.RunMigrations(dbConn, cfg.DatabaseType, logger); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	collectionRepo, err := datastore.NewCollectionDatabase(dbConn, cfg.DatabaseType)
	if err != nil {
		logger.Error("failed to create collection repository", "err", err)
		os.Exit(1)
	}

	app := api.NewApplication(cfg, collectionRepo, logger)

	if cfg.AdminPasswordHash == "" {
		if cfg.DevMode {
			logger.Warn("no operator password configured, collection writes are open in dev mode")
		} else {
			logger.Warn("no operator password configured, collection writes are disabled")
		}
	}

	if cfg.ExportDir != "" {
		snapshots := scheduler.NewScheduler(collectionRepo, cfg.ExportDir, cfg.ExportInterval, logger)
		snapshots.Start()
		app.OnShutdown(snapshots.Stop)
	}

	mux := http.NewServeMux()

	if err := app.Serve(mux); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
