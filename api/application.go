package api

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/config"
	"github.com/luciasjperez85-svg/markersinorder/datastore"
)

type Application struct {
	Config         config.Config
	CollectionRepo datastore.CollectionRepository
	Logger         *slog.Logger

	// mu serialises load-modify-save cycles on the stored collection
	mu            sync.Mutex
	now           func() time.Time
	shutdownHooks []func()
}

func NewApplication(cfg config.Config, repo datastore.CollectionRepository, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Application{
		Config:         cfg,
		CollectionRepo: repo,
		Logger:         logger,
		now:            time.Now,
	}
}

func (app *Application) clock() time.Time {
	if app.now == nil {
		return time.Now()
	}
	return app.now()
}
