package scheduler

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/datastore"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

const snapshotLayout = "20060102-150405"

// Scheduler periodically writes the stored collection to an export file.
type Scheduler struct {
	CollectionRepo datastore.CollectionRepository
	Dir            string
	Interval       time.Duration
	Logger         *slog.Logger

	ticker   *time.Ticker
	done     chan bool
	stopOnce sync.Once
	now      func() time.Time
}

func NewScheduler(repo datastore.CollectionRepository, dir string, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		CollectionRepo: repo,
		Dir:            dir,
		Interval:       interval,
		Logger:         logger,
		done:           make(chan bool),
		now:            time.Now,
	}
}

// Start writes a snapshot immediately and then once per interval.
func (s *Scheduler) Start() {
	s.Logger.Info("scheduler started", "dir", s.Dir, "interval", s.Interval)

	if _, err := s.ExportSnapshot(); err != nil {
		s.Logger.Error("initial snapshot failed", "err", err)
	}

	s.ticker = time.NewTicker(s.Interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				if _, err := s.ExportSnapshot(); err != nil {
					s.Logger.Error("snapshot failed", "err", err)
				}
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts the ticker. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		s.Logger.Info("scheduler stopped")
	})
}

// ExportSnapshot writes the collection in export format and returns the
// path written.
func (s *Scheduler) ExportSnapshot() (string, error) {
	swatches, err := s.CollectionRepo.GetColors()
	if err != nil {
		return "", fmt.Errorf("error loading collection: %w", err)
	}

	var buf bytes.Buffer
	if err := models.EncodeExport(&buf, swatches); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export dir: %w", err)
	}

	name := fmt.Sprintf("collection-%s.json", s.now().UTC().Format(snapshotLayout))
	path := filepath.Join(s.Dir, name)

	// write then rename so readers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("error writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("error writing snapshot: %w", err)
	}

	s.Logger.Info("collection snapshot written", "path", path, "colors", len(swatches))
	return path, nil
}
