// Package watcher publishes archives dropped into an inbox directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

// DefaultSettle is how long an archive must go without write events
// before it is ingested.
const DefaultSettle = 2 * time.Second

// ResultFunc receives the outcome of each ingested archive.
type ResultFunc func(archive string, result *domain.IngestResult, err error)

// Options configures a Watcher.
type Options struct {
	CampaignID string
	Exporter   domain.Exporter

	// WorkDir is the parent of the per-archive extraction directories.
	// Empty means the system temp directory.
	WorkDir string

	// Settle overrides DefaultSettle.
	Settle time.Duration

	// OnResult is optional.
	OnResult ResultFunc
}

// Watcher ingests .zip files as they appear in an inbox directory.
// Archives are handled one at a time in the order they settle.
type Watcher struct {
	inbox  string
	ingest driving.IngestService
	opts   Options
	log    *logger.Logger
}

// New creates a watcher for inbox.
func New(inbox string, ingest driving.IngestService, opts Options) *Watcher {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	return &Watcher{
		inbox:  inbox,
		ingest: ingest,
		opts:   opts,
		log:    logger.Named("watch"),
	}
}

// Run watches the inbox until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.ingest == nil {
		return fmt.Errorf("%w: ingest service is required", domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.inbox); err != nil {
		return fmt.Errorf("watching %s: %w", w.inbox, err)
	}
	w.log.Info("watching %s", w.inbox)

	tick := w.opts.Settle / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	// archive path -> time of its last create or write event
	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, pending)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error: %v", err)

		case now := <-ticker.C:
			for _, archive := range settled(pending, now, w.opts.Settle) {
				delete(pending, archive)
				if ctx.Err() != nil {
					return nil
				}
				w.process(ctx, archive)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, pending map[string]time.Time) {
	if !IsArchive(event.Name) {
		return
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		pending[event.Name] = time.Now()
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		delete(pending, event.Name)
	}
}

// process ingests one archive as a single-archive request.
func (w *Watcher) process(ctx context.Context, archive string) {
	info, err := os.Stat(archive)
	if err != nil || !info.Mode().IsRegular() {
		w.log.Debug("skipping %s: no longer a regular file", archive)
		return
	}

	workDir, err := os.MkdirTemp(w.opts.WorkDir, "crpub-watch-*")
	if err != nil {
		w.report(archive, nil, fmt.Errorf("creating work directory: %w", err))
		return
	}
	defer os.RemoveAll(workDir)

	result, err := w.ingest.Ingest(ctx, domain.IngestRequest{
		CampaignID: w.opts.CampaignID,
		Exporter:   w.opts.Exporter,
		Archives:   []string{archive},
		WorkDir:    workDir,
	})
	w.report(archive, result, err)
}

func (w *Watcher) report(archive string, result *domain.IngestResult, err error) {
	if err != nil {
		w.log.Error("%s: %v", filepath.Base(archive), err)
	} else {
		w.log.Info("%s: published upload %s", filepath.Base(archive), result.UploadID)
	}
	if w.opts.OnResult != nil {
		w.opts.OnResult(archive, result, err)
	}
}

// settled returns the pending archives quiet for at least settle, oldest first.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for archive, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, archive)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		a, b := pending[ready[i]], pending[ready[j]]
		if a.Equal(b) {
			return ready[i] < ready[j]
		}
		return a.Before(b)
	})
	return ready
}

// IsArchive reports whether path names a visible .zip file.
func IsArchive(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".zip")
}
