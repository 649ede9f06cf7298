// Package worker re-classifies the archive whenever the watcher reports a
// change.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/fs"
	"github.com/raoulx24/rdb-retention/internal/logging"
	"github.com/raoulx24/rdb-retention/internal/mailbox"
	"github.com/raoulx24/rdb-retention/internal/metrics"
	"github.com/raoulx24/rdb-retention/internal/report"
	"github.com/raoulx24/rdb-retention/internal/retention"
	"github.com/raoulx24/rdb-retention/internal/snapshot"
)

// Worker scans the archive, classifies its snapshots and reports the
// result. It only labels snapshots and never removes anything.
type Worker struct {
	mu        sync.RWMutex
	archive   config.ArchiveConfig
	format    string
	fs        fs.FS
	log       logging.Logger
	retention *retention.Engine
	mb        *mailbox.Mailbox[Job]
	out       io.Writer
	metrics   *metrics.Collector
	now       func() time.Time
}

// New creates a worker. A nil filesystem means the OS one and a nil
// collector disables metrics.
func New(cfg *config.Config, log logging.Logger, r *retention.Engine, mb *mailbox.Mailbox[Job], filesystem fs.FS, out io.Writer, m *metrics.Collector) *Worker {
	log.Debug("creating worker")
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Worker{
		archive:   cfg.Archive,
		format:    cfg.Output.Format,
		fs:        filesystem,
		log:       log,
		retention: r,
		mb:        mb,
		out:       out,
		metrics:   m,
		now:       time.Now,
	}
}

// Start takes jobs from the mailbox until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		job, err := w.mb.Take(ctx)
		if err != nil {
			w.log.Info("worker stopped")
			return
		}
		if _, err := w.Handle(ctx, job); err != nil && !errors.Is(err, context.Canceled) {
			w.log.Error("worker: classification failed", "reason", job.Reason, "error", err)
		}
	}
}

// Handle runs one classification of the archive and returns the
// classified records.
func (w *Worker) Handle(ctx context.Context, job Job) ([]*retention.Record, error) {
	w.log.Debug("entering Worker.Handle()", "reason", job.Reason)

	w.mu.RLock()
	archive := w.archive
	format := w.format
	w.mu.RUnlock()

	records, err := w.classify(ctx, archive)
	if err != nil {
		if w.metrics != nil {
			w.metrics.ObserveError()
		}
		return nil, err
	}

	if w.metrics != nil {
		w.metrics.ObserveRun(retention.Summarize(records), w.now())
	}
	if err := report.Render(w.out, format, w.retention.Policy(), records); err != nil {
		return records, fmt.Errorf("rendering report: %w", err)
	}
	return records, nil
}

func (w *Worker) classify(ctx context.Context, archive config.ArchiveConfig) ([]*retention.Record, error) {
	loc, err := archive.Location()
	if err != nil {
		return nil, err
	}

	snaps, err := snapshot.Scan(ctx, w.fs, archive.Path, loc)
	if err != nil {
		return nil, err
	}
	w.log.Debug("archive scanned", "path", archive.Path, "snapshots", len(snaps))

	records := snapshot.Records(snaps)
	if _, err := w.retention.Apply(records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateConfig hot-reloads the archive location and output format.
func (w *Worker) UpdateConfig(cfg *config.Config) {
	w.log.Debug("entering Worker.UpdateConfig()")
	w.mu.Lock()
	w.archive = cfg.Archive
	w.format = cfg.Output.Format
	w.mu.Unlock()
}
