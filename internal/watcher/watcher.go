// Package watcher monitors the archive directory and posts a job whenever
// its set of snapshots changes.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/fs"
	"github.com/raoulx24/rdb-retention/internal/fsprobe"
	"github.com/raoulx24/rdb-retention/internal/logging"
	"github.com/raoulx24/rdb-retention/internal/mailbox"
	"github.com/raoulx24/rdb-retention/internal/worker"
)

// Watcher observes the archive directory and enqueues re-classifications.
type Watcher struct {
	mu sync.RWMutex

	dir      string
	interval time.Duration
	mode     string
	debounce time.Duration

	fs  fs.FS
	log logging.Logger

	// sorted entry names seen by the last detect, nil before the first
	lastEntries []string

	mb *mailbox.Mailbox[worker.Job]
}

// New creates a watcher from the archive configuration. A nil filesystem
// means the OS one.
func New(cfg config.ArchiveConfig, log logging.Logger, mb *mailbox.Mailbox[worker.Job], filesystem fs.FS) *Watcher {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Watcher{
		dir:      cfg.Path,
		interval: cfg.Watch.PollInterval,
		mode:     cfg.Watch.Mode,
		debounce: cfg.Watch.DebounceWindow,
		fs:       filesystem,
		log:      log,
		mb:       mb,
	}
}

// Start posts an initial job, then watches with the configured strategy
// until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.detect(ctx, "startup")

	w.mu.RLock()
	mode := w.mode
	dir := w.dir
	w.mu.RUnlock()

	switch mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "auto", "":
		res := fsprobe.Probe(dir)
		w.log.Debug("probed archive", "dir", dir, "mode", res.Mode())
		if res.Mode() == fsprobe.ModeFsnotify {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, polling instead", "reason", res.Reason)
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", mode)
	}
}
