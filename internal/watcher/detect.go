package watcher

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/raoulx24/rdb-retention/internal/worker"
)

// detect lists the archive and enqueues a job if the set of visible
// entries differs from the last one seen. The first call always enqueues.
func (w *Watcher) detect(ctx context.Context, reason string) bool {
	w.mu.RLock()
	dir := w.dir
	last := w.lastEntries
	w.mu.RUnlock()

	entries, err := w.fs.ReadDir(ctx, dir)
	if err != nil {
		w.log.Error("watcher: listing archive failed", "dir", dir, "error", err)
		return false
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		names = append(names, e.Name)
	}
	slices.Sort(names)

	if last != nil && slices.Equal(names, last) {
		return false
	}

	w.mu.Lock()
	w.lastEntries = names
	w.mu.Unlock()

	w.log.Debug("archive changed", "dir", dir, "entries", len(names), "reason", reason)
	w.mb.Put(worker.Job{Reason: reason, At: time.Now()})
	return true
}
