package watcher

import (
	"github.com/raoulx24/rdb-retention/internal/config"
)

// UpdateConfig updates watcher fields atomically for hot-reload. A new
// archive path forces a job on the next detect. Mode and path changes of a
// running watch loop take effect on the next Start.
func (w *Watcher) UpdateConfig(cfg config.ArchiveConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cfg.Path != w.dir {
		w.lastEntries = nil
	}

	w.dir = cfg.Path
	w.interval = cfg.Watch.PollInterval
	w.mode = cfg.Watch.Mode
	w.debounce = cfg.Watch.DebounceWindow
}
