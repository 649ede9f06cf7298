package watcher

import (
	"context"
	"time"
)

// StartPolling triggers detect() on the configured interval. A reloaded
// interval takes effect after the next tick.
func (w *Watcher) StartPolling(ctx context.Context) {
	interval := w.pollInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect(ctx, "poll")
			if next := w.pollInterval(); next != interval {
				w.log.Debug("poll interval changed", "from", interval, "to", next)
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (w *Watcher) pollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.interval <= 0 {
		return 30 * time.Second
	}
	return w.interval
}
