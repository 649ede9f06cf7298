package worker

import (
	"time"
)

// Job asks the worker to re-classify the archive.
type Job struct {
	Reason string // what triggered it, e.g. "startup" or "change"
	At     time.Time
}
