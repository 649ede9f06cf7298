// Package snapshot discovers the backups stored in an archive directory.
package snapshot

import (
	"time"

	"github.com/raoulx24/rdb-retention/internal/retention"
)

// Snapshot represents a single archived snapshot. A snapshot directory
// without any file is Partial: its copy never got past creating the
// directory.
type Snapshot struct {
	Path      string
	Name      string
	Timestamp time.Time
	Size      int64
	Artifacts []Artifact
	Partial   bool
}

// Records wraps snapshots into unmarked retention records, keeping order.
func Records(snaps []Snapshot) []*retention.Record {
	records := make([]*retention.Record, len(snaps))
	for i, s := range snaps {
		records[i] = &retention.Record{Timestamp: s.Timestamp, Path: s.Path, Partial: s.Partial}
	}
	return records
}
