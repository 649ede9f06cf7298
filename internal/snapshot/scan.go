package snapshot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/raoulx24/rdb-retention/internal/fs"
)

// Scan lists the snapshots in dir, newest first. Hidden entries (including
// in-flight ".tmp-" directories) and entries whose name is not a timestamp
// are ignored. Two entries naming the same second are an error.
func Scan(ctx context.Context, filesystem fs.FS, dir string, loc *time.Location) ([]Snapshot, error) {
	entries, err := filesystem.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", dir, err)
	}

	seen := map[int64]string{}
	var snaps []Snapshot
	for _, ent := range entries {
		if strings.HasPrefix(ent.Name, ".") {
			continue
		}
		ts, ok := ParseName(ent.Name, loc)
		if !ok {
			continue
		}
		if other, dup := seen[ts.Unix()]; dup {
			return nil, fmt.Errorf("snapshots %q and %q share timestamp %s", other, ent.Name, ts.Format(time.RFC3339))
		}
		seen[ts.Unix()] = ent.Name

		snap := Snapshot{Path: ent.Path, Name: ent.Name, Timestamp: ts, Size: ent.Size}
		if ent.IsDir {
			if err := loadArtifacts(ctx, filesystem, &snap); err != nil {
				return nil, err
			}
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.After(snaps[j].Timestamp)
	})
	return snaps, nil
}

// loadArtifacts records the top-level files of a snapshot directory and
// sums their size.
func loadArtifacts(ctx context.Context, filesystem fs.FS, snap *Snapshot) error {
	files, err := filesystem.ReadDir(ctx, snap.Path)
	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", snap.Name, err)
	}
	snap.Size = 0
	for _, f := range files {
		if f.IsDir {
			continue
		}
		snap.Artifacts = append(snap.Artifacts, FromFileInfo(f))
		snap.Size += f.Size
	}
	snap.Partial = len(snap.Artifacts) == 0
	return nil
}
