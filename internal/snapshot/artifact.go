package snapshot

import (
	"time"

	"github.com/raoulx24/rdb-retention/internal/fs"
)

// Artifact describes a single file within a snapshot
type Artifact struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FromFileInfo constructs an Artifact from a directory entry.
func FromFileInfo(info fs.FileInfo) Artifact {
	return Artifact{
		Name:    info.Name,
		ModTime: info.MTime,
		Size:    info.Size,
	}
}
