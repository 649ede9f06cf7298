// Package fs defines the read-only filesystem view rdb-retention scans
// archives through.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Name  string
	Size  int64
	MTime time.Time
	IsDir bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)
}
