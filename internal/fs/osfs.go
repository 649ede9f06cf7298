package fs

import (
	"context"
	"os"
	"path/filepath"
)

// OSFS reads the local filesystem, retrying transient errors.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fromFileInfo(path, st), nil
}

// ReadDir lists path sorted by name. Entries that vanish between listing
// and stat are skipped.
func (o *OSFS) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	var entries []os.DirEntry
	err := retry(ctx, "readdir", func() error {
		var err error
		entries, err = os.ReadDir(path)
		return err
	})
	if err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		st, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		infos = append(infos, fromFileInfo(filepath.Join(path, e.Name()), st))
	}
	return infos, nil
}

func fromFileInfo(path string, st os.FileInfo) FileInfo {
	return FileInfo{
		Path:  path,
		Name:  st.Name(),
		Size:  st.Size(),
		MTime: st.ModTime(),
		IsDir: st.IsDir(),
	}
}
