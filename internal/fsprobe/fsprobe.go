// Package fsprobe decides whether an archive directory can be watched with
// fsnotify or has to be polled.
//
// Snapshots usually land in an archive as a hidden ".tmp-" directory that
// is renamed into place once complete. Network and FUSE mounts often
// report nothing for that, so the probe replays the same sequence and
// waits for the rename to show up.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	ModeFsnotify = "fsnotify"
	ModePoll     = "poll"
)

// Result reports whether fsnotify is usable and why not.
type Result struct {
	FsnotifySupported bool
	Reason            string
}

// Mode is the watch mode the archive should use.
func (r Result) Mode() string {
	if r.FsnotifySupported {
		return ModeFsnotify
	}
	return ModePoll
}

// Timeout bounds how long Probe waits for the rename to be reported.
var Timeout = 200 * time.Millisecond

// Probe creates a hidden directory in the archive, renames it and checks
// that fsnotify reports it. Archive scans skip dot-entries, so a probe
// left behind by a crash is never classified.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{Reason: fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{Reason: "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{Reason: fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{Reason: fmt.Sprintf("cannot watch archive: %v", err)}
	}

	prefix := ".fsprobe-" + strconv.Itoa(os.Getpid())
	tmp := filepath.Join(dir, prefix+".tmp")
	final := filepath.Join(dir, prefix)

	if err := os.Mkdir(tmp, 0o700); err != nil {
		return Result{Reason: fmt.Sprintf("cannot create probe directory: %v", err)}
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return Result{Reason: fmt.Sprintf("rename failed: %v", err)}
	}
	defer os.Remove(final)

	timeout := time.After(Timeout)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return Result{Reason: "event stream closed"}
			}
			// other writers may be active in the archive
			if !strings.HasPrefix(filepath.Base(ev.Name), prefix) {
				continue
			}
			if ev.Op&(fsnotify.Rename|fsnotify.Create) != 0 {
				return Result{FsnotifySupported: true}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return Result{Reason: "event stream closed"}
			}
			return Result{Reason: fmt.Sprintf("watch error: %v", err)}
		case <-timeout:
			return Result{Reason: "no events received for a renamed directory"}
		}
	}
}
