// Package workspace manages the scratch directory holding the intermediate
// files of a single pipeline run.
package workspace

import (
	"errors"
	"os"
	"path/filepath"

	"alanc/report"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Workspace is an acquired scratch directory.  It is owned exclusively by the
// run that acquired it until it is released.
type Workspace struct {
	// Dir is the absolute path to the scratch directory.
	Dir string

	// unlock releases the run lock.  It is nil once the workspace is released.
	unlock func()
}

// lockPath returns the path of the lock file guarding a workspace directory.
func lockPath(dir string) string {
	return filepath.Clean(dir) + ".lock"
}

// Acquire creates a fresh, empty workspace at dir.  Any directory already at
// dir is stale state from an earlier run and is removed first.  Acquire blocks
// while another run holds the same workspace.
func Acquire(dir string) (*Workspace, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, &report.FilesystemError{Op: "create workspace parent", Path: filepath.Dir(dir), Err: err}
	}

	unlock, err := lockedfile.MutexAt(lockPath(dir)).Lock()
	if err != nil {
		return nil, &report.FilesystemError{Op: "lock workspace", Path: dir, Err: err}
	}

	ws := &Workspace{Dir: dir, unlock: unlock}

	if err := os.RemoveAll(dir); err != nil {
		ws.Release()
		return nil, &report.FilesystemError{Op: "remove stale workspace", Path: dir, Err: err}
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		ws.Release()
		return nil, &report.FilesystemError{Op: "create workspace", Path: dir, Err: err}
	}

	return ws, nil
}

// Path returns the path of a file inside the workspace.
func (ws *Workspace) Path(name string) string {
	return filepath.Join(ws.Dir, name)
}

// Release removes the workspace and drops the run lock.  Releasing a workspace
// more than once is not an error.
func (ws *Workspace) Release() error {
	err := Release(ws.Dir)

	if ws.unlock != nil {
		ws.unlock()
		ws.unlock = nil
	}

	return err
}

// Release removes the workspace directory at dir if it exists.
func Release(dir string) error {
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &report.FilesystemError{Op: "remove workspace", Path: dir, Err: err}
	}

	return nil
}
