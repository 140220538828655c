// Package paths maps logical file names to the on-disk data directory.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the data directory created under the user's home.
const DefaultDirName = ".tracklog"

const dirMode = 0o700

// Resolver maps logical file names to paths under a data directory,
// creating the directory on first use.
type Resolver struct {
	dir string
}

// New returns a Resolver for the given directory. An empty dir resolves
// to ~/.tracklog, or the current directory if no home can be determined.
func New(dir string) *Resolver {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Resolver{dir: "."}
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	return &Resolver{dir: dir}
}

// Dir returns the data directory path.
func (r *Resolver) Dir() string { return r.dir }

// Ensure creates the data directory if it does not exist.
// An already existing directory is success.
func (r *Resolver) Ensure() error {
	return os.MkdirAll(r.dir, dirMode)
}

// In returns the path of name inside the data directory, creating the
// directory if needed. If the directory cannot be created, it falls
// back to the bare filename in the working directory so that writes
// still have somewhere to land.
func (r *Resolver) In(name string) string {
	if err := r.Ensure(); err != nil {
		return name
	}
	return filepath.Join(r.dir, name)
}
