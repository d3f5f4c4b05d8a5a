// Package packages locates link packages on disk.
//
// A package is a directory under the package dir whose contents mirror the
// layout they should have in the target tree. Packages carry no metadata
// and no state: the directory itself is the whole definition, and renaming
// or deleting it is a valid way to edit it.
//
// Key components:
//   - Repo: interface for enumerating and resolving packages
//   - DirRepo: Repo over a plain directory of package subdirectories
package packages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/linkfarm/internal/fsops"
)

// ErrNotFound indicates a named package does not exist under the package dir.
var ErrNotFound = errors.New("package not found")

// Package is a resolved package: its name and the absolute path of its root.
type Package struct {
	Name string
	Dir  string
}

// Repo provides an interface for locating packages.
type Repo interface {
	// List returns the names of all packages under the package dir.
	List() ([]string, error)

	// Exists checks if a package with the given name exists.
	Exists(name string) (bool, error)

	// Resolve returns the package with the given name, or an error
	// wrapping ErrNotFound.
	Resolve(name string) (*Package, error)
}

// DirRepo implements Repo over a directory whose subdirectories are packages.
type DirRepo struct {
	fs   fsops.FS
	root string
}

// NewDirRepo creates a new DirRepo rooted at the given package dir.
func NewDirRepo(fs fsops.FS, root string) *DirRepo {
	return &DirRepo{
		fs:   fs,
		root: root,
	}
}

// Root returns the package dir the repo reads from.
func (r *DirRepo) Root() string {
	return r.root
}

// List returns the names of all packages under the package dir, sorted by
// name. Dot-prefixed directories are not packages; a package dir is usually
// a git checkout and its .git must not be offered for linking.
func (r *DirRepo) List() ([]string, error) {
	entries, err := r.fs.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// Exists checks if a package with the given name exists.
func (r *DirRepo) Exists(name string) (bool, error) {
	if err := r.fs.ValidateIdentifier(name); err != nil {
		return false, fmt.Errorf("invalid package name: %w", err)
	}

	return r.fs.Exists(filepath.Join(r.root, name))
}

// Resolve returns the package with the given name. The name must refer to
// a directory (a symlink to a directory counts); anything else wraps
// ErrNotFound.
func (r *DirRepo) Resolve(name string) (*Package, error) {
	if err := r.fs.ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("invalid package name: %w", err)
	}

	dir := filepath.Join(r.root, name)

	info, err := r.fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat package: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, name)
	}

	return &Package{Name: name, Dir: dir}, nil
}
