// Package manifest scans package trees into flat entry lists.
//
// A Manifest is the complete inventory of one package: every file and
// directory that survives ignore filtering, with its package-relative path
// and its absolute source path. Manifests are built fresh for each run and
// never persisted; the package tree on disk is the only definition.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/ignore"
	"github.com/danieljhkim/linkfarm/internal/packages"
)

// ErrPermissionDenied indicates an unreadable subtree inside a package.
var ErrPermissionDenied = errors.New("permission denied")

// Kind classifies a manifest entry.
type Kind string

const (
	// KindFile is a regular file or a symlink inside the package. Symlinks
	// are opaque: their target is never followed.
	KindFile Kind = "file"

	// KindDir is a real directory inside the package.
	KindDir Kind = "dir"
)

// Entry is one surviving path inside a package.
type Entry struct {
	// RelPath is slash-separated and relative to the package root.
	RelPath string

	// Kind is file or dir.
	Kind Kind

	// Source is the absolute path of the entry inside the package.
	Source string

	// Leaf is set on directory entries with no surviving children. A leaf
	// directory is linked as a whole rather than created and descended.
	Leaf bool
}

// Manifest is the scan result for one package. Entries are in depth-first
// order, parents before children, siblings sorted by name.
type Manifest struct {
	Package *packages.Package
	Entries []Entry
}

// Scanner walks package trees.
type Scanner struct {
	fs fsops.FS
}

// NewScanner creates a new Scanner.
func NewScanner(fs fsops.FS) *Scanner {
	return &Scanner{fs: fs}
}

// Scan walks the package root and returns its manifest. Ignored directories
// are pruned, not descended. A missing root wraps packages.ErrNotFound; an
// unreadable subtree wraps ErrPermissionDenied. Either error aborts this
// package's scan only.
func (s *Scanner) Scan(pkg *packages.Package, matcher *ignore.Matcher) (*Manifest, error) {
	info, err := s.fs.Stat(pkg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", packages.ErrNotFound, pkg.Name)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, pkg.Dir)
		}
		return nil, fmt.Errorf("failed to stat package root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", packages.ErrNotFound, pkg.Name)
	}

	m := &Manifest{Package: pkg}
	if _, err := s.scanDir(pkg, matcher, "", m); err != nil {
		return nil, err
	}
	return m, nil
}

// scanDir reads one directory level, appends entries for surviving children,
// recurses into subdirectories, and returns the number of surviving children.
func (s *Scanner) scanDir(pkg *packages.Package, matcher *ignore.Matcher, relDir string, m *Manifest) (int, error) {
	abs := pkg.Dir
	if relDir != "" {
		abs = filepath.Join(pkg.Dir, filepath.FromSlash(relDir))
	}

	entries, err := s.fs.ReadDir(abs)
	if err != nil {
		if os.IsPermission(err) {
			return 0, fmt.Errorf("%w: %s", ErrPermissionDenied, abs)
		}
		return 0, fmt.Errorf("failed to read package directory: %w", err)
	}

	survived := 0
	for _, de := range entries {
		rel := path.Join(relDir, de.Name())
		if matcher.Match(rel) {
			continue
		}
		survived++

		source := filepath.Join(pkg.Dir, filepath.FromSlash(rel))

		// DirEntry does not follow symlinks, so a symlink to a directory
		// lands in the file branch and stays opaque.
		if de.IsDir() {
			idx := len(m.Entries)
			m.Entries = append(m.Entries, Entry{RelPath: rel, Kind: KindDir, Source: source})

			children, err := s.scanDir(pkg, matcher, rel, m)
			if err != nil {
				return 0, err
			}
			m.Entries[idx].Leaf = children == 0
		} else {
			m.Entries = append(m.Entries, Entry{RelPath: rel, Kind: KindFile, Source: source})
		}
	}

	return survived, nil
}
