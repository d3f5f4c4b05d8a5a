// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem access in linkfarm goes through the FS interface, which
// provides abstractions for the handful of operations link farming needs
// along with path validation to prevent directory traversal and other
// unsafe inputs.
//
// Key features:
//   - Atomic symlink creation using temp link + rename
//   - Path validation for relative paths and package names
//   - Symlink-aware inspection (Lstat/Readlink, never following links)
//   - Testable via the FS interface
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS provides an abstraction for filesystem operations.
// All filesystem access in linkfarm must go through this interface.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Readlink reads the target of a symlink.
	Readlink(path string) (string, error)

	// ReadDir lists the entries of a directory, sorted by name.
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file, symlink, or empty directory.
	Remove(path string) error

	// SymlinkAtomic creates a symlink at newname pointing at oldname,
	// via a temp link + rename so a crash never leaves a partial link.
	SymlinkAtomic(oldname, newname string) error

	// Exists checks if a path exists (without following symlinks).
	Exists(path string) (bool, error)

	// ValidateRelPath validates a relative path for safety.
	ValidateRelPath(relPath string) error

	// ValidateIdentifier validates an identifier for safety.
	ValidateIdentifier(id string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Readlink reads the target of a symlink.
func (fs *RealFS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

// ReadDir lists the entries of a directory, sorted by name.
func (fs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes a file, symlink, or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// SymlinkAtomic creates a symlink at newname pointing at oldname.
// The link is first created under a temporary name in the destination
// directory and then renamed into place, so an interrupted run leaves
// either no link or the complete link, never a half-written one.
func (fs *RealFS) SymlinkAtomic(oldname, newname string) error {
	dir := filepath.Dir(newname)
	base := filepath.Base(newname)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".linkfarm-tmp-%s-%d", base, os.Getpid()))

	if err := os.Symlink(oldname, tmpPath); err != nil {
		return fmt.Errorf("failed to create temp symlink: %w", err)
	}

	if err := os.Rename(tmpPath, newname); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp symlink: %w", err)
	}

	return nil
}

// Exists checks if a path exists. Symlinks count as existing even when
// their target does not (a dangling link still occupies the path).
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateRelPath validates a relative path for safety.
// Returns an error if the path is invalid or unsafe.
func (fs *RealFS) ValidateRelPath(relPath string) error {
	// Clean the path first
	cleaned := filepath.Clean(relPath)

	// Reject empty or current directory
	if cleaned == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}

	// Reject absolute paths
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid path: must be relative, got absolute path %q", cleaned)
	}

	// Reject path traversal attempts
	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", cleaned)
	}

	return nil
}

// ValidateIdentifier validates an identifier (e.g., a package name) for safety.
// Returns an error if the identifier contains path separators or traversal attempts.
func (fs *RealFS) ValidateIdentifier(id string) error {
	// Reject empty identifiers
	if id == "" {
		return fmt.Errorf("invalid identifier: empty")
	}

	// Reject identifiers that look like paths
	if strings.Contains(id, string(filepath.Separator)) || strings.Contains(id, "/") || strings.Contains(id, "\\") {
		return fmt.Errorf("invalid identifier: must not contain path separators")
	}

	// Reject path traversal attempts
	if id == "." || id == ".." {
		return fmt.Errorf("invalid identifier: path traversal not allowed")
	}

	return nil
}
