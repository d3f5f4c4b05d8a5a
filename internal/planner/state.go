package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/danieljhkim/linkfarm/internal/fsops"
)

// StateKind classifies what currently occupies a target path.
type StateKind string

const (
	// StateAbsent means nothing exists at the path.
	StateAbsent StateKind = "absent"

	// StateOwnedLink means a symlink resolving to the expected package
	// source. Link ownership is derived from where the link points; no
	// other record of ownership exists.
	StateOwnedLink StateKind = "owned_link"

	// StateForeignLink means a symlink resolving somewhere else.
	StateForeignLink StateKind = "foreign_link"

	// StateExisting means a regular file or a real directory.
	StateExisting StateKind = "existing"
)

// TargetState is the live classification of one target path. It is computed
// fresh for every run; nothing is cached across invocations, so edits made
// between runs are always observed.
type TargetState struct {
	// Kind classifies the path
	Kind StateKind

	// LinkDest is the raw symlink destination for both link kinds
	LinkDest string

	// IsDir is set for StateExisting when the path is a real directory
	IsDir bool

	// Empty is set for StateExisting directories with no entries
	Empty bool
}

// InspectTarget classifies the filesystem object at absPath against the
// package source the path is expected to link to. Symlinks are never
// followed past the first level; a relative link destination is resolved
// against the link's own directory before comparison.
func InspectTarget(fs fsops.FS, absPath, wantSource string) (*TargetState, error) {
	info, err := fs.Lstat(absPath)
	if err != nil {
		// ENOTDIR means a parent is occupied by a non-directory; for this
		// path the answer is still "nothing here".
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return &TargetState{Kind: StateAbsent}, nil
		}
		return nil, fmt.Errorf("failed to inspect %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		dest, err := fs.Readlink(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read link %s: %w", absPath, err)
		}
		if ResolveLinkDest(absPath, dest) == filepath.Clean(wantSource) {
			return &TargetState{Kind: StateOwnedLink, LinkDest: dest}, nil
		}
		return &TargetState{Kind: StateForeignLink, LinkDest: dest}, nil
	}

	st := &TargetState{Kind: StateExisting, IsDir: info.IsDir()}
	if st.IsDir {
		if entries, err := fs.ReadDir(absPath); err == nil {
			st.Empty = len(entries) == 0
		}
	}
	return st, nil
}

// ResolveLinkDest normalizes a symlink destination for comparison: relative
// destinations resolve against the link's directory.
func ResolveLinkDest(linkPath, dest string) string {
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(linkPath), dest)
	}
	return filepath.Clean(dest)
}
