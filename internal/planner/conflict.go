package planner

import (
	"fmt"

	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/manifest"
)

// Resolver classifies the action required for one manifest entry given the
// live state of its target path.
type Resolver struct {
	hasher hash.Hasher
}

// NewResolver creates a new Resolver.
func NewResolver(hasher hash.Hasher) *Resolver {
	return &Resolver{hasher: hasher}
}

// Resolution is the resolver's verdict for one path.
type Resolution struct {
	// Action is one of the Action* constants
	Action string

	// Reason explains skip and conflict verdicts
	Reason string

	// Conflict carries the full diagnostic when Action is ActionConflict
	Conflict *Conflict
}

// Resolve decides what to do for entry given the target state at absTarget.
//
// Directories merge: a real directory already present where a directory
// entry is wanted is a skip, not a conflict. Only a real directory can
// hold child entries, though: a symlink at a non-leaf directory path is a
// conflict wherever it points, because creating children would write
// through the link into the linked-to tree. Everything else occupying a
// wanted path is a conflict, with the reason distinguishing a foreign
// symlink, a regular file, and a colliding directory.
func (r *Resolver) Resolve(pkgName string, entry manifest.Entry, absTarget string, st *TargetState) Resolution {
	switch st.Kind {
	case StateAbsent:
		if entry.Kind == manifest.KindDir && !entry.Leaf {
			return Resolution{Action: ActionCreateDir}
		}
		// Files and leaf directories are linked as a unit.
		return Resolution{Action: ActionCreateLink}

	case StateOwnedLink:
		if entry.Kind == manifest.KindDir && !entry.Leaf {
			return r.conflict(pkgName, entry,
				fmt.Sprintf("existing symlink occupies a directory path: %s", st.LinkDest),
				"symlink -> "+st.LinkDest)
		}
		return Resolution{Action: ActionSkip, Reason: "already linked"}

	case StateForeignLink:
		return r.conflict(pkgName, entry,
			fmt.Sprintf("existing symlink points elsewhere: %s", st.LinkDest),
			"symlink -> "+st.LinkDest)

	case StateExisting:
		if st.IsDir {
			if entry.Kind == manifest.KindDir {
				// Covers leaf directories too: an existing real directory
				// serves a directory entry either way.
				return Resolution{Action: ActionSkip, Reason: "directory already exists"}
			}
			return r.conflict(pkgName, entry,
				"existing directory collides with file entry",
				describeDir(st))
		}
		return r.conflict(pkgName, entry,
			r.fileReason(entry, absTarget),
			"regular file")
	}

	return r.conflict(pkgName, entry, "unrecognized target state", "unknown")
}

// fileReason builds the conflict reason for a regular file occupying the
// target, comparing content when the entry is itself a file so the user
// knows whether deleting the obstruction loses anything.
func (r *Resolver) fileReason(entry manifest.Entry, absTarget string) string {
	if entry.Kind != manifest.KindFile {
		return "existing regular file collides with directory entry"
	}

	same, err := hash.SameContent(r.hasher, absTarget, entry.Source)
	if err != nil {
		return "existing regular file"
	}
	if same {
		return "existing regular file (content identical to package source)"
	}
	return "existing regular file (content differs from package source)"
}

func (r *Resolver) conflict(pkgName string, entry manifest.Entry, reason, existing string) Resolution {
	return Resolution{
		Action: ActionConflict,
		Reason: reason,
		Conflict: &Conflict{
			RelPath:  entry.RelPath,
			Package:  pkgName,
			Reason:   reason,
			Existing: existing,
			Incoming: describeEntry(entry),
		},
	}
}

// describeEntry renders what the plan wanted to place at the path.
func describeEntry(entry manifest.Entry) string {
	if entry.Kind == manifest.KindDir && !entry.Leaf {
		return "directory"
	}
	return "link -> " + entry.Source
}

func describeDir(st *TargetState) string {
	if st.Empty {
		return "empty directory"
	}
	return "directory"
}
