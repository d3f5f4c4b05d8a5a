package planner

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/manifest"
)

// removeCandidate is one distinct relative path across the manifests being
// removed, with every contributing entry.
type removeCandidate struct {
	entries []manifest.Entry
	pkgs    []string
}

// BuildRemovePlan walks the manifests and plans the reverse operation.
//
// Only symlinks resolving to a contributing package source are removed;
// foreign symlinks, regular files, and absent paths are skipped and
// reported. Directories the manifests contributed become prune candidates,
// ordered deepest-first so children are handled before their parents. The
// executor prunes a candidate only if it is empty at execution time.
func BuildRemovePlan(fs fsops.FS, targetRoot string, manifests []*manifest.Manifest) *Plan {
	names := make([]string, 0, len(manifests))
	merged := make(map[string]*removeCandidate)

	for _, m := range manifests {
		names = append(names, m.Package.Name)

		for _, e := range m.Entries {
			c, ok := merged[e.RelPath]
			if !ok {
				merged[e.RelPath] = &removeCandidate{
					entries: []manifest.Entry{e},
					pkgs:    []string{m.Package.Name},
				}
				continue
			}
			c.entries = append(c.entries, e)
			c.pkgs = append(c.pkgs, m.Package.Name)
		}
	}

	// Deepest paths first, so links are removed before their directories
	// come up for pruning.
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := pathDepth(keys[i]), pathDepth(keys[j])
		if di != dj {
			return di > dj
		}
		return keys[i] > keys[j]
	})

	plan := NewPlan(names)

	for _, rel := range keys {
		c := merged[rel]
		target := filepath.Join(targetRoot, filepath.FromSlash(rel))

		st, err := InspectTarget(fs, target, c.entries[0].Source)
		if err != nil {
			plan.AddOperation(Operation{
				Action:   ActionSkip,
				RelPath:  rel,
				Target:   target,
				Package:  c.pkgs[0],
				Packages: c.pkgs,
				Reason:   fmt.Sprintf("cannot inspect target: %v", err),
			})
			continue
		}

		plan.AddOperation(removeOperation(rel, target, c, st))
	}

	return plan
}

// removeOperation classifies a single path for removal.
func removeOperation(rel, target string, c *removeCandidate, st *TargetState) Operation {
	op := Operation{
		RelPath:  rel,
		Target:   target,
		Package:  c.pkgs[0],
		Packages: c.pkgs,
	}

	switch st.Kind {
	case StateAbsent:
		op.Action = ActionSkip
		op.Reason = "already absent"

	case StateOwnedLink:
		op.Action = ActionRemoveLink
		op.Source = c.entries[0].Source

	case StateForeignLink:
		// Owned by any other contributor still counts as ours.
		resolved := ResolveLinkDest(target, st.LinkDest)
		for _, e := range c.entries[1:] {
			if resolved == filepath.Clean(e.Source) {
				op.Action = ActionRemoveLink
				op.Source = e.Source
				return op
			}
		}
		op.Action = ActionSkip
		op.Reason = fmt.Sprintf("foreign symlink left in place: %s", st.LinkDest)

	case StateExisting:
		if st.IsDir && hasDirEntry(c) {
			op.Action = ActionPruneDir
			return op
		}
		op.Action = ActionSkip
		if st.IsDir {
			op.Reason = "real directory left in place"
		} else {
			op.Reason = "not a symlink, left in place"
		}
	}

	return op
}

func hasDirEntry(c *removeCandidate) bool {
	for _, e := range c.entries {
		if e.Kind == manifest.KindDir {
			return true
		}
	}
	return false
}
