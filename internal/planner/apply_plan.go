package planner

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/manifest"
)

// mergedEntry is one distinct relative path after merging manifests.
type mergedEntry struct {
	entry        manifest.Entry
	pkg          string
	contributors []string

	// dup is set when the merge itself conflicts (same path wanted by two
	// packages and not both as directories)
	dup *Conflict
}

// BuildPlan merges the manifests, in the given order, into one apply plan.
//
// Each distinct relative path is resolved exactly once against the live
// target state, parents before children, so directory creation is ordered
// ahead of the links inside. A conflicted path blocks its entire subtree:
// descendants are planned as conflicts themselves rather than resolved,
// since nothing may be created beneath a path that will not be a real
// directory. Conflicts never abort planning: the full plan is built and
// every conflict collected, so one run reports every problem. Planning
// performs no filesystem mutation.
func BuildPlan(fs fsops.FS, hasher hash.Hasher, targetRoot string, manifests []*manifest.Manifest) *Plan {
	names := make([]string, 0, len(manifests))
	merged := make(map[string]*mergedEntry)

	for _, m := range manifests {
		names = append(names, m.Package.Name)

		for _, e := range m.Entries {
			me, ok := merged[e.RelPath]
			if !ok {
				merged[e.RelPath] = &mergedEntry{
					entry:        e,
					pkg:          m.Package.Name,
					contributors: []string{m.Package.Name},
				}
				continue
			}

			me.contributors = append(me.contributors, m.Package.Name)

			if me.entry.Kind == manifest.KindDir && e.Kind == manifest.KindDir {
				// Union semantics: the shared directory stays a leaf only
				// if every contributor's is. The first contributor's
				// source backs a leaf link.
				me.entry.Leaf = me.entry.Leaf && e.Leaf
				continue
			}

			if me.dup == nil {
				me.dup = &Conflict{
					RelPath:  e.RelPath,
					Package:  m.Package.Name,
					Reason:   fmt.Sprintf("path contributed by multiple packages: %s and %s", me.pkg, m.Package.Name),
					Existing: describeEntry(me.entry) + " from " + me.pkg,
					Incoming: describeEntry(e) + " from " + m.Package.Name,
				}
			}
		}
	}

	plan := NewPlan(names)
	resolver := NewResolver(hasher)
	blocked := make(map[string]bool)

	for _, rel := range sortedByDepth(merged) {
		me := merged[rel]
		target := filepath.Join(targetRoot, filepath.FromSlash(rel))

		if parent := path.Dir(rel); blocked[parent] {
			blocked[rel] = true
			addConflict(plan, me, rel, target, Conflict{
				RelPath:  rel,
				Package:  me.pkg,
				Reason:   fmt.Sprintf("parent %s is in conflict", parent),
				Existing: "unreachable",
				Incoming: describeEntry(me.entry),
			})
			continue
		}

		if me.dup != nil {
			blocked[rel] = true
			addConflict(plan, me, rel, target, *me.dup)
			continue
		}

		st, err := InspectTarget(fs, target, me.entry.Source)
		if err != nil {
			blocked[rel] = true
			addConflict(plan, me, rel, target, Conflict{
				RelPath:  rel,
				Package:  me.pkg,
				Reason:   fmt.Sprintf("cannot inspect target: %v", err),
				Existing: "unknown",
				Incoming: describeEntry(me.entry),
			})
			continue
		}

		res := resolver.Resolve(me.pkg, me.entry, target, st)
		if res.Action == ActionConflict {
			blocked[rel] = true
		}
		plan.AddOperation(Operation{
			Action:   res.Action,
			RelPath:  rel,
			Source:   opSource(res.Action, me.entry),
			Target:   target,
			Package:  me.pkg,
			Packages: me.contributors,
			Reason:   res.Reason,
		})
		if res.Conflict != nil {
			plan.AddConflict(*res.Conflict)
		}
	}

	return plan
}

// addConflict records a conflicted path in both the operation sequence and
// the plan's conflict list.
func addConflict(plan *Plan, me *mergedEntry, rel, target string, c Conflict) {
	plan.AddOperation(Operation{
		Action:   ActionConflict,
		RelPath:  rel,
		Target:   target,
		Package:  me.pkg,
		Packages: me.contributors,
		Reason:   c.Reason,
	})
	plan.AddConflict(c)
}

// opSource returns the package source an operation links to; directory
// creation carries none.
func opSource(action string, entry manifest.Entry) string {
	if action == ActionCreateDir {
		return ""
	}
	return entry.Source
}

// sortedByDepth returns the merged paths ordered parents-first: ascending
// depth, then lexicographic.
func sortedByDepth(merged map[string]*mergedEntry) []string {
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := pathDepth(keys[i]), pathDepth(keys[j])
		if di != dj {
			return di < dj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// pathDepth counts the separators in a slash-separated relative path.
func pathDepth(relPath string) int {
	return strings.Count(relPath, "/")
}
