// Package executor applies plans to the filesystem.
//
// The executor is the only layer that mutates the target tree. It walks a
// plan in order and produces one PathResult per operation; a failure on one
// path never stops the rest of the plan, and nothing is retried; the next
// run re-plans from the live filesystem.
//
// Key components:
//   - Executor: applies plans forward (Apply) and in reverse (Remove)
//   - PathResult: the terminal state of one path in one run
//   - Summary: outcome counts for reporting
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/logger"
	"github.com/danieljhkim/linkfarm/internal/planner"
)

// Outcome is the terminal state of one path in one run.
type Outcome string

const (
	// OutcomeApplied means the directory or link was created.
	OutcomeApplied Outcome = "applied"

	// OutcomeSkipped means no filesystem action was needed or allowed.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeRemoved means the link or empty directory was deleted.
	OutcomeRemoved Outcome = "removed"

	// OutcomeFailed means the operation could not be performed. Conflicts
	// execute as failures: the path is surfaced without touching it.
	OutcomeFailed Outcome = "failed"
)

// PathResult reports how one planned operation ended.
type PathResult struct {
	// RelPath is the target-relative path
	RelPath string

	// Action is the planned action this result reports on
	Action string

	// Outcome is the terminal state
	Outcome Outcome

	// Reason explains skips, conflicts, and failures
	Reason string

	// Err is the underlying I/O error for failed paths; conflict failures
	// carry the planner's reason instead
	Err error `json:"-"`
}

// Summary counts outcomes across one run. Skips are counted separately so
// an idempotent re-run is visible as such.
type Summary struct {
	// Created is the number of directories and links created
	Created int

	// Removed is the number of links and directories removed
	Removed int

	// Skipped is the number of paths needing no action
	Skipped int

	// Conflicts is the number of paths blocked by conflicting occupants
	Conflicts int

	// Failed is the number of paths that hit I/O errors
	Failed int
}

// Ok reports whether the run was fully clean.
func (s Summary) Ok() bool {
	return s.Conflicts == 0 && s.Failed == 0
}

// Summarize counts the outcomes of a result set.
func Summarize(results []PathResult) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Action == planner.ActionConflict:
			s.Conflicts++
		case r.Outcome == OutcomeFailed:
			s.Failed++
		case r.Outcome == OutcomeApplied:
			s.Created++
		case r.Outcome == OutcomeRemoved:
			s.Removed++
		case r.Outcome == OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}

// Executor performs the filesystem mutations a plan calls for.
type Executor struct {
	fs fsops.FS
}

// New creates a new Executor.
func New(fs fsops.FS) *Executor {
	return &Executor{fs: fs}
}

// Apply executes an apply plan in order. Directories come before the links
// inside them (a plan invariant), so each operation only needs its own path.
func (x *Executor) Apply(ctx context.Context, plan *planner.Plan) []PathResult {
	log := logger.G(ctx)

	results := make([]PathResult, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		res := x.applyOne(op)
		log.WithFields(logrus.Fields{
			"path":    op.RelPath,
			"action":  op.Action,
			"outcome": res.Outcome,
		}).Debug("executed operation")
		results = append(results, res)
	}
	return results
}

// applyOne executes a single apply operation.
func (x *Executor) applyOne(op planner.Operation) PathResult {
	res := PathResult{RelPath: op.RelPath, Action: op.Action, Reason: op.Reason}

	if err := x.fs.ValidateRelPath(op.RelPath); err != nil {
		return failed(res, fmt.Errorf("refusing to touch path: %w", err))
	}

	switch op.Action {
	case planner.ActionCreateDir:
		return x.executeCreateDir(res, op)
	case planner.ActionCreateLink:
		return x.executeCreateLink(res, op)
	case planner.ActionSkip:
		res.Outcome = OutcomeSkipped
		return res
	case planner.ActionConflict:
		// Conflicts are planned non-actions: the path ends failed without
		// any mutation.
		res.Outcome = OutcomeFailed
		return res
	default:
		return failed(res, fmt.Errorf("unknown operation action: %s", op.Action))
	}
}

// executeCreateDir creates a directory, ancestors included. A directory
// already in place makes this a no-op.
func (x *Executor) executeCreateDir(res PathResult, op planner.Operation) PathResult {
	if err := x.fs.MkdirAll(op.Target, 0755); err != nil {
		return failed(res, fmt.Errorf("failed to create directory: %w", err))
	}
	res.Outcome = OutcomeApplied
	return res
}

// executeCreateLink creates the symlink atomically, so an interrupted run
// leaves either no link or the complete link.
func (x *Executor) executeCreateLink(res PathResult, op planner.Operation) PathResult {
	if err := x.fs.SymlinkAtomic(op.Source, op.Target); err != nil {
		return failed(res, err)
	}
	res.Outcome = OutcomeApplied
	return res
}

// Remove executes a remove plan in order. The plan is deepest-first, so
// links disappear before their directories come up for pruning.
func (x *Executor) Remove(ctx context.Context, plan *planner.Plan) []PathResult {
	log := logger.G(ctx)

	results := make([]PathResult, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		res := x.removeOne(op)
		log.WithFields(logrus.Fields{
			"path":    op.RelPath,
			"action":  op.Action,
			"outcome": res.Outcome,
		}).Debug("executed operation")
		results = append(results, res)
	}
	return results
}

// removeOne executes a single remove operation.
func (x *Executor) removeOne(op planner.Operation) PathResult {
	res := PathResult{RelPath: op.RelPath, Action: op.Action, Reason: op.Reason}

	if err := x.fs.ValidateRelPath(op.RelPath); err != nil {
		return failed(res, fmt.Errorf("refusing to touch path: %w", err))
	}

	switch op.Action {
	case planner.ActionRemoveLink:
		return x.executeRemoveLink(res, op)
	case planner.ActionPruneDir:
		return x.executePruneDir(res, op)
	case planner.ActionSkip:
		res.Outcome = OutcomeSkipped
		return res
	default:
		return failed(res, fmt.Errorf("unknown operation action: %s", op.Action))
	}
}

// executeRemoveLink deletes a symlink this tool created. The link target is
// checked immediately before removal: a path that is no longer a symlink, or
// a link that no longer resolves to the package source, is left alone and
// reported as skipped.
func (x *Executor) executeRemoveLink(res PathResult, op planner.Operation) PathResult {
	info, err := x.fs.Lstat(op.Target)
	if err != nil {
		if os.IsNotExist(err) {
			res.Outcome = OutcomeSkipped
			res.Reason = "already absent"
			return res
		}
		return failed(res, fmt.Errorf("failed to inspect %s: %w", op.Target, err))
	}

	if info.Mode()&os.ModeSymlink == 0 {
		res.Outcome = OutcomeSkipped
		res.Reason = "not a symlink, left in place"
		return res
	}

	dest, err := x.fs.Readlink(op.Target)
	if err != nil {
		return failed(res, fmt.Errorf("failed to read link %s: %w", op.Target, err))
	}
	if planner.ResolveLinkDest(op.Target, dest) != filepath.Clean(op.Source) {
		res.Outcome = OutcomeSkipped
		res.Reason = fmt.Sprintf("link no longer points at %s, left in place", op.Source)
		return res
	}

	if err := x.fs.Remove(op.Target); err != nil {
		return failed(res, fmt.Errorf("failed to remove link: %w", err))
	}
	res.Outcome = OutcomeRemoved
	return res
}

// executePruneDir removes a directory the packages contributed, but only if
// it is empty at this moment. Anything else in it belongs to the user.
func (x *Executor) executePruneDir(res PathResult, op planner.Operation) PathResult {
	entries, err := x.fs.ReadDir(op.Target)
	if err != nil {
		if os.IsNotExist(err) {
			res.Outcome = OutcomeSkipped
			res.Reason = "already absent"
			return res
		}
		return failed(res, fmt.Errorf("failed to read directory %s: %w", op.Target, err))
	}

	if len(entries) > 0 {
		res.Outcome = OutcomeSkipped
		res.Reason = "directory not empty, left in place"
		return res
	}

	if err := x.fs.Remove(op.Target); err != nil {
		return failed(res, fmt.Errorf("failed to remove directory: %w", err))
	}
	res.Outcome = OutcomeRemoved
	return res
}

func failed(res PathResult, err error) PathResult {
	res.Outcome = OutcomeFailed
	res.Err = err
	res.Reason = err.Error()
	return res
}
