package engine

import (
	"time"

	"github.com/danieljhkim/linkfarm/internal/executor"
	"github.com/danieljhkim/linkfarm/internal/planner"
)

// ScanFailure reports a package whose scan was aborted. A failed scan never
// aborts the run; the package simply contributes nothing.
type ScanFailure struct {
	// Package is the requested package name
	Package string

	// Reason is a human-readable explanation
	Reason string
}

// ApplyResult represents the result of applying packages.
type ApplyResult struct {
	// Plan is the merged plan, conflicts included
	Plan *planner.Plan

	// Results is one entry per executed operation (empty if DryRun)
	Results []executor.PathResult

	// Summary counts the outcomes in Results
	Summary executor.Summary

	// ScanFailures lists packages that could not be scanned
	ScanFailures []ScanFailure

	// Unstowed is the removal pass a restow ran first (nil otherwise)
	Unstowed *RemoveResult

	// Duration is the wall time of the run
	Duration time.Duration
}

// RemoveResult represents the result of withdrawing packages.
type RemoveResult struct {
	// Plan is the reverse plan
	Plan *planner.Plan

	// Results is one entry per executed operation (empty if DryRun)
	Results []executor.PathResult

	// Summary counts the outcomes in Results
	Summary executor.Summary

	// ScanFailures lists packages that could not be scanned
	ScanFailures []ScanFailure

	// Duration is the wall time of the run
	Duration time.Duration
}

// PathStatus classifies one farmed path against the live target tree.
type PathStatus struct {
	// RelPath is the target-relative path
	RelPath string

	// Package is the package contributing the path
	Package string

	// State is one of the Path* constants
	State string

	// Detail carries the link destination or occupant description
	Detail string
}

// StatusResult represents the current farm status for a package set.
type StatusResult struct {
	// Packages is the list of package names inspected
	Packages []string

	// Paths is the per-path classification, parents first
	Paths []PathStatus

	// ScanFailures lists packages that could not be scanned
	ScanFailures []ScanFailure
}

// Counts tallies the path states for summary display.
func (r *StatusResult) Counts() map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Paths {
		counts[p.State]++
	}
	return counts
}
