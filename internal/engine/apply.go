package engine

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/linkfarm/internal/executor"
	"github.com/danieljhkim/linkfarm/internal/logger"
	"github.com/danieljhkim/linkfarm/internal/planner"
)

// Algorithm steps:
// 1. Restow: run the removal pass first (skipped on dry runs)
// 2. Scan the requested packages into manifests
// 3. Merge the manifests into one plan against the live target tree
// 4. Stop after planning if DryRun
// 5. Execute the plan; a conflict or failure never blocks other paths
// 6. Fold scan failures, conflicts, and failed paths into the run error
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	log := logger.G(ctx)
	started := e.clock.Now()

	result := &ApplyResult{}
	var runErrs *multierror.Error

	if req.Restow && !req.DryRun {
		unstowed, err := e.Remove(ctx, &RemoveRequest{
			Packages: req.Packages,
			Ignore:   req.Ignore,
		})
		if err != nil {
			runErrs = multierror.Append(runErrs, fmt.Errorf("restow removal pass: %w", err))
		}
		result.Unstowed = unstowed
	}

	scan, err := e.scanPackages(ctx, req.Packages, req.Ignore)
	if err != nil {
		return nil, err
	}
	result.ScanFailures = scan.failures
	runErrs = multierror.Append(runErrs, scan.errs.ErrorOrNil())

	plan := planner.BuildPlan(e.fs, e.hasher, e.layout.TargetRoot, scan.manifests)
	result.Plan = plan
	if plan.HasConflicts() {
		runErrs = multierror.Append(runErrs, fmt.Errorf("%w: %d conflicts", ErrConflict, len(plan.Conflicts)))
	}

	if req.DryRun {
		result.Duration = e.clock.Since(started)
		return result, runErrs.ErrorOrNil()
	}

	result.Results = e.exec.Apply(ctx, plan)
	result.Summary = executor.Summarize(result.Results)
	if result.Summary.Failed > 0 {
		runErrs = multierror.Append(runErrs, fmt.Errorf("%w: %d paths", ErrExecution, result.Summary.Failed))
	}

	result.Duration = e.clock.Since(started)
	log.WithFields(logrus.Fields{
		"packages":  len(req.Packages),
		"created":   result.Summary.Created,
		"skipped":   result.Summary.Skipped,
		"conflicts": result.Summary.Conflicts,
		"failed":    result.Summary.Failed,
		"duration":  result.Duration,
	}).Debug("apply finished")

	return result, runErrs.ErrorOrNil()
}
