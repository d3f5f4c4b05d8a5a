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

// Remove withdraws the named packages from the target tree. Only links that
// still resolve into the packages are removed; everything else is skipped
// and reported, so removal inverts apply exactly and touches nothing the
// packages do not account for.
func (e *Engine) Remove(ctx context.Context, req *RemoveRequest) (*RemoveResult, error) {
	log := logger.G(ctx)
	started := e.clock.Now()

	result := &RemoveResult{}
	var runErrs *multierror.Error

	scan, err := e.scanPackages(ctx, req.Packages, req.Ignore)
	if err != nil {
		return nil, err
	}
	result.ScanFailures = scan.failures
	runErrs = multierror.Append(runErrs, scan.errs.ErrorOrNil())

	plan := planner.BuildRemovePlan(e.fs, e.layout.TargetRoot, scan.manifests)
	result.Plan = plan

	if req.DryRun {
		result.Duration = e.clock.Since(started)
		return result, runErrs.ErrorOrNil()
	}

	result.Results = e.exec.Remove(ctx, plan)
	result.Summary = executor.Summarize(result.Results)
	if result.Summary.Failed > 0 {
		runErrs = multierror.Append(runErrs, fmt.Errorf("%w: %d paths", ErrExecution, result.Summary.Failed))
	}

	result.Duration = e.clock.Since(started)
	log.WithFields(logrus.Fields{
		"packages": len(req.Packages),
		"removed":  result.Summary.Removed,
		"skipped":  result.Summary.Skipped,
		"failed":   result.Summary.Failed,
		"duration": result.Duration,
	}).Debug("remove finished")

	return result, runErrs.ErrorOrNil()
}
