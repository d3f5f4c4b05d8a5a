package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/linkfarm/internal/clock"
	"github.com/danieljhkim/linkfarm/internal/config"
	"github.com/danieljhkim/linkfarm/internal/engine"
	"github.com/danieljhkim/linkfarm/internal/fsops"
	"github.com/danieljhkim/linkfarm/internal/hash"
	"github.com/danieljhkim/linkfarm/internal/packages"
	"github.com/danieljhkim/linkfarm/internal/planner"
)

// newEngine creates a new engine with real implementations of all
// dependencies, over the layout the flags and environment resolve to.
func newEngine(dirFlag, targetFlag string) (*engine.Engine, error) {
	layout, err := config.ResolveLayout(dirFlag, targetFlag)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}
	pkgRepo := packages.NewDirRepo(fs, layout.PackageDir)

	return engine.New(pkgRepo, fs, hasher, clk, *layout), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printScanFailures warns about packages that contributed nothing to a run.
func printScanFailures(failures []engine.ScanFailure) {
	for _, f := range failures {
		PrintWarning(fmt.Sprintf("package %s not scanned: %s", f.Package, f.Reason))
	}
}

// printPlan renders a dry-run plan.
func printPlan(title string, plan *planner.Plan) {
	PrintSection(title)
	PrintInfo(fmt.Sprintf("Would perform %s", PrintCount(len(plan.Operations), "operation", "operations")))
	if len(plan.Operations) > 0 {
		PrintSubsection("Operations:")
		ops := make([]string, 0, len(plan.Operations))
		for _, op := range plan.Operations {
			line := fmt.Sprintf("%s: %s", opLabel(op.Action), op.RelPath)
			if op.Reason != "" {
				line = fmt.Sprintf("%s (%s)", line, op.Reason)
			}
			ops = append(ops, line)
		}
		PrintList(ops, 1)
	}
	printConflicts(plan)
}

// printConflicts renders the conflict section of a plan, if any.
func printConflicts(plan *planner.Plan) {
	if !plan.HasConflicts() {
		return
	}
	PrintSection("Conflicts")
	for _, c := range plan.Conflicts {
		PrintError(fmt.Sprintf("%s: %s", c.RelPath, c.Reason))
	}
}

// opLabel shortens a plan action for display.
func opLabel(action string) string {
	switch action {
	case planner.ActionCreateDir:
		return "dir"
	case planner.ActionCreateLink:
		return "link"
	case planner.ActionRemoveLink:
		return "unlink"
	case planner.ActionPruneDir:
		return "prune"
	case planner.ActionSkip:
		return "skip"
	case planner.ActionConflict:
		return "conflict"
	default:
		return action
	}
}
