package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/linkfarm/internal/engine"
)

var (
	applyDir    string
	applyTarget string
	applyIgnore []string
	applyDryRun bool
	applyRestow bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <package>...",
	Short: "Link packages into the target tree",
	Long: `Project one or more packages onto the target tree.

Every file in a package becomes a symlink at the mirrored path under the
target root, and intermediate directories are created as real directories
so packages can share them. Applying twice is harmless: paths that already
point at the package are reported as skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(applyDir, applyTarget)
		if err != nil {
			return err
		}

		ctx := context.Background()
		req := &engine.ApplyRequest{
			Packages: args,
			Ignore:   applyIgnore,
			DryRun:   applyDryRun,
			Restow:   applyRestow,
		}

		result, runErr := eng.Apply(ctx, req)
		if result == nil {
			return runErr
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
			return runErr
		}

		printScanFailures(result.ScanFailures)

		if applyDryRun {
			printPlan("Dry Run", result.Plan)
			return runErr
		}

		if result.Unstowed != nil {
			for _, r := range result.Unstowed.Results {
				PrintOutcome(r)
			}
		}
		for _, r := range result.Results {
			PrintOutcome(r)
		}

		if result.Summary.Ok() && runErr == nil {
			PrintSuccess(fmt.Sprintf("Applied %s: %d created, %d skipped",
				PrintCount(len(result.Plan.Packages), "package", "packages"),
				result.Summary.Created, result.Summary.Skipped))
		} else {
			PrintWarning(fmt.Sprintf("Applied with problems: %d conflicts, %d failed",
				result.Summary.Conflicts, result.Summary.Failed))
		}
		return runErr
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyDir, "dir", "d", "", "Package directory (default: $LINKFARM_DIR or the current directory)")
	applyCmd.Flags().StringVarP(&applyTarget, "target", "t", "", "Target root (default: $LINKFARM_TARGET or the parent of the package directory)")
	applyCmd.Flags().StringArrayVar(&applyIgnore, "ignore", nil, "Extra ignore pattern (repeatable)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show the plan without touching the filesystem")
	applyCmd.Flags().BoolVarP(&applyRestow, "restow", "R", false, "Remove the packages first, then apply them fresh")
}
