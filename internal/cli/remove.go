package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/linkfarm/internal/engine"
)

var (
	removeDir    string
	removeTarget string
	removeIgnore []string
	removeDryRun bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <package>...",
	Short: "Withdraw packages from the target tree",
	Long: `Delete the symlinks that point into the named packages and prune
directories the removal leaves empty. Anything the packages do not own,
including symlinks that were repointed elsewhere, is left in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(removeDir, removeTarget)
		if err != nil {
			return err
		}

		ctx := context.Background()
		req := &engine.RemoveRequest{
			Packages: args,
			Ignore:   removeIgnore,
			DryRun:   removeDryRun,
		}

		result, runErr := eng.Remove(ctx, req)
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

		if removeDryRun {
			printPlan("Dry Run", result.Plan)
			return runErr
		}

		for _, r := range result.Results {
			PrintOutcome(r)
		}

		if result.Summary.Ok() && runErr == nil {
			PrintSuccess(fmt.Sprintf("Removed %s: %d removed, %d skipped",
				PrintCount(len(result.Plan.Packages), "package", "packages"),
				result.Summary.Removed, result.Summary.Skipped))
		} else {
			PrintWarning(fmt.Sprintf("Removed with problems: %d failed", result.Summary.Failed))
		}
		return runErr
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeDir, "dir", "d", "", "Package directory (default: $LINKFARM_DIR or the current directory)")
	removeCmd.Flags().StringVarP(&removeTarget, "target", "t", "", "Target root (default: $LINKFARM_TARGET or the parent of the package directory)")
	removeCmd.Flags().StringArrayVar(&removeIgnore, "ignore", nil, "Extra ignore pattern (repeatable)")
	removeCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Show the plan without touching the filesystem")
}
