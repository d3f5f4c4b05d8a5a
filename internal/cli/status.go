package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/linkfarm/internal/engine"
)

var (
	statusDir    string
	statusTarget string
	statusIgnore []string
)

var statusCmd = &cobra.Command{
	Use:   "status <package>...",
	Short: "Report the link state of package paths",
	Long: `Inspect every path the named packages would claim and report whether
it is linked, absent, foreign, or occupied. The target tree is not modified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(statusDir, statusTarget)
		if err != nil {
			return err
		}

		ctx := context.Background()
		req := &engine.StatusRequest{
			Packages: args,
			Ignore:   statusIgnore,
		}

		result, runErr := eng.Status(ctx, req)
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

		PrintLabelValue("Target", eng.Layout().TargetRoot)
		for _, p := range result.Paths {
			PrintPathStatus(p)
		}

		counts := result.Counts()
		fmt.Println()
		PrintInfo(fmt.Sprintf("%d linked, %d absent, %d foreign, %d occupied",
			counts[engine.PathLinked], counts[engine.PathAbsent],
			counts[engine.PathForeign], counts[engine.PathOccupied]))
		return runErr
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusDir, "dir", "d", "", "Package directory (default: $LINKFARM_DIR or the current directory)")
	statusCmd.Flags().StringVarP(&statusTarget, "target", "t", "", "Target root (default: $LINKFARM_TARGET or the parent of the package directory)")
	statusCmd.Flags().StringArrayVar(&statusIgnore, "ignore", nil, "Extra ignore pattern (repeatable)")
}
