package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages in the package directory",
	Long:  `Display every package the farm can apply.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(listDir, "")
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := eng.List(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Packages")
		PrintLabelValue("Package dir", eng.Layout().PackageDir)
		if len(result) == 0 {
			PrintEmptyState("No packages found")
			return nil
		}

		rows := make([][]string, 0, len(result))
		for _, pkg := range result {
			rows = append(rows, []string{pkg.Name, pkg.Dir})
		}
		PrintTable([]string{"Name", "Location"}, rows)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listDir, "dir", "d", "", "Package directory (default: $LINKFARM_DIR or the current directory)")
}
