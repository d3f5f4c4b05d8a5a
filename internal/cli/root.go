package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/linkfarm/internal/logger"
)

var (
	// Global flags
	jsonOutput bool
	logLevel   string
	logFormat  string

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for linkfarm.
var rootCmd = &cobra.Command{
	Use:     "linkfarm",
	Version: "dev",
	Short:   "Declarative symlink farm manager for dotfile packages",
	Long: `linkfarm projects package directories onto a target directory as symlinks.

A package mirrors the layout it should have under the target root: a file
zsh/.zshrc lands at <target>/.zshrc. Planning reads only the live filesystem,
so running a command twice converges instead of reapplying.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(logLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logger.SetLogFormat(logFormat)
		return nil
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// helpFunc renders help with colored section titles and grouped commands.
func helpFunc(cmd *cobra.Command, args []string) {
	w := cmd.OutOrStdout()

	if cmd.Long != "" {
		fmt.Fprintf(w, "%s\n\n", cmd.Long)
	}

	fmt.Fprintf(w, "%s\n  %s\n\n", sectionTitleColor.Sprint("Usage:"), cmd.UseLine())

	pad := commandPad(cmd)
	for _, group := range cmd.Groups() {
		fmt.Fprintln(w, groupTitleColor.Sprint(group.Title))
		writeCommandList(w, cmd, group.ID, pad)
		fmt.Fprintln(w)
	}

	if hasUngroupedCommands(cmd) {
		fmt.Fprintln(w, sectionTitleColor.Sprint("Additional Commands:"))
		writeCommandList(w, cmd, "", pad)
		fmt.Fprintln(w)
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		fmt.Fprintln(w, sectionTitleColor.Sprint("Flags:"))
		fmt.Fprint(w, cmd.LocalFlags().FlagUsages())
		fmt.Fprint(w, cmd.InheritedFlags().FlagUsages())
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
}

// commandPad returns the column width aligning command descriptions across
// all visible commands.
func commandPad(cmd *cobra.Command) int {
	pad := 0
	for _, c := range cmd.Commands() {
		if !c.Hidden && len(c.Name()) > pad {
			pad = len(c.Name())
		}
	}
	return pad + 2
}

// writeCommandList writes one line per visible command in the given group.
// The empty group ID selects ungrouped commands.
func writeCommandList(w io.Writer, cmd *cobra.Command, groupID string, pad int) {
	for _, c := range cmd.Commands() {
		if c.GroupID == groupID && !c.Hidden {
			fmt.Fprintf(w, "  %-*s %s\n", pad, c.Name(), c.Short)
		}
	}
}

func hasUngroupedCommands(cmd *cobra.Command) bool {
	for _, c := range cmd.Commands() {
		if c.GroupID == "" && !c.Hidden {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.SetHelpFunc(helpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "farm-operations",
		Title: "Farm Operations:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspection",
		Title: "Inspection:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	// CLI & Tooling commands
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the linkfarm CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	// Add help command to CLI & Tooling group
	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Root().Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	// Completion commands for the shells cobra can generate
	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for linkfarm for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	for _, shell := range []struct {
		name string
		gen  func(io.Writer) error
	}{
		{"bash", func(w io.Writer) error { return rootCmd.GenBashCompletion(w) }},
		{"zsh", func(w io.Writer) error { return rootCmd.GenZshCompletion(w) }},
		{"fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"powershell", func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) }},
	} {
		completionCmd.AddCommand(&cobra.Command{
			Use:                   shell.name,
			Short:                 "Generate the autocompletion script for " + shell.name,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return shell.gen(os.Stdout)
			},
		})
	}
	rootCmd.AddCommand(completionCmd)

	// Farm Operations commands
	applyCmd.GroupID = "farm-operations"
	removeCmd.GroupID = "farm-operations"
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(removeCmd)

	// Inspection commands
	statusCmd.GroupID = "inspection"
	listCmd.GroupID = "inspection"
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
