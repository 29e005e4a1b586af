package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkstudio/inkstudio/cmd/commands"
	"github.com/inkstudio/inkstudio/internal/cli"
	"github.com/inkstudio/inkstudio/pkg/files"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quiet       bool
	noColor     bool
	skipConfirm bool
	output      string
)

var rootCmd = &cobra.Command{
	Use:   "inkstudio",
	Short: "Terminal studio for composing tattoo designs",
	Long: `InkStudio composes generated tattoo elements on top of a design. Layers
can be moved, resized, rotated, faded and reordered with the mouse or the
keyboard, and every destructive edit can be undone.

Run without a command to browse saved concepts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(files.InkStudioDir); os.IsNotExist(err) {
			return fmt.Errorf("no .inkstudio directory found in the current directory. Run 'inkstudio init' first")
		}
		return nil
	},
	RunE: commands.RunBrowse,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new InkStudio project",
	Long:  `Creates the .inkstudio folder structure and default settings in the current directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		cli.PrintInfo("Initializing InkStudio project in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created .inkstudio folder structure")
		cli.PrintSuccess("Wrote default settings to %s", files.SettingsPath())
		fmt.Println("\nRun 'inkstudio edit <image>' to start composing.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of InkStudio",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("InkStudio version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewEditCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewConceptsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
