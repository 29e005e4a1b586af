package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inkstudio/inkstudio/internal/cli"
	"github.com/inkstudio/inkstudio/pkg/provider"
	"github.com/inkstudio/inkstudio/pkg/tui"
)

const debugLogFile = "inkstudio-debug.log"

var (
	editConceptID string
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [image]",
		Short: "Compose elements on top of a design",
		Long: `Open the layer editor in the terminal.

The base image can be a local file, an http(s) URL or a data URI. With
--concept the editor opens on a saved concept's image instead. Without
either, the saved concepts are listed so you can pick one.

Set INKSTUDIO_DEBUG=1 to write logs to inkstudio-debug.log.

Examples:
  # Edit a local design
  inkstudio edit sleeve.png

  # Edit a saved concept
  inkstudio edit --concept 3f6c1c2e-...

  # Browse saved concepts
  inkstudio edit`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: requireProject,
		RunE:    runEdit,
	}

	cmd.Flags().StringVarP(&editConceptID, "concept", "c", "", "Open a saved concept by id")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && editConceptID != "" {
		return fmt.Errorf("pass either an image or --concept, not both")
	}

	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	logger := log.New(io.Discard, "", 0)
	if os.Getenv("INKSTUDIO_DEBUG") != "" {
		f, err := tea.LogToFile(debugLogFile, "debug")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	opts := []tui.AppOption{tui.WithLogger(logger)}

	if len(args) == 1 || editConceptID != "" {
		imageRef := ""
		title := editConceptID
		if len(args) == 1 {
			imageRef = args[0]
			title = filepath.Base(imageRef)
			if provider.IsRemoteRef(imageRef) {
				title = cli.FormatImageRef(imageRef, 40)
			}
		}
		image, err := ctx.ResolveBaseImage(cmd.Context(), imageRef, editConceptID)
		if err != nil {
			return err
		}
		opts = append(opts, tui.WithBaseImage(image, title))
	} else {
		store, err := ctx.OpenConcepts(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, tui.WithConcepts(store))
	}

	app := tui.NewApp(settings, ctx.Provider(), opts...)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

// RunBrowse opens the concept list, as the root command does.
func RunBrowse(cmd *cobra.Command, args []string) error {
	editConceptID = ""
	return runEdit(cmd, nil)
}
