package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/inkstudio/inkstudio/internal/cli"
	"github.com/inkstudio/inkstudio/pkg/concepts"
	"github.com/inkstudio/inkstudio/pkg/files"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
	"github.com/inkstudio/inkstudio/pkg/search"
)

// ConceptListResult represents the output structure for concepts list
type ConceptListResult struct {
	Items []ConceptListItem `json:"items" yaml:"items"`
	Count int               `json:"count" yaml:"count"`
}

// ConceptListItem is a concept without its image data
type ConceptListItem struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Style      string   `json:"style,omitempty" yaml:"style,omitempty"`
	Placements []string `json:"placements,omitempty" yaml:"placements,omitempty"`
	Image      string   `json:"image" yaml:"image"`
	CreatedAt  string   `json:"created_at" yaml:"created_at"`
}

var (
	listFilter string

	showCopy   bool
	showExport bool

	saveImage      string
	saveStyle      string
	saveSummary    string
	savePrompt     string
	savePlacements []string

	deleteForce bool
)

// NewConceptsCommand creates the concepts command and its subcommands
func NewConceptsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "concepts",
		Short:   "Manage saved tattoo concepts",
		Aliases: []string{"concept"},
		Long: `List, inspect, save and delete the concepts kept in the project's
concept database.`,
	}

	cmd.AddCommand(newConceptsListCommand())
	cmd.AddCommand(newConceptsShowCommand())
	cmd.AddCommand(newConceptsSaveCommand())
	cmd.AddCommand(newConceptsDeleteCommand())

	return cmd
}

func newConceptsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List saved concepts",
		Aliases: []string{"ls"},
		Long: `List saved concepts, newest first.

Filters combine field:value terms with AND, OR and NOT. Fields are style,
placement, name, content and created (<7d, >2w, <6m, >1y). Bare words
search the name, summary and prompt.

Examples:
  inkstudio concepts list
  inkstudio concepts list -o json
  inkstudio concepts list --filter "style:traditional placement:forearm"
  inkstudio concepts list --filter "koi OR carp created:<30d"`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runConceptsList,
	}

	cmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Filter query")

	return cmd
}

func runConceptsList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	store, err := ctx.OpenConcepts(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list concepts: %w", err)
	}
	if listFilter != "" {
		list, err = search.Filter(list, listFilter, time.Now())
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	result := ConceptListResult{Count: len(list)}
	for _, c := range list {
		result.Items = append(result.Items, ConceptListItem{
			ID:         c.ID,
			Name:       c.Name,
			Style:      string(c.Style),
			Placements: c.Placements,
			Image:      cli.FormatImageRef(c.Image, 40),
			CreatedAt:  c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	if len(list) == 0 {
		cli.PrintInfo("No concepts saved yet")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "NAME", "STYLE", "CREATED")
	for _, item := range result.Items {
		table.Row(cli.TruncateString(item.ID, 8), cli.TruncateString(item.Name, 32), item.Style, item.CreatedAt)
	}
	table.Flush()
	return nil
}

func newConceptsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a saved concept",
		Long: `Display a saved concept.

Examples:
  # Show details
  inkstudio concepts show 3f6c1c2e-...

  # Copy the image to the clipboard
  inkstudio concepts show 3f6c1c2e-... --copy

  # Write the image to .inkstudio/exports
  inkstudio concepts show 3f6c1c2e-... --export`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runConceptsShow,
	}

	cmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the concept image to the clipboard")
	cmd.Flags().BoolVar(&showExport, "export", false, "Write the concept image to the exports directory")

	return cmd
}

func runConceptsShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	store, err := ctx.OpenConcepts(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	concept, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, concepts.ErrNotFound) {
			return fmt.Errorf("concept not found: %s", args[0])
		}
		return err
	}

	if showCopy {
		if err := clipboard.WriteAll(concept.Image); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied image of '%s' to clipboard", concept.Name)
	}

	if showExport {
		path, err := files.ExportImage(concept.Name, concept.Image)
		if err != nil {
			return fmt.Errorf("failed to export image: %w", err)
		}
		cli.PrintSuccess("Exported image to %s", path)
	}

	if showCopy || showExport {
		return nil
	}

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, concept)
	}

	printConcept(cmd, concept)
	return nil
}

func printConcept(cmd *cobra.Command, c *models.Concept) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:    %s\n", c.Name)
	fmt.Fprintf(out, "ID:      %s\n", c.ID)
	if c.Style != "" {
		fmt.Fprintf(out, "Style:   %s\n", c.Style)
	}
	if len(c.Placements) > 0 {
		fmt.Fprintf(out, "Placed:  %s\n", strings.Join(c.Placements, ", "))
	}
	fmt.Fprintf(out, "Image:   %s\n", cli.FormatImageRef(c.Image, 60))
	fmt.Fprintf(out, "Created: %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))

	if c.Summary != "" {
		fmt.Fprintf(out, "\n%s\n", wordwrap.String(c.Summary, 72))
	}
	if c.Prompt != "" {
		fmt.Fprintf(out, "\nPrompt:\n%s\n", wordwrap.String(c.Prompt, 72))
	}
}

func newConceptsSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a design as a concept",
		Long: `Save an image as a named concept.

Examples:
  inkstudio concepts save "Koi sleeve" --image koi.png --style traditional
  inkstudio concepts save "Wrist rose" --image https://example.com/rose.png --placement wrist`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runConceptsSave,
	}

	cmd.Flags().StringVarP(&saveImage, "image", "i", "", "Image file, URL or data URI (required)")
	cmd.Flags().StringVarP(&saveStyle, "style", "s", "", "Tattoo style")
	cmd.Flags().StringVar(&saveSummary, "summary", "", "Short description")
	cmd.Flags().StringVar(&savePrompt, "prompt", "", "Prompt the design was generated from")
	cmd.Flags().StringSliceVar(&savePlacements, "placement", nil, "Body placement (repeatable)")
	cmd.MarkFlagRequired("image")

	return cmd
}

func runConceptsSave(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if err := cli.ValidateConceptName(name); err != nil {
		return err
	}
	style, err := cli.ValidateStyle(saveStyle)
	if err != nil {
		return err
	}
	if err := cli.ValidateImageRef(saveImage); err != nil {
		return err
	}
	image, err := provider.LoadImageRef(saveImage)
	if err != nil {
		return err
	}
	var placements []string
	for _, p := range savePlacements {
		if err := models.ValidatePlacement(p); err != nil {
			return fmt.Errorf("invalid placement %q: %w", p, err)
		}
		placements = append(placements, models.NormalizePlacement(p))
	}

	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	store, err := ctx.OpenConcepts(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	concept := &models.Concept{
		Name:       name,
		Style:      style,
		Summary:    strings.TrimSpace(saveSummary),
		Prompt:     strings.TrimSpace(savePrompt),
		Image:      image,
		Placements: placements,
	}
	if err := store.Save(cmd.Context(), concept); err != nil {
		return fmt.Errorf("failed to save concept: %w", err)
	}

	cli.PrintSuccess("Saved concept '%s' (%s)", concept.Name, concept.ID)
	return nil
}

func newConceptsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a saved concept",
		Aliases: []string{"rm"},
		Long: `Permanently delete a saved concept. This cannot be undone.

Examples:
  inkstudio concepts delete 3f6c1c2e-...
  inkstudio concepts delete 3f6c1c2e-... --force`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runConceptsDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runConceptsDelete(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	store, err := ctx.OpenConcepts(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	concept, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, concepts.ErrNotFound) {
			return fmt.Errorf("concept not found: %s", args[0])
		}
		return err
	}

	if !deleteForce {
		ok, err := cli.Confirm(fmt.Sprintf("Delete concept '%s'?", concept.Name), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo("Deletion cancelled")
			return nil
		}
	}

	if err := store.Remove(cmd.Context(), concept.ID); err != nil {
		return fmt.Errorf("failed to delete concept: %w", err)
	}
	cli.PrintSuccess("Deleted concept '%s'", concept.Name)
	return nil
}
