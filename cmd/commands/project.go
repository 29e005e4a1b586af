package commands

import (
	"github.com/spf13/cobra"

	"github.com/inkstudio/inkstudio/internal/cli"
)

// requireProject is shared by commands that read the .inkstudio directory.
func requireProject(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	return ctx.ValidateProject()
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText), nil
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
