package commands

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkstudio/inkstudio/internal/cli"
	"github.com/inkstudio/inkstudio/internal/server"
)

var (
	servePort string
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve editing sessions over HTTP",
		Long: `Run the editor as an HTTP service. Each session holds one layer stack
and accepts the same edits and pointer gestures as the terminal editor.

The port comes from settings.yaml, PORT, or --port in that order of
increasing precedence.

Examples:
  inkstudio serve
  inkstudio serve --port 8080`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runServe,
	}

	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()
	if servePort != "" {
		settings.Server.Port = servePort
	}

	logger := log.New(os.Stderr, "[SERVER] ", log.LstdFlags)
	srv := server.New(settings, ctx.Provider(), server.WithLogger(logger))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Printf("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	cli.PrintInfo("Listening on http://localhost:%s", settings.Server.Port)
	return srv.Listen()
}
