package cmd

import (
	"os"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-arbiter/internal"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP api and the websocket event stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := initLogger(app.conf.LogLevel, os.Stdout)

			return application.RunApp(cmd.Context(), logger, app.conf)
		},
	}
}
