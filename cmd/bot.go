package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/service"
	"github.com/rocketscienceinc/tictactoe-arbiter/transport/rest"
)

func newBotCmd(app *app) *cobra.Command {
	var (
		port     string
		strategy string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Serve the reference bot so it can be matched against others",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := initLogger(app.conf.LogLevel, cmd.ErrOrStderr())

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			chooser, err := service.NewBotService(strategy, seed)
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}

			logger.Info("Starting reference bot", "port", port, "strategy", strategy, "movePath", app.conf.Bot.MovePath)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			return rest.Start(ctx, port, rest.NewBotRouter(logger, chooser, app.conf.Bot.MovePath)) //nolint: wrapcheck // already wrapped
		},
	}

	cmd.Flags().StringVar(&port, "port", "4001", "port to listen on")
	cmd.Flags().StringVar(&strategy, "strategy", service.StrategyGreedy, "random or greedy")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, defaults to the current time")

	return cmd
}
