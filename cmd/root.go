package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/config"
)

const defaultConfigPath = "config.yml"

type app struct {
	configPath string
	conf       *config.Config
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "arbiter",
		Short:         "Tic-tac-toe match arbiter for HTTP bots and humans",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(app.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			app.conf = conf
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", defaultConfigPath, "path to the yaml config; env only when missing")

	rootCmd.AddCommand(
		newServeCmd(app),
		newPlayCmd(app),
		newBotCmd(app),
	)

	return rootCmd
}

// initLogger - json logs at the configured level.
func initLogger(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
}
