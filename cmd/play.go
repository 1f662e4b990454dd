package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-arbiter/internal"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

func newPlayCmd(app *app) *cobra.Command {
	var (
		urlA, urlB   string
		nameA, nameB string
		opts         entity.MatchOptions
	)

	cmd := &cobra.Command{
		Use:   "play --a <url> --b <url>",
		Short: "Play one bot match and print the result as json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// logs go to stderr so stdout stays valid json
			logger := initLogger(app.conf.LogLevel, cmd.ErrOrStderr())

			if !cmd.Flags().Changed("size") {
				opts.BoardSize = app.conf.Match.BoardSize
			}
			if !cmd.Flags().Changed("timeout-ms") {
				opts.TimeoutMs = app.conf.Match.TimeoutMs
			}
			if !cmd.Flags().Changed("no-tie") {
				opts.NoTie = app.conf.Match.NoTie
			}
			if !cmd.Flags().Changed("max-marks") {
				opts.MaxMarks = app.conf.Match.MaxMarks
			}

			players := []entity.Player{
				{Name: nameA, URL: urlA},
				{Name: nameB, URL: urlB},
			}

			result, err := application.PlayMatch(cmd.Context(), logger, app.conf, players, opts)
			if err != nil {
				return err //nolint: wrapcheck // already wrapped
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err //nolint: wrapcheck // write to stdout
		},
	}

	cmd.Flags().StringVar(&urlA, "a", "", "url of the first bot (plays marker 1)")
	cmd.Flags().StringVar(&urlB, "b", "", "url of the second bot (plays marker 2)")
	cmd.Flags().StringVar(&nameA, "a-name", "bot-a", "name of the first bot")
	cmd.Flags().StringVar(&nameB, "b-name", "bot-b", "name of the second bot")
	cmd.Flags().IntVar(&opts.BoardSize, "size", entity.DefaultBoardSize, "board size, 3 or 5")
	cmd.Flags().IntVar(&opts.TimeoutMs, "timeout-ms", entity.DefaultTimeoutMs, "per move timeout in milliseconds")
	cmd.Flags().BoolVar(&opts.NoTie, "no-tie", false, "evict the oldest mark instead of allowing draws")
	cmd.Flags().IntVar(&opts.MaxMarks, "max-marks", 0, "marks kept on the board in no-tie mode, 0 means twice the size")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}
