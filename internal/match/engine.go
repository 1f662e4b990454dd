// Package match runs a single game between two players from the first turn to a terminal result.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

const DefaultMaxNoTieTurns = 1000

type botClient interface {
	RequestMove(ctx context.Context, player entity.Player, board entity.Board, marker int, timeout time.Duration) (int, error)
}

type humanMover interface {
	WaitForMove(ctx context.Context, gameID string, player entity.Player, board entity.Board, timeout time.Duration) (int, error)
}

type broadcaster interface {
	BroadcastMatchStart(payload entity.MatchStartPayload)
	BroadcastMatchMove(payload entity.MatchMovePayload)
	BroadcastMatchWin(payload entity.MatchWinPayload)
	BroadcastMatchDraw(payload entity.MatchDrawPayload)
	BroadcastMatchError(payload entity.MatchErrorPayload)
	BroadcastMatchAborted(payload entity.MatchAbortedPayload)
	BroadcastMoveRemoval(payload entity.MoveRemovedPayload)
}

type Config struct {
	DefaultProtocol string
	DefaultHost     string
	// MaxNoTieTurns bounds the no-tie loop; reaching it ends the match as incomplete.
	MaxNoTieTurns int
}

type Engine struct {
	logger *slog.Logger
	bots   botClient
	humans humanMover
	events broadcaster
	conf   Config

	now   func() time.Time
	newID func() string
}

func NewEngine(logger *slog.Logger, bots botClient, humans humanMover, events broadcaster, conf Config) *Engine {
	if conf.MaxNoTieTurns <= 0 {
		conf.MaxNoTieTurns = DefaultMaxNoTieTurns
	}

	return &Engine{
		logger: logger,
		bots:   bots,
		humans: humans,
		events: events,
		conf:   conf,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// StartMatch - plays a full match. Only pre-match validation errors are returned as errors.
// A player failure after the board exists makes the opponent the winner; a cancelled ctx
// ends the match as incomplete with no winner.
func (that *Engine) StartMatch(ctx context.Context, players []entity.Player, opts entity.MatchOptions) (*entity.MatchResult, error) {
	normalized, err := NormalizePlayers(players, that.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to validate players: %w", err)
	}

	opts = opts.WithDefaults()

	board, err := tictactoe.NewBoard(opts.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if err = validateOptions(opts); err != nil {
		return nil, err
	}

	state := &matchState{
		engine:  that,
		id:      that.newID(),
		players: normalized,
		opts:    opts,
		board:   board,
		status:  StatusStarting,
	}
	if opts.NoTie {
		state.window = tictactoe.NewRollingWindow(opts.MaxMarks)
	}

	state.log = that.logger.With("matchID", state.id)

	return state.run(ctx), nil
}

func (that *Engine) requestMove(ctx context.Context, matchID string, player entity.Player, board entity.Board, timeout time.Duration) (int, error) {
	if player.IsHuman {
		return that.humans.WaitForMove(ctx, matchID, player, board, timeout)
	}

	return that.bots.RequestMove(ctx, player, board, player.ID, timeout)
}

// validateOptions - in no-tie mode the cap must leave room for one full line of a player
// (2*size-1 marks when turns alternate) and keep at least one cell free.
func validateOptions(opts entity.MatchOptions) error {
	if !opts.NoTie {
		return nil
	}

	lowest, highest := 2*opts.BoardSize-1, opts.BoardSize*opts.BoardSize-1
	if opts.MaxMarks < lowest || opts.MaxMarks > highest {
		return fmt.Errorf("%w: maxMarks must be within [%d, %d] on a %dx%d board, got %d",
			apperror.ErrInvalidOptions, lowest, highest, opts.BoardSize, opts.BoardSize, opts.MaxMarks)
	}

	return nil
}
