package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

type matchEngine interface {
	StartMatch(ctx context.Context, players []entity.Player, opts entity.MatchOptions) (*entity.MatchResult, error)
}

type matchRepo interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
}

type humanRegistry interface {
	Submit(matchID, playerName string, position int) (*entity.SubmitResult, error)
	Pending() []entity.PendingMove
}

// MatchOptionsInput carries caller supplied options; nil fields fall back to the manager defaults.
type MatchOptionsInput struct {
	TimeoutMs *int  `json:"timeoutMs"`
	BoardSize *int  `json:"boardSize"`
	NoTie     *bool `json:"noTie"`
	MaxMarks  *int  `json:"maxMarks"`
}

type MatchManager struct {
	logger   *slog.Logger
	engine   matchEngine
	repo     matchRepo
	humans   humanRegistry
	defaults entity.MatchOptions
}

// NewMatchManager - repo may be nil, results are then not archived.
func NewMatchManager(logger *slog.Logger, engine matchEngine, repo matchRepo, humans humanRegistry, defaults entity.MatchOptions) *MatchManager {
	return &MatchManager{
		logger:   logger,
		engine:   engine,
		repo:     repo,
		humans:   humans,
		defaults: defaults,
	}
}

// StartMatch - runs a match to completion and archives its result.
func (that *MatchManager) StartMatch(ctx context.Context, players []entity.Player, input MatchOptionsInput) (*entity.MatchResult, error) {
	log := that.logger.With("method", "StartMatch")

	result, err := that.engine.StartMatch(ctx, players, that.resolveOptions(input))
	if err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}

	if that.repo != nil {
		// the caller still gets the result when archiving fails
		if err = that.repo.Save(ctx, result); err != nil {
			log.Error("failed to archive match", "matchID", result.MatchID, "error", err)
		}
	}

	return result, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.MatchResult, error) {
	if that.repo == nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrMatchNotFound, id)
	}

	result, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return result, nil
}

func (that *MatchManager) SubmitHumanMove(matchID, playerName string, position int) (*entity.SubmitResult, error) {
	result, err := that.humans.Submit(matchID, playerName, position)
	if err != nil {
		return nil, fmt.Errorf("failed to submit move: %w", err)
	}

	return result, nil
}

func (that *MatchManager) PendingHumanMoves() []entity.PendingMove {
	return that.humans.Pending()
}

func (that *MatchManager) resolveOptions(input MatchOptionsInput) entity.MatchOptions {
	opts := that.defaults

	if input.TimeoutMs != nil {
		opts.TimeoutMs = *input.TimeoutMs
	}

	if input.BoardSize != nil {
		opts.BoardSize = *input.BoardSize
	}

	if input.NoTie != nil {
		opts.NoTie = *input.NoTie
	}

	if input.MaxMarks != nil {
		opts.MaxMarks = *input.MaxMarks
	}

	return opts
}
