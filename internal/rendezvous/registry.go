// Package rendezvous pairs human move submissions with turn loops waiting on them.
package rendezvous

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

type announcer interface {
	BroadcastHumanTurn(payload entity.HumanTurnPayload)
}

type outcome struct {
	move int
	err  error
}

type pendingMove struct {
	matchID  string
	gameID   string
	player   entity.Player
	board    entity.Board
	deadline time.Time
	timer    *time.Timer
	resolved chan outcome
}

// Registry owns every pending human move. Whoever takes an entry out of the map first,
// the deadline timer or a submission, is the only one allowed to resolve it.
type Registry struct {
	logger    *slog.Logger
	announcer announcer

	mu      sync.Mutex
	pending map[string]*pendingMove
}

// New - creates an empty registry. announcer may be nil.
func New(logger *slog.Logger, announcer announcer) *Registry {
	return &Registry{
		logger:    logger,
		announcer: announcer,
		pending:   make(map[string]*pendingMove),
	}
}

// WaitForMove - registers a pending move of game gameID under a fresh matchId and blocks
// until it is submitted, the timeout fires or ctx is done.
func (that *Registry) WaitForMove(ctx context.Context, gameID string, player entity.Player, board entity.Board, timeout time.Duration) (int, error) {
	matchID := uuid.NewString()
	log := that.logger.With("method", "WaitForMove", "matchID", matchID, "gameID", gameID, "player", player.Name)

	entry := &pendingMove{
		matchID:  matchID,
		gameID:   gameID,
		player:   player,
		board:    board.Clone(),
		deadline: time.Now().Add(timeout),
		resolved: make(chan outcome, 1),
	}

	that.mu.Lock()
	that.pending[matchID] = entry
	entry.timer = time.AfterFunc(timeout, func() {
		if _, ok := that.take(matchID); !ok {
			return
		}

		log.Info("human move timed out", "timeout", timeout)
		entry.resolved <- outcome{err: apperror.ErrHumanTimeout}
	})
	that.mu.Unlock()

	log.Info("waiting for human move", "deadline", entry.deadline)

	if that.announcer != nil {
		that.announcer.BroadcastHumanTurn(entity.HumanTurnPayload{PendingMove: entry.snapshot()})
	}

	select {
	case res := <-entry.resolved:
		return res.move, res.err
	case <-ctx.Done():
		if _, ok := that.take(matchID); ok {
			entry.timer.Stop()
			return 0, fmt.Errorf("human move wait aborted: %w", ctx.Err())
		}

		// lost the race, the resolver is about to deliver
		res := <-entry.resolved
		return res.move, res.err
	}
}

// Submit - resolves a pending move. Unknown or already resolved ids fail with
// ErrMatchNotFound, illegal positions with ErrInvalidMove and keep the entry pending.
func (that *Registry) Submit(matchID, playerName string, position int) (*entity.SubmitResult, error) {
	log := that.logger.With("method", "Submit", "matchID", matchID, "player", playerName)

	that.mu.Lock()

	entry, ok := that.pending[matchID]
	if !ok {
		that.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", apperror.ErrMatchNotFound, matchID)
	}

	if err := tictactoe.ValidateMove(entry.board, position); err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	delete(that.pending, matchID)
	entry.timer.Stop()

	that.mu.Unlock()

	entry.resolved <- outcome{move: position}

	log.Info("human move submitted", "position", position)

	return &entity.SubmitResult{Success: true, Move: position}, nil
}

// Pending - returns a snapshot of waiting moves ordered by deadline.
func (that *Registry) Pending() []entity.PendingMove {
	that.mu.Lock()
	out := make([]entity.PendingMove, 0, len(that.pending))
	for _, entry := range that.pending {
		out = append(out, entry.snapshot())
	}
	that.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Deadline.Time().Before(out[j].Deadline.Time())
	})

	return out
}

func (that *Registry) take(matchID string) (*pendingMove, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.pending[matchID]
	if ok {
		delete(that.pending, matchID)
	}

	return entry, ok
}

func (that *pendingMove) snapshot() entity.PendingMove {
	return entity.PendingMove{
		MatchID:  that.matchID,
		GameID:   that.gameID,
		Player:   that.player,
		Board:    that.board.Clone(),
		Deadline: entity.Timestamp(that.deadline),
	}
}
