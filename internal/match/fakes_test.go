package match

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

var errBotTimeout = errors.New("bot transport failed: timeout after 1000ms")

// scriptedBots answers turns from a fixed script shared by both players.
type scriptedBots struct {
	mu     sync.Mutex
	moves  []int
	errs   map[int]error
	calls  int
	boards []entity.Board
}

func (that *scriptedBots) RequestMove(_ context.Context, _ entity.Player, board entity.Board, _ int, _ time.Duration) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	turn := that.calls
	that.calls++
	that.boards = append(that.boards, board.Clone())

	if err, ok := that.errs[turn]; ok {
		return 0, err
	}

	return that.moves[turn], nil
}

// randomBots plays a uniformly random legal move.
type randomBots struct {
	rng *rand.Rand
}

func (that *randomBots) RequestMove(_ context.Context, _ entity.Player, board entity.Board, _ int, _ time.Duration) (int, error) {
	moves := tictactoe.ValidMoves(board)
	return moves[that.rng.Intn(len(moves))], nil
}

type recordedEvent struct {
	Type    string
	Payload any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (that *recordingBroadcaster) record(eventType string, payload any) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.events = append(that.events, recordedEvent{Type: eventType, Payload: payload})
}

func (that *recordingBroadcaster) types() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	out := make([]string, 0, len(that.events))
	for _, event := range that.events {
		out = append(out, event.Type)
	}

	return out
}

func (that *recordingBroadcaster) BroadcastMatchStart(p entity.MatchStartPayload) {
	that.record(entity.EventMatchStart, p)
}

func (that *recordingBroadcaster) BroadcastMatchMove(p entity.MatchMovePayload) {
	that.record(entity.EventMatchMove, p)
}

func (that *recordingBroadcaster) BroadcastMatchWin(p entity.MatchWinPayload) {
	that.record(entity.EventMatchWin, p)
}

func (that *recordingBroadcaster) BroadcastMatchDraw(p entity.MatchDrawPayload) {
	that.record(entity.EventMatchDraw, p)
}

func (that *recordingBroadcaster) BroadcastMatchError(p entity.MatchErrorPayload) {
	that.record(entity.EventMatchError, p)
}

func (that *recordingBroadcaster) BroadcastMatchAborted(p entity.MatchAbortedPayload) {
	that.record(entity.EventMatchAbort, p)
}

func (that *recordingBroadcaster) BroadcastMoveRemoval(p entity.MoveRemovedPayload) {
	that.record(entity.EventMoveRemoved, p)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoBots() []entity.Player {
	return []entity.Player{
		{Name: "alpha", Port: 4001},
		{Name: "beta", Port: 4002},
	}
}

// cancellingBots plays its moves, then cancels the caller's context on the next turn.
type cancellingBots struct {
	moves  []int
	cancel context.CancelFunc
	calls  int
}

func (that *cancellingBots) RequestMove(ctx context.Context, _ entity.Player, _ entity.Board, _ int, _ time.Duration) (int, error) {
	defer func() { that.calls++ }()

	if that.calls < len(that.moves) {
		return that.moves[that.calls], nil
	}

	that.cancel()
	<-ctx.Done()

	return 0, ctx.Err()
}
