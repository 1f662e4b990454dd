package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

type Status string

const (
	StatusStarting   Status = "starting"
	StatusInProgress Status = "in_progress"
	StatusWin        Status = entity.ResultWin
	StatusDraw       Status = entity.ResultDraw
	StatusError      Status = entity.ResultError
	StatusIncomplete Status = entity.ResultIncomplete
)

// matchState is owned by one StartMatch call; nothing else touches the board.
type matchState struct {
	engine *Engine
	log    *slog.Logger

	id      string
	players [2]entity.Player
	opts    entity.MatchOptions
	board   entity.Board
	window  *tictactoe.RollingWindow
	history []entity.TurnRecord
	status  Status
}

func (that *matchState) run(ctx context.Context) *entity.MatchResult {
	events := that.engine.events

	that.status = StatusInProgress

	attrs := []any{
		"players", []string{that.players[0].Name, that.players[1].Name},
		"boardSize", that.opts.BoardSize,
		"noTie", that.opts.NoTie,
		"timeoutMs", that.opts.TimeoutMs,
	}
	if that.window != nil {
		attrs = append(attrs, "maxMarks", that.window.MaxMarks())
	}
	that.log.Info("match started", attrs...)

	events.BroadcastMatchStart(entity.MatchStartPayload{
		MatchID:   that.id,
		Players:   that.players,
		BoardSize: that.opts.BoardSize,
		NoTie:     that.opts.NoTie,
		Board:     that.board.Clone(),
	})

	maxTurns := that.opts.BoardSize * that.opts.BoardSize
	if that.opts.NoTie {
		maxTurns = that.engine.conf.MaxNoTieTurns
	}

	for turn := 0; turn < maxTurns; turn++ {
		if result := that.playTurn(ctx, turn); result != nil {
			return result
		}
	}

	message := fmt.Sprintf("Match ended without a result after %d turns", maxTurns)

	return that.finish(StatusIncomplete, nil, nil, message)
}

// playTurn - returns a result when the turn ended the match.
func (that *matchState) playTurn(ctx context.Context, turn int) *entity.MatchResult {
	current := that.players[turn%2]
	opponent := that.players[(turn+1)%2]
	before := that.board.Clone()

	record := entity.TurnRecord{
		Turn:        turn,
		PlayerID:    current.ID,
		PlayerName:  current.Name,
		BoardBefore: before,
	}

	if err := ctx.Err(); err != nil {
		return that.abort(err)
	}

	move, err := that.engine.requestMove(ctx, that.id, current, before.Clone(), that.opts.Timeout())
	if err != nil {
		record.Error = err.Error()
		that.history = append(that.history, record)

		// the caller went away, the player did not fail
		if ctxErr := ctx.Err(); ctxErr != nil {
			return that.abort(ctxErr)
		}

		message := fmt.Sprintf("Player %s failed to make a move: %s", current.Name, err.Error())
		return that.fail(current, opponent, err.Error(), message)
	}

	record.Move = &move

	if err = tictactoe.Apply(that.board, move, current.ID); err != nil {
		record.Error = err.Error()
		that.history = append(that.history, record)

		message := fmt.Sprintf("Player %s made an invalid move: %d", current.Name, move)
		return that.fail(current, opponent, err.Error(), message)
	}

	that.engine.events.BroadcastMatchMove(entity.MatchMovePayload{
		MatchID: that.id,
		Turn:    turn,
		Player:  current,
		Move:    move,
		Board:   that.board.Clone(),
	})

	if that.window != nil {
		record.Evicted = that.evict(move, current, turn)
	}

	record.BoardAfter = that.board.Clone()
	that.history = append(that.history, record)

	if line := tictactoe.WinningLine(that.board, that.opts.BoardSize, current.ID); line != nil {
		that.engine.events.BroadcastMatchWin(entity.MatchWinPayload{
			MatchID:     that.id,
			Winner:      current,
			WinningLine: line,
			Board:       that.board.Clone(),
			Turns:       len(that.history),
		})

		return that.finish(StatusWin, &current, line, fmt.Sprintf("Player %s wins!", current.Name))
	}

	if !that.opts.NoTie && tictactoe.IsFull(that.board) {
		that.engine.events.BroadcastMatchDraw(entity.MatchDrawPayload{
			MatchID: that.id,
			Board:   that.board.Clone(),
			Turns:   len(that.history),
		})

		return that.finish(StatusDraw, nil, nil, "Match ended in a draw")
	}

	return nil
}

// evict - records the move in the rolling window and clears the oldest mark when over the cap.
func (that *matchState) evict(move int, current entity.Player, turn int) *int {
	now := that.engine.now()
	that.window.Push(move, current.ID, turn, now)

	var last *int
	for _, entry := range that.window.Evict(that.board) {
		owner := that.players[entry.PlayerID-1]
		that.log.Debug("mark evicted", "position", entry.Position, "owner", owner.Name, "placedOnTurn", entry.Turn)

		that.engine.events.BroadcastMoveRemoval(entity.MoveRemovedPayload{
			MatchID:   that.id,
			Position:  entry.Position,
			Player:    owner,
			Timestamp: entity.Timestamp(now),
		})

		position := entry.Position
		last = &position
	}

	return last
}

func (that *matchState) fail(failed, opponent entity.Player, cause, message string) *entity.MatchResult {
	that.engine.events.BroadcastMatchError(entity.MatchErrorPayload{
		MatchID:      that.id,
		FailedPlayer: failed,
		Winner:       opponent,
		Error:        cause,
		Board:        that.board.Clone(),
	})

	return that.finish(StatusError, &opponent, nil, message)
}

func (that *matchState) abort(cause error) *entity.MatchResult {
	that.engine.events.BroadcastMatchAborted(entity.MatchAbortedPayload{
		MatchID: that.id,
		Reason:  cause.Error(),
		Board:   that.board.Clone(),
		Turns:   len(that.history),
	})

	return that.finish(StatusIncomplete, nil, nil, fmt.Sprintf("Match aborted: %s", cause.Error()))
}

func (that *matchState) finish(status Status, winner *entity.Player, line []int, message string) *entity.MatchResult {
	that.status = status

	result := &entity.MatchResult{
		MatchID:     that.id,
		Players:     that.players,
		History:     that.history,
		Winner:      winner,
		WinningLine: line,
		Result:      string(status),
		Message:     message,
		FinalBoard:  that.board.Clone(),
		Options:     that.opts,
	}

	winnerName := ""
	if winner != nil {
		winnerName = winner.Name
	}

	attrs := []any{
		"result", result.Result,
		"winner", winnerName,
		"turns", len(that.history),
		"message", message,
	}

	if status == StatusIncomplete {
		that.log.Warn("match completed without result", attrs...)
	} else {
		that.log.Info("match completed", attrs...)
	}

	return result
}
