package tictactoe

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

// RollingWindow tracks placements in order so the oldest live mark can be evicted.
type RollingWindow struct {
	maxMarks int
	entries  []entity.MoveHistoryEntry
}

func NewRollingWindow(maxMarks int) *RollingWindow {
	return &RollingWindow{maxMarks: maxMarks}
}

func (that *RollingWindow) MaxMarks() int {
	return that.maxMarks
}

func (that *RollingWindow) Push(position, playerID, turn int, at time.Time) {
	that.entries = append(that.entries, entity.MoveHistoryEntry{
		Position:  position,
		PlayerID:  playerID,
		Turn:      turn,
		Timestamp: entity.Timestamp(at),
	})
}

func (that *RollingWindow) Len() int {
	return len(that.entries)
}

// Evict - clears the oldest still-present mark while the board holds more than maxMarks.
// Must be called after the new move is applied.
func (that *RollingWindow) Evict(board entity.Board) []entity.MoveHistoryEntry {
	var evicted []entity.MoveHistoryEntry

	for Occupied(board) > that.maxMarks && len(that.entries) > 0 {
		oldest := that.entries[0]
		that.entries = that.entries[1:]

		// stale entry, the cell changed owner since it was recorded
		if board[oldest.Position] != oldest.PlayerID {
			continue
		}

		board[oldest.Position] = entity.EmptyCell
		evicted = append(evicted, oldest)
	}

	return evicted
}
