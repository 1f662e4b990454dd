package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

// winLines holds every winning line per supported size in scan order:
// rows, columns, main diagonal, anti-diagonal.
var winLines = map[int][][]int{
	3: buildLines(3),
	5: buildLines(5),
}

func buildLines(size int) [][]int {
	lines := make([][]int, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]int, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]int, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	diagonal := make([]int, size)
	antiDiagonal := make([]int, size)
	for i := 0; i < size; i++ {
		diagonal[i] = i*size + i
		antiDiagonal[i] = i*size + (size - 1 - i)
	}

	return append(lines, diagonal, antiDiagonal)
}

func IsValidSize(size int) bool {
	_, ok := winLines[size]
	return ok
}

// NewBoard - allocates an empty board of size*size cells.
func NewBoard(size int) (entity.Board, error) {
	if !IsValidSize(size) {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidSize, size)
	}

	return make(entity.Board, size*size), nil
}

// SizeOf - returns the side length of a square board, or 0 if the board is not square.
func SizeOf(board entity.Board) int {
	size := int(math.Sqrt(float64(len(board))))
	if size*size != len(board) {
		return 0
	}

	return size
}

func IsLegal(board entity.Board, position int) bool {
	return ValidateMove(board, position) == nil
}

// ValidateMove - checks if the position is on the board and empty.
func ValidateMove(board entity.Board, position int) error {
	if position < 0 || position >= len(board) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCell, position)
	}

	if board[position] != entity.EmptyCell {
		return fmt.Errorf("%w: %d", apperror.ErrCellOccupied, position)
	}

	return nil
}

// Apply - places the marker at position.
func Apply(board entity.Board, position, marker int) error {
	if marker == entity.EmptyCell {
		return fmt.Errorf("%w: marker %d", apperror.ErrInvalidMove, marker)
	}

	if err := ValidateMove(board, position); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board[position] = marker

	return nil
}

// WinningLine - returns the first line fully held by marker, or nil.
func WinningLine(board entity.Board, size, marker int) []int {
	if marker == entity.EmptyCell || len(board) != size*size {
		return nil
	}

	for _, line := range winLines[size] {
		if holdsLine(board, line, marker) {
			out := make([]int, len(line))
			copy(out, line)
			return out
		}
	}

	return nil
}

// FindWinner - scans lines in order and returns the owner of the first complete one.
func FindWinner(board entity.Board, size int) (int, []int) {
	if len(board) != size*size {
		return entity.EmptyCell, nil
	}

	for _, line := range winLines[size] {
		marker := board[line[0]]
		if marker != entity.EmptyCell && holdsLine(board, line, marker) {
			out := make([]int, len(line))
			copy(out, line)
			return marker, out
		}
	}

	return entity.EmptyCell, nil
}

func holdsLine(board entity.Board, line []int, marker int) bool {
	for _, cell := range line {
		if board[cell] != marker {
			return false
		}
	}

	return true
}

func IsFull(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

// ValidMoves - lists empty positions in ascending order.
func ValidMoves(board entity.Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func Occupied(board entity.Board) int {
	count := 0
	for _, cell := range board {
		if cell != entity.EmptyCell {
			count++
		}
	}

	return count
}

// Replay - rebuilds a board from a turn history, honouring evictions.
func Replay(size int, history []entity.TurnRecord) (entity.Board, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	for _, record := range history {
		if record.Move == nil || record.BoardAfter == nil {
			continue
		}

		if err = Apply(board, *record.Move, record.PlayerID); err != nil {
			return nil, fmt.Errorf("turn %d: %w", record.Turn, err)
		}

		if record.Evicted != nil {
			board[*record.Evicted] = entity.EmptyCell
		}
	}

	return board, nil
}
