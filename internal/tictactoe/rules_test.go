package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("Allocates zero-filled boards for supported sizes", func(t *testing.T) {
		for _, size := range []int{3, 5} {
			// When: allocating a board
			board, err := NewBoard(size)

			// Then: it has size*size empty cells
			require.NoError(t, err)
			assert.Len(t, board, size*size)
			assert.Equal(t, 0, Occupied(board))
		}
	})

	t.Run("Rejects unsupported sizes", func(t *testing.T) {
		for _, size := range []int{0, 1, 2, 4, 6, -3} {
			// When: allocating a board of an unsupported size
			board, err := NewBoard(size)

			// Then: ErrInvalidSize is returned
			require.ErrorIs(t, err, apperror.ErrInvalidSize)
			assert.Nil(t, board)
		}
	})
}

func TestValidateMove(t *testing.T) {
	board := entity.Board{
		1, 0, 0,
		0, 2, 0,
		0, 0, 0,
	}

	t.Run("Empty in-range cell is legal", func(t *testing.T) {
		require.NoError(t, ValidateMove(board, 1))
		assert.True(t, IsLegal(board, 8))
	})

	t.Run("Occupied cell", func(t *testing.T) {
		require.ErrorIs(t, ValidateMove(board, 4), apperror.ErrCellOccupied)
		assert.False(t, IsLegal(board, 0))
	})

	t.Run("Out of range cell", func(t *testing.T) {
		require.ErrorIs(t, ValidateMove(board, 9), apperror.ErrInvalidCell)
		require.ErrorIs(t, ValidateMove(board, -1), apperror.ErrInvalidCell)
	})
}

func TestApply(t *testing.T) {
	t.Run("Places the marker", func(t *testing.T) {
		// Given: an empty board
		board, err := NewBoard(3)
		require.NoError(t, err)

		// When: player 1 plays the center
		err = Apply(board, 4, entity.MarkerOne)

		// Then: the center holds marker 1
		require.NoError(t, err)
		assert.Equal(t, entity.Board{0, 0, 0, 0, 1, 0, 0, 0, 0}, board)
	})

	t.Run("Empty marker is never valid", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		err = Apply(board, 4, entity.EmptyCell)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Occupied cell leaves the board unchanged", func(t *testing.T) {
		board := entity.Board{1, 0, 0, 0, 0, 0, 0, 0, 0}

		err := Apply(board, 0, entity.MarkerTwo)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.Board{1, 0, 0, 0, 0, 0, 0, 0, 0}, board)
	})
}

func TestWinningLine(t *testing.T) {
	t.Run("Row", func(t *testing.T) {
		board := entity.Board{
			1, 1, 1,
			2, 2, 0,
			0, 0, 0,
		}

		assert.Equal(t, []int{0, 1, 2}, WinningLine(board, 3, 1))
		assert.Nil(t, WinningLine(board, 3, 2))
	})

	t.Run("Column", func(t *testing.T) {
		board := entity.Board{
			2, 1, 0,
			2, 1, 0,
			0, 1, 2,
		}

		assert.Equal(t, []int{1, 4, 7}, WinningLine(board, 3, 1))
	})

	t.Run("Anti-diagonal on 5x5", func(t *testing.T) {
		board := make(entity.Board, 25)
		for _, cell := range []int{4, 8, 12, 16, 20} {
			board[cell] = 2
		}

		assert.Equal(t, []int{4, 8, 12, 16, 20}, WinningLine(board, 5, 2))
	})

	t.Run("Rows are reported before columns and diagonals", func(t *testing.T) {
		// Given: marker 1 holds row 0, column 0 and the main diagonal at once
		board := entity.Board{
			1, 1, 1,
			1, 1, 0,
			1, 0, 1,
		}

		// Then: the row is found first
		assert.Equal(t, []int{0, 1, 2}, WinningLine(board, 3, 1))
	})

	t.Run("Empty marker never wins", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		assert.Nil(t, WinningLine(board, 3, entity.EmptyCell))
	})
}

func TestWinningLine_AllBoards(t *testing.T) {
	t.Run("Every 3x3 board", func(t *testing.T) {
		board := make(entity.Board, 9)
		for code := 0; code < 19683; code++ {
			n := code
			for i := range board {
				board[i] = n % 3
				n /= 3
			}

			for _, marker := range []int{1, 2} {
				assert.Equal(t, holdsAnyLine(board, 3, marker), WinningLine(board, 3, marker) != nil, "board %v", board)
			}
		}
	})

	t.Run("Random 5x5 boards", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42)) //nolint: gosec // deterministic fixture
		board := make(entity.Board, 25)
		for iteration := 0; iteration < 20000; iteration++ {
			for i := range board {
				// bias towards marker 1 so full lines actually show up
				switch v := rng.Intn(10); {
				case v < 8:
					board[i] = 1
				case v < 9:
					board[i] = 2
				default:
					board[i] = 0
				}
			}

			for _, marker := range []int{1, 2} {
				assert.Equal(t, holdsAnyLine(board, 5, marker), WinningLine(board, 5, marker) != nil, "board %v", board)
			}
		}
	})
}

// holdsAnyLine checks rows, columns and diagonals directly by coordinates.
func holdsAnyLine(board entity.Board, size, marker int) bool {
	at := func(r, c int) int { return board[r*size+c] }

	for r := 0; r < size; r++ {
		row, col := true, true
		for c := 0; c < size; c++ {
			row = row && at(r, c) == marker
			col = col && at(c, r) == marker
		}
		if row || col {
			return true
		}
	}

	diagonal, anti := true, true
	for i := 0; i < size; i++ {
		diagonal = diagonal && at(i, i) == marker
		anti = anti && at(i, size-1-i) == marker
	}

	return diagonal || anti
}

func TestFindWinner(t *testing.T) {
	board := entity.Board{
		2, 1, 1,
		0, 2, 1,
		0, 0, 2,
	}

	marker, line := FindWinner(board, 3)

	assert.Equal(t, 2, marker)
	assert.Equal(t, []int{0, 4, 8}, line)
}

func TestIsFullAndValidMoves(t *testing.T) {
	t.Run("Partially filled board", func(t *testing.T) {
		board := entity.Board{1, 2, 0, 0, 1, 0, 2, 0, 0}

		assert.False(t, IsFull(board))
		assert.Equal(t, []int{2, 3, 5, 7, 8}, ValidMoves(board))
		assert.Equal(t, 4, Occupied(board))
	})

	t.Run("Full board", func(t *testing.T) {
		board := entity.Board{1, 2, 1, 1, 2, 2, 2, 1, 1}

		assert.True(t, IsFull(board))
		assert.Empty(t, ValidMoves(board))
	})
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 3, SizeOf(make(entity.Board, 9)))
	assert.Equal(t, 5, SizeOf(make(entity.Board, 25)))
	assert.Equal(t, 0, SizeOf(make(entity.Board, 10)))
}

func TestReplay(t *testing.T) {
	t.Run("Rebuilds board including evictions", func(t *testing.T) {
		move := func(v int) *int { return &v }

		// Given: a history where the third turn evicted position 0
		history := []entity.TurnRecord{
			{Turn: 0, PlayerID: 1, Move: move(0), BoardAfter: entity.Board{1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{Turn: 1, PlayerID: 2, Move: move(4), BoardAfter: entity.Board{1, 0, 0, 0, 2, 0, 0, 0, 0}},
			{Turn: 2, PlayerID: 1, Move: move(8), Evicted: move(0), BoardAfter: entity.Board{0, 0, 0, 0, 2, 0, 0, 0, 1}},
			{Turn: 3, PlayerID: 2, Error: "timeout"},
		}

		// When: replaying it
		board, err := Replay(3, history)

		// Then: the final board matches the last recorded state
		require.NoError(t, err)
		assert.Equal(t, entity.Board{0, 0, 0, 0, 2, 0, 0, 0, 1}, board)
	})

	t.Run("Conflicting history fails", func(t *testing.T) {
		move := func(v int) *int { return &v }
		history := []entity.TurnRecord{
			{Turn: 0, PlayerID: 1, Move: move(0), BoardAfter: entity.Board{}},
			{Turn: 1, PlayerID: 2, Move: move(0), BoardAfter: entity.Board{}},
		}

		_, err := Replay(3, history)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}
