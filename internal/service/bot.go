// Package service holds the reference bot used for local play and tests.
package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
)

var (
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	ChooseMove(board entity.Board, marker int) (int, error)
}

type botService struct {
	strategy string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBotService - random plays any free cell; greedy wins when it can, blocks when it must,
// prefers the center and falls back to random.
func NewBotService(strategy string, seed int64) (BotService, error) {
	if strategy != StrategyRandom && strategy != StrategyGreedy {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return &botService{
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}, nil
}

func (that *botService) ChooseMove(board entity.Board, marker int) (int, error) {
	availableCells := tictactoe.ValidMoves(board)
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if that.strategy == StrategyGreedy {
		if cell, ok := greedyMove(board, marker, availableCells); ok {
			return cell, nil
		}
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

func greedyMove(board entity.Board, marker int, availableCells []int) (int, bool) {
	size := tictactoe.SizeOf(board)
	if size == 0 {
		return 0, false
	}

	opponent := entity.MarkerOne
	if marker == entity.MarkerOne {
		opponent = entity.MarkerTwo
	}

	for _, who := range []int{marker, opponent} {
		for _, cell := range availableCells {
			if completesLine(board, size, cell, who) {
				return cell, true
			}
		}
	}

	center := len(board) / 2
	if board[center] == entity.EmptyCell {
		return center, true
	}

	return 0, false
}

func completesLine(board entity.Board, size, cell, marker int) bool {
	next := board.Clone()
	next[cell] = marker

	winner, _ := tictactoe.FindWinner(next, size)

	return winner == marker
}
