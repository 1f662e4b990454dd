package apperror

import "errors"

var (
	ErrInvalidSize    = errors.New("board size must be 3 or 5")
	ErrInvalidPlayers = errors.New("invalid players")
	ErrInvalidOptions = errors.New("invalid match options")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidMove    = errors.New("invalid move")
	ErrMatchNotFound  = errors.New("match not found")
	ErrTransport      = errors.New("bot transport failed")
	ErrHumanTimeout   = errors.New("Timeout waiting for human move") //nolint: stylecheck // surfaced verbatim in results
)
