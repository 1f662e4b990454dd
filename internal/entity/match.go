package entity

import (
	"encoding/json"
	"time"
)

const (
	ResultWin        = "win"
	ResultDraw       = "draw"
	ResultError      = "error"
	ResultIncomplete = "incomplete"
)

const (
	DefaultBoardSize = 3
	DefaultTimeoutMs = 5000
)

type MatchOptions struct {
	TimeoutMs int  `json:"timeoutMs"`
	BoardSize int  `json:"boardSize"`
	NoTie     bool `json:"noTie"`
	// MaxMarks caps simultaneously occupied cells in no-tie mode. Zero means 2*BoardSize.
	MaxMarks int `json:"maxMarks,omitempty"`
}

// WithDefaults fills zero fields. BoardSize is not validated here.
func (that MatchOptions) WithDefaults() MatchOptions {
	if that.BoardSize == 0 {
		that.BoardSize = DefaultBoardSize
	}

	if that.TimeoutMs <= 0 {
		that.TimeoutMs = DefaultTimeoutMs
	}

	if that.MaxMarks <= 0 {
		that.MaxMarks = 2 * that.BoardSize
	}

	return that
}

func (that MatchOptions) Timeout() time.Duration {
	return time.Duration(that.TimeoutMs) * time.Millisecond
}

// TurnRecord is one entry of the append-only audit log. BoardAfter is nil when the turn failed.
type TurnRecord struct {
	Turn        int    `json:"turn"`
	PlayerID    int    `json:"playerId"`
	PlayerName  string `json:"playerName"`
	BoardBefore Board  `json:"boardBefore"`
	Move        *int   `json:"move"`
	BoardAfter  Board  `json:"boardAfter,omitempty"`
	Evicted     *int   `json:"evicted,omitempty"`
	Error       string `json:"error,omitempty"`
}

// MoveHistoryEntry is one placement tracked by the no-tie rolling window.
type MoveHistoryEntry struct {
	Position  int       `json:"position"`
	PlayerID  int       `json:"playerId"`
	Turn      int       `json:"turn"`
	Timestamp Timestamp `json:"timestamp"`
}

type MatchResult struct {
	MatchID     string       `json:"matchId"`
	Players     [2]Player    `json:"players"`
	History     []TurnRecord `json:"history"`
	Winner      *Player      `json:"winner"`
	WinningLine []int        `json:"winningLine"`
	Result      string       `json:"result"`
	Message     string       `json:"message"`
	FinalBoard  Board        `json:"finalBoard"`
	Options     MatchOptions `json:"options"`
}

// Timestamp marshals as unix milliseconds.
type Timestamp time.Time

func (that Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(that).UnixMilli())
}

func (that *Timestamp) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err //nolint: wrapcheck // plain decode error
	}

	*that = Timestamp(time.UnixMilli(ms))

	return nil
}

func (that Timestamp) Time() time.Time {
	return time.Time(that)
}
