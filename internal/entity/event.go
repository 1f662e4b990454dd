package entity

const (
	EventMatchStart  = "match-start"
	EventMatchMove   = "match-move"
	EventMatchWin    = "match-win"
	EventMatchDraw   = "match-draw"
	EventMatchError  = "match-error"
	EventMoveRemoved = "move-removed"
	EventMatchAbort  = "match-aborted"
	EventHumanTurn   = "human-turn"
)

// Event is the envelope relayed to observers.
type Event struct {
	Type      string    `json:"type"`
	MatchID   string    `json:"matchId"`
	Timestamp Timestamp `json:"timestamp"`
	Payload   any       `json:"payload"`
}

type MatchStartPayload struct {
	MatchID   string    `json:"matchId"`
	Players   [2]Player `json:"players"`
	BoardSize int       `json:"boardSize"`
	NoTie     bool      `json:"noTie"`
	Board     Board     `json:"board"`
}

type MatchMovePayload struct {
	MatchID string `json:"matchId"`
	Turn    int    `json:"turn"`
	Player  Player `json:"player"`
	Move    int    `json:"move"`
	Board   Board  `json:"board"`
}

type MatchWinPayload struct {
	MatchID     string `json:"matchId"`
	Winner      Player `json:"winner"`
	WinningLine []int  `json:"winningLine"`
	Board       Board  `json:"board"`
	Turns       int    `json:"turns"`
}

type MatchDrawPayload struct {
	MatchID string `json:"matchId"`
	Board   Board  `json:"board"`
	Turns   int    `json:"turns"`
}

type MatchErrorPayload struct {
	MatchID      string `json:"matchId"`
	FailedPlayer Player `json:"failedPlayer"`
	Winner       Player `json:"winner"`
	Error        string `json:"error"`
	Board        Board  `json:"board"`
}

// MatchAbortedPayload ends a match whose caller went away; nobody wins.
type MatchAbortedPayload struct {
	MatchID string `json:"matchId"`
	Reason  string `json:"reason"`
	Board   Board  `json:"board"`
	Turns   int    `json:"turns"`
}

type MoveRemovedPayload struct {
	MatchID   string    `json:"matchId"`
	Position  int       `json:"position"`
	Player    Player    `json:"player"`
	Timestamp Timestamp `json:"timestamp"`
}

type HumanTurnPayload struct {
	PendingMove
}
