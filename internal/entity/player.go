package entity

const (
	PlayerTypeBot   = "bot"
	PlayerTypeHuman = "human"
)

// Player is a normalized match participant. ID doubles as the board marker.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	URL      string `json:"url,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	IsHuman  bool   `json:"isHuman,omitempty"`
	Type     string `json:"type,omitempty"`
}

func (that *Player) IsBot() bool {
	return !that.IsHuman
}

// PendingMove describes a human turn that is waiting for a submission.
// MatchID is the submission key, GameID the match the turn belongs to.
type PendingMove struct {
	MatchID  string    `json:"matchId"`
	GameID   string    `json:"gameId"`
	Player   Player    `json:"player"`
	Board    Board     `json:"board"`
	Deadline Timestamp `json:"deadline"`
}

type SubmitResult struct {
	Success bool `json:"success"`
	Move    int  `json:"move"`
}
