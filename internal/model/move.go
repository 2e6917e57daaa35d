package model

import "github.com/calebwray/gambit-backend/internal/engine"

// ClientMove is a move as submitted over the wire: four board-relative
// coordinates. Validation happens in Game.MakeMove.
type ClientMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

// MoveRecord is one committed ply in the game history.
type MoveRecord struct {
	Side       string        `json:"side"`
	From       engine.Square `json:"from"`
	To         engine.Square `json:"to"`
	Summary    string        `json:"summary"`
	Captured   string        `json:"captured,omitempty"`
	Promotion  bool          `json:"promotion"`
	ScoreAfter int           `json:"scoreAfter"`
}

type CapturedPieces struct {
	White []PieceView `json:"white"`
	Black []PieceView `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]PieceView, 0),
		Black: make([]PieceView, 0),
	}
}

// MatchFoundEvent notifies a queued player that a two-player game is ready.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
