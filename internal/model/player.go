package model

import "github.com/calebwray/gambit-backend/internal/engine"

type Player struct {
	ID       string
	Color    PlayerColor
	TimeLeft int
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// AIPlayerID is the reserved player ID occupying the engine-controlled seat
// in a vs-AI game.
const AIPlayerID = "ai"

func (c PlayerColor) Side() engine.Side {
	if c == PlayerColorBlack {
		return engine.Black
	}
	return engine.White
}

func (c PlayerColor) Other() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}
