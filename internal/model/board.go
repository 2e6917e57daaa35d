package model

import "github.com/calebwray/gambit-backend/internal/engine"

// PieceView is the client-facing shape of one piece.
type PieceView struct {
	Type     string        `json:"type"`
	Color    string        `json:"color"`
	Position engine.Square `json:"position"`
	Promoted bool          `json:"promoted"`
	Label    string        `json:"label"`
}

func viewOf(p *engine.Piece) *PieceView {
	return &PieceView{
		Type:     p.Kind.String(),
		Color:    p.Side.String(),
		Position: p.Square,
		Promoted: p.Promoted,
		Label:    p.Label(),
	}
}

// boardView flattens the engine grid into the 8x8 array of nullable pieces
// clients render, rank 0 first.
func boardView(b *engine.Board) [][]*PieceView {
	view := make([][]*PieceView, 8)
	for y := 0; y < 8; y++ {
		view[y] = make([]*PieceView, 8)
		for x := 0; x < 8; x++ {
			if p := b.At(engine.Square{X: x, Y: y}); p != nil {
				view[y][x] = viewOf(p)
			}
		}
	}
	return view
}
