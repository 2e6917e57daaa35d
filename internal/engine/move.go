package engine

import "fmt"

// Move carries everything needed to make and later unmake one move. Piece and
// Captured are references into the owning Board; a Move is only valid against
// the exact board state it was generated from, and must be unmade in strict
// reverse order of making. ScoreChange is written by the search.
type Move struct {
	From        Square
	Piece       *Piece
	To          Square
	Captured    *Piece
	ScoreChange float64
	Promoted    bool
}

// IsNull reports whether this is the "no move available" sentinel returned by
// the search at depth 0 or when a side has no candidates. Callers must check
// this before committing a search result to the board.
func (m Move) IsNull() bool {
	return m.Piece == nil
}

// Summary renders the move for logs and the console, e.g.
// "W-Pw from (0, 1) to (0, 2)".
func (m Move) Summary() string {
	if m.IsNull() {
		return "no move"
	}
	return fmt.Sprintf("%s from %s to %s", m.Piece.Label(), m.From, m.To)
}
