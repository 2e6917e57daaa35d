package engine

// MovesFor enumerates every move the piece can make on the current board, in
// deterministic order: directions in the fixed per-kind order, vectors
// nearest first. Walking a direction stops at the board edge, at a friendly
// piece, at a failed pawn predicate, or after emitting a capture.
//
// Moves that leave the mover's own king in check are not filtered out; the
// game is decided by actual king capture (see HasLost).
func (b *Board) MovesFor(p *Piece) []Move {
	var moves []Move
	for _, direction := range directionsFor(p) {
		for _, vec := range direction {
			dest := Square{p.Square.X + vec.X, p.Square.Y + vec.Y}
			if !InBounds(dest) {
				break
			}
			occupant := b.grid[dest.Y][dest.X]
			if occupant != nil && occupant.Side == p.Side {
				break
			}
			if p.Kind == Pawn && !pawnStepAllowed(vec, p, occupant) {
				break
			}
			moves = append(moves, Move{From: p.Square, Piece: p, To: dest, Captured: occupant})
			if occupant != nil {
				break
			}
		}
	}
	return moves
}

// pawnStepAllowed is the pawn's validity predicate: straight steps need an
// empty destination, diagonal steps need an occupied one, and the double
// step is allowed only from the starting rank. The double step deliberately
// does not verify the intervening square is empty; that is a known
// simplification of this rule set, kept as-is.
func pawnStepAllowed(vec Square, p *Piece, occupant *Piece) bool {
	if vec.X == 0 && occupant != nil {
		return false
	}
	if vec.X != 0 && occupant == nil {
		return false
	}
	if vec.Y == 2 && p.Square.Y != 1 {
		return false
	}
	if vec.Y == -2 && p.Square.Y != 6 {
		return false
	}
	return true
}

// Candidates collects every move available to a side, piece by piece in
// collection order.
func (b *Board) Candidates(side Side) []Move {
	var moves []Move
	for _, p := range b.pieces[side] {
		moves = append(moves, b.MovesFor(p)...)
	}
	return moves
}
