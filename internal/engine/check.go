package engine

var (
	rookRays   = []Square{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays = []Square{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// InCheck reports whether the side's king is attacked. It casts rays and
// offsets outward from the king's square per attacker kind, which gives the
// same answer as generating every opposing move and scanning for a hit on
// the king, without the allocation.
func (b *Board) InCheck(side Side) bool {
	return b.SquareAttacked(b.kings[side].Square, side.Opponent())
}

// SquareAttacked reports whether any piece of the attacking side could move
// onto sq. Each sliding ray stops at the first occupied square; fixed
// offsets probe a single square each.
func (b *Board) SquareAttacked(sq Square, by Side) bool {
	for _, dir := range rookRays {
		if p := b.firstAlong(sq, dir); p != nil && p.Side == by && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
	}
	for _, dir := range bishopRays {
		if p := b.firstAlong(sq, dir); p != nil && p.Side == by && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}
	for _, hop := range knightDirections {
		if p := b.pieceAtOffset(sq, hop[0]); p != nil && p.Side == by && p.Kind == Knight {
			return true
		}
	}
	for _, hop := range kingDirections {
		if p := b.pieceAtOffset(sq, hop[0]); p != nil && p.Side == by && p.Kind == King {
			return true
		}
	}
	// Pawn attacks run mirror-imaged to the attacker's own forward
	// direction: a White pawn attacks sq from one rank below it, a Black
	// pawn from one rank above.
	dy := 1
	if by == White {
		dy = -1
	}
	for _, dx := range []int{-1, 1} {
		if p := b.pieceAtOffset(sq, Square{dx, dy}); p != nil && p.Side == by && p.Kind == Pawn {
			return true
		}
	}
	return false
}

// firstAlong walks from sq in direction dir and returns the first occupant
// found, or nil if the ray runs off the board.
func (b *Board) firstAlong(sq, dir Square) *Piece {
	at := Square{sq.X + dir.X, sq.Y + dir.Y}
	for InBounds(at) {
		if p := b.grid[at.Y][at.X]; p != nil {
			return p
		}
		at = Square{at.X + dir.X, at.Y + dir.Y}
	}
	return nil
}

func (b *Board) pieceAtOffset(sq, off Square) *Piece {
	at := Square{sq.X + off.X, sq.Y + off.Y}
	if !InBounds(at) {
		return nil
	}
	return b.grid[at.Y][at.X]
}

// HasLost reports whether the side's king has been captured. That is the
// only losing condition in this rule set: moves that leave the king in
// check stay legal, so checkmate is realized by the king actually being
// taken on a later ply.
func (b *Board) HasLost(side Side) bool {
	for _, p := range b.pieces[side] {
		if p.Kind == King {
			return false
		}
	}
	return true
}
