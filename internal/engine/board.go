package engine

// Board owns the 8x8 grid and every live piece. The grid and the per-side
// piece lists are kept mutually consistent: every listed piece sits at
// grid[sq.Y][sq.X] and every occupied cell has exactly one list entry.
type Board struct {
	grid      [8][8]*Piece
	pieces    [2][]*Piece
	kings     [2]*Piece
	score     int
	numPieces int
}

// NewBoard returns a board with the standard opening setup: White on ranks 0
// and 1, Black on ranks 6 and 7.
func NewBoard() *Board {
	b := &Board{}
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, k := range backRank {
		b.Place(White, k, Square{x, 0})
	}
	for x := 0; x < 8; x++ {
		b.Place(White, Pawn, Square{x, 1})
	}
	for x := 0; x < 8; x++ {
		b.Place(Black, Pawn, Square{x, 6})
	}
	for x, k := range backRank {
		b.Place(Black, k, Square{x, 7})
	}
	return b
}

// NewEmptyBoard returns a board with no pieces, for building custom
// positions with Place.
func NewEmptyBoard() *Board {
	return &Board{}
}

// Place puts a new piece on the board and returns it. The square must be in
// bounds and empty.
func (b *Board) Place(side Side, kind Kind, sq Square) *Piece {
	p := &Piece{Side: side, Kind: kind, Square: sq}
	b.grid[sq.Y][sq.X] = p
	b.pieces[side] = append(b.pieces[side], p)
	if kind == King {
		b.kings[side] = p
	}
	b.score += p.Value()
	b.numPieces++
	return p
}

// InBounds reports whether the square lies on the board. Move generation
// filters out-of-bounds destinations itself; this is the guard for callers
// translating raw coordinates into moves.
func InBounds(sq Square) bool {
	return sq.X >= 0 && sq.X < 8 && sq.Y >= 0 && sq.Y < 8
}

// At returns the piece on the square, or nil if it is empty. The square must
// be in bounds.
func (b *Board) At(sq Square) *Piece {
	return b.grid[sq.Y][sq.X]
}

// Pieces returns the live pieces of a side. The slice is the board's own;
// callers must not mutate it.
func (b *Board) Pieces(side Side) []*Piece {
	return b.pieces[side]
}

// King returns the side's king. After the king has been captured the stale
// reference is still returned; HasLost is the authority on that condition.
func (b *Board) King(side Side) *Piece {
	return b.kings[side]
}

// Score is the running material score, positive favoring White.
func (b *Board) Score() int {
	return b.score
}

// NumPieces is the count of live pieces on the board.
func (b *Board) NumPieces() int {
	return b.numPieces
}

// MakeMove applies the move: clears the origin, places the moving piece on
// the destination, removes any captured piece from its side's list, and
// promotes a pawn reaching its terminal rank to a queen in place. The move is
// marked so UnmakeMove can reverse the promotion exactly.
func (b *Board) MakeMove(m *Move) {
	b.grid[m.From.Y][m.From.X] = nil
	b.grid[m.To.Y][m.To.X] = m.Piece
	m.Piece.Square = m.To

	if m.Captured != nil {
		b.removePiece(m.Captured)
		b.score -= m.Captured.Value()
		b.numPieces--
	}

	if m.Piece.Kind == Pawn {
		if m.Piece.Side == White && m.To.Y == 7 {
			m.Piece.Kind = Queen
			m.Piece.Promoted = true
			b.score += promotionDelta
			m.Promoted = true
		}
		if m.Piece.Side == Black && m.To.Y == 0 {
			m.Piece.Kind = Queen
			m.Piece.Promoted = true
			b.score -= promotionDelta
			m.Promoted = true
		}
	}
}

// UnmakeMove exactly reverses the most recent MakeMove of m. Moves must be
// unmade in reverse order of making; unmaking out of order, or after any
// other mutation, is undefined behavior (not guarded).
func (b *Board) UnmakeMove(m *Move) {
	b.grid[m.From.Y][m.From.X] = m.Piece
	b.grid[m.To.Y][m.To.X] = m.Captured

	if m.Captured != nil {
		b.pieces[m.Captured.Side] = append(b.pieces[m.Captured.Side], m.Captured)
		b.score += m.Captured.Value()
		b.numPieces++
	}

	m.Piece.Square = m.From

	if m.Promoted {
		m.Piece.Kind = Pawn
		m.Piece.Promoted = false
		if m.Piece.Side == White {
			b.score -= promotionDelta
		} else {
			b.score += promotionDelta
		}
		m.Promoted = false
	}
}

func (b *Board) removePiece(p *Piece) {
	list := b.pieces[p.Side]
	for i, q := range list {
		if q == p {
			b.pieces[p.Side] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
