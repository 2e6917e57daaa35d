// Package engine implements the chess core: board state, per-piece move
// generation, reversible make/unmake mutation, check and loss detection, and
// a fixed-depth backtracking search. The package is single-threaded; a Board
// must not be shared between goroutines without external locking.
package engine

import "fmt"

type Side int

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Material worth per kind. Other components depend on these exact magnitudes:
// search tie-breaking compares summed values and the promotion delta is
// Queen-Pawn = 16.
var kindValues = [...]int{
	Pawn:   2,
	Knight: 6,
	Bishop: 6,
	Rook:   10,
	Queen:  18,
	King:   200,
}

const promotionDelta = 16 // queen value minus pawn value

var kindLabels = [...]string{
	Pawn:   "Pw",
	Knight: "Kt",
	Bishop: "Bs",
	Rook:   "Rk",
	Queen:  "Qn",
	King:   "Kg",
}

// Square is a board coordinate: X is the file, Y the rank, each in [0,7].
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (sq Square) String() string {
	return fmt.Sprintf("(%d, %d)", sq.X, sq.Y)
}

// Piece is a stable identity owned by a Board. Promotion mutates Kind in
// place rather than allocating a new piece, so Move references stay valid
// across make/unmake.
type Piece struct {
	Side     Side
	Kind     Kind
	Square   Square
	Promoted bool
}

// Value returns the signed material worth: positive for White, negative for
// Black.
func (p *Piece) Value() int {
	v := kindValues[p.Kind]
	if p.Side == Black {
		return -v
	}
	return v
}

// Label returns the short board label, e.g. "W-Pw" or "B-Qn".
func (p *Piece) Label() string {
	if p.Side == White {
		return "W-" + kindLabels[p.Kind]
	}
	return "B-" + kindLabels[p.Kind]
}

// Direction tables. Each direction is an ordered list of relative vectors,
// nearest first; generation along a direction stops at the first obstruction.
// Sliding pieces get rays of length 7, knights and kings single-vector hops,
// pawns their three per-side templates (capture-left, forward single+double,
// capture-right).
var (
	rookDirections   [][]Square
	bishopDirections [][]Square
	queenDirections  [][]Square
	knightDirections = [][]Square{
		{{-2, -1}}, {{-2, 1}}, {{2, -1}}, {{2, 1}},
		{{-1, -2}}, {{-1, 2}}, {{1, -2}}, {{1, 2}},
	}
	kingDirections = [][]Square{
		{{1, 1}}, {{1, 0}}, {{1, -1}}, {{0, -1}},
		{{-1, -1}}, {{-1, 0}}, {{-1, 1}}, {{0, 1}},
	}
	whitePawnDirections = [][]Square{
		{{-1, 1}},
		{{0, 1}, {0, 2}},
		{{1, 1}},
	}
	blackPawnDirections = [][]Square{
		{{-1, -1}},
		{{0, -1}, {0, -2}},
		{{1, -1}},
	}
)

func init() {
	ray := func(dx, dy int) []Square {
		r := make([]Square, 0, 7)
		for i := 1; i < 8; i++ {
			r = append(r, Square{dx * i, dy * i})
		}
		return r
	}
	rookDirections = [][]Square{ray(1, 0), ray(-1, 0), ray(0, 1), ray(0, -1)}
	bishopDirections = [][]Square{ray(1, 1), ray(1, -1), ray(-1, 1), ray(-1, -1)}
	queenDirections = append(append([][]Square{}, rookDirections...), bishopDirections...)
}

// directionsFor returns the movement template for a piece, in the fixed
// per-kind order. The returned slices are shared and must not be mutated.
func directionsFor(p *Piece) [][]Square {
	switch p.Kind {
	case Rook:
		return rookDirections
	case Knight:
		return knightDirections
	case Bishop:
		return bishopDirections
	case Queen:
		return queenDirections
	case King:
		return kingDirections
	case Pawn:
		if p.Side == White {
			return whitePawnDirections
		}
		return blackPawnDirections
	}
	return nil
}
