package engine

import "testing"

// inCheckScan is the generate-and-scan check strategy: enumerate every
// opposing move and look for one landing on the king's square. InCheck uses
// ray-casting instead; the two must agree on every position.
func inCheckScan(b *Board, side Side) bool {
	king := b.King(side)
	for _, p := range b.Pieces(side.Opponent()) {
		for _, m := range b.MovesFor(p) {
			if m.To == king.Square {
				return true
			}
		}
	}
	return false
}

func requireAgreement(t *testing.T, b *Board, name string) {
	t.Helper()
	for _, side := range []Side{White, Black} {
		if b.King(side) == nil {
			continue
		}
		cast := b.InCheck(side)
		scan := inCheckScan(b, side)
		if cast != scan {
			t.Fatalf("%s: strategies disagree for %s: ray-cast %v, scan %v", name, side, cast, scan)
		}
	}
}

func TestRookCheckAlongRank(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(White, King, Square{4, 0})
	b.Place(Black, King, Square{4, 7})
	b.Place(Black, Rook, Square{0, 0})

	if !b.InCheck(White) {
		t.Fatalf("black rook on a clear rank should give check")
	}
	requireAgreement(t, b, "open rank")

	// A friendly piece between rook and king blocks the ray.
	b.Place(White, Bishop, Square{2, 0})
	if b.InCheck(White) {
		t.Fatalf("interposed bishop should block the check")
	}
	requireAgreement(t, b, "blocked rank")
}

func TestCheckStrategiesAgree(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Board)
		want  bool // white in check
	}{
		{
			name: "knight check",
			setup: func(b *Board) {
				b.Place(Black, Knight, Square{5, 2})
			},
			want: true,
		},
		{
			name: "bishop check on diagonal",
			setup: func(b *Board) {
				b.Place(Black, Bishop, Square{7, 3})
			},
			want: true,
		},
		{
			name: "bishop blocked by enemy piece",
			setup: func(b *Board) {
				b.Place(Black, Bishop, Square{7, 3})
				b.Place(Black, Pawn, Square{6, 2})
			},
			want: false,
		},
		{
			name: "queen check on file",
			setup: func(b *Board) {
				b.Place(Black, Queen, Square{4, 6})
			},
			want: true,
		},
		{
			name: "black pawn checks downward",
			setup: func(b *Board) {
				b.Place(Black, Pawn, Square{3, 1})
			},
			want: true,
		},
		{
			name: "black pawn on the same rank does not check",
			setup: func(b *Board) {
				b.Place(Black, Pawn, Square{3, 0})
			},
			want: false,
		},
		{
			name: "distant knight does not check",
			setup: func(b *Board) {
				b.Place(Black, Knight, Square{0, 0})
			},
			want: false,
		},
		{
			name: "rook behind the first blocker does not check",
			setup: func(b *Board) {
				b.Place(Black, Rook, Square{4, 6})
				b.Place(Black, Rook, Square{4, 5})
			},
			want: true, // nearer rook checks; the far one is irrelevant
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmptyBoard()
			b.Place(White, King, Square{4, 0})
			b.Place(Black, King, Square{0, 7})
			tt.setup(b)

			if got := b.InCheck(White); got != tt.want {
				t.Fatalf("InCheck(White) = %v, want %v", got, tt.want)
			}
			requireAgreement(t, b, tt.name)
		})
	}
}

func TestAdjacentKingsCheckEachOther(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(White, King, Square{4, 0})
	b.Place(Black, King, Square{4, 1})

	if !b.InCheck(White) || !b.InCheck(Black) {
		t.Fatalf("adjacent kings attack each other under this rule set")
	}
	requireAgreement(t, b, "adjacent kings")
}

func TestWhitePawnChecksUpward(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(Black, King, Square{4, 4})
	b.Place(White, King, Square{0, 0})
	b.Place(White, Pawn, Square{3, 3})

	if !b.InCheck(Black) {
		t.Fatalf("white pawn should check the black king diagonally forward")
	}
	requireAgreement(t, b, "white pawn check")
}

func TestStartingPositionNotInCheck(t *testing.T) {
	b := NewBoard()
	for _, side := range []Side{White, Black} {
		if b.InCheck(side) {
			t.Fatalf("%s should not start in check", side)
		}
	}
	requireAgreement(t, b, "starting position")
}
