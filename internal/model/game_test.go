package model

import (
	"testing"

	"github.com/calebwray/gambit-backend/internal/engine"
)

func sq(x, y int) engine.Square {
	return engine.Square{X: x, Y: y}
}

func newTwoPlayerGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test", GameConfig{})
	if _, err := g.AddPlayer("p1"); err != nil {
		t.Fatalf("seat p1: %v", err)
	}
	if _, err := g.AddPlayer("p2"); err != nil {
		t.Fatalf("seat p2: %v", err)
	}
	return g
}

func TestAddPlayerAssignsColors(t *testing.T) {
	g := NewGame("test", GameConfig{})
	c1, err := g.AddPlayer("p1")
	if err != nil || c1 != PlayerColorWhite {
		t.Fatalf("first player should get white, got %q (%v)", c1, err)
	}
	c2, err := g.AddPlayer("p2")
	if err != nil || c2 != PlayerColorBlack {
		t.Fatalf("second player should get black, got %q (%v)", c2, err)
	}
	if _, err := g.AddPlayer("p3"); err == nil {
		t.Fatalf("third player should be rejected")
	}
}

func TestRejectedMoves(t *testing.T) {
	g := newTwoPlayerGame(t)

	tests := []struct {
		name     string
		playerID string
		move     ClientMove
	}{
		{"not your turn", "p2", ClientMove{From: sq(4, 6), To: sq(4, 4)}},
		{"out of bounds", "p1", ClientMove{From: sq(4, 1), To: sq(4, 8)}},
		{"empty origin", "p1", ClientMove{From: sq(4, 3), To: sq(4, 4)}},
		{"other player's piece", "p1", ClientMove{From: sq(4, 6), To: sq(4, 4)}},
		{"not in legal set", "p1", ClientMove{From: sq(4, 1), To: sq(4, 4)}},
		{"blocked destination", "p1", ClientMove{From: sq(0, 0), To: sq(0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.MakeMove(tt.playerID, tt.move); err == nil {
				t.Fatalf("move should have been rejected")
			}
		})
	}

	if got := g.GetState(); len(got.MoveHistory) != 0 || got.ToMove != "white" {
		t.Fatalf("rejected moves must not change the game")
	}
}

func TestCommittedMoveAlternatesTurn(t *testing.T) {
	g := newTwoPlayerGame(t)

	if err := g.MakeMove("p1", ClientMove{From: sq(4, 1), To: sq(4, 3)}); err != nil {
		t.Fatalf("legal move rejected: %v", err)
	}
	state := g.GetState()
	if state.ToMove != "black" {
		t.Fatalf("black should be on the move, got %s", state.ToMove)
	}
	if len(state.MoveHistory) != 1 {
		t.Fatalf("expected one recorded ply, got %d", len(state.MoveHistory))
	}
	if state.Turn != 0 {
		t.Fatalf("turn counter increments after black's ply, got %d", state.Turn)
	}

	if err := g.MakeMove("p2", ClientMove{From: sq(3, 6), To: sq(3, 4)}); err != nil {
		t.Fatalf("legal reply rejected: %v", err)
	}
	if got := g.GetState(); got.Turn != 1 {
		t.Fatalf("turn counter should be 1 after both plies, got %d", got.Turn)
	}
}

func TestCaptureIsRecorded(t *testing.T) {
	g := newTwoPlayerGame(t)

	script := []struct {
		playerID string
		move     ClientMove
	}{
		{"p1", ClientMove{From: sq(4, 1), To: sq(4, 3)}},
		{"p2", ClientMove{From: sq(3, 6), To: sq(3, 4)}},
		{"p1", ClientMove{From: sq(4, 3), To: sq(3, 4)}}, // pawn takes pawn
	}
	for _, step := range script {
		if err := g.MakeMove(step.playerID, step.move); err != nil {
			t.Fatalf("move %v rejected: %v", step.move, err)
		}
	}

	state := g.GetState()
	if state.Score != 2 {
		t.Fatalf("score should favor white by one pawn, got %d", state.Score)
	}
	if len(state.CapturedPieces.Black) != 1 || state.CapturedPieces.Black[0].Type != "pawn" {
		t.Fatalf("captured black pawn not recorded: %+v", state.CapturedPieces)
	}
	if rec := state.MoveHistory[2]; rec.Captured != "B-Pw" {
		t.Fatalf("capture missing from move record: %+v", rec)
	}
}

func TestGameResolvesOnKingCapture(t *testing.T) {
	g := newTwoPlayerGame(t)

	// No check-legality filtering in this rule set, so the white queen
	// can walk in and take the king directly.
	script := []struct {
		playerID string
		move     ClientMove
	}{
		{"p1", ClientMove{From: sq(4, 1), To: sq(4, 3)}},
		{"p2", ClientMove{From: sq(5, 6), To: sq(5, 4)}},
		{"p1", ClientMove{From: sq(3, 0), To: sq(7, 4)}},
		{"p2", ClientMove{From: sq(0, 6), To: sq(0, 5)}},
		{"p1", ClientMove{From: sq(7, 4), To: sq(4, 7)}}, // queen takes king
	}
	for _, step := range script {
		if err := g.MakeMove(step.playerID, step.move); err != nil {
			t.Fatalf("move %v rejected: %v", step.move, err)
		}
	}

	if !g.Finished() {
		t.Fatalf("game should be over after the king capture")
	}
	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "white wins by king capture" {
		t.Fatalf("unexpected resolution: %v", state.Resolve)
	}
	if err := g.MakeMove("p2", ClientMove{From: sq(3, 6), To: sq(3, 5)}); err == nil {
		t.Fatalf("moves after the game is over must be rejected")
	}
}

func TestAIRepliesToHumanMove(t *testing.T) {
	g := NewGame("test", GameConfig{VsAI: true, AIColor: PlayerColorBlack, AIDepth: 1})
	if _, err := g.AddPlayer("human"); err != nil {
		t.Fatalf("seat human: %v", err)
	}

	if err := g.MakeMove("human", ClientMove{From: sq(4, 1), To: sq(4, 3)}); err != nil {
		t.Fatalf("human move rejected: %v", err)
	}

	state := g.GetState()
	if len(state.MoveHistory) != 2 {
		t.Fatalf("expected human ply plus AI reply, got %d plies", len(state.MoveHistory))
	}
	if state.MoveHistory[1].Side != "black" {
		t.Fatalf("AI reply should be black's, got %+v", state.MoveHistory[1])
	}
	if state.ToMove != "white" {
		t.Fatalf("white should be back on the move, got %s", state.ToMove)
	}
}

func TestAIOpensWhenPlayingWhite(t *testing.T) {
	g := NewGame("test", GameConfig{VsAI: true, AIColor: PlayerColorWhite, AIDepth: 1})
	color, err := g.AddPlayer("human")
	if err != nil {
		t.Fatalf("seat human: %v", err)
	}
	if color != PlayerColorBlack {
		t.Fatalf("human should be seated black, got %q", color)
	}

	state := g.GetState()
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Side != "white" {
		t.Fatalf("white AI should open the game, history %+v", state.MoveHistory)
	}
	if state.ToMove != "black" {
		t.Fatalf("human should be on the move after the AI opening")
	}
}
