package service

import (
	"encoding/json"
	"testing"

	"github.com/calebwray/gambit-backend/internal/engine"
	"github.com/calebwray/gambit-backend/internal/model"
)

func TestCreateAndFetchGame(t *testing.T) {
	gm := NewGameManager(nil)

	if err := gm.CreateGame("g1", model.GameConfig{}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := gm.CreateGame("g1", model.GameConfig{}); err == nil {
		t.Fatalf("duplicate game ID should be rejected")
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.ToMove != "white" || state.NumPieces != 32 {
		t.Fatalf("fresh game state looks wrong: toMove=%s pieces=%d", state.ToMove, state.NumPieces)
	}

	if _, err := gm.GetGameState("missing"); err == nil {
		t.Fatalf("unknown game should not be found")
	}
}

func TestManagerForwardsMoves(t *testing.T) {
	gm := NewGameManager(nil)

	if err := gm.CreateGame("g1", model.GameConfig{}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := gm.AddPlayerToGame("g1", "p1"); err != nil {
		t.Fatalf("seat p1: %v", err)
	}
	if _, err := gm.AddPlayerToGame("g1", "p2"); err != nil {
		t.Fatalf("seat p2: %v", err)
	}

	mv := model.ClientMove{
		From: engine.Square{X: 4, Y: 1},
		To:   engine.Square{X: 4, Y: 3},
	}
	if err := gm.MakeMove("g1", "p1", mv); err != nil {
		t.Fatalf("legal move rejected: %v", err)
	}
	if err := gm.MakeMove("missing", "p1", mv); err == nil {
		t.Fatalf("move against an unknown game should fail")
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.MoveHistory) != 1 || state.ToMove != "black" {
		t.Fatalf("move was not committed: %+v", state)
	}
}

func TestMatchmakingNotifiesBothPlayers(t *testing.T) {
	gm := NewGameManager(nil)

	ch1 := make(chan string, 1)
	ch2 := make(chan string, 1)
	if err := gm.RegisterMatchmakingChannel("p1", ch1); err != nil {
		t.Fatalf("register p1: %v", err)
	}
	if err := gm.RegisterMatchmakingChannel("p2", ch2); err != nil {
		t.Fatalf("register p2: %v", err)
	}
	if err := gm.JoinMatchmaking("p1"); err != nil {
		t.Fatalf("queue p1: %v", err)
	}
	if err := gm.JoinMatchmaking("p2"); err != nil {
		t.Fatalf("queue p2: %v", err)
	}

	gm.matchQueuedPlayers()

	var ev1, ev2 model.MatchFoundEvent
	select {
	case payload := <-ch1:
		if err := json.Unmarshal([]byte(payload), &ev1); err != nil {
			t.Fatalf("decode p1 event: %v", err)
		}
	default:
		t.Fatalf("p1 never learned about the match")
	}
	select {
	case payload := <-ch2:
		if err := json.Unmarshal([]byte(payload), &ev2); err != nil {
			t.Fatalf("decode p2 event: %v", err)
		}
	default:
		t.Fatalf("p2 never learned about the match")
	}

	if ev1.GameID == "" || ev1.GameID != ev2.GameID {
		t.Fatalf("players were told different games: %q vs %q", ev1.GameID, ev2.GameID)
	}
	if ev1.Color != model.PlayerColorWhite || ev2.Color != model.PlayerColorBlack {
		t.Fatalf("unexpected colors: %s / %s", ev1.Color, ev2.Color)
	}

	state, err := gm.GetGameState(ev1.GameID)
	if err != nil {
		t.Fatalf("matched game missing: %v", err)
	}
	if state.Players.White.ID != "p1" || state.Players.Black.ID != "p2" {
		t.Fatalf("seats do not match the announced colors: %+v", state.Players)
	}
}

func TestArchiveDisabledIsSafe(t *testing.T) {
	gm := NewGameManager(nil)

	if _, err := gm.ArchivedGame("g1"); err == nil {
		t.Fatalf("archive lookup without a store should fail")
	}
	ids, err := gm.ArchivedGames()
	if err != nil || ids != nil {
		t.Fatalf("archive listing without a store should be empty, got %v (%v)", ids, err)
	}
}
