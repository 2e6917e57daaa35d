package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/calebwray/gambit-backend/internal/model"
	"github.com/calebwray/gambit-backend/internal/storage"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager owns the live game registry, the matchmaking queue, and the
// archive hook that writes finished games to storage.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	archive          *storage.Store // nil disables archiving
	mu               sync.RWMutex
}

// NewGameManager starts a manager; archive may be nil.
func NewGameManager(archive *storage.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		archive:          archive,
	}
	go gm.processMatchmaking()
	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Replace any stale channel from a previous attempt.
	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs queued players into fresh two-player games.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchQueuedPlayers()
	}
}

func (gm *GameManager) matchQueuedPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for gm.queue.Size() >= 2 {
		player1, player2 := gm.queue.GetNextPair()

		gameID := uuid.New().String()
		game := model.NewGame(gameID, model.GameConfig{})

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", player1.ID, err)
			continue
		}
		if _, err := game.AddPlayer(player2.ID); err != nil {
			log.Printf("matchmaking: seat %s: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color.Other()})
	}
}

func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: could not notify player %s", playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string, cfg model.GameConfig) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = model.NewGame(gameID, cfg)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove forwards a move to its game and archives the game if the move
// ended it.
func (gm *GameManager) MakeMove(gameID string, playerID string, mv model.ClientMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, mv); err != nil {
		return err
	}
	if game.Finished() {
		gm.archiveGame(game)
	}
	return nil
}

func (gm *GameManager) archiveGame(game *model.Game) {
	if gm.archive == nil {
		return
	}
	state := game.GetState()
	if state.Resolve == nil {
		return
	}
	rec := &storage.GameRecord{
		ID:         game.ID,
		White:      state.Players.White.ID,
		Black:      state.Players.Black.ID,
		Resolution: *state.Resolve,
		FinalScore: state.Score,
		Turns:      state.Turn,
		FinishedAt: time.Now().UTC(),
	}
	for _, m := range state.MoveHistory {
		rec.Moves = append(rec.Moves, m.Summary)
	}
	if err := gm.archive.SaveGame(rec); err != nil {
		log.Printf("archive game %s: %v", game.ID, err)
	}
}

// ArchivedGame fetches a finished game from the archive.
func (gm *GameManager) ArchivedGame(gameID string) (*storage.GameRecord, error) {
	if gm.archive == nil {
		return nil, storage.ErrNotFound
	}
	return gm.archive.LoadGame(gameID)
}

// ArchivedGames lists the IDs of every archived game.
func (gm *GameManager) ArchivedGames() ([]string, error) {
	if gm.archive == nil {
		return nil, nil
	}
	return gm.archive.ListGames()
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
