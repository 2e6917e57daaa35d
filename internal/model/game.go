package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/calebwray/gambit-backend/internal/engine"
	"github.com/calebwray/gambit-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// GameConnections tracks the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// GameConfig selects the opponent for a new game: an open two-player game,
// or a vs-AI game with the engine on the given color searching to the given
// depth.
type GameConfig struct {
	VsAI    bool        `json:"vsAi"`
	AIColor PlayerColor `json:"aiColor"`
	AIDepth int         `json:"aiDepth"`
}

// DefaultAIDepth is used when a vs-AI game is created without a depth. The
// search cost grows with branching-factor^depth, so callers asking for more
// get exactly what they ask for.
const DefaultAIDepth = 3

// Game sequences turns over one engine board: it validates submitted moves
// against the generated legal set, commits them, answers check and loss
// after every ply, and drives the AI reply in vs-AI games. The mutex gives
// the search exclusive board access for the duration of its make/unmake
// recursion.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	toMove      engine.Side
	turn        int
	ai          *engine.AI
	aiColor     PlayerColor
	resolve     *string
	moveHistory []MoveRecord
	captured    CapturedPieces
	lastMove    *ClientMove
	players     struct {
		White ClientPlayer
		Black ClientPlayer
	}
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

// GameState is the client-facing snapshot broadcast after every change.
type GameState struct {
	Board          [][]*PieceView `json:"board"`
	ToMove         string         `json:"toMove"`
	Turn           int            `json:"turn"`
	Score          int            `json:"score"`
	NumPieces      int            `json:"numPieces"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []MoveRecord   `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *ClientMove    `json:"lastMove"`
	Resolve        *string        `json:"resolve"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

func NewGame(id string, cfg GameConfig) *Game {
	g := &Game{
		ID:          id,
		board:       engine.NewBoard(),
		toMove:      engine.White,
		moveHistory: make([]MoveRecord, 0),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
	}
	if cfg.VsAI {
		depth := cfg.AIDepth
		if depth <= 0 {
			depth = DefaultAIDepth
		}
		color := cfg.AIColor
		if color != PlayerColorWhite && color != PlayerColorBlack {
			color = PlayerColorBlack
		}
		g.ai = engine.NewAI(depth)
		g.aiColor = color
		g.seatPlayer(AIPlayerID, color)
	}
	return g
}

func (g *Game) seatPlayer(playerID string, color PlayerColor) {
	cp := ClientPlayer{ID: playerID, Color: string(color), TimeLeft: 6000}
	if color == PlayerColorWhite {
		g.players.White = cp
	} else {
		g.players.Black = cp
	}
}

// AddPlayer seats the player on the first open color and returns it.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.seatPlayer(playerID, PlayerColorWhite)
		g.maybeOpenWithAIMove()
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.seatPlayer(playerID, PlayerColorBlack)
		g.maybeOpenWithAIMove()
		return PlayerColorBlack, nil
	}
	return "", errors.New("game is full")
}

// maybeOpenWithAIMove lets a white-playing AI open the game as soon as its
// human opponent is seated.
func (g *Game) maybeOpenWithAIMove() {
	if g.ai != nil && len(g.moveHistory) == 0 && g.toMove == g.aiColor.Side() {
		g.playAIMove()
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotState()
}

func (g *Game) snapshotState() GameState {
	state := GameState{
		Board:          boardView(g.board),
		ToMove:         g.toMove.String(),
		Turn:           g.turn,
		Score:          g.board.Score(),
		NumPieces:      g.board.NumPieces(),
		MoveHistory:    append([]MoveRecord(nil), g.moveHistory...),
		CapturedPieces: g.captured,
		LastMove:       g.lastMove,
		Resolve:        g.resolve,
	}
	if !g.board.HasLost(g.toMove) {
		state.IsCheck = g.board.InCheck(g.toMove)
	}
	state.Players.White = g.players.White
	state.Players.Black = g.players.Black
	return state
}

// Finished reports whether the game has resolved.
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve != nil
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) seatOf(side engine.Side) ClientPlayer {
	if side == engine.White {
		return g.players.White
	}
	return g.players.Black
}

// MakeMove validates and commits one human move, then plays the AI reply if
// it is the engine's turn. Rejected moves return an error and leave the
// board untouched; the caller re-prompts.
func (g *Game) MakeMove(playerID string, mv ClientMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return errors.New("game is over")
	}
	if seat := g.seatOf(g.toMove); seat.ID != playerID {
		return errors.New("not your turn")
	}
	if !engine.InBounds(mv.From) || !engine.InBounds(mv.To) {
		return errors.New("move is out of bounds")
	}
	piece := g.board.At(mv.From)
	if piece == nil {
		return errors.New("no piece at origin square")
	}
	if piece.Side != g.toMove {
		return errors.New("cannot move the other player's piece")
	}

	// The move must come from the piece's generated set; the generated
	// record carries the capture and promotion info MakeMove needs.
	var legal *engine.Move
	for _, m := range g.board.MovesFor(piece) {
		if m.From == mv.From && m.To == mv.To {
			m := m
			legal = &m
			break
		}
	}
	if legal == nil {
		return errors.New("move is not legal")
	}

	g.commitPly(legal)

	if g.resolve == nil && g.ai != nil && g.toMove == g.aiColor.Side() {
		g.playAIMove()
	}

	state := g.snapshotState()
	go g.broadcastState(state)
	return nil
}

// playAIMove runs the search for the engine-controlled side and commits the
// result. A null move means the AI has nothing to play; the game resolves
// rather than committing it.
func (g *Game) playAIMove() {
	side := g.aiColor.Side()
	move := g.ai.ChooseMove(g.board, side)
	if move.IsNull() {
		result := fmt.Sprintf("%s has no legal moves", side)
		g.resolve = &result
		return
	}
	log.Printf("game %s: %s plays %s for %.2f", g.ID, side, move.Summary(), move.ScoreChange)
	g.commitPly(&move)
}

// commitPly applies one validated move, records it, and updates turn and
// resolution state.
func (g *Game) commitPly(m *engine.Move) {
	mover := g.toMove

	if mover == engine.White {
		g.whiteClock.Stop()
	} else {
		g.blackClock.Stop()
	}

	rec := MoveRecord{
		Side:    mover.String(),
		From:    m.From,
		To:      m.To,
		Summary: m.Summary(),
	}
	if m.Captured != nil {
		rec.Captured = m.Captured.Label()
		captured := *viewOf(m.Captured)
		if m.Captured.Side == engine.White {
			g.captured.White = append(g.captured.White, captured)
		} else {
			g.captured.Black = append(g.captured.Black, captured)
		}
	}

	g.board.MakeMove(m)

	rec.Promotion = m.Promoted
	rec.ScoreAfter = g.board.Score()
	g.moveHistory = append(g.moveHistory, rec)
	g.lastMove = &ClientMove{From: m.From, To: m.To}

	if g.board.HasLost(mover.Opponent()) {
		result := fmt.Sprintf("%s wins by king capture", mover)
		g.resolve = &result
	}

	g.toMove = mover.Opponent()
	if mover == engine.Black {
		g.turn++
	}

	if g.toMove == engine.White {
		g.whiteClock.Start()
	} else {
		g.blackClock.Start()
	}
	g.players.White.TimeLeft = int(g.whiteClock.TimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.TimeLeft().Milliseconds() / 100)
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	state := g.snapshotState()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the duplicate.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
