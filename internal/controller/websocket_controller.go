package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/calebwray/gambit-backend/internal/model"
	"github.com/calebwray/gambit-backend/internal/service"
	"github.com/calebwray/gambit-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the message loop for one established WebSocket
// connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				continue
			}

			if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(c, err.Error())
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// HandleMatchmaking queues the player and holds the connection open until
// the pairing loop reports a match, then delivers the matchFound event. The
// channel is buffered so the pairing loop never blocks on a slow client.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	matchChan := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, matchChan); err != nil {
		log.Printf("register matchmaking channel: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}

	// Drain the connection so we notice the client leaving the queue.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case payload, ok := <-matchChan:
		if !ok {
			return
		}
		err := c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send matchFound to %s: %v", playerID, err)
		}
	case <-disconnected:
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var mv model.ClientMove
		if err := json.Unmarshal(msg.Payload, &mv); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, mv)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(errorMsg)
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
