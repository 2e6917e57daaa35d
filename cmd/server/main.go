package main

import (
	"flag"
	"log"

	"github.com/calebwray/gambit-backend/internal/controller"
	"github.com/calebwray/gambit-backend/internal/middleware"
	"github.com/calebwray/gambit-backend/internal/service"
	"github.com/calebwray/gambit-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	origin := flag.String("origin", "http://localhost:5173", "allowed client origin")
	dataDir := flag.String("data", "data", "archive directory (empty to disable archiving)")
	flag.Parse()

	var archive *storage.Store
	if *dataDir != "" {
		var err error
		archive, err = storage.Open(*dataDir)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer archive.Close()
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Use("/ws/matchmaking", middleware.MatchmakingUpgrade())
	app.Get("/ws/matchmaking", websocket.New(func(c *websocket.Conn) {
		wsController.HandleMatchmaking(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))
	app.Use("/ws/game/:gameId", middleware.WebSocketUpgrade())
	app.Get("/ws/game/:gameId", websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/archive", gameController.ListArchivedGames)
	gameRoutes.Get("/archive/:gameId", gameController.GetArchivedGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)

	log.Fatal(app.Listen(*addr))
}
