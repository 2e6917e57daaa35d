package controller

import (
	"errors"

	"github.com/calebwray/gambit-backend/internal/model"
	"github.com/calebwray/gambit-backend/internal/service"
	"github.com/calebwray/gambit-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// CreateGame creates either an open two-player game or a vs-AI game,
// depending on the posted config.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var cfg model.GameConfig
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&cfg); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game config",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if err.Error() == "game not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch game state",
		})
	}
	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to join matchmaking",
		})
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) GetArchivedGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	rec, err := gc.gameService.GetArchivedGame(gameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "archived game not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch archived game",
		})
	}
	return c.JSON(rec)
}

func (gc *GameController) ListArchivedGames(c *fiber.Ctx) error {
	ids, err := gc.gameService.ListArchivedGames()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list archived games",
		})
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{
		"games": ids,
	})
}
