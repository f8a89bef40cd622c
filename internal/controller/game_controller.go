package controller

import (
	"errors"

	"github.com/benbeisheim/chessengine-backend/internal/model"
	"github.com/benbeisheim/chessengine-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

type squareRequest struct {
	Square string `json:"square"`
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Delete("/:gameId", gc.DeleteGame)
	router.Get("/:gameId/moves", gc.GetValidMoves)
	router.Post("/:gameId/select", gc.Select)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Post("/:gameId/new", gc.NewGame)
}

// errorStatus maps engine and registry errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrOutOfBounds):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrEmptySelection),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) GetValidMoves(c *fiber.Ctx) error {
	square := c.Query("square")
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), square)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	gameState, err := gc.gameService.Select(c.Params("gameId"), req.Square)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), req.From, req.To)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameState, undone, err := gc.gameService.Undo(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	if !undone {
		c.Set("X-Undo", "empty")
	}
	return c.JSON(gameState)
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	gameState, err := gc.gameService.NewGame(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}
