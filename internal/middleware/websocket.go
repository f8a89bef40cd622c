package middleware

import (
	"errors"

	"github.com/benbeisheim/chessengine-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the game exists before allowing the upgrade.
func WebSocketUpgrade(gameService *service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if _, err := gameService.GetGame(gameID); err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		// The connection context is different from the upgrade context, so
		// carry the id across in locals.
		c.Locals("wsGameID", gameID)
		return c.Next()
	}
}
