package controller

import (
	"github.com/benbeisheim/chessengine-backend/internal/config"
	"github.com/benbeisheim/chessengine-backend/internal/middleware"
	"github.com/benbeisheim/chessengine-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// NewApp builds the fiber application with REST and WebSocket routes.
func NewApp(gameService *service.GameService, cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: !cfg.Development,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))

	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Origins:         cfg.AllowedOrigins,
	}))

	// Set up REST routes
	api := app.Group("/api")
	gameController.Register(api.Group("/game"))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}
