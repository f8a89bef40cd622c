package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessengine-backend/internal/config"
	"github.com/benbeisheim/chessengine-backend/internal/controller"
	"github.com/benbeisheim/chessengine-backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Initialize services
	gameManager := service.NewGameManager(logger)
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(gameService, cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
