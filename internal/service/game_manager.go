// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chessengine-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games  map[string]*model.Game
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewGameManager(logger *zap.Logger) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:  make(map[string]*model.Game),
		logger: logger,
	}
}

// NewGameID returns a fresh random identifier.
func NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID, gm.logger)
	gm.games[gameID] = game
	gm.logger.Info("game created", zap.String("game_id", gameID))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// DeleteGame removes the game and closes any connections still watching it.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return ErrGameNotFound
	}
	game.CloseConnections()
	gm.logger.Info("game deleted", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
