package service

import (
	"fmt"

	"github.com/benbeisheim/chessengine-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := NewGameID()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) ValidMoves(gameID, square string) ([]model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return game.ValidMoves(pos)
}

func (gs *GameService) Select(gameID, square string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.Click(pos)
}

func (gs *GameService) HandleMove(gameID, from, to string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	fromPos, err := model.ParsePosition(from)
	if err != nil {
		return model.Snapshot{}, err
	}
	toPos, err := model.ParsePosition(to)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.MakeMove(fromPos, toPos)
}

// Undo takes back the last move. An empty history is not an error: the
// unchanged state is returned with undone set to false.
func (gs *GameService) Undo(gameID string) (snap model.Snapshot, undone bool, err error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	snap, undone = game.Undo()
	return snap, undone, nil
}

func (gs *GameService) NewGame(gameID string) (model.Snapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.Reset(), nil
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}
