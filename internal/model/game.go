package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessengine-backend/internal/ws"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // connID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game owns one GameState and is the single writer for it. All access from
// handlers goes through Game so that concurrent requests are serialized.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *GameState
	selection   Selection
	connections *GameConnections
	logger      *zap.Logger
}

// Snapshot is the read-only view handed to clients.
type Snapshot struct {
	ID string `json:"id"`
	GameState
	Selection
	Winner   *Color `json:"winner"`
	Status   string `json:"status"`
	LastMove *Move  `json:"lastMove"`
}

func NewGame(id string, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		ID:          id,
		state:       NewGameState(),
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
}

func (g *Game) snapshot() Snapshot {
	snap := Snapshot{
		ID:        g.ID,
		GameState: *g.state.Clone(),
		Status:    g.state.Status(),
		LastMove:  g.state.LastMove(),
	}
	if g.selection.Active() {
		square := *g.selection.Square
		snap.Selection = Selection{
			Square: &square,
			Moves:  append([]Position{}, g.selection.Moves...),
		}
	} else {
		snap.Selection = Selection{Moves: []Position{}}
	}
	if winner, ok := g.state.Winner(); ok {
		snap.Winner = &winner
	}
	return snap
}

func (g *Game) GetState() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) ValidMoves(p Position) ([]Position, error) {
	if !p.InBounds() {
		return nil, fmt.Errorf("valid moves %v: %w", p, ErrOutOfBounds)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.ValidMoves(p), nil
}

// Click feeds one square into the select-then-move interaction.
func (g *Game) Click(p Position) (Snapshot, error) {
	if !p.InBounds() {
		return Snapshot{}, fmt.Errorf("click %v: %w", p, ErrOutOfBounds)
	}
	g.mu.Lock()
	if g.state.IsGameOver {
		g.mu.Unlock()
		return Snapshot{}, ErrGameOver
	}
	var move *Move
	g.selection, move = g.state.Click(g.selection, p)
	snap := g.snapshot()
	g.mu.Unlock()

	if move != nil {
		g.logMove(*move, snap)
		g.broadcastState(snap)
	}
	return snap, nil
}

// MakeMove checks a move against the side to move and the generated
// destinations before applying it.
func (g *Game) MakeMove(from, to Position) (Snapshot, error) {
	g.mu.Lock()
	if err := g.validateMove(from, to); err != nil {
		g.mu.Unlock()
		return Snapshot{}, fmt.Errorf("move %v-%v: %w", from, to, err)
	}
	move := g.state.ApplyMove(from, to)
	g.selection = Selection{}
	snap := g.snapshot()
	g.mu.Unlock()

	g.logMove(move, snap)
	g.broadcastState(snap)
	return snap, nil
}

func (g *Game) validateMove(from, to Position) error {
	if !from.InBounds() || !to.InBounds() {
		return ErrOutOfBounds
	}
	if g.state.IsGameOver {
		return ErrGameOver
	}
	piece, ok := g.state.Board.At(from)
	if !ok {
		return ErrEmptySelection
	}
	if piece.Color != g.state.CurrentPlayer {
		return ErrNotYourTurn
	}
	if !g.state.IsLegal(from, to) {
		return ErrIllegalMove
	}
	return nil
}

// Undo takes back the last move. ok is false when there was nothing to undo.
func (g *Game) Undo() (Snapshot, bool) {
	g.mu.Lock()
	move, ok := g.state.Undo()
	g.selection = Selection{}
	snap := g.snapshot()
	g.mu.Unlock()

	if ok {
		g.logger.Info("move undone", zap.String("notation", move.Notation))
		g.broadcastState(snap)
	}
	return snap, ok
}

// Reset replaces the game state with a fresh starting position.
func (g *Game) Reset() Snapshot {
	g.mu.Lock()
	g.state = NewGameState()
	g.selection = Selection{}
	snap := g.snapshot()
	g.mu.Unlock()

	g.logger.Info("new game started")
	g.broadcastState(snap)
	return snap
}

func (g *Game) logMove(move Move, snap Snapshot) {
	g.logger.Info("move applied",
		zap.String("notation", move.Notation),
		zap.Int("ply", len(snap.MoveHistory)),
		zap.Bool("game_over", snap.IsGameOver),
	)
}

// RegisterConnection adds a watcher and sends it the current state.
func (g *Game) RegisterConnection(connID string, conn Conn) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		return fmt.Errorf("connection %s already registered", connID)
	}
	g.connections.connections[connID] = conn
	g.logger.Debug("connection registered", zap.String("conn_id", connID))

	return writeState(conn, g.GetState())
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		g.logger.Debug("connection unregistered", zap.String("conn_id", connID))
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// CloseConnections closes and forgets every watcher.
func (g *Game) CloseConnections() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for connID, conn := range g.connections.connections {
		_ = conn.Close()
		delete(g.connections.connections, connID)
	}
}

// broadcastState writes snap to every watcher. Writers are serialized by the
// connections mutex; a failed write drops the connection.
func (g *Game) broadcastState(snap Snapshot) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for connID, conn := range g.connections.connections {
		if err := writeState(conn, snap); err != nil {
			g.logger.Warn("failed to send state, dropping connection",
				zap.String("conn_id", connID),
				zap.Error(err),
			)
			delete(g.connections.connections, connID)
		}
	}
}

func writeState(conn Conn, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}
