package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessengine-backend/internal/model"
	"github.com/benbeisheim/chessengine-backend/internal/service"
	"github.com/benbeisheim/chessengine-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// lockedConn serializes writes to a websocket connection, which does not
// allow concurrent writers. Game broadcasts and direct replies share it.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	return lc.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	if gameID == "" {
		gameID = c.Params("gameId")
	}
	connID := uuid.New().String()
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("conn_id", connID))

	out := &lockedConn{conn: c}
	if err := wsc.gameService.RegisterConnection(gameID, connID, out); err != nil {
		logger.Warn("failed to register connection", zap.Error(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read loop finished", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("parse error", zap.Error(err))
			wsc.sendError(out, fmt.Errorf("parse message: %w", err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			logger.Debug("handle error", zap.String("type", string(msg.Type)), zap.Error(err))
			wsc.sendError(out, err)
			continue
		}
		if reply != nil {
			wsc.sendState(out, *reply)
		}
	}
}

// handleMessage applies one client message. Mutations reach every watcher
// through the game's broadcast; the returned snapshot, if any, is a direct
// reply for the sender only.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*model.Snapshot, error) {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		snap, err := wsc.gameService.Select(gameID, payload.Square)
		if err != nil {
			return nil, err
		}
		return &snap, nil

	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandleMove(gameID, payload.From, payload.To)
		return nil, err

	case ws.MessageTypeUndo:
		snap, undone, err := wsc.gameService.Undo(gameID)
		if err != nil || undone {
			return nil, err
		}
		// nothing to undo and so no broadcast went out
		return &snap, nil

	case ws.MessageTypeNewGame:
		_, err := wsc.gameService.NewGame(gameID)
		return nil, err

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendState(c model.Conn, snap model.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		wsc.logger.Error("failed to marshal state", zap.Error(err))
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c model.Conn, err error) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
