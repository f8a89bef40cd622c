package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeNewGame   MessageType = "newGame"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SquarePayload names one square in coordinate form, e.g. "e2".
type SquarePayload struct {
	Square string `json:"square"`
}

// MovePayload carries a move in coordinate form.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ErrorPayload is sent back when a client message cannot be handled.
type ErrorPayload struct {
	Error string `json:"error"`
}
