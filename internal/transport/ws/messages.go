package ws

import (
	"time"

	"github.com/goccy/go-json"

	"cipherspry/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgStartRound  MessageType = "start_round"
	MsgNewRound    MessageType = "new_round"
	MsgUpdateGuess MessageType = "update_guess"
	MsgSubmit      MessageType = "submit"
	MsgRequestHint MessageType = "request_hint"
	MsgReveal      MessageType = "reveal"
	MsgReset       MessageType = "reset"
	MsgPing        MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected   MessageType = "connected"
	MsgError       MessageType = "error"
	MsgRoundUpdate MessageType = "round_update"
	MsgHint        MessageType = "hint"
	MsgPong        MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type" validate:"required,oneof=start_round new_round update_guess submit request_hint reveal reset ping"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// StartRoundPayload is the payload for start_round message
type StartRoundPayload struct {
	Level string `json:"level" validate:"required,max=16"`
}

// UpdateGuessPayload is the payload for update_guess message
type UpdateGuessPayload struct {
	Guess string `json:"guess" validate:"max=64"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	ClientID  string           `json:"clientId"`
	SessionID string           `json:"sessionId"`
	State     *domain.Snapshot `json:"state"`
}

// HintPayload is the payload for hint message
type HintPayload struct {
	Text string `json:"text"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
