package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"cipherspry/internal/app"
	"cipherspry/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	clientID string
	validate *validator.Validate
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, clientID string, validate *validator.Validate, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		clientID: clientID,
		validate: validate,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetClientID returns the ID of this connection
func (c *Client) GetClientID() string {
	return c.clientID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	if event, ok := message.(*domain.GameEvent); ok {
		message = NewServerMessage(MsgRoundUpdate, event)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "clientID", c.clientID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.clientID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, "Invalid message format")
		return
	}
	if err := c.validate.Struct(&msg); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, "Unknown message type")
		return
	}

	switch msg.Type {
	case MsgStartRound:
		c.handleStartRound(msg.Payload)
	case MsgNewRound:
		c.reportError(c.session.NewRound())
	case MsgUpdateGuess:
		c.handleUpdateGuess(msg.Payload)
	case MsgSubmit:
		_, err := c.session.Submit()
		c.reportError(err)
	case MsgRequestHint:
		c.handleRequestHint()
	case MsgReveal:
		c.reportError(c.session.Reveal())
	case MsgReset:
		c.session.ResetToLevelSelect()
	case MsgPing:
		c.sendPong()
	}
}

// handleStartRound handles a start_round message
func (c *Client) handleStartRound(raw json.RawMessage) {
	var payload StartRoundPayload
	if !c.decodePayload(raw, &payload) {
		return
	}

	level, err := domain.ParseLevel(payload.Level)
	if err != nil {
		c.reportError(err)
		return
	}

	c.reportError(c.session.StartRound(level))
}

// handleUpdateGuess handles an update_guess message
func (c *Client) handleUpdateGuess(raw json.RawMessage) {
	var payload UpdateGuessPayload
	if !c.decodePayload(raw, &payload) {
		return
	}

	c.reportError(c.session.UpdateGuess(payload.Guess))
}

// handleRequestHint handles a request_hint message
func (c *Client) handleRequestHint() {
	text, err := c.session.RequestHint()
	if err != nil {
		c.reportError(err)
		return
	}

	c.Send(NewServerMessage(MsgHint, &HintPayload{Text: text}))
}

// decodePayload unmarshals and validates a message payload
func (c *Client) decodePayload(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 {
		c.sendError(app.ErrCodeInvalidMessage, "Payload is required")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, "Invalid payload")
		return false
	}
	if err := c.validate.Struct(v); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, err.Error())
		return false
	}
	return true
}

// reportError sends err to the client, if any
func (c *Client) reportError(err error) {
	if err == nil {
		return
	}

	code, message := app.ClassifyError(err)
	if !app.IsValidationError(err) {
		c.logger.Error("session operation failed", "clientID", c.clientID, "error", err)
	}
	c.sendError(code, message)
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		ClientID:  c.clientID,
		SessionID: c.session.GetID(),
		State:     c.session.Snapshot(),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	c.Send(NewServerMessage(MsgError, payload))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}
