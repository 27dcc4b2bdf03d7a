package ws

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"cipherspry/internal/app"
	"cipherspry/internal/domain"
)

type fixedProvider struct{ word domain.Word }

func (p fixedProvider) Fetch(ctx context.Context) (domain.Word, error) {
	return p.word, nil
}

type staticHints struct{}

func (staticHints) Hint(patternID string) string { return "swap the ends" }

type received struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// testConn reads server messages, splitting batched frames
type testConn struct {
	t       *testing.T
	conn    *websocket.Conn
	pending []received
}

func (c *testConn) send(msgType MessageType, payload interface{}) {
	c.t.Helper()

	msg := map[string]interface{}{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("marshal: %v", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func (c *testConn) next() received {
	c.t.Helper()

	for len(c.pending) == 0 {
		c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("read: %v", err)
		}
		for _, line := range bytes.Split(data, []byte{'\n'}) {
			var msg received
			if err := json.Unmarshal(line, &msg); err != nil {
				c.t.Fatalf("decode %q: %v", line, err)
			}
			c.pending = append(c.pending, msg)
		}
	}

	msg := c.pending[0]
	c.pending = c.pending[1:]
	return msg
}

// waitFor skips messages until one of msgType arrives
func (c *testConn) waitFor(msgType MessageType, match func(received) bool) received {
	c.t.Helper()

	for {
		msg := c.next()
		if msg.Type == msgType && (match == nil || match(msg)) {
			return msg
		}
	}
}

func roundUpdate(eventType domain.EventType) func(received) bool {
	return func(msg received) bool {
		var event domain.GameEvent
		return json.Unmarshal(msg.Payload, &event) == nil && event.Type == eventType
	}
}

func newTestHub(t *testing.T) *app.GameHub {
	t.Helper()
	hub := app.NewGameHub(app.HubConfig{
		Provider:     fixedProvider{word: domain.Word{Original: "CRANE", Transformed: "ENARC", PatternID: "first_last_swap"}},
		Hints:        staticHints{},
		TickInterval: time.Hour,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(hub.Close)
	return hub
}

func dial(t *testing.T, hub *app.GameHub, sessionID string) *testConn {
	t.Helper()

	srv := httptest.NewServer(NewHandler(hub, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?sessionId=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &testConn{t: t, conn: conn}
}

func TestHandlerRejectsUnknownSession(t *testing.T) {
	hub := newTestHub(t)
	h := NewHandler(hub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, target := range []string{"/ws", "/ws?sessionId=missing"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code == http.StatusSwitchingProtocols || rec.Code == http.StatusOK {
			t.Errorf("%s: status %d, want an error", target, rec.Code)
		}
	}
}

func TestPlayRoundOverWebSocket(t *testing.T) {
	hub := newTestHub(t)
	session := hub.CreateSession()
	c := dial(t, hub, session.GetID())

	connected := c.waitFor(MsgConnected, nil)
	var payload ConnectedPayload
	if err := json.Unmarshal(connected.Payload, &payload); err != nil {
		t.Fatalf("decode connected: %v", err)
	}
	if payload.SessionID != session.GetID() || payload.State.Screen != domain.ScreenLevelSelect {
		t.Errorf("unexpected connected payload: %+v", payload)
	}

	c.send(MsgStartRound, StartRoundPayload{Level: "hard"})
	c.waitFor(MsgRoundUpdate, roundUpdate(domain.EventRoundStarted))

	c.send(MsgRequestHint, nil)
	hint := c.waitFor(MsgHint, nil)
	var hintPayload HintPayload
	_ = json.Unmarshal(hint.Payload, &hintPayload)
	if hintPayload.Text != "swap the ends" {
		t.Errorf("hint = %q", hintPayload.Text)
	}

	c.send(MsgUpdateGuess, UpdateGuessPayload{Guess: "crane"})
	c.send(MsgSubmit, nil)
	resolved := c.waitFor(MsgRoundUpdate, roundUpdate(domain.EventRoundResolved))

	var event domain.GameEvent
	_ = json.Unmarshal(resolved.Payload, &event)
	if event.Payload.Status != domain.StatusWon || event.Payload.Score != 1 {
		t.Errorf("unexpected resolution: %+v", event.Payload)
	}
}

func TestWebSocketErrors(t *testing.T) {
	hub := newTestHub(t)
	session := hub.CreateSession()
	c := dial(t, hub, session.GetID())
	c.waitFor(MsgConnected, nil)

	tests := []struct {
		name    string
		msgType MessageType
		payload interface{}
		code    string
	}{
		{"unknown type", MessageType("dance"), nil, app.ErrCodeInvalidMessage},
		{"missing payload", MsgStartRound, nil, app.ErrCodeInvalidMessage},
		{"bad level", MsgStartRound, StartRoundPayload{Level: "extreme"}, app.ErrCodeInvalidLevel},
		{"no level", MsgNewRound, nil, app.ErrCodeNoLevel},
		{"submit at level select", MsgSubmit, nil, app.ErrCodeInvalidAction},
	}

	for _, tt := range tests {
		c.send(tt.msgType, tt.payload)
		msg := c.waitFor(MsgError, nil)

		var errPayload ErrorPayload
		_ = json.Unmarshal(msg.Payload, &errPayload)
		if errPayload.Code != tt.code {
			t.Errorf("%s: code = %s, want %s", tt.name, errPayload.Code, tt.code)
		}
	}

	c.send(MsgPing, nil)
	c.waitFor(MsgPong, nil)
}
