package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"cipherspry/internal/app"
	"cipherspry/internal/config"
	"cipherspry/internal/domain"
	"cipherspry/internal/hints"
)

type fixedProvider struct{ word domain.Word }

func (p fixedProvider) Fetch(ctx context.Context) (domain.Word, error) {
	return p.word, nil
}

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := hints.NewTable()
	hub := app.NewGameHub(app.HubConfig{
		Provider:     fixedProvider{word: domain.Word{Original: "CRANE", Transformed: "ENARC", PatternID: "first_last_swap"}},
		Hints:        table,
		TickInterval: time.Hour,
	}, logger)
	t.Cleanup(hub.Close)

	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Env: "test"}}
	return NewServer(cfg, hub, table, logger)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) (int, testResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp testResponse
	if rec.Code != http.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func decodeData(t *testing.T, resp testResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

// createActiveSession creates a session and waits for its first round to go ACTIVE
func createActiveSession(t *testing.T, s *Server, level string) string {
	t.Helper()

	code, resp := doRequest(t, s, http.MethodPost, "/api/sessions", nil)
	if code != http.StatusCreated {
		t.Fatalf("create session: status %d", code)
	}
	var created CreateSessionResponse
	decodeData(t, resp, &created)

	base := "/api/sessions/" + created.SessionID
	if code, resp := doRequest(t, s, http.MethodPost, base+"/level", StartRoundRequest{Level: level}); code != http.StatusAccepted {
		t.Fatalf("start round: status %d error %+v", code, resp.Error)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, resp := doRequest(t, s, http.MethodGet, base, nil)
		var snap domain.Snapshot
		decodeData(t, resp, &snap)
		if snap.Status == domain.StatusActive {
			return created.SessionID
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("round never became active")
	return ""
}

func TestHealthAndReference(t *testing.T) {
	s := newTestServer(t)

	code, resp := doRequest(t, s, http.MethodGet, "/api/health", nil)
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("health: status %d", code)
	}

	_, resp = doRequest(t, s, http.MethodGet, "/api/alphabet", nil)
	var alphabet []domain.AlphabetEntry
	decodeData(t, resp, &alphabet)
	if len(alphabet) != 26 || alphabet[25].Letter != "Z" || alphabet[25].Value != 25 {
		t.Errorf("unexpected alphabet: %+v", alphabet)
	}

	_, resp = doRequest(t, s, http.MethodGet, "/api/hints/patterns", nil)
	var patterns []string
	decodeData(t, resp, &patterns)
	if len(patterns) != 24 {
		t.Errorf("len(patterns) = %d, want 24", len(patterns))
	}
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t)

	code, resp := doRequest(t, s, http.MethodPost, "/api/sessions", nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}

	var created CreateSessionResponse
	decodeData(t, resp, &created)
	if created.SessionID == "" || created.State.Screen != domain.ScreenLevelSelect {
		t.Errorf("unexpected create response: %+v", created)
	}

	_, resp = doRequest(t, s, http.MethodGet, "/api/stats", nil)
	var stats StatsResponse
	decodeData(t, resp, &stats)
	if stats.ActiveSessions != 1 {
		t.Errorf("activeSessions = %d, want 1", stats.ActiveSessions)
	}
}

func TestRoundWin(t *testing.T) {
	s := newTestServer(t)
	id := createActiveSession(t, s, "hard")
	base := "/api/sessions/" + id

	code, resp := doRequest(t, s, http.MethodPut, base+"/guess", UpdateGuessRequest{Guess: "crane"})
	if code != http.StatusOK {
		t.Fatalf("guess: status %d error %+v", code, resp.Error)
	}

	code, resp = doRequest(t, s, http.MethodPost, base+"/submit", nil)
	if code != http.StatusOK {
		t.Fatalf("submit: status %d error %+v", code, resp.Error)
	}

	var result SubmitResponse
	decodeData(t, resp, &result)
	if result.Status != domain.StatusWon || result.State.Score != 1 || result.State.TargetWord != "CRANE" {
		t.Errorf("unexpected submit result: status=%s state=%+v", result.Status, result.State)
	}

	// The resolved round rejects further input
	code, resp = doRequest(t, s, http.MethodPost, base+"/submit", nil)
	if code != http.StatusConflict || resp.Error.Code != app.ErrCodeInvalidAction {
		t.Errorf("second submit: status %d error %+v", code, resp.Error)
	}
}

func TestHintAndReveal(t *testing.T) {
	s := newTestServer(t)
	id := createActiveSession(t, s, "MEDIUM")
	base := "/api/sessions/" + id

	code, resp := doRequest(t, s, http.MethodPost, base+"/hint", nil)
	if code != http.StatusOK {
		t.Fatalf("hint: status %d", code)
	}
	var hint HintResponse
	decodeData(t, resp, &hint)
	if hint.Hint != "Simple but effective: the first and last letters played musical chairs!" || !hint.State.HintUsed {
		t.Errorf("unexpected hint response: %+v", hint)
	}

	code, resp = doRequest(t, s, http.MethodPost, base+"/reveal", nil)
	if code != http.StatusOK {
		t.Fatalf("reveal: status %d", code)
	}
	var snap domain.Snapshot
	decodeData(t, resp, &snap)
	if !snap.Revealed || snap.TargetWord != "CRANE" || snap.Score != 0 {
		t.Errorf("unexpected reveal snapshot: %+v", snap)
	}
}

func TestInputErrors(t *testing.T) {
	s := newTestServer(t)
	id := createActiveSession(t, s, "easy")
	base := "/api/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"short guess submitted", http.MethodPost, base + "/submit", nil, http.StatusBadRequest, app.ErrCodeGuessLength},
		{"non letters", http.MethodPut, base + "/guess", UpdateGuessRequest{Guess: "cr4"}, http.StatusBadRequest, app.ErrCodeInvalidGuess},
		{"unknown level", http.MethodPost, base + "/level", StartRoundRequest{Level: "extreme"}, http.StatusBadRequest, app.ErrCodeInvalidLevel},
		{"missing level", http.MethodPost, base + "/level", map[string]string{}, http.StatusBadRequest, app.ErrCodeInvalidMessage},
		{"unknown session", http.MethodGet, "/api/sessions/nope", nil, http.StatusNotFound, app.ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doRequest(t, s, tt.method, tt.path, tt.body)
			if code != tt.status {
				t.Errorf("status = %d, want %d", code, tt.status)
			}
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.code)
			}
		})
	}

	_, resp := doRequest(t, s, http.MethodPost, base+"/submit", nil)
	if resp.Error.Message != app.MessageEnterFiveLetters {
		t.Errorf("message = %q, want %q", resp.Error.Message, app.MessageEnterFiveLetters)
	}
}

func TestResetAndNewRound(t *testing.T) {
	s := newTestServer(t)
	id := createActiveSession(t, s, "hard")
	base := "/api/sessions/" + id

	code, resp := doRequest(t, s, http.MethodPost, base+"/reset", nil)
	if code != http.StatusOK {
		t.Fatalf("reset: status %d", code)
	}
	var snap domain.Snapshot
	decodeData(t, resp, &snap)
	if snap.Screen != domain.ScreenLevelSelect {
		t.Errorf("screen = %s, want LEVEL_SELECT", snap.Screen)
	}

	code, resp = doRequest(t, s, http.MethodPost, base+"/rounds", nil)
	if code != http.StatusConflict || resp.Error.Code != app.ErrCodeNoLevel {
		t.Errorf("new round without level: status %d error %+v", code, resp.Error)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t)

	_, resp := doRequest(t, s, http.MethodPost, "/api/sessions", nil)
	var created CreateSessionResponse
	decodeData(t, resp, &created)

	if code, _ := doRequest(t, s, http.MethodDelete, "/api/sessions/"+created.SessionID, nil); code != http.StatusNoContent {
		t.Fatalf("delete: status %d, want 204", code)
	}
	if code, _ := doRequest(t, s, http.MethodGet, "/api/sessions/"+created.SessionID, nil); code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
