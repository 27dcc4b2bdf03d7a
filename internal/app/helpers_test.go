package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cipherspry/internal/domain"
	"cipherspry/internal/wordsource"
)

var crane = domain.Word{Original: "CRANE", Transformed: "XIZMV", PatternID: "reverse_alphabet_substitution"}

type testHints struct{}

func (testHints) Hint(patternID string) string { return "hint for " + patternID }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pendingFetch is one blocked provider call waiting for its reply
type pendingFetch struct {
	ctx   context.Context
	reply chan fetchReply
}

type fetchReply struct {
	word domain.Word
	err  error
}

// scriptedProvider blocks every Fetch until the test answers it
type scriptedProvider struct {
	calls chan *pendingFetch
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{calls: make(chan *pendingFetch, 16)}
}

func (p *scriptedProvider) Fetch(ctx context.Context) (domain.Word, error) {
	call := &pendingFetch{ctx: ctx, reply: make(chan fetchReply, 1)}
	p.calls <- call
	r := <-call.reply
	return r.word, r.err
}

func (p *scriptedProvider) next(t *testing.T) *pendingFetch {
	t.Helper()
	select {
	case call := <-p.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch")
		return nil
	}
}

func (c *pendingFetch) succeed(word domain.Word) { c.reply <- fetchReply{word: word} }
func (c *pendingFetch) fail(err error)          { c.reply <- fetchReply{err: err} }

// instantProvider answers immediately with the same word
type instantProvider struct{ word domain.Word }

func (p instantProvider) Fetch(ctx context.Context) (domain.Word, error) {
	return p.word, nil
}

// recordingClient collects every event broadcast to it
type recordingClient struct {
	id     string
	mu     sync.Mutex
	events []*domain.GameEvent
	closed bool
}

func (c *recordingClient) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if event, ok := message.(*domain.GameEvent); ok {
		c.events = append(c.events, event)
	}
	return nil
}

func (c *recordingClient) GetClientID() string { return c.id }

func (c *recordingClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recordingClient) hasEvent(eventType domain.EventType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitForStatus(t *testing.T, s *GameSession, want domain.Status) *domain.Snapshot {
	t.Helper()
	var snap *domain.Snapshot
	waitFor(t, "status "+string(want), func() bool {
		snap = s.Snapshot()
		return snap.Status == want
	})
	return snap
}

// newManualSession returns a session whose countdown never fires on its own
func newManualSession(t *testing.T, provider wordsource.Provider) *GameSession {
	t.Helper()
	s := NewGameSession(domain.NewGame("test-session"), provider, testHints{}, time.Hour, discardLogger())
	t.Cleanup(s.Close)
	return s
}
