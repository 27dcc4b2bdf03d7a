package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cipherspry/internal/domain"
	"cipherspry/internal/wordsource"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetClientID() string
	Close() error
}

// GameSession wraps a game with concurrency control, the round countdown,
// the word fetch and client management. Every operation that reads or
// mutates the game holds mu, so ticks and player input are serialized.
type GameSession struct {
	game       *domain.Game
	mu         sync.Mutex
	provider   wordsource.Provider
	hints      domain.HintSource
	countdown  *Countdown
	lastActive time.Time
	closed     bool

	// Fetch lifecycle
	ctx         context.Context
	cancel      context.CancelFunc
	cancelFetch context.CancelFunc

	clients   map[string]ClientConnection // clientID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewGameSession creates a new session on the level-selection screen
func NewGameSession(game *domain.Game, provider wordsource.Provider, hints domain.HintSource, tickInterval time.Duration, logger *slog.Logger) *GameSession {
	ctx, cancel := context.WithCancel(context.Background())

	session := &GameSession{
		game:       game,
		provider:   provider,
		hints:      hints,
		lastActive: time.Now(),
		ctx:        ctx,
		cancel:     cancel,
		clients:    make(map[string]ClientConnection),
		logger:     logger.With("sessionID", game.ID),
		events:     make(chan *domain.GameEvent, 100),
		done:       make(chan struct{}),
	}
	session.countdown = NewCountdown(tickInterval, session.onTick)

	// Start event broadcaster
	go session.eventLoop()

	return session
}

// GetID returns the session ID
func (s *GameSession) GetID() string {
	return s.game.ID
}

// GetCreatedAt returns when the session was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.game.CreatedAt
}

// GetLastActive returns the time of the last player action
func (s *GameSession) GetLastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot returns the current projection of the session
func (s *GameSession) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// RegisterClient registers a client connection
func (s *GameSession) RegisterClient(client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.GetClientID()] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(clientID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, clientID)
}

// GetClientCount returns the number of connected clients
func (s *GameSession) GetClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// StartRound selects a level and fetches its first word. The score resets.
func (s *GameSession) StartRound(level domain.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	generation, err := s.game.StartRound(level)
	if err != nil {
		return err
	}

	s.beginFetch(generation)
	return nil
}

// NewRound fetches another word on the current level, keeping the score
func (s *GameSession) NewRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	generation, err := s.game.NewRound()
	if err != nil {
		return err
	}

	s.beginFetch(generation)
	return nil
}

// beginFetch stops the old round and requests a word for generation (caller must hold lock)
func (s *GameSession) beginFetch(generation uint64) {
	s.touch()
	s.countdown.Disarm()
	s.abandonFetch()

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelFetch = cancel

	s.logger.Debug("round fetching", "generation", generation, "level", s.game.Level)
	s.queueEvent(domain.EventRoundFetching)

	go s.fetch(ctx, generation)
}

// abandonFetch cancels any in-flight fetch (caller must hold lock)
func (s *GameSession) abandonFetch() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
}

// fetch calls the word provider outside the lock
func (s *GameSession) fetch(ctx context.Context, generation uint64) {
	word, err := s.provider.Fetch(ctx)
	s.applyFetch(generation, word, err)
}

// applyFetch installs a fetch result if its generation is still current
func (s *GameSession) applyFetch(generation uint64, word domain.Word, fetchErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if fetchErr != nil {
		if err := s.game.FailFetch(generation, fetchErr); err != nil {
			s.logger.Debug("stale fetch failure discarded", "generation", generation, "error", fetchErr)
			return
		}
		s.cancelFetch = nil
		s.logger.Warn("word fetch failed", "generation", generation, "error", fetchErr)
		s.queueEvent(domain.EventFetchFailed)
		return
	}

	if err := s.game.ApplyWord(generation, word); err != nil {
		s.logger.Debug("stale fetch discarded", "generation", generation, "error", err)
		return
	}

	s.cancelFetch = nil
	s.countdown.Arm(generation)
	s.logger.Info("round started", "generation", generation, "level", s.game.Level, "pattern", word.PatternID)
	s.queueEvent(domain.EventRoundStarted)
}

// UpdateGuess edits the live guess
func (s *GameSession) UpdateGuess(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.UpdateGuess(text); err != nil {
		return err
	}

	s.touch()
	s.queueEvent(domain.EventGuessUpdated)
	return nil
}

// Submit resolves the round with the current guess
func (s *GameSession) Submit() (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.game.Submit()
	if err != nil {
		return status, err
	}

	s.touch()
	s.countdown.Disarm()
	s.logger.Info("round resolved", "status", status, "score", s.game.Score)
	s.queueEvent(domain.EventRoundResolved)

	return status, nil
}

// Tick advances the current round's countdown by one unit
func (s *GameSession) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Round == nil {
		return domain.ErrInvalidStatus
	}
	return s.tickLocked(s.game.Round.Generation)
}

// onTick is the countdown callback
func (s *GameSession) onTick(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if err := s.tickLocked(generation); err != nil {
		s.logger.Debug("tick discarded", "generation", generation, "error", err)
	}
}

// tickLocked applies one tick for generation (caller must hold lock)
func (s *GameSession) tickLocked(generation uint64) error {
	status, err := s.game.Tick(generation)
	if err != nil {
		return err
	}

	if status.IsTerminal() {
		s.countdown.Disarm()
		s.logger.Info("round resolved", "status", status, "score", s.game.Score)
		s.queueEvent(domain.EventRoundResolved)
		return nil
	}

	s.queueEvent(domain.EventTick)
	return nil
}

// RequestHint returns the round's hint, charging for it once
func (s *GameSession) RequestHint() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.game.RequestHint(s.hints)
	if err != nil {
		return "", err
	}

	s.touch()
	s.queueEvent(domain.EventHintShown)
	return text, nil
}

// Reveal gives up the round and exposes the answer
func (s *GameSession) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Reveal(); err != nil {
		return err
	}

	s.touch()
	s.countdown.Disarm()
	s.logger.Info("round resolved", "status", domain.StatusRevealed, "score", s.game.Score)
	s.queueEvent(domain.EventRoundResolved)
	return nil
}

// ResetToLevelSelect discards the round and returns to level selection
func (s *GameSession) ResetToLevelSelect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	s.countdown.Disarm()
	s.abandonFetch()
	s.game.ResetToLevelSelect()
	s.queueEvent(domain.EventLevelSelect)
}

// touch records player activity (caller must hold lock)
func (s *GameSession) touch() {
	s.lastActive = time.Now()
}

// queueEvent snapshots the game and adds it to the broadcast queue (caller must hold lock)
func (s *GameSession) queueEvent(eventType domain.EventType) {
	event := domain.NewEvent(eventType, s.game.ID, s.game.Snapshot())

	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every registered client
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for clientID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close shuts down the session: the countdown stops and late fetches are ignored
func (s *GameSession) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.countdown.Disarm()
		s.abandonFetch()
		s.cancel()
		s.mu.Unlock()

		close(s.done)

		// Close all client connections
		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}
