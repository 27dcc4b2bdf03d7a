package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cipherspry/internal/domain"
	"cipherspry/internal/wordsource"
)

const (
	// DefaultIdleTimeout is how long before an inactive session is cleaned up
	DefaultIdleTimeout = 2 * time.Hour

	// cleanupInterval is how often the hub scans for idle sessions
	cleanupInterval = 10 * time.Minute
)

// HubConfig holds the collaborators and timings shared by every session
type HubConfig struct {
	Provider     wordsource.Provider
	Hints        domain.HintSource
	TickInterval time.Duration
	IdleTimeout  time.Duration
}

// GameHub manages all active game sessions
type GameHub struct {
	sessions map[string]*GameSession
	mu       sync.RWMutex
	cfg      HubConfig
	logger   *slog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// NewGameHub creates a new game hub
func NewGameHub(cfg HubConfig, logger *slog.Logger) *GameHub {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	hub := &GameHub{
		sessions: make(map[string]*GameSession),
		cfg:      cfg,
		logger:   logger,
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// CreateSession creates a new session on the level-selection screen
func (h *GameHub) CreateSession() *GameSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	game := domain.NewGame(id)
	session := NewGameSession(game, h.cfg.Provider, h.cfg.Hints, h.cfg.TickInterval, h.logger)
	h.sessions[id] = session

	h.logger.Info("session created", "sessionID", id)

	return session
}

// GetSession returns a session by ID
func (h *GameHub) GetSession(id string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession closes and removes a session
func (h *GameHub) DeleteSession(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	session.Close()
	delete(h.sessions, id)
	h.logger.Info("session deleted", "sessionID", id, "age", time.Since(session.GetCreatedAt()))

	return nil
}

// GetSessionCount returns the number of active sessions
func (h *GameHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetClientCount returns the number of connected clients across all sessions
func (h *GameHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetClientCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
}

// cleanupLoop periodically cleans up idle sessions
func (h *GameHub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupIdleSessions(time.Now())
		}
	}
}

// cleanupIdleSessions removes sessions with no clients and no recent activity
func (h *GameHub) cleanupIdleSessions(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	idle := make([]string, 0)
	for id, session := range h.sessions {
		if session.GetClientCount() == 0 && now.Sub(session.GetLastActive()) > h.cfg.IdleTimeout {
			idle = append(idle, id)
		}
	}

	for _, id := range idle {
		if session, ok := h.sessions[id]; ok {
			session.Close()
			delete(h.sessions, id)
			h.logger.Info("idle session cleaned up", "sessionID", id)
		}
	}

	return len(idle)
}
