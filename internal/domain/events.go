package domain

import "time"

// EventType represents the type of session event
type EventType string

const (
	EventRoundFetching EventType = "ROUND_FETCHING"
	EventRoundStarted  EventType = "ROUND_STARTED"
	EventFetchFailed   EventType = "FETCH_FAILED"
	EventTick          EventType = "TICK"
	EventGuessUpdated  EventType = "GUESS_UPDATED"
	EventHintShown     EventType = "HINT_SHOWN"
	EventRoundResolved EventType = "ROUND_RESOLVED"
	EventLevelSelect   EventType = "LEVEL_SELECT"
)

// GameEvent represents a change in a session, carrying a full snapshot
type GameEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	Payload   *Snapshot `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a new session event
func NewEvent(eventType EventType, sessionID string, snap *Snapshot) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		SessionID: sessionID,
		Payload:   snap,
		Timestamp: time.Now(),
	}
}

// Snapshot is the read-only projection of a session
type Snapshot struct {
	SessionID       string `json:"sessionId"`
	Screen          Screen `json:"screen"`
	Level           Level  `json:"level,omitempty"`
	Score           int    `json:"score"`
	Generation      uint64 `json:"generation"`
	Status          Status `json:"status,omitempty"`
	TransformedWord string `json:"transformedWord,omitempty"`
	Guess           string `json:"guess"`
	TimeRemaining   int    `json:"timeRemaining"`
	Tiles           []Tile `json:"tiles,omitempty"`
	HintUsed        bool   `json:"hintUsed"`
	HintText        string `json:"hintText,omitempty"`
	Revealed        bool   `json:"revealed"`
	TargetWord      string `json:"targetWord,omitempty"` // Only once the round is resolved
	Message         string `json:"message,omitempty"`
	FetchFailed     bool   `json:"fetchFailed"`
	Playable        bool   `json:"playable"`
}
