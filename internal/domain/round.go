package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/looplab/fsm"
	"github.com/samber/lo"
)

// Feedback lines shown to the player
const (
	MessageFetchFailed = "Failed to load new sequence. Check backend server."
	MessageWon         = "Correct! 🎉"
	MessageRevealed    = "The answer was revealed!"
)

// Word is one puzzle as delivered by the word provider
type Word struct {
	Original    string `json:"originalWord"`
	Transformed string `json:"transformedWord"`
	PatternID   string `json:"patternId"`
}

// Round represents a single attempt at one transformed word
type Round struct {
	Generation      uint64    `json:"generation"`
	Level           Level     `json:"level"`
	TargetWord      string    `json:"-"`
	TransformedWord string    `json:"transformedWord"`
	PatternID       string    `json:"-"`
	Guess           string    `json:"guess"`
	FinalGuess      string    `json:"finalGuess,omitempty"` // Guess frozen at resolution
	Status          Status    `json:"status"`
	TimeRemaining   int       `json:"timeRemaining"`
	HintUsed        bool      `json:"hintUsed"`
	HintText        string    `json:"hintText,omitempty"`
	FetchError      string    `json:"fetchError,omitempty"`
	Message         string    `json:"message,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt,omitempty"`

	machine *fsm.FSM
}

// NewRound creates a round in FETCHING with the level's full countdown
func NewRound(generation uint64, level Level) *Round {
	return &Round{
		Generation:    generation,
		Level:         level,
		Status:        StatusFetching,
		TimeRemaining: level.Duration(),
		StartedAt:     time.Now(),
		machine:       newStatusMachine(),
	}
}

// IsPlayable returns true while the player may type, submit or ask for a hint
func (r *Round) IsPlayable() bool {
	return r.Status == StatusActive && r.TimeRemaining > 0
}

// Activate fills in the fetched word and unlocks input
func (r *Round) Activate(word Word) error {
	status, err := fire(r.machine, eventActivate)
	if err != nil {
		return err
	}

	r.Status = status
	r.TargetWord = strings.ToUpper(word.Original)
	r.TransformedWord = strings.ToUpper(word.Transformed)
	r.PatternID = word.PatternID
	r.FetchError = ""
	r.Message = ""

	return nil
}

// FailFetch leaves the round in FETCHING with a visible failure
func (r *Round) FailFetch(err error) {
	r.FetchError = err.Error()
	r.Message = MessageFetchFailed
}

// UpdateGuess replaces the guess with normalized text
func (r *Round) UpdateGuess(text string) error {
	if !r.IsPlayable() {
		return ErrInvalidStatus
	}

	text = strings.ToUpper(text)
	if len(text) > WordLength {
		text = text[:WordLength]
	}
	if !isUpperAlpha(text) {
		return ErrInvalidGuess
	}

	r.Guess = text
	return nil
}

// Submit resolves the round against the current guess
func (r *Round) Submit() (bool, error) {
	if !r.IsPlayable() {
		return false, ErrInvalidStatus
	}
	if len(r.Guess) != WordLength {
		return false, ErrGuessLength
	}

	won := strings.EqualFold(r.Guess, r.TargetWord)
	event := eventLose
	if won {
		event = eventWin
	}

	if err := r.resolve(event); err != nil {
		return false, err
	}

	r.HintText = ""
	if won {
		r.Message = MessageWon
	} else {
		r.Message = fmt.Sprintf("Incorrect. The word was %s.", r.TargetWord)
	}

	return won, nil
}

// Tick consumes one time unit and reports whether the countdown expired
func (r *Round) Tick() (bool, error) {
	if r.Status != StatusActive {
		return false, ErrInvalidStatus
	}

	r.TimeRemaining = max(0, r.TimeRemaining-1)
	if r.TimeRemaining > 0 {
		return false, nil
	}

	if err := r.resolve(eventTimeout); err != nil {
		return false, err
	}
	r.Message = fmt.Sprintf("Time's up! The word was %s.", r.TargetWord)

	return true, nil
}

// UseHint records the hint text, reporting whether this was the first request
func (r *Round) UseHint(hints HintSource) (string, bool, error) {
	if !r.IsPlayable() {
		return "", false, ErrInvalidStatus
	}
	if r.HintUsed {
		return r.HintText, false, nil
	}

	r.HintUsed = true
	r.HintText = hints.Hint(r.PatternID)

	return r.HintText, true, nil
}

// Reveal gives up the round and exposes the target word
func (r *Round) Reveal() error {
	if r.Status != StatusActive {
		return ErrInvalidStatus
	}

	if err := r.resolve(eventReveal); err != nil {
		return err
	}
	r.Message = MessageRevealed

	return nil
}

// resolve moves to a terminal status and freezes the guess
func (r *Round) resolve(event string) error {
	status, err := fire(r.machine, event)
	if err != nil {
		return err
	}

	r.Status = status
	r.FinalGuess = r.Guess
	r.EndedAt = time.Now()

	return nil
}

// Tiles returns the five feedback cells for display
func (r *Round) Tiles() []Tile {
	switch {
	case r.Status == StatusRevealed:
		return lo.Times(WordLength, func(i int) Tile {
			return Tile{Letter: letterAt(r.TargetWord, i)}
		})
	case r.Status.IsTerminal():
		return buildTiles(r.FinalGuess, Evaluate(r.FinalGuess, r.TargetWord))
	case r.IsPlayable():
		return buildTiles(r.Guess, Evaluate(r.Guess, r.TargetWord))
	default:
		return buildTiles(r.Guess, [WordLength]Classification{})
	}
}

// Tile is one letter box of the answer row
type Tile struct {
	Letter string         `json:"letter"`
	Class  Classification `json:"class,omitempty"`
}

func buildTiles(guess string, classes [WordLength]Classification) []Tile {
	return lo.Times(WordLength, func(i int) Tile {
		return Tile{Letter: letterAt(guess, i), Class: classes[i]}
	})
}

func letterAt(s string, i int) string {
	if i >= len(s) {
		return ""
	}
	return s[i : i+1]
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
