package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidLevel      = errors.New("invalid level")
	ErrNoLevel           = errors.New("no level selected")
	ErrInvalidStatus     = errors.New("invalid action for current round status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrGuessLength       = errors.New("please enter a 5-letter word")
	ErrInvalidGuess      = errors.New("guess may only contain letters A-Z")
	ErrStaleGeneration   = errors.New("stale round generation")
)
