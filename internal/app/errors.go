package app

import (
	"errors"

	"cipherspry/internal/domain"
)

// Error codes reported to clients
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeInvalidLevel     = "INVALID_LEVEL"
	ErrCodeNoLevel          = "NO_LEVEL"
	ErrCodeInvalidGuess     = "INVALID_GUESS"
	ErrCodeGuessLength      = "INVALID_GUESS_LENGTH"
	ErrCodeInvalidAction    = "INVALID_ACTION"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	MessageEnterFiveLetters = "Please enter a 5-letter word."
)

// ClassifyError maps a session error to a client error code and message
func ClassifyError(err error) (code, message string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return ErrCodeSessionNotFound, "Session not found"
	case errors.Is(err, domain.ErrInvalidLevel):
		return ErrCodeInvalidLevel, "Level must be EASY, MEDIUM or HARD"
	case errors.Is(err, domain.ErrNoLevel):
		return ErrCodeNoLevel, "Select a level first"
	case errors.Is(err, domain.ErrGuessLength):
		return ErrCodeGuessLength, MessageEnterFiveLetters
	case errors.Is(err, domain.ErrInvalidGuess):
		return ErrCodeInvalidGuess, "Only letters A-Z are allowed"
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidTransition):
		return ErrCodeInvalidAction, "Cannot do that right now"
	default:
		return ErrCodeInternalError, "Internal server error"
	}
}

// IsValidationError reports whether err is a player-input rejection rather than a fault
func IsValidationError(err error) bool {
	code, _ := ClassifyError(err)
	return code != ErrCodeInternalError && code != ErrCodeSessionNotFound
}
