package domain

import "strings"

// Level is the difficulty chosen on the level-selection screen
type Level string

const (
	LevelEasy   Level = "EASY"
	LevelMedium Level = "MEDIUM"
	LevelHard   Level = "HARD"
)

// String returns the string representation of the level
func (l Level) String() string {
	return string(l)
}

// Duration returns the initial countdown for the level in whole time units
func (l Level) Duration() int {
	switch l {
	case LevelEasy:
		return 120
	case LevelMedium:
		return 90
	case LevelHard:
		return 60
	default:
		return 0
	}
}

// IsValid reports whether l is one of the known levels
func (l Level) IsValid() bool {
	return l.Duration() > 0
}

// ParseLevel accepts a level name in any case
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", ErrInvalidLevel
	}
	return l, nil
}
