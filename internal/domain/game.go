package domain

import (
	"time"
)

// HintSource looks up the hint text for a pattern identifier
type HintSource interface {
	Hint(patternID string) string
}

// Screen is the top-level page the player is on
type Screen string

const (
	ScreenLevelSelect Screen = "LEVEL_SELECT"
	ScreenPlaying     Screen = "PLAYING"
)

// Game holds one player's session: the chosen level, the running score and
// the current round. It is not safe for concurrent use.
type Game struct {
	ID         string    `json:"id"`
	Level      Level     `json:"level,omitempty"`
	Score      int       `json:"score"`
	Round      *Round    `json:"round,omitempty"`
	Generation uint64    `json:"generation"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewGame creates a game on the level-selection screen
func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		CreatedAt: time.Now(),
	}
}

// StartRound selects a level and begins its first round. The score resets.
func (g *Game) StartRound(level Level) (uint64, error) {
	if !level.IsValid() {
		return 0, ErrInvalidLevel
	}

	g.Level = level
	g.Score = 0

	return g.beginRound(), nil
}

// NewRound begins another round on the current level, keeping the score
func (g *Game) NewRound() (uint64, error) {
	if g.Level == "" {
		return 0, ErrNoLevel
	}

	return g.beginRound(), nil
}

// beginRound discards the current round and opens a new generation
func (g *Game) beginRound() uint64 {
	g.Generation++
	g.Round = NewRound(g.Generation, g.Level)
	return g.Generation
}

// currentRound returns the round for generation, or ErrStaleGeneration
func (g *Game) currentRound(generation uint64) (*Round, error) {
	if g.Round == nil || g.Round.Generation != generation {
		return nil, ErrStaleGeneration
	}
	return g.Round, nil
}

// ApplyWord activates the round that requested the word
func (g *Game) ApplyWord(generation uint64, word Word) error {
	round, err := g.currentRound(generation)
	if err != nil {
		return err
	}
	return round.Activate(word)
}

// FailFetch marks the round that requested a word as failed
func (g *Game) FailFetch(generation uint64, cause error) error {
	round, err := g.currentRound(generation)
	if err != nil {
		return err
	}
	if round.Status != StatusFetching {
		return ErrInvalidStatus
	}

	round.FailFetch(cause)
	return nil
}

// UpdateGuess edits the live guess
func (g *Game) UpdateGuess(text string) error {
	if g.Round == nil {
		return ErrInvalidStatus
	}
	return g.Round.UpdateGuess(text)
}

// Submit resolves the current round and applies the win or loss delta
func (g *Game) Submit() (Status, error) {
	if g.Round == nil {
		return "", ErrInvalidStatus
	}

	won, err := g.Round.Submit()
	if err != nil {
		return g.Round.Status, err
	}

	if won {
		g.Score = ApplyDelta(g.Score, DeltaWin)
	} else {
		g.Score = ApplyDelta(g.Score, DeltaIncorrect)
	}

	return g.Round.Status, nil
}

// Tick advances the countdown of the round armed for generation
func (g *Game) Tick(generation uint64) (Status, error) {
	round, err := g.currentRound(generation)
	if err != nil {
		return "", err
	}

	if _, err := round.Tick(); err != nil {
		return round.Status, err
	}

	return round.Status, nil
}

// RequestHint returns the hint text; only the first request costs a point
func (g *Game) RequestHint(hints HintSource) (string, error) {
	if g.Round == nil {
		return "", ErrInvalidStatus
	}

	text, first, err := g.Round.UseHint(hints)
	if err != nil {
		return "", err
	}

	if first {
		g.Score = ApplyDelta(g.Score, DeltaHint)
	}

	return text, nil
}

// Reveal gives up the current round
func (g *Game) Reveal() error {
	if g.Round == nil {
		return ErrInvalidStatus
	}

	if err := g.Round.Reveal(); err != nil {
		return err
	}

	g.Score = ApplyDelta(g.Score, DeltaReveal)
	return nil
}

// ResetToLevelSelect discards the round and returns to level selection.
// The generation still advances so late fetches for the old round are stale.
func (g *Game) ResetToLevelSelect() {
	g.Generation++
	g.Round = nil
	g.Level = ""
	g.Score = 0
}

// Snapshot returns the read-only projection of the game for the presentation layer
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		SessionID:  g.ID,
		Screen:     ScreenLevelSelect,
		Level:      g.Level,
		Score:      g.Score,
		Generation: g.Generation,
	}

	r := g.Round
	if r == nil {
		return snap
	}

	snap.Screen = ScreenPlaying
	snap.Status = r.Status
	snap.TransformedWord = r.TransformedWord
	snap.Guess = r.Guess
	snap.TimeRemaining = r.TimeRemaining
	snap.Tiles = r.Tiles()
	snap.HintUsed = r.HintUsed
	snap.HintText = r.HintText
	snap.Revealed = r.Status == StatusRevealed
	snap.Message = r.Message
	snap.FetchFailed = r.FetchError != ""
	snap.Playable = r.IsPlayable()
	if r.Status.IsTerminal() {
		snap.TargetWord = r.TargetWord
	}

	return snap
}
