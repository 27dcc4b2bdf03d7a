// Package wordsource fetches puzzle words from the remote pattern service.
package wordsource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"cipherspry/internal/domain"
)

// ErrFetchFailed wraps every failure to obtain a usable word
var ErrFetchFailed = errors.New("word fetch failed")

// Provider supplies one puzzle word per call
type Provider interface {
	Fetch(ctx context.Context) (domain.Word, error)
}

// patternedWord is the wire shape of the pattern service response
type patternedWord struct {
	OriginalWord    string `json:"original_word" validate:"required,len=5,alpha"`
	TransformedWord string `json:"transformed_word" validate:"required,len=5"`
	PatternApplied  string `json:"pattern_applied"`
}

// normalize uppercases the words before validation
func (p *patternedWord) normalize() {
	p.OriginalWord = strings.ToUpper(strings.TrimSpace(p.OriginalWord))
	p.TransformedWord = strings.ToUpper(strings.TrimSpace(p.TransformedWord))
	p.PatternApplied = strings.TrimSpace(p.PatternApplied)
}

// toWord validates the payload and converts it to a domain word
func (p *patternedWord) toWord(validate *validator.Validate) (domain.Word, error) {
	p.normalize()
	if err := validate.Struct(p); err != nil {
		return domain.Word{}, fmt.Errorf("%w: invalid payload: %w", ErrFetchFailed, err)
	}

	return domain.Word{
		Original:    p.OriginalWord,
		Transformed: p.TransformedWord,
		PatternID:   p.PatternApplied,
	}, nil
}
