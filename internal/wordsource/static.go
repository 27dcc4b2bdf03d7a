package wordsource

import (
	"context"
	"math/rand"
	"sync"

	"github.com/samber/lo"

	"cipherspry/internal/domain"
)

// StaticWords is a curated list of 5-letter answers for offline play
var StaticWords = []string{
	"CRANE", "SLATE", "TRAIN", "PLANT", "GHOST",
	"BRICK", "CHAIR", "FLAME", "GRAPE", "HOUSE",
	"JUICE", "KNIFE", "LEMON", "MONEY", "NIGHT",
	"OCEAN", "PIANO", "QUEEN", "RIVER", "SNAKE",
	"TIGER", "UNCLE", "VOICE", "WATER", "YOUTH",
	"ZEBRA", "BREAD", "CLOUD", "DREAM", "EARTH",
	"FROST", "GLOBE", "HEART", "IVORY", "JOKER",
	"LIGHT", "MUSIC", "NOVEL", "ORBIT", "PEARL",
	"ROBOT", "STORM", "TOWER", "VIVID", "WHEEL",
}

// staticPatterns are the transformations the offline provider can apply
var staticPatterns = map[string]func(string) string{
	"reverse_alphabet_substitution": reverseAlphabet,
	"first_last_swap":               firstLastSwap,
	"middle_three_reverse":          middleThreeReverse,
}

// StaticProvider serves words from StaticWords without network access
type StaticProvider struct {
	mu       sync.Mutex
	words    []string
	patterns []string
	rng      *rand.Rand
	last     string
}

// NewStaticProvider creates an offline provider seeded with seed
func NewStaticProvider(seed int64) *StaticProvider {
	return &StaticProvider{
		words:    StaticWords,
		patterns: []string{"reverse_alphabet_substitution", "first_last_swap", "middle_three_reverse"},
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Fetch returns a random word, avoiding an immediate repeat
func (p *StaticProvider) Fetch(ctx context.Context) (domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return domain.Word{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := lo.Without(p.words, p.last)
	if len(candidates) == 0 {
		candidates = p.words
	}
	word := candidates[p.rng.Intn(len(candidates))]
	pattern := p.patterns[p.rng.Intn(len(p.patterns))]
	p.last = word

	return domain.Word{
		Original:    word,
		Transformed: staticPatterns[pattern](word),
		PatternID:   pattern,
	}, nil
}

// reverseAlphabet maps A<->Z, B<->Y and so on
func reverseAlphabet(w string) string {
	b := []byte(w)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = 'Z' - (c - 'A')
		}
	}
	return string(b)
}

// firstLastSwap exchanges the first and last letters
func firstLastSwap(w string) string {
	b := []byte(w)
	if len(b) > 1 {
		b[0], b[len(b)-1] = b[len(b)-1], b[0]
	}
	return string(b)
}

// middleThreeReverse reverses the three central letters of a 5-letter word
func middleThreeReverse(w string) string {
	b := []byte(w)
	if len(b) == domain.WordLength {
		b[1], b[3] = b[3], b[1]
	}
	return string(b)
}
