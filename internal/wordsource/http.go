package wordsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"cipherspry/internal/domain"
)

const (
	// DefaultURL is the public pattern service endpoint
	DefaultURL = "https://cipher-spry-backend-1.onrender.com/get_patterned_word"

	// maxBodySize bounds how much of a response we read
	maxBodySize = 64 << 10
)

// HTTPProvider fetches words from the pattern service over HTTP
type HTTPProvider struct {
	url      string
	client   *http.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHTTPProvider creates a provider for url with a per-request timeout
func NewHTTPProvider(url string, timeout time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Fetch requests one patterned word
func (p *HTTPProvider) Fetch(ctx context.Context) (domain.Word, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return domain.Word{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Word{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return domain.Word{}, fmt.Errorf("%w: http status %d", ErrFetchFailed, resp.StatusCode)
	}

	var payload patternedWord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return domain.Word{}, fmt.Errorf("%w: decode body: %w", ErrFetchFailed, err)
	}

	word, err := payload.toWord(p.validate)
	if err != nil {
		return domain.Word{}, err
	}

	p.logger.Debug("word fetched",
		"pattern", word.PatternID,
		"duration", time.Since(start),
	)

	return word, nil
}
