package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// Gateway maps free-text queries to candidate tracks via the ordered
// provider list.
type Gateway struct {
	providers []Lookup
	timeout   time.Duration
	limit     int
	logger    *log.Logger
}

// NewGateway creates a search gateway over the given providers.
//
// limit caps the number of candidates returned and defaults to fifteen;
// timeout bounds each provider attempt.
func NewGateway(providers []Lookup, timeout time.Duration, limit int, logger *log.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if limit <= 0 {
		limit = 15
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Gateway{
		providers: providers,
		timeout:   timeout,
		limit:     limit,
		logger:    logger,
	}
}

// Search returns up to the configured limit of candidates for the query.
//
// The first provider returning results wins. Provider errors are logged
// and swallowed; when every provider fails the result is an empty slice,
// indistinguishable from zero matches.
func (g *Gateway) Search(ctx context.Context, query string) ([]models.SongCandidate, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", shared.ErrInvalidInput)
	}

	for _, provider := range g.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		candidates, err := provider.Search(attemptCtx, query, g.limit)
		cancel()

		if err != nil {
			g.logger.Warn("provider search failed", "provider", provider.Name(), "error", err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		return candidates, nil
	}

	return []models.SongCandidate{}, nil
}
