package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// Resolver turns a track id into a short-lived playable URL by scanning an
// ordered provider list.
type Resolver struct {
	providers []Lookup
	timeout   time.Duration
	logger    *log.Logger
}

// NewResolver creates a Resolver over the given providers, tried in order.
//
// timeout bounds each individual provider attempt and defaults to ten
// seconds.
func NewResolver(providers []Lookup, timeout time.Duration, logger *log.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Resolver{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Resolve returns the first usable audio stream URL for the track.
//
// Providers are scanned in order; the first one returning a non-empty
// stream list wins and its first candidate is picked. Individual provider
// failures are logged and swallowed. When every provider fails or returns
// no streams, Resolve fails with [shared.ErrResolution]. Results are never
// cached: every call re-queries the providers.
func (r *Resolver) Resolve(ctx context.Context, trackID string) (*Resolution, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}

	for _, provider := range r.providers {
		streams, err := r.tryProvider(ctx, provider, trackID)
		if err != nil {
			r.logger.Warn("provider lookup failed", "provider", provider.Name(), "track", trackID, "error", err)
			continue
		}
		if len(streams) == 0 {
			r.logger.Debug("provider returned no streams", "provider", provider.Name(), "track", trackID)
			continue
		}

		return &Resolution{URL: streams[0].URL, Provider: provider.Name()}, nil
	}

	return nil, fmt.Errorf("%w: track %s", shared.ErrResolution, trackID)
}

func (r *Resolver) tryProvider(ctx context.Context, provider Lookup, trackID string) ([]AudioStream, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return provider.Streams(attemptCtx, trackID)
}
