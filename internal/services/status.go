package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProviderStatus reports the reachability of one provider instance.
type ProviderStatus struct {
	Provider string        `json:"provider"`
	Healthy  bool          `json:"healthy"`
	Elapsed  time.Duration `json:"elapsed"`
	Error    string        `json:"error,omitempty"`
}

// CheckProviders probes every provider concurrently and returns one status
// per provider, in the configured order.
//
// Unreachable providers are reported, not returned as errors; the probe
// itself never fails.
func CheckProviders(ctx context.Context, providers []Lookup, timeout time.Duration) []ProviderStatus {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	statuses := make([]ProviderStatus, len(providers))
	g, ctx := errgroup.WithContext(ctx)

	for i, provider := range providers {
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := provider.Ping(probeCtx)

			statuses[i] = ProviderStatus{
				Provider: provider.Name(),
				Healthy:  err == nil,
				Elapsed:  time.Since(start),
			}
			if err != nil {
				statuses[i].Error = err.Error()
			}
			return nil
		})
	}

	g.Wait()
	return statuses
}
