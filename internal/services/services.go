// package services defines interface Lookup for querying audio providers
package services

import (
	"context"

	"github.com/desertthunder/tapedeck/internal/models"
)

// Lookup defines the operations an audio provider supports: resolving a
// track id to candidate audio streams, free-text search, and a
// reachability probe.
type Lookup interface {
	// Streams returns the candidate audio streams for a track id, in the
	// order the provider ranks them.
	Streams(ctx context.Context, trackID string) ([]AudioStream, error)

	// Search returns up to limit candidate tracks for a free-text query,
	// normalized to the library's song shape.
	Search(ctx context.Context, query string, limit int) ([]models.SongCandidate, error)

	// Ping checks whether the provider is reachable.
	Ping(ctx context.Context) error

	// Name returns a short identifier for the provider (its base URL).
	Name() string
}

// AudioStream is one playable stream candidate for a track.
type AudioStream struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Bitrate  int    `json:"bitrate"`
}

// Resolution is the outcome of resolving a track id to a playable URL.
//
// The URL has a short practical lifetime (minutes) and must not be cached
// or persisted.
type Resolution struct {
	URL      string `json:"url"`
	Provider string `json:"provider"`
}
