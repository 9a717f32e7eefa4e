package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/services"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// TrackResolver maps a track id to a playable stream URL.
// Satisfied by [services.Resolver].
type TrackResolver interface {
	Resolve(ctx context.Context, trackID string) (*services.Resolution, error)
}

// TrackSearcher maps a free-text query to candidate tracks.
// Satisfied by [services.Gateway].
type TrackSearcher interface {
	Search(ctx context.Context, query string) ([]models.SongCandidate, error)
}

// LookupHandler serves the resolve and search endpoints.
type LookupHandler struct {
	resolver TrackResolver
	searcher TrackSearcher
	logger   *log.Logger
}

// NewLookupHandler creates a handler over the given resolver and searcher.
func NewLookupHandler(resolver TrackResolver, searcher TrackSearcher, logger *log.Logger) *LookupHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &LookupHandler{resolver: resolver, searcher: searcher, logger: logger}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *LookupHandler) Routes() []string {
	return []string{
		"GET /api/resolve/{trackId}",
		"POST /api/search",
	}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *LookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /api/resolve/{trackId}":
		h.resolve(w, r)
	case "POST /api/search":
		h.search(w, r)
	default:
		http.NotFound(w, r)
	}
}

// resolve serves GET /api/resolve/{trackId}.
//
// The URL in the response is short-lived and fetched fresh on every call.
func (h *LookupHandler) resolve(w http.ResponseWriter, r *http.Request) {
	trackID := r.PathValue("trackId")
	if trackID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: track id is required", shared.ErrMissingArgument))
		return
	}

	resolution, err := h.resolver.Resolve(r.Context(), trackID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		URL string `json:"url"`
	}{URL: resolution.URL})
}

// search serves POST /api/search.
func (h *LookupHandler) search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	candidates, err := h.searcher.Search(r.Context(), body.Query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}
