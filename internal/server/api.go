package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// NewAPI assembles the full JSON API router: recovery and request logging
// middleware plus the library and lookup handlers.
func NewAPI(service LibraryService, resolver TrackResolver, searcher TrackSearcher, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(Recovery(logger), Logging(logger))

	router.Handler(NewLibraryHandler(service, logger))
	router.Handler(NewLookupHandler(resolver, searcher, logger))

	router.Handle(http.MethodGet, "/api/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, statusEnvelope{Status: "ok"})
	}))

	return router
}
