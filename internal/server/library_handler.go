package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/library"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// LibraryService defines the orchestration operations the handler depends
// on. Satisfied by [library.Service].
type LibraryService interface {
	GetContent(mode library.Mode, playlistID int64) (*models.ContentView, error)
	CreatePlaylist(name, description string) (*models.Playlist, error)
	DeletePlaylist(id int64) error
	ListPlaylists() ([]models.Playlist, error)
	AddSong(song *models.Song) (bool, error)
	ToggleFavorite(trackID string) (bool, error)
	RemoveTrack(trackID string) error
}

// LibraryHandler serves the content, playlist, and song endpoints.
type LibraryHandler struct {
	service LibraryService
	logger  *log.Logger
}

// NewLibraryHandler creates a handler over the given service.
func NewLibraryHandler(service LibraryService, logger *log.Logger) *LibraryHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &LibraryHandler{service: service, logger: logger}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *LibraryHandler) Routes() []string {
	return []string{
		"GET /api/content",
		"GET /api/playlists",
		"POST /api/playlists",
		"POST /api/playlists/delete",
		"POST /api/songs",
		"DELETE /api/songs/{trackId}",
		"POST /api/songs/favorite",
	}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /api/content":
		h.getContent(w, r)
	case "GET /api/playlists":
		h.listPlaylists(w, r)
	case "POST /api/playlists":
		h.createPlaylist(w, r)
	case "POST /api/playlists/delete":
		h.deletePlaylist(w, r)
	case "POST /api/songs":
		h.addSong(w, r)
	case "DELETE /api/songs/{trackId}":
		h.removeTrack(w, r)
	case "POST /api/songs/favorite":
		h.toggleFavorite(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getContent serves GET /api/content?mode=&playlistId=.
func (h *LibraryHandler) getContent(w http.ResponseWriter, r *http.Request) {
	mode := library.Mode(r.URL.Query().Get("mode"))

	var playlistID int64
	if raw := r.URL.Query().Get("playlistId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, h.logger, fmt.Errorf("%w: playlistId must be an integer", shared.ErrInvalidArgument))
			return
		}
		playlistID = parsed
	}

	view, err := h.service.GetContent(mode, playlistID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// listPlaylists serves GET /api/playlists.
func (h *LibraryHandler) listPlaylists(w http.ResponseWriter, _ *http.Request) {
	playlists, err := h.service.ListPlaylists()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

// createPlaylist serves POST /api/playlists.
func (h *LibraryHandler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.service.CreatePlaylist(body.Name, body.Description); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeStatus(w, http.StatusCreated)
}

// deletePlaylist serves POST /api/playlists/delete.
func (h *LibraryHandler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.DeletePlaylist(body.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeStatus(w, http.StatusOK)
}

// addSong serves POST /api/songs.
func (h *LibraryHandler) addSong(w http.ResponseWriter, r *http.Request) {
	var song models.Song
	if err := decodeBody(r, &song); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.service.AddSong(&song)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if created {
		writeStatus(w, http.StatusCreated)
		return
	}
	writeStatus(w, http.StatusOK)
}

// removeTrack serves DELETE /api/songs/{trackId}.
func (h *LibraryHandler) removeTrack(w http.ResponseWriter, r *http.Request) {
	trackID := r.PathValue("trackId")
	if trackID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: track id is required", shared.ErrMissingArgument))
		return
	}

	if err := h.service.RemoveTrack(trackID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeStatus(w, http.StatusOK)
}

// toggleFavorite serves POST /api/songs/favorite.
func (h *LibraryHandler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TrackID string `json:"trackId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if body.TrackID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: track id is required", shared.ErrMissingArgument))
		return
	}

	liked, err := h.service.ToggleFavorite(body.TrackID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status     string `json:"status"`
		IsFavorite bool   `json:"isFavorite"`
	}{Status: "success", IsFavorite: liked})
}
