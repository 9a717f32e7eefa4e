package library

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// Mode selects a content view.
type Mode string

const (
	ModeHome     Mode = "home"     // all songs, newest first
	ModeLiked    Mode = "liked"    // favorites only
	ModePlaylist Mode = "playlist" // one playlist's songs
)

// Fallback view titles used when the backing playlist row is missing.
const (
	homeTitle     = "My Library"
	likedTitle    = "Liked Songs"
	fallbackTitle = "Playlist"
)

// Store defines the persistence operations the service depends on.
// Satisfied by [store.Store].
type Store interface {
	CreatePlaylist(name, description string) (*models.Playlist, error)
	GetPlaylist(id int64) (*models.Playlist, error)
	DeletePlaylist(id int64) error
	ListPlaylists() ([]models.Playlist, error)
	AddSong(song *models.Song) (bool, error)
	ListSongs(criteria map[string]any) ([]models.Song, error)
	ToggleFavorite(trackID string) (bool, error)
	DeleteSongByTrackID(trackID string) (int64, error)
}

// Service orchestrates store operations into client-facing behaviors.
type Service struct {
	store    Store
	pageSize int
	logger   *log.Logger
}

// NewService creates a Service over the given store.
//
// pageSize caps the home view; zero means unlimited.
func NewService(store Store, pageSize int, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Service{
		store:    store,
		pageSize: pageSize,
		logger:   logger,
	}
}

// GetContent returns the titled song listing for a view.
//
// An empty mode defaults to home. An unknown playlist id yields an empty
// listing under a generic title, not an error.
func (s *Service) GetContent(mode Mode, playlistID int64) (*models.ContentView, error) {
	switch mode {
	case ModeHome, "":
		songs, err := s.store.ListSongs(map[string]any{"limit": s.pageSize})
		if err != nil {
			return nil, err
		}
		return &models.ContentView{Title: s.titleFor(models.DefaultLibraryID, homeTitle), Songs: songs}, nil

	case ModeLiked:
		songs, err := s.store.ListSongs(map[string]any{"favorites": true})
		if err != nil {
			return nil, err
		}
		return &models.ContentView{Title: s.titleFor(models.FavoritesViewID, likedTitle), Songs: songs}, nil

	case ModePlaylist:
		// The favorites pseudo-playlist is a filter, not a container.
		if playlistID == models.FavoritesViewID {
			return s.GetContent(ModeLiked, 0)
		}

		playlist, err := s.store.GetPlaylist(playlistID)
		if errors.Is(err, shared.ErrNotFound) {
			return &models.ContentView{Title: fallbackTitle, Songs: []models.Song{}}, nil
		}
		if err != nil {
			return nil, err
		}

		songs, err := s.store.ListSongs(map[string]any{"playlist_id": playlistID})
		if err != nil {
			return nil, err
		}
		return &models.ContentView{Title: playlist.Name, Songs: songs}, nil

	default:
		return nil, fmt.Errorf("%w: unknown content mode %q", shared.ErrInvalidArgument, mode)
	}
}

// titleFor reads a reserved playlist's display name, falling back to the
// given default when the row is missing.
func (s *Service) titleFor(playlistID int64, fallback string) string {
	playlist, err := s.store.GetPlaylist(playlistID)
	if err != nil {
		return fallback
	}
	return playlist.Name
}

// SaveCandidate stores a search result into the given playlist and reports
// whether a new row was created.
func (s *Service) SaveCandidate(candidate models.SongCandidate, playlistID int64) (*models.Song, bool, error) {
	song := candidate.Song(playlistID)
	created, err := s.store.AddSong(&song)
	if err != nil {
		return nil, false, err
	}
	return &song, created, nil
}

// AddSong stores a song, reporting whether a new row was created.
// Duplicate memberships are silent no-ops.
func (s *Service) AddSong(song *models.Song) (bool, error) {
	return s.store.AddSong(song)
}

// CreatePlaylist creates a playlist with a unique name.
func (s *Service) CreatePlaylist(name, description string) (*models.Playlist, error) {
	return s.store.CreatePlaylist(name, description)
}

// DeletePlaylist removes a playlist, reporting whether it was a protected
// reserved playlist via the error.
func (s *Service) DeletePlaylist(id int64) error {
	return s.store.DeletePlaylist(id)
}

// ListPlaylists returns all real playlists in creation order.
func (s *Service) ListPlaylists() ([]models.Playlist, error) {
	return s.store.ListPlaylists()
}

// ToggleFavorite flips the liked flag for a track and returns the
// resulting state. Unknown tracks are no-ops returning false.
func (s *Service) ToggleFavorite(trackID string) (bool, error) {
	return s.store.ToggleFavorite(trackID)
}

// RemoveTrack deletes every membership row for the track.
func (s *Service) RemoveTrack(trackID string) error {
	removed, err := s.store.DeleteSongByTrackID(trackID)
	if err != nil {
		return err
	}

	s.logger.Debug("removed track", "track", trackID, "rows", removed)
	return nil
}
