package models

import (
	"fmt"
	"time"
)

// Reserved playlist ids. The default library cannot be deleted; the
// favorites id identifies the computed liked-songs view and never maps to a
// row clients can modify.
const (
	DefaultLibraryID int64 = 1
	FavoritesViewID  int64 = 99
)

// Placeholder values applied when source data omits a field.
const (
	UnknownTitle    = "Unknown Title"
	UnknownArtist   = "Unknown Artist"
	UnknownDuration = "0:00"
)

// Playlist represents a stored song container.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Song represents one track's membership in one playlist.
//
// TrackID is the external source's stable media identifier; it is unique
// per playlist, not globally. Duration is a display string (M:SS) preserved
// as-is from the source, never a numeric type.
type Song struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Cover      string `json:"cover"`
	Duration   string `json:"duration"`
	TrackID    string `json:"trackId"`
	PlaylistID int64  `json:"playlistId"`
	IsFavorite bool   `json:"isFavorite"`
}

// Validate checks that the song can be stored.
func (s *Song) Validate() error {
	if s.TrackID == "" {
		return fmt.Errorf("song is missing a track id")
	}
	return nil
}

// Normalize fills missing display fields with placeholder values.
func (s *Song) Normalize() {
	if s.Title == "" {
		s.Title = UnknownTitle
	}
	if s.Artist == "" {
		s.Artist = UnknownArtist
	}
	if s.Duration == "" {
		s.Duration = UnknownDuration
	}
}

// SongCandidate is a normalized search result that has not been saved to a
// playlist yet.
type SongCandidate struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Cover    string `json:"cover"`
	Duration string `json:"duration"`
	TrackID  string `json:"trackId"`
}

// Song converts the candidate to a [Song] targeting the given playlist.
func (c SongCandidate) Song(playlistID int64) Song {
	s := Song{
		Title:      c.Title,
		Artist:     c.Artist,
		Cover:      c.Cover,
		Duration:   c.Duration,
		TrackID:    c.TrackID,
		PlaylistID: playlistID,
	}
	s.Normalize()
	return s
}

// ContentView is a titled song listing for a library view.
type ContentView struct {
	Title string `json:"title"`
	Songs []Song `json:"songs"`
}

// PlaylistExport bundles a playlist with its songs for file export.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Songs    []Song   `json:"songs"`
}
