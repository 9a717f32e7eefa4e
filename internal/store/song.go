package store

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

const songColumns = "id, title, artist, cover, duration, track_id, playlist_id, is_favorite"

// AddSong inserts a song into its playlist and reports whether a row was
// created.
//
// Inserting a (track_id, playlist_id) pair that already exists is a silent
// no-op, not an error. Missing display fields are filled with placeholders.
// A song without an explicit playlist lands in the default library.
func (s *Store) AddSong(song *models.Song) (bool, error) {
	if err := song.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	song.Normalize()
	if song.PlaylistID == 0 {
		song.PlaylistID = models.DefaultLibraryID
	}

	query := `
		INSERT OR IGNORE INTO songs (title, artist, cover, duration, track_id, playlist_id, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		song.Title,
		song.Artist,
		song.Cover,
		song.Duration,
		song.TrackID,
		song.PlaylistID,
		song.IsFavorite,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: playlist %d", shared.ErrNotFound, song.PlaylistID)
		}
		return false, fmt.Errorf("failed to insert song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		// Duplicate membership, swallowed by the unique constraint.
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to get song id: %w", err)
	}
	song.ID = id

	return true, nil
}

// ListSongs retrieves songs matching the given criteria.
//
// Recognized keys: "playlist_id" (int64) restricts to one playlist in
// insertion order, "favorites" (bool) restricts to liked songs, "limit"
// (int) caps the result. Without criteria all songs are returned newest
// first.
func (s *Store) ListSongs(criteria map[string]any) ([]models.Song, error) {
	query := "SELECT " + songColumns + " FROM songs"
	order := " ORDER BY id DESC"
	args := []any{}

	if playlistID, ok := criteria["playlist_id"].(int64); ok {
		query += " WHERE playlist_id = ?"
		order = " ORDER BY id ASC"
		args = append(args, playlistID)
	} else if favorites, ok := criteria["favorites"].(bool); ok && favorites {
		query += " WHERE is_favorite = 1"
	}

	query += order

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// ToggleFavorite flips the favorite flag on every song row matching the
// track id and returns the resulting state.
//
// When no row matches this is a silent no-op returning false; no row is
// created.
func (s *Store) ToggleFavorite(trackID string) (bool, error) {
	result, err := s.db.Exec("UPDATE songs SET is_favorite = 1 - is_favorite WHERE track_id = ?", trackID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	// Memberships seeded with differing flags disagree after a flip; the
	// oldest row is the canonical state.
	var favorite bool
	err = s.db.QueryRow("SELECT is_favorite FROM songs WHERE track_id = ? ORDER BY id LIMIT 1", trackID).Scan(&favorite)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read favorite state: %w", err)
	}

	return favorite, nil
}

// DeleteSongByTrackID removes every membership row for the track across all
// playlists and returns the number of rows removed.
//
// Removing an unknown track id is not an error.
func (s *Store) DeleteSongByTrackID(trackID string) (int64, error) {
	result, err := s.db.Exec("DELETE FROM songs WHERE track_id = ?", trackID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// scanner abstracts over [sql.Row] and [sql.Rows] for song scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (models.Song, error) {
	var song models.Song

	err := row.Scan(
		&song.ID,
		&song.Title,
		&song.Artist,
		&song.Cover,
		&song.Duration,
		&song.TrackID,
		&song.PlaylistID,
		&song.IsFavorite,
	)
	if err != nil {
		return song, fmt.Errorf("failed to scan song: %w", err)
	}

	return song, nil
}
