package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// CreatePlaylist inserts a new playlist and returns it with its generated id.
//
// Fails with [shared.ErrConflict] when the name is already taken.
func (s *Store) CreatePlaylist(name, description string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO playlists (name, description)
		VALUES (?, ?)
	`

	result, err := s.db.Exec(query, name, description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: playlist name already exists", shared.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist id: %w", err)
	}

	return s.GetPlaylist(id)
}

// GetPlaylist retrieves a playlist by id.
func (s *Store) GetPlaylist(id int64) (*models.Playlist, error) {
	query := `
		SELECT id, name, description, created_at
		FROM playlists
		WHERE id = ?
	`

	return scanPlaylist(s.db.QueryRow(query, id))
}

// DeletePlaylist removes a playlist and, via the cascade, all songs it owns.
//
// Fails with [shared.ErrInvalidOperation] for the reserved playlists and
// with [shared.ErrNotFound] when no such playlist exists.
func (s *Store) DeletePlaylist(id int64) error {
	if id == models.DefaultLibraryID || id == models.FavoritesViewID {
		return fmt.Errorf("%w: playlist %d is reserved", shared.ErrInvalidOperation, id)
	}

	result, err := s.db.Exec("DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}

	return nil
}

// ListPlaylists retrieves all real playlists in creation order.
//
// The favorites view is computed from song flags and never listed.
func (s *Store) ListPlaylists() ([]models.Playlist, error) {
	query := `
		SELECT id, name, description, created_at
		FROM playlists
		WHERE id != ?
		ORDER BY id ASC
	`

	rows, err := s.db.Query(query, models.FavoritesViewID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var (
			id          int64
			name        string
			description string
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &name, &description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, models.Playlist{
			ID:          id,
			Name:        name,
			Description: description,
			CreatedAt:   createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// scanPlaylist scans a single row into a [models.Playlist]
func scanPlaylist(row *sql.Row) (*models.Playlist, error) {
	var (
		id          int64
		name        string
		description string
		createdAt   time.Time
	)

	err := row.Scan(&id, &name, &description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: playlist", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return &models.Playlist{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
	}, nil
}
