package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// Store provides durable storage and retrieval of playlists and songs.
type Store struct {
	db *sql.DB
}

// New wraps an open database connection. Callers configure the pool
// before handing it over; see [shared.NewDatabase].
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Bootstrap ensures the schema exists and the reserved playlists are
// present. Safe to run on every start.
func (s *Store) Bootstrap() error {
	if err := shared.RunMigrations(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO playlists (id, name, description)
		VALUES (?, ?, ?)
	`

	reserved := []struct {
		id          int64
		name        string
		description string
	}{
		{models.DefaultLibraryID, "My Library", "Saved songs"},
		{models.FavoritesViewID, "Liked Songs", "Songs you liked"},
	}

	for _, p := range reserved {
		if _, err := s.db.Exec(query, p.id, p.name, p.description); err != nil {
			return fmt.Errorf("failed to seed reserved playlist %q: %w", p.name, err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a sqlite foreign key failure.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
