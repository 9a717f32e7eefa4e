package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// setupTestStore creates a bootstrapped in-memory store.
//
// Every pooled :memory: connection is its own empty database, so the pool
// is pinned to a single connection.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	s := New(db)
	if err := s.Bootstrap(); err != nil {
		s.Close()
		t.Fatalf("failed to bootstrap test store: %v", err)
	}

	return s
}

func testSong(trackID string, playlistID int64) *models.Song {
	return &models.Song{
		Title:      "Test Song",
		Artist:     "Test Artist",
		Duration:   "3:00",
		TrackID:    trackID,
		PlaylistID: playlistID,
	}
}

func TestBootstrap(t *testing.T) {
	t.Run("seeds reserved playlists", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		library, err := s.GetPlaylist(models.DefaultLibraryID)
		if err != nil {
			t.Fatalf("default library should exist: %v", err)
		}
		if library.Name != "My Library" {
			t.Errorf("expected default library name 'My Library', got %q", library.Name)
		}

		liked, err := s.GetPlaylist(models.FavoritesViewID)
		if err != nil {
			t.Fatalf("favorites playlist should exist: %v", err)
		}
		if liked.Name != "Liked Songs" {
			t.Errorf("expected favorites name 'Liked Songs', got %q", liked.Name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if err := s.Bootstrap(); err != nil {
			t.Fatalf("second bootstrap should succeed: %v", err)
		}

		playlists, err := s.ListPlaylists()
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 1 {
			t.Errorf("expected exactly the default library, got %d playlists", len(playlists))
		}
	})
}

func TestPlaylists(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "deep work")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if playlist.ID == 0 {
			t.Error("playlist ID should be set after creation")
		}
		if playlist.Name != "Focus" {
			t.Errorf("expected name 'Focus', got %q", playlist.Name)
		}
		if playlist.Description != "deep work" {
			t.Errorf("expected description 'deep work', got %q", playlist.Description)
		}
		if playlist.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("Create with empty name", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		_, err := s.CreatePlaylist("", "")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Create with duplicate name", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if _, err := s.CreatePlaylist("Focus", ""); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		_, err := s.CreatePlaylist("Focus", "another")
		if !errors.Is(err, shared.ErrConflict) {
			t.Errorf("expected ErrConflict for duplicate name, got %v", err)
		}
	})

	t.Run("Get missing playlist", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		_, err := s.GetPlaylist(12345)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Ephemeral", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := s.DeletePlaylist(playlist.ID); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		if _, err := s.GetPlaylist(playlist.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected playlist to be gone, got %v", err)
		}
	})

	t.Run("Delete reserved playlists", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if err := s.DeletePlaylist(models.DefaultLibraryID); !errors.Is(err, shared.ErrInvalidOperation) {
			t.Errorf("expected ErrInvalidOperation deleting default library, got %v", err)
		}
		if err := s.DeletePlaylist(models.FavoritesViewID); !errors.Is(err, shared.ErrInvalidOperation) {
			t.Errorf("expected ErrInvalidOperation deleting favorites view, got %v", err)
		}
	})

	t.Run("Delete missing playlist", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if err := s.DeletePlaylist(12345); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete cascades to songs", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Doomed", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := s.AddSong(testSong("abc123", playlist.ID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		if err := s.DeletePlaylist(playlist.ID); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		songs, err := s.ListSongs(map[string]any{"playlist_id": playlist.ID})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected songs to cascade, got %d remaining", len(songs))
		}
	})

	t.Run("Delete cascades across pooled connections", func(t *testing.T) {
		db, err := shared.NewDatabase(filepath.Join(t.TempDir(), "pool.db"))
		if err != nil {
			t.Fatalf("failed to open test database: %v", err)
		}
		// Zero idle connections forces a fresh connection per operation.
		shared.ConfigureDatabase(db, 5, 0)

		s := New(db)
		defer s.Close()
		if err := s.Bootstrap(); err != nil {
			t.Fatalf("failed to bootstrap test store: %v", err)
		}

		playlist, err := s.CreatePlaylist("Doomed", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if _, err := s.AddSong(testSong("abc123", playlist.ID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		if err := s.DeletePlaylist(playlist.ID); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		songs, err := s.ListSongs(map[string]any{"playlist_id": playlist.ID})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected songs to cascade, got %d orphan rows", len(songs))
		}

		if _, err := s.AddSong(testSong("def456", 12345)); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown playlist, got %v", err)
		}
	})

	t.Run("List excludes favorites view", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if _, err := s.CreatePlaylist("Focus", ""); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlists, err := s.ListPlaylists()
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}

		for _, pl := range playlists {
			if pl.ID == models.FavoritesViewID {
				t.Error("favorites view should not be listed")
			}
		}
		if len(playlists) != 2 {
			t.Errorf("expected default library plus one playlist, got %d", len(playlists))
		}
	})
}

func TestSongs(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		song := testSong("abc123", models.DefaultLibraryID)
		created, err := s.AddSong(song)
		if err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		if !created {
			t.Error("expected song to be created")
		}
		if song.ID == 0 {
			t.Error("song ID should be set after creation")
		}
	})

	t.Run("Add duplicate membership is a no-op", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		created, err := s.AddSong(testSong("abc123", models.DefaultLibraryID))
		if err != nil {
			t.Fatalf("duplicate insert should not error: %v", err)
		}
		if created {
			t.Error("expected duplicate insert to be ignored")
		}

		songs, err := s.ListSongs(map[string]any{"playlist_id": models.DefaultLibraryID})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 1 {
			t.Errorf("expected one song, got %d", len(songs))
		}
	})

	t.Run("Add same track to another playlist", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		created, err := s.AddSong(testSong("abc123", playlist.ID))
		if err != nil {
			t.Fatalf("failed to add song to second playlist: %v", err)
		}
		if !created {
			t.Error("expected a separate membership row per playlist")
		}
	})

	t.Run("Add without track id", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		_, err := s.AddSong(&models.Song{Title: "No ID"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Add to unknown playlist", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		_, err := s.AddSong(testSong("abc123", 12345))
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown playlist, got %v", err)
		}
	})

	t.Run("Add fills placeholders and default playlist", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		song := &models.Song{TrackID: "abc123"}
		if _, err := s.AddSong(song); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		if song.PlaylistID != models.DefaultLibraryID {
			t.Errorf("expected default playlist %d, got %d", models.DefaultLibraryID, song.PlaylistID)
		}
		if song.Title != models.UnknownTitle {
			t.Errorf("expected placeholder title, got %q", song.Title)
		}
		if song.Artist != models.UnknownArtist {
			t.Errorf("expected placeholder artist, got %q", song.Artist)
		}
		if song.Duration != models.UnknownDuration {
			t.Errorf("expected placeholder duration, got %q", song.Duration)
		}
	})

	t.Run("List newest first by default", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		for _, id := range []string{"first", "second", "third"} {
			if _, err := s.AddSong(testSong(id, models.DefaultLibraryID)); err != nil {
				t.Fatalf("failed to add song %s: %v", id, err)
			}
		}

		songs, err := s.ListSongs(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}

		if len(songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(songs))
		}
		if songs[0].TrackID != "third" || songs[2].TrackID != "first" {
			t.Errorf("expected newest first, got %s..%s", songs[0].TrackID, songs[2].TrackID)
		}
	})

	t.Run("List by playlist in insertion order", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		for _, id := range []string{"first", "second"} {
			if _, err := s.AddSong(testSong(id, playlist.ID)); err != nil {
				t.Fatalf("failed to add song %s: %v", id, err)
			}
		}
		if _, err := s.AddSong(testSong("elsewhere", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		songs, err := s.ListSongs(map[string]any{"playlist_id": playlist.ID})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}

		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].TrackID != "first" || songs[1].TrackID != "second" {
			t.Errorf("expected insertion order, got %s, %s", songs[0].TrackID, songs[1].TrackID)
		}
	})

	t.Run("List favorites", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if _, err := s.AddSong(testSong("plain", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		if _, err := s.AddSong(testSong("loved", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		if _, err := s.ToggleFavorite("loved"); err != nil {
			t.Fatalf("failed to toggle favorite: %v", err)
		}

		songs, err := s.ListSongs(map[string]any{"favorites": true})
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}

		if len(songs) != 1 {
			t.Fatalf("expected 1 favorite, got %d", len(songs))
		}
		if songs[0].TrackID != "loved" {
			t.Errorf("expected 'loved', got %q", songs[0].TrackID)
		}
	})

	t.Run("List with limit", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		for _, id := range []string{"a", "b", "c"} {
			if _, err := s.AddSong(testSong(id, models.DefaultLibraryID)); err != nil {
				t.Fatalf("failed to add song: %v", err)
			}
		}

		songs, err := s.ListSongs(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}
	})
}

func TestFavorites(t *testing.T) {
	t.Run("Toggle flips and reports state", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		liked, err := s.ToggleFavorite("abc123")
		if err != nil {
			t.Fatalf("failed to toggle favorite: %v", err)
		}
		if !liked {
			t.Error("expected first toggle to like the song")
		}

		liked, err = s.ToggleFavorite("abc123")
		if err != nil {
			t.Fatalf("failed to toggle favorite: %v", err)
		}
		if liked {
			t.Error("expected second toggle to unlike the song")
		}
	})

	t.Run("Toggle unknown track is a no-op", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		liked, err := s.ToggleFavorite("ghost")
		if err != nil {
			t.Fatalf("toggle of unknown track should not error: %v", err)
		}
		if liked {
			t.Error("expected false for unknown track")
		}
	})

	t.Run("Toggle reports the oldest membership's state", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		preLiked := testSong("abc123", playlist.ID)
		preLiked.IsFavorite = true
		if _, err := s.AddSong(preLiked); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		// The flip inverts both rows; the first membership goes
		// false to true and its state is the one reported.
		liked, err := s.ToggleFavorite("abc123")
		if err != nil {
			t.Fatalf("failed to toggle favorite: %v", err)
		}
		if !liked {
			t.Error("expected the oldest membership's post-toggle state")
		}
	})

	t.Run("Toggle covers all memberships", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		if _, err := s.AddSong(testSong("abc123", playlist.ID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		if _, err := s.ToggleFavorite("abc123"); err != nil {
			t.Fatalf("failed to toggle favorite: %v", err)
		}

		songs, err := s.ListSongs(map[string]any{"favorites": true})
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected both membership rows flagged, got %d", len(songs))
		}
	})
}

func TestDeleteSongByTrackID(t *testing.T) {
	t.Run("removes all memberships", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		playlist, err := s.CreatePlaylist("Focus", "")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if _, err := s.AddSong(testSong("abc123", models.DefaultLibraryID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}
		if _, err := s.AddSong(testSong("abc123", playlist.ID)); err != nil {
			t.Fatalf("failed to add song: %v", err)
		}

		removed, err := s.DeleteSongByTrackID("abc123")
		if err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}
		if removed != 2 {
			t.Errorf("expected 2 rows removed, got %d", removed)
		}
	})

	t.Run("unknown track removes nothing", func(t *testing.T) {
		s := setupTestStore(t)
		defer s.Close()

		removed, err := s.DeleteSongByTrackID("ghost")
		if err != nil {
			t.Fatalf("delete of unknown track should not error: %v", err)
		}
		if removed != 0 {
			t.Errorf("expected 0 rows removed, got %d", removed)
		}
	})
}
