package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tapedeck/internal/formatter"
	"github.com/desertthunder/tapedeck/internal/library"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryPlaylists lists stored playlists.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	playlists, err := r.libraryService(s).ListPlaylists()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Playlists")
	for _, pl := range playlists {
		r.writePlain("%d. %s", pl.ID, pl.Name)
		if pl.Description != "" {
			r.writePlain(" - %s", pl.Description)
		}
		r.writePlain("\n")
	}
	r.writePlainln("Total: %d", len(playlists))

	return nil
}

// LibrarySongs lists songs for a content view.
func (r *Runner) LibrarySongs(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	mode := library.Mode(cmd.String("mode"))
	playlistID := int64(cmd.Int("playlist-id"))

	view, err := r.libraryService(s).GetContent(mode, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(view, cmd.Bool("pretty"))
	}

	r.writePlainHeader(view.Title)
	for i, song := range view.Songs {
		liked := ""
		if song.IsFavorite {
			liked = " ♥"
		}
		r.writePlain("%d. %s - %s [%s]%s\n", i+1, song.Artist, song.Title, song.Duration, liked)
	}
	r.writePlainln("Total: %d", len(view.Songs))

	return nil
}

// LibraryExport writes a playlist's songs to csv, markdown, or text files.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	playlistID := int64(cmd.Int("id"))
	format := cmd.String("format")
	output := cmd.String("output")

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	playlist, err := s.GetPlaylist(playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	songs, err := s.ListSongs(map[string]any{"playlist_id": playlistID})
	if err != nil {
		return fmt.Errorf("failed to load songs: %w", err)
	}

	export := &models.PlaylistExport{Playlist: *playlist, Songs: songs}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %d songs\n", len(songs))
		r.writePlain("Songs: %s\n", result.SongsFile)
		r.writePlain("Metadata: %s\n", result.MetadataFile)

	case "markdown", "md":
		imageURL := ""
		if len(songs) > 0 {
			imageURL = songs[0].Cover
		}
		result, err := formatter.WriteMarkdownExport(export, output, imageURL)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %d songs to %s\n", len(songs), result.Directory)
		for _, file := range result.Files {
			r.writePlain("  %s\n", file)
		}

	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %d songs to %s\n", len(songs), path)

	default:
		return fmt.Errorf("%w: unknown format %q (csv, markdown, text)", shared.ErrInvalidFlag, format)
	}

	return nil
}
