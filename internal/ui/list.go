package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tapedeck/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
	_ list.Item = candidateItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	if i.playlist.Description != "" {
		return i.playlist.Description
	}
	return fmt.Sprintf("playlist #%d", i.playlist.ID)
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string {
	if i.song.IsFavorite {
		return fmt.Sprintf("%s ♥", i.song.Title)
	}
	return i.song.Title
}
func (i songItem) Description() string {
	return fmt.Sprintf("%s • %s", i.song.Artist, i.song.Duration)
}

// candidateItem wraps [models.SongCandidate] to implement [list.Item].
type candidateItem struct {
	candidate models.SongCandidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string       { return i.candidate.Title }
func (i candidateItem) Description() string {
	return fmt.Sprintf("%s • %s", i.candidate.Artist, i.candidate.Duration)
}
