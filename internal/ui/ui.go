package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tapedeck/internal/library"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SongListView
	SearchInputView
	SearchResultsView
)

// Library defines the orchestration operations the TUI depends on.
// Satisfied by [library.Service].
type Library interface {
	ListPlaylists() ([]models.Playlist, error)
	GetContent(mode library.Mode, playlistID int64) (*models.ContentView, error)
	SaveCandidate(candidate models.SongCandidate, playlistID int64) (*models.Song, bool, error)
	ToggleFavorite(trackID string) (bool, error)
	RemoveTrack(trackID string) error
}

// Searcher maps a free-text query to candidate tracks.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SongCandidate, error)
}

// StreamResolver maps a track id to a playable stream URL.
type StreamResolver interface {
	Resolve(ctx context.Context, trackID string) (*services.Resolution, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx              context.Context
	view             ViewState
	lib              Library
	searcher         Searcher
	resolver         StreamResolver
	width            int
	height           int
	playlistList     list.Model
	selectedPlaylist *models.Playlist
	songList         list.Model
	searchInput      textinput.Model
	resultList       list.Model
	status           string
	err              error
	help             help.Model
	keys             keyMap
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type songsFetchedMsg struct {
	view *models.ContentView
	err  error
}

type searchDoneMsg struct {
	candidates []models.SongCandidate
	err        error
}

type candidateSavedMsg struct {
	song    *models.Song
	created bool
	err     error
}

type favoriteToggledMsg struct {
	trackID string
	liked   bool
	err     error
}

type trackRemovedMsg struct {
	trackID string
	err     error
}

type resolvedMsg struct {
	resolution *services.Resolution
	err        error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, lib Library, searcher Searcher, resolver StreamResolver) *Model {
	input := textinput.New()
	input.Placeholder = "artist or song title"
	input.CharLimit = 120

	return &Model{
		ctx:         ctx,
		view:        PlaylistListView,
		lib:         lib,
		searcher:    searcher,
		resolver:    resolver,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching playlists from the library.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case SearchInputView:
			return m.handleSearchInputKeys(msg)
		case SearchResultsView:
			return m.handleSearchResultsKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		items := make([]list.Item, len(msg.view.Songs))
		for i, song := range msg.view.Songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = msg.view.Title
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("search failed: %v", msg.err))
			m.view = SongListView
			return m, nil
		}
		items := make([]list.Item, len(msg.candidates))
		for i, c := range msg.candidates {
			items[i] = candidateItem{candidate: c}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for %q", m.searchInput.Value())
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = SearchResultsView
		return m, nil

	case candidateSavedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("save failed: %v", msg.err))
			return m, nil
		}
		if msg.created {
			m.status = styles.ok.Render(fmt.Sprintf("saved %s", msg.song.Title))
		} else {
			m.status = styles.warn.Render(fmt.Sprintf("%s is already in the playlist", msg.song.Title))
		}
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("like failed: %v", msg.err))
			return m, nil
		}
		if msg.liked {
			m.status = styles.ok.Render("liked")
		} else {
			m.status = styles.warn.Render("unliked")
		}
		return m, m.refreshSongs()

	case trackRemovedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("remove failed: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render("removed")
		return m, m.refreshSongs()

	case resolvedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("resolve failed: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("%s (%s)", msg.resolution.URL, msg.resolution.Provider))
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case SongListView:
		return m.renderSongList()
	case SearchInputView:
		return m.renderSearchInput()
	case SearchResultsView:
		return m.renderSearchResults()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		return m.openSearch()
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				m.selectedPlaylist = &pl.playlist
				m.status = ""
				return m, m.fetchSongs(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		m.status = ""
		return m, nil
	case "/":
		return m.openSearch()
	case "f":
		if song, ok := m.selectedSong(); ok {
			return m, m.toggleFavorite(song.TrackID)
		}
	case "x":
		if song, ok := m.selectedSong(); ok {
			return m, m.removeTrack(song.TrackID)
		}
	case "p":
		if song, ok := m.selectedSong(); ok {
			m.status = styles.help.Render("resolving...")
			return m, m.resolve(song.TrackID)
		}
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongListView
		if m.selectedPlaylist == nil {
			m.view = PlaylistListView
		}
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.status = ""
		return m, m.search(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SearchInputView
		return m, nil
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(candidateItem); ok {
				playlistID := models.DefaultLibraryID
				if m.selectedPlaylist != nil {
					playlistID = m.selectedPlaylist.ID
				}
				return m, m.saveCandidate(item.candidate, playlistID)
			}
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) openSearch() (tea.Model, tea.Cmd) {
	m.view = SearchInputView
	m.status = ""
	m.searchInput.SetValue("")
	return m, m.searchInput.Focus()
}

func (m *Model) selectedSong() (models.Song, bool) {
	selected := m.songList.SelectedItem()
	if selected == nil {
		return models.Song{}, false
	}
	item, ok := selected.(songItem)
	return item.song, ok
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	case SearchInputView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case SearchResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.lib.ListPlaylists()
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchSongs(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		view, err := m.lib.GetContent(library.ModePlaylist, playlistID)
		return songsFetchedMsg{view: view, err: err}
	}
}

func (m *Model) refreshSongs() tea.Cmd {
	if m.selectedPlaylist == nil {
		return nil
	}
	return m.fetchSongs(m.selectedPlaylist.ID)
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.searcher.Search(m.ctx, query)
		return searchDoneMsg{candidates: candidates, err: err}
	}
}

func (m *Model) saveCandidate(candidate models.SongCandidate, playlistID int64) tea.Cmd {
	return func() tea.Msg {
		song, created, err := m.lib.SaveCandidate(candidate, playlistID)
		return candidateSavedMsg{song: song, created: created, err: err}
	}
}

func (m *Model) toggleFavorite(trackID string) tea.Cmd {
	return func() tea.Msg {
		liked, err := m.lib.ToggleFavorite(trackID)
		return favoriteToggledMsg{trackID: trackID, liked: liked, err: err}
	}
}

func (m *Model) removeTrack(trackID string) tea.Cmd {
	return func() tea.Msg {
		err := m.lib.RemoveTrack(trackID)
		return trackRemovedMsg{trackID: trackID, err: err}
	}
}

func (m *Model) resolve(trackID string) tea.Cmd {
	return func() tea.Msg {
		resolution, err := m.resolver.Resolve(m.ctx, trackID)
		return resolvedMsg{resolution: resolution, err: err}
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.playlistList.View(), m.status, helpView)
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.favorite, m.keys.remove, m.keys.resolve, m.keys.search, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.songList.View(), m.status, helpView)
}

func (m *Model) renderSearchInput() string {
	title := styles.title.Render("Search")
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, m.searchInput.View(), m.status, helpView)
}

func (m *Model) renderSearchResults() string {
	saveKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	)
	helpKeys := []key.Binding{saveKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.resultList.View(), m.status, helpView)
}
