// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the library:
//  1. [PlaylistListView] : Browse and select playlists
//  2. [SongListView] : View a playlist's songs, like, remove, or resolve a stream URL
//  3. [SearchInputView] : Enter a free-text query
//  4. [SearchResultsView] : Save candidates into the selected playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Library and provider calls run as tea commands so the interface never blocks on I/O.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, f, x, p, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
