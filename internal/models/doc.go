// Package models defines domain entities for the tapedeck music library service.
//
// The package contains plain data transfer objects shared by the store, the
// lookup services, and the HTTP facade:
//   - [Playlist] : A stored song container with a unique name
//   - [Song] : A playlist membership row for an external track
//   - [SongCandidate] : A search result not yet saved to any playlist
//   - [ContentView] : A titled song listing returned to clients
//
// Two playlist ids are reserved: [DefaultLibraryID] is the always-present
// library every song lands in when no target is given, and [FavoritesViewID]
// names the computed liked-songs view. The favorites view is a filter over
// the is_favorite flag, never a stored container.
package models
