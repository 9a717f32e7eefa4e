// Package store implements SQLite persistence for the song library.
//
// [Store] wraps a single database handle with an explicit lifecycle: the
// caller opens and configures the connection pool, hands it to [New],
// bootstraps the schema and reserved playlists via [Store.Bootstrap], and
// closes at shutdown. Handlers receive the store by reference; no global
// database state exists.
//
// Invariants owned here, enforced at the storage layer rather than with
// application locks:
//   - playlist names are unique ([shared.ErrConflict] on duplicates)
//   - a (track_id, playlist_id) pair is unique; duplicate inserts are
//     silent no-ops (INSERT OR IGNORE)
//   - deleting a playlist cascades to its songs via foreign keys
//   - the default library (id 1) is never deletable
package store
