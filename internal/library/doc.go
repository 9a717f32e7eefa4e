// Package library orchestrates store operations into the views and
// behaviors the HTTP facade and CLI need.
//
// [Service] holds no state of its own; it selects filters and titles for
// content views, saves search candidates into playlists, and passes
// playlist and favorite mutations through to the store while preserving
// the store's error taxonomy.
package library
