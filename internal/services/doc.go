// Package services implements audio lookups against Piped-compatible API
// instances.
//
// # Lookup Interface
//
// Every provider implements [Lookup], so the resolver and search gateway
// work uniformly across instances and test doubles.
//
// # Provider Fallback
//
// Public Piped instances come and go, so nothing in this package trusts a
// single one. [Resolver] and [Gateway] scan a statically configured,
// ordered provider list and keep the first usable answer. A failing
// provider is a normal outcome: its error is logged and swallowed, and the
// scan moves on. Only when every provider has failed does an error surface
// ([shared.ErrResolution] for stream resolution; search degrades to an
// empty result instead).
//
// Each provider attempt runs under its own bounded timeout, and a shared
// rate limiter keeps the client polite toward public instances.
//
// # Error Handling
//
// Single-provider failures are wrapped as [shared.ErrProvider] and never
// surface to callers. Resolved stream URLs are short-lived, issued by the
// provider; they are returned as-is and never persisted.
package services
