// Package server provides HTTP routing, middleware, and the JSON API
// facade for the library service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # API Facade
//
// [LibraryHandler] and [LookupHandler] implement the [Handler] interface:
// they encapsulate their route definitions and translate the domain error
// taxonomy into HTTP statuses. Storage-invariant violations surface as 4xx
// responses with a status field and no internal detail; provider failures
// are absorbed by the lookup layer and only reach clients once every
// fallback is exhausted. Unexpected errors are logged server-side and
// reported generically.
//
// Every request is stateless; the store handle is passed in explicitly at
// construction, never held as package state.
package server
