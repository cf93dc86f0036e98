// Package server runs the short-lived local HTTP server used by `ytsp auth`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] completes the Google authorization code flow: it checks the state parameter,
// exchanges the code for a token and delivers exactly one [OAuthResult] on its result channel.
// Later callbacks are rejected.
//
// # Handler Interface
//
// Custom handlers implement [Handler], which adds Routes to [http.Handler] so a handler can register every path it serves.
package server
