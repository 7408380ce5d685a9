// Package server provides the temporary local HTTP server used during
// social sign-in.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [RequestLogger] is the one middleware shipped with the package and logs each request at debug level.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] implements the OAuth2 authorization code callback.
// It validates the state parameter, exchanges the authorization code for
// a token, and delivers the result through a channel. Only the first
// callback is processed.
//
// When the user runs `infinitunes auth login`, a server starts on the
// configured host and port, the browser opens the provider's consent
// page, and the server shuts down once the callback has been handled.
package server
