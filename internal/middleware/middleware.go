// Package middleware holds the echo middleware of the site: request ids,
// the request scoped logger, session loading and access checks, New Relic
// tracing, rate limiting, and the global error handler.
package middleware
