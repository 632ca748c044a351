// Package errs defines the error shapes returned to API clients.
//
// Every error a handler returns ends up in the global echo error handler,
// which renders it as an HTTPError JSON body. Constructors here cover the
// plain HTTP statuses plus the API error family used by the blog services:
// value errors (bad input on one field), missing resources and permission
// failures.
package errs
