// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate requests through the validation package, call
// the service layer and pick how the result is written: JSON, no content,
// a file download or a server-rendered page.
package handler
