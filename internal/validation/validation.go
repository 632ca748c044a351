// Package validation binds request data into typed payloads and checks it.
//
// Struct tag rules (`validate:"required,email"`) run first through a shared
// go-playground validator; the payload's own Validate method runs after and
// may normalize values or report errors tags cannot express.
package validation
