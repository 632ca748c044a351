// Package sqlerr translates database driver errors.
//
// It turns pgx/Postgres errors (unique violations, missing rows and so on)
// into errs.HTTPError values with stable codes and user-facing messages,
// so no SQL detail ever reaches a client.
package sqlerr
