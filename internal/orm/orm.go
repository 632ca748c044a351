// Package orm maps Go structs onto database tables.
//
// A model is a plain struct whose exported fields carry `db` tags naming
// their columns. Exactly one field is marked as the primary key:
//
//	type User struct {
//	    ID    string `db:"id" orm:"pk,type=varchar(50)"`
//	    Email string `db:"email" orm:"type=varchar(50)"`
//	    Admin bool   `db:"admin"`
//	}
//
// NewTable reflects over the struct once, builds the select, insert, update
// and delete statements for it and caches the result. Table then offers the
// usual single-table operations (Find, FindAll, FindNumber, Save, Update,
// Remove) over any DBTX: a pgx pool, connection or transaction.
//
// Statements are written with `?` placeholders and rebound to Postgres
// `$n` placeholders right before they are sent.
package orm

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoPrimaryKey is returned for a model without an `orm:"pk"` field.
	ErrNoPrimaryKey = errors.New("orm: primary key not found")

	// ErrDuplicatePrimaryKey is returned when more than one field is marked pk.
	ErrDuplicatePrimaryKey = errors.New("orm: duplicate primary key")

	// ErrNotStruct is returned when a model type is not a struct.
	ErrNotStruct = errors.New("orm: model must be a struct")

	// ErrUnsupportedType is returned for a field whose column type cannot be
	// inferred and has no `type=` option.
	ErrUnsupportedType = errors.New("orm: unsupported field type")

	// ErrAffectedRows is returned when a write touched a number of rows other than one.
	ErrAffectedRows = errors.New("orm: unexpected affected rows")
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query narrows FindAll. Zero values mean "not set".
type Query struct {
	// Where is a SQL fragment with `?` placeholders, without the WHERE keyword.
	Where string
	Args  []any

	// OrderBy is a SQL fragment without the ORDER BY keywords, e.g. "created_at desc".
	OrderBy string

	Limit  int
	Offset int
}

// Defaulter is implemented by models that fill in default values (ids,
// timestamps) before they are inserted.
type Defaulter interface {
	ApplyDefaults()
}

// Rebind rewrites `?` placeholders into `$1`, `$2`, ... Question marks inside
// single-quoted literals and double-quoted identifiers are left alone.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			b.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			b.WriteByte(c)
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// quote wraps an identifier in double quotes.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// placeholders returns "?, ?, ?" with n marks.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
