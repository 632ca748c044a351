package orm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Table runs single-table statements for the model type T.
type Table[T any] struct {
	mapping *Mapping
}

// NewTable builds (or loads from cache) the mapping for T.
func NewTable[T any]() (*Table[T], error) {
	m, err := MappingOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return &Table[T]{mapping: m}, nil
}

// MustTable is NewTable for package-level model declarations; it panics on
// an invalid model.
func MustTable[T any]() *Table[T] {
	t, err := NewTable[T]()
	if err != nil {
		panic(err)
	}
	return t
}

// Mapping exposes the table layout.
func (t *Table[T]) Mapping() *Mapping {
	return t.mapping
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.mapping.Table
}

// Find loads the row with the given primary key. A missing row yields an
// error wrapping pgx.ErrNoRows.
func (t *Table[T]) Find(ctx context.Context, db DBTX, pk any) (*T, error) {
	sql := fmt.Sprintf("%s where %s=?", t.mapping.selectSQL, quote(t.mapping.PrimaryKey.Name))
	logSQL(ctx, sql)

	rows, err := db.Query(ctx, Rebind(sql), pk)
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}
	return item, nil
}

// FindAll loads every row matching q.
func (t *Table[T]) FindAll(ctx context.Context, db DBTX, q Query) ([]*T, error) {
	var sb strings.Builder
	sb.WriteString(t.mapping.selectSQL)

	args := append([]any{}, q.Args...)
	if q.Where != "" {
		sb.WriteString(" where ")
		sb.WriteString(q.Where)
	}
	if q.OrderBy != "" {
		sb.WriteString(" order by ")
		sb.WriteString(q.OrderBy)
	}
	if q.Limit > 0 {
		sb.WriteString(" limit ?")
		args = append(args, q.Limit)
	}
	if q.Offset > 0 {
		sb.WriteString(" offset ?")
		args = append(args, q.Offset)
	}

	sql := sb.String()
	logSQL(ctx, sql)

	rows, err := db.Query(ctx, Rebind(sql), args...)
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}

	zerolog.Ctx(ctx).Debug().Str("table", t.mapping.Table).Int("rows", len(items)).Msg("rows returned")
	return items, nil
}

// FindNumber runs `select <selectField> _num_ from table [where ...]` and
// returns the number, e.g. FindNumber(ctx, db, "count(id)", "").
// A NULL result counts as 0.
func (t *Table[T]) FindNumber(ctx context.Context, db DBTX, selectField, where string, args ...any) (int64, error) {
	sql := fmt.Sprintf("select %s _num_ from %s", selectField, quote(t.mapping.Table))
	if where != "" {
		sql += " where " + where
	}
	logSQL(ctx, sql)

	var num *int64
	if err := db.QueryRow(ctx, Rebind(sql), args...).Scan(&num); err != nil {
		return 0, fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}
	if num == nil {
		return 0, nil
	}
	return *num, nil
}

// Save inserts m. Models implementing Defaulter get their defaults applied first.
func (t *Table[T]) Save(ctx context.Context, db DBTX, m *T) error {
	if d, ok := any(m).(Defaulter); ok {
		d.ApplyDefaults()
	}

	v := reflect.ValueOf(m).Elem()
	args := make([]any, 0, len(t.mapping.Fields)+1)
	for _, f := range t.mapping.Fields {
		args = append(args, v.FieldByIndex(f.Index).Interface())
	}
	args = append(args, v.FieldByIndex(t.mapping.PrimaryKey.Index).Interface())

	return t.exec(ctx, db, "insert", t.mapping.insertSQL, args)
}

// Update writes every non-key column of m by primary key.
func (t *Table[T]) Update(ctx context.Context, db DBTX, m *T) error {
	v := reflect.ValueOf(m).Elem()
	args := make([]any, 0, len(t.mapping.Fields)+1)
	for _, f := range t.mapping.Fields {
		args = append(args, v.FieldByIndex(f.Index).Interface())
	}
	args = append(args, v.FieldByIndex(t.mapping.PrimaryKey.Index).Interface())

	return t.exec(ctx, db, "update", t.mapping.updateSQL, args)
}

// Remove deletes m by primary key.
func (t *Table[T]) Remove(ctx context.Context, db DBTX, m *T) error {
	v := reflect.ValueOf(m).Elem()
	args := []any{v.FieldByIndex(t.mapping.PrimaryKey.Index).Interface()}

	return t.exec(ctx, db, "remove", t.mapping.deleteSQL, args)
}

func (t *Table[T]) exec(ctx context.Context, db DBTX, op, sql string, args []any) error {
	logSQL(ctx, sql)

	tag, err := db.Exec(ctx, Rebind(sql), args...)
	if err != nil {
		return fmt.Errorf("table:%s: %w", t.mapping.Table, err)
	}

	if affected := tag.RowsAffected(); affected != 1 {
		zerolog.Ctx(ctx).Warn().
			Str("table", t.mapping.Table).
			Int64("affected", affected).
			Msgf("failed to %s record", op)
		return fmt.Errorf("table:%s: %s: %w: %d", t.mapping.Table, op, ErrAffectedRows, affected)
	}
	return nil
}

// IsNotAffected reports whether err means a write matched no row.
func IsNotAffected(err error) bool {
	return errors.Is(err, ErrAffectedRows)
}

func logSQL(ctx context.Context, sql string) {
	zerolog.Ctx(ctx).Debug().Msgf("SQL: %s", sql)
}
