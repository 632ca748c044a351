package orm

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Field maps one struct field onto one column.
type Field struct {
	// Name is the column name.
	Name string

	// GoName is the struct field name.
	GoName string

	// Index is the reflect index path of the field inside the model.
	Index []int

	// ColumnType is the column DDL type, e.g. varchar(50), boolean, text.
	ColumnType string

	PrimaryKey bool
}

// Kind names the field flavour: StringField, BooleanField, IntegerField,
// FloatField, TextField or TimeField.
func (f Field) Kind() string {
	switch {
	case f.ColumnType == "text":
		return "TextField"
	case strings.HasPrefix(f.ColumnType, "varchar"), strings.HasPrefix(f.ColumnType, "char"):
		return "StringField"
	case f.ColumnType == "boolean":
		return "BooleanField"
	case f.ColumnType == "bigint", f.ColumnType == "integer":
		return "IntegerField"
	case f.ColumnType == "real", f.ColumnType == "double precision":
		return "FloatField"
	case strings.HasPrefix(f.ColumnType, "timestamp"):
		return "TimeField"
	default:
		return "Field"
	}
}

func (f Field) String() string {
	return fmt.Sprintf("<%s, %s:%s>", f.Kind(), f.ColumnType, f.Name)
}

// Mapping is the table layout of one model type.
type Mapping struct {
	Type       reflect.Type
	Table      string
	PrimaryKey Field

	// Fields holds every non-key field in declaration order.
	Fields []Field

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// SelectSQL returns `select pk, f1, ... from table`.
func (m *Mapping) SelectSQL() string { return m.selectSQL }

// InsertSQL returns `insert into table (f1, ..., pk) values (?, ...)`.
func (m *Mapping) InsertSQL() string { return m.insertSQL }

// UpdateSQL returns `update table set f1=?, ... where pk=?`.
func (m *Mapping) UpdateSQL() string { return m.updateSQL }

// DeleteSQL returns `delete from table where pk=?`.
func (m *Mapping) DeleteSQL() string { return m.deleteSQL }

// Columns lists the primary key followed by the other columns.
func (m *Mapping) Columns() []string {
	cols := make([]string, 0, len(m.Fields)+1)
	cols = append(cols, m.PrimaryKey.Name)
	for _, f := range m.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

type tableNamer interface {
	TableName() string
}

var mappings sync.Map // reflect.Type -> *Mapping

// MappingOf returns the cached mapping for t, building it on first use.
func MappingOf(t reflect.Type) (*Mapping, error) {
	if cached, ok := mappings.Load(t); ok {
		return cached.(*Mapping), nil
	}

	m, err := buildMapping(t)
	if err != nil {
		return nil, err
	}

	actual, _ := mappings.LoadOrStore(t, m)
	return actual.(*Mapping), nil
}

func buildMapping(t reflect.Type) (*Mapping, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	tableName := strings.ToLower(t.Name())
	if namer, ok := reflect.New(t).Interface().(tableNamer); ok {
		tableName = namer.TableName()
	}

	log.Debug().Str("model", t.Name()).Str("table", tableName).Msg("found model")

	m := &Mapping{Type: t, Table: tableName}
	var pk *Field

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			// promoted fields show up on their own
			continue
		}

		column, ok := columnName(sf)
		if !ok {
			continue
		}

		field := Field{Name: column, GoName: sf.Name, Index: sf.Index}
		opts := parseOptions(sf.Tag.Get("orm"))
		field.PrimaryKey = opts.pk
		field.ColumnType = opts.columnType
		if field.ColumnType == "" {
			inferred, err := inferColumnType(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s (%s)", err, t.Name(), sf.Name, sf.Type)
			}
			field.ColumnType = inferred
		}

		log.Debug().Str("model", t.Name()).Msgf("  found mapping: %s ==> %s", sf.Name, field)

		if field.PrimaryKey {
			if pk != nil {
				return nil, fmt.Errorf("%w for field: %s", ErrDuplicatePrimaryKey, sf.Name)
			}
			f := field
			pk = &f
			continue
		}
		m.Fields = append(m.Fields, field)
	}

	if pk == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimaryKey, t.Name())
	}
	m.PrimaryKey = *pk

	m.buildStatements()
	return m, nil
}

func (m *Mapping) buildStatements() {
	table := quote(m.Table)
	pk := quote(m.PrimaryKey.Name)

	escaped := make([]string, len(m.Fields))
	assignments := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		escaped[i] = quote(f.Name)
		assignments[i] = quote(f.Name) + "=?"
	}

	selectCols := append([]string{pk}, escaped...)
	insertCols := append(append([]string{}, escaped...), pk)

	m.selectSQL = fmt.Sprintf("select %s from %s", strings.Join(selectCols, ", "), table)
	m.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)", table, strings.Join(insertCols, ", "), placeholders(len(insertCols)))
	m.updateSQL = fmt.Sprintf("update %s set %s where %s=?", table, strings.Join(assignments, ", "), pk)
	m.deleteSQL = fmt.Sprintf("delete from %s where %s=?", table, pk)
}

// columnName reads the `db` tag. `db:"-"` skips the field; a missing tag
// falls back to the lower-cased field name.
func columnName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup("db")
	if !ok {
		return strings.ToLower(sf.Name), true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	return name, true
}

type fieldOptions struct {
	pk         bool
	columnType string
}

// parseOptions reads `orm:"pk,type=varchar(50)"`. The type option must come
// last.
func parseOptions(tag string) fieldOptions {
	var opts fieldOptions
	if tag == "" {
		return opts
	}

	// type values may contain commas, e.g. numeric(10,2), so take the
	// remainder of the tag once type= is seen.
	rest := tag
	for rest != "" {
		var part string
		if strings.HasPrefix(rest, "type=") {
			opts.columnType = strings.TrimPrefix(rest, "type=")
			break
		}
		part, rest, _ = strings.Cut(rest, ",")
		if strings.TrimSpace(part) == "pk" {
			opts.pk = true
		}
		rest = strings.TrimLeft(rest, " ")
	}
	return opts
}

var timeType = reflect.TypeOf(time.Time{})

func inferColumnType(t reflect.Type) (string, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "timestamptz", nil
	}

	switch t.Kind() {
	case reflect.String:
		return "varchar(100)", nil
	case reflect.Bool:
		return "boolean", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "bigint", nil
	case reflect.Float32, reflect.Float64:
		return "real", nil
	default:
		return "", ErrUnsupportedType
	}
}
