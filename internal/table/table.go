package table

import (
	"errors"
	"fmt"

	"cartographs/internal/geo"
)

// DType is the storage type of a column.
type DType string

const (
	Int64    DType = "int64"
	Float64  DType = "float64"
	Bool     DType = "bool"
	Object   DType = "object"
	Geometry DType = "geometry"
)

// ErrSchema is returned when a row or column does not fit the table.
var ErrSchema = errors.New("table schema")

// Column is a named, typed sequence of nullable values. A nil entry is null.
type Column struct {
	Name   string
	DType  DType
	values []any
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.values) }

// Value returns row i; nil means null.
func (c *Column) Value(i int) any { return c.values[i] }

// NonNull counts the rows that are not null.
func (c *Column) NonNull() int {
	n := 0
	for _, v := range c.values {
		if v != nil {
			n++
		}
	}
	return n
}

// Numeric reports whether the column holds int64 or float64 values.
func (c *Column) Numeric() bool { return c.DType == Int64 || c.DType == Float64 }

// Float64s returns the non-null values of a numeric column as float64.
func (c *Column) Float64s() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		switch x := v.(type) {
		case int64:
			out = append(out, float64(x))
		case float64:
			out = append(out, x)
		}
	}
	return out
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Name string
	CRS  string

	columns []*Column
	index   map[string]int
	rows    int
}

// New returns an empty table.
func New(name, crs string) *Table {
	return &Table{Name: name, CRS: crs, index: make(map[string]int)}
}

// AddColumn appends an empty column. Columns can only be added before rows.
func (t *Table) AddColumn(name string, dt DType) error {
	if t.rows > 0 {
		return fmt.Errorf("%w: add column %q after %d rows", ErrSchema, name, t.rows)
	}
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("%w: duplicate column %q", ErrSchema, name)
	}
	switch dt {
	case Int64, Float64, Bool, Object, Geometry:
	default:
		return fmt.Errorf("%w: column %q has unknown dtype %q", ErrSchema, name, dt)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, &Column{Name: name, DType: dt})
	return nil
}

// AppendRow adds one row. vals must line up with the columns; nil is null.
func (t *Table) AppendRow(vals ...any) error {
	if len(vals) != len(t.columns) {
		return fmt.Errorf("%w: row has %d values, table has %d columns", ErrSchema, len(vals), len(t.columns))
	}
	for i, v := range vals {
		if v == nil {
			continue
		}
		if !accepts(t.columns[i].DType, v) {
			return fmt.Errorf("%w: column %q (%s) got %T", ErrSchema, t.columns[i].Name, t.columns[i].DType, v)
		}
	}
	for i, v := range vals {
		t.columns[i].values = append(t.columns[i].values, v)
	}
	t.rows++
	return nil
}

func accepts(dt DType, v any) bool {
	switch v.(type) {
	case int64:
		return dt == Int64
	case float64:
		return dt == Float64
	case bool:
		return dt == Bool
	case string:
		return dt == Object
	case geo.MultiPolygon:
		return dt == Geometry
	}
	return false
}

// Len returns the row count.
func (t *Table) Len() int { return t.rows }

// Columns returns the columns in order.
func (t *Table) Columns() []*Column { return t.columns }

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}
