package tablefilter

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/filter"
	"github.com/hugr-lab/tablefilter/internal/serialize"
)

// Table is an immutable set of filterable columns backed by a DuckDB
// expression factory. Safe for concurrent use.
type Table struct {
	columns []condition.Column
	factory *filter.Factory
}

// Columns returns the table columns in declaration order.
func (t *Table) Columns() []condition.Column {
	return t.factory.Columns()
}

// Column looks up a column by name.
func (t *Table) Column(name string) (condition.Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return condition.Column{}, false
}

// Factory returns the DuckDB expression factory for the table.
func (t *Table) Factory() *filter.Factory {
	return t.factory
}

// Pushdown collects predicates into a filter pushdown bound to the table's
// columns. Nil predicates are skipped.
func (t *Table) Pushdown(preds ...condition.Predicate) *filter.FilterPushdown {
	return t.factory.Pushdown(preds...)
}

// Where encodes predicates as the body of a DuckDB WHERE clause.
// It returns "" when nothing restricts the rows.
func (t *Table) Where(preds ...condition.Predicate) string {
	return filter.NewDuckDBEncoder(nil).EncodeFilters(t.Pushdown(preds...))
}

// Match reports whether row passes every predicate.
func (t *Table) Match(row filter.Row, preds ...condition.Predicate) (bool, error) {
	return filter.Evaluate(t.Pushdown(preds...), row)
}

// MarshalPushdown encodes predicates as DuckDB Airport filter pushdown
// JSON, the form a Flight server receives alongside a scan.
func (t *Table) MarshalPushdown(preds ...condition.Predicate) ([]byte, error) {
	data, err := filter.Marshal(t.Pushdown(preds...))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter pushdown: %w", err)
	}
	return data, nil
}

// MatchPushdown reports whether row passes the filter pushdown JSON in
// data, as produced by MarshalPushdown.
func (t *Table) MatchPushdown(data []byte, row filter.Row) (bool, error) {
	fp, err := filter.Parse(data)
	if err != nil {
		return false, fmt.Errorf("failed to parse filter pushdown: %w", err)
	}
	return filter.Evaluate(fp, row)
}

// TableBuilder builds tables using fluent API.
// Not thread-safe - use only during initialization.
type TableBuilder struct {
	columns []condition.Column
	built   bool
}

// NewTableBuilder creates a new fluent table builder.
//
// Example:
//
//	table, err := tablefilter.NewTableBuilder().
//	    Column("id", "long").
//	    Column("name", "java.lang.String").
//	    ArrowColumn("created", arrow.FixedWidthTypes.Timestamp_us).
//	    Build()
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{columns: make([]condition.Column, 0)}
}

// Column adds a column with a raw type name, JVM or DuckDB style.
// Returns self for method chaining.
func (tb *TableBuilder) Column(name, typeName string) *TableBuilder {
	tb.columns = append(tb.columns, condition.Column{Name: name, Type: typeName})
	return tb
}

// ArrowColumn adds a column typed by its Arrow data type.
// Returns self for method chaining.
func (tb *TableBuilder) ArrowColumn(name string, dt arrow.DataType) *TableBuilder {
	return tb.Column(name, coltype.FromArrow(dt))
}

// Build finalizes the table. Can only be called once.
// Returns error if a column name is empty or repeated, or a type is empty.
func (tb *TableBuilder) Build() (*Table, error) {
	if tb.built {
		return nil, fmt.Errorf("%w: table already built", ErrInvalidTable)
	}

	seen := make(map[string]bool, len(tb.columns))
	for i, c := range tb.columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidTable, i)
		}
		if c.Type == "" {
			return nil, fmt.Errorf("%w: column %s has no type", ErrInvalidTable, c.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: duplicate column name: %s", ErrInvalidTable, c.Name)
		}
		seen[c.Name] = true
	}

	tb.built = true

	columns := make([]condition.Column, len(tb.columns))
	copy(columns, tb.columns)
	return &Table{
		columns: columns,
		factory: filter.NewFactory(columns),
	}, nil
}

// TableFromArrowSchema builds a table with one column per schema field.
func TableFromArrowSchema(schema *arrow.Schema) (*Table, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidTable)
	}
	tb := NewTableBuilder()
	for _, field := range schema.Fields() {
		tb.ArrowColumn(field.Name, field.Type)
	}
	return tb.Build()
}

// TableFromIPC builds a table from the schema at the head of an Arrow IPC
// stream. A nil allocator uses memory.DefaultAllocator.
func TableFromIPC(r io.Reader, allocator memory.Allocator) (*Table, error) {
	schema, err := serialize.ReadSchema(r, allocator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return TableFromArrowSchema(schema)
}
