package tablefilter

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hugr-lab/tablefilter/advanced"
	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/filter"
	"github.com/hugr-lab/tablefilter/internal/recovery"
	"github.com/hugr-lab/tablefilter/quick"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTableBuilder().
		Column("id", "long").
		Column("name", "java.lang.String").
		Column("active", "boolean").
		Column("created", "io.deephaven.time.DateTime").
		Build()
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	return table
}

func column(t *testing.T, table *Table, name string) condition.Column {
	t.Helper()
	col, ok := table.Column(name)
	if !ok {
		t.Fatalf("unknown column %q", name)
	}
	return col
}

// TestNewValidation tests that invalid configurations are rejected.
func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no factory", Config{}},
		{"unknown time zone", Config{Table: testTable(t), TimeZone: "Mars/Olympus_Mons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

// TestNewDefaults tests the defaults applied to optional fields.
func TestNewDefaults(t *testing.T) {
	table := testTable(t)
	c, err := New(Config{Table: table})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", c.Location())
	}
	if c.Table() != table {
		t.Error("expected configured table")
	}
}

// TestCompileQuickFilter tests quick filters encoded as DuckDB SQL.
func TestCompileQuickFilter(t *testing.T) {
	table := testTable(t)
	c, err := New(Config{Table: table})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		column   string
		text     string
		expected string
	}{
		{"id", ">=5 && <10", "(id >= 5 AND id < 10)"},
		{"id", "1 || null", "(id = 1 OR id IS NULL)"},
		{"active", "!true", "NOT (active = TRUE)"},
		{"name", "", ""},
		{
			"created",
			"2023-07-01",
			"(created >= TIMESTAMPTZ '2023-07-01 00:00:00+00' AND created < TIMESTAMPTZ '2023-07-02 00:00:00+00')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.column+" "+tt.text, func(t *testing.T) {
			p, err := c.CompileQuickFilter(column(t, table, tt.column), tt.text)
			if err != nil {
				t.Fatalf("CompileQuickFilter failed: %v", err)
			}
			if sql := table.Where(p); sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
		})
	}

	_, err = c.CompileQuickFilter(column(t, table, "id"), "5 && abc")
	var ce *quick.CompileError
	if !errors.As(err, &ce) || ce.Fragment != "abc" {
		t.Fatalf("expected CompileError for fragment abc, got %v", err)
	}
	if !errors.Is(err, quick.ErrUnparsableLiteral) {
		t.Errorf("expected ErrUnparsableLiteral, got %v", err)
	}

	// An integer no column type can hold fails instead of vanishing from
	// the WHERE clause.
	huge := "1" + strings.Repeat("0", 42)
	for _, text := range []string{"=" + huge, ">=5 && =" + huge} {
		p, err := c.CompileQuickFilter(column(t, table, "id"), text)
		if !errors.Is(err, quick.ErrUnparsableLiteral) || p != nil {
			t.Errorf("%q: expected ErrUnparsableLiteral, got (%v, %v)", text, p, err)
		}
	}
}

// TestCompileQuickFilterTimeZone tests that dates are read in the
// configured zone and relative to Config.Now.
func TestCompileQuickFilterTimeZone(t *testing.T) {
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	table := testTable(t)
	c, err := New(Config{
		Table:    table,
		TimeZone: "America/New_York",
		Now:      func() time.Time { return time.Date(2023, 7, 15, 2, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p, err := c.CompileQuickFilter(column(t, table, "created"), "today")
	if err != nil {
		t.Fatalf("CompileQuickFilter failed: %v", err)
	}

	expected := "(created >= TIMESTAMPTZ '2023-07-14 04:00:00+00' AND created < TIMESTAMPTZ '2023-07-15 04:00:00+00')"
	if sql := table.Where(p); sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

// TestCompileAdvancedFilter tests the item chain and selection together.
func TestCompileAdvancedFilter(t *testing.T) {
	var buf bytes.Buffer
	table := testTable(t)
	c, err := New(Config{Table: table, Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	name := column(t, table, "name")
	p, err := c.CompileAdvancedFilter(name, advanced.Options{
		Items: []advanced.Item{
			{Operator: condition.StartsWithOp, Value: "a"},
			{Operator: condition.EqOp, Value: "bob"},
		},
		Joins:           []advanced.JoinOperator{advanced.Or},
		SelectedValues:  []any{"ann"},
		InvertSelection: true,
	})
	if err != nil {
		t.Fatalf("CompileAdvancedFilter failed: %v", err)
	}

	rows := []struct {
		row      filter.Row
		expected bool
	}{
		{filter.Row{"name": "alice"}, true},
		{filter.Row{"name": "ann"}, false},
		{filter.Row{"name": "bob"}, true},
		{filter.Row{"name": "carol"}, false},
		{filter.Row{}, false},
	}
	for _, r := range rows {
		ok, err := table.Match(r.row, p)
		if err != nil {
			t.Fatalf("Match failed: %v", err)
		}
		if ok != r.expected {
			t.Errorf("row %v: expected %v, got %v", r.row, r.expected, ok)
		}
	}

	id := column(t, table, "id")
	p, err = c.CompileAdvancedFilter(id, advanced.Options{
		Items:          []advanced.Item{{Operator: condition.EqOp, Value: "five"}},
		SelectedValues: []any{int64(1), int64(2)},
	})
	if err != nil {
		t.Fatalf("CompileAdvancedFilter failed: %v", err)
	}
	if sql := table.Where(p); sql != "id IN (1, 2)" {
		t.Errorf("expected 'id IN (1, 2)', got '%s'", sql)
	}
	if !strings.Contains(buf.String(), "advanced filter item dropped") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

// TestCompileSearch tests whole-row and scoped searches.
func TestCompileSearch(t *testing.T) {
	table := testTable(t)
	c, err := New(Config{Table: table})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p, err := c.CompileSearch("Al", []string{"name"}, nil, false)
	if err != nil {
		t.Fatalf("CompileSearch failed: %v", err)
	}
	if sql := table.Where(p); sql != "contains(lower(CAST(name AS VARCHAR)), 'al')" {
		t.Errorf("unexpected SQL '%s'", sql)
	}

	p, err = c.CompileSearch("x", nil, nil, false)
	if err != nil || p != nil {
		t.Errorf("expected (nil, nil) for no selected columns, got (%v, %v)", p, err)
	}

	p, err = c.CompileSearch("7", nil, nil, true)
	if err != nil {
		t.Fatalf("CompileSearch failed: %v", err)
	}
	ok, err := table.Match(filter.Row{"id": int64(17)}, p)
	if err != nil || !ok {
		t.Errorf("expected whole-row search to match id 17, got (%v, %v)", ok, err)
	}
}

// panicFactory panics on every equality.
type panicFactory struct {
	*filter.Factory
}

func (panicFactory) Eq(condition.Column, condition.Value) condition.Predicate {
	panic("factory failure")
}

func (panicFactory) Search(string, []condition.Column) condition.Predicate {
	panic("factory failure")
}

// TestFactoryPanicRecovered tests that factory panics become errors.
func TestFactoryPanicRecovered(t *testing.T) {
	var buf bytes.Buffer
	table := testTable(t)
	c, err := New(Config{
		Factory: panicFactory{table.Factory()},
		Logger:  slog.New(slog.NewTextHandler(&buf, nil)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	id := column(t, table, "id")
	if _, err := c.CompileQuickFilter(id, "5"); !errors.Is(err, recovery.ErrPanic) {
		t.Errorf("CompileQuickFilter: expected ErrPanic, got %v", err)
	}
	if _, err := c.CompileAdvancedFilter(id, advanced.Options{}); !errors.Is(err, recovery.ErrPanic) {
		t.Errorf("CompileAdvancedFilter: expected ErrPanic, got %v", err)
	}
	if _, err := c.CompileSearch("x", []string{"id"}, table.Columns(), false); !errors.Is(err, recovery.ErrPanic) {
		t.Errorf("CompileSearch: expected ErrPanic, got %v", err)
	}
	if !strings.Contains(buf.String(), "factory failure") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

// TestNormalizeType tests the exported type helpers.
func TestNormalizeType(t *testing.T) {
	tests := []struct {
		raw      string
		expected coltype.SemanticType
	}{
		{"java.lang.Long", coltype.Int},
		{"BIGINT", coltype.Int},
		{"double", coltype.Decimal},
		{"TIMESTAMP WITH TIME ZONE", coltype.DateTime},
		{"java.util.UUID", coltype.Unknown},
	}
	for _, tt := range tests {
		if got := NormalizeType(tt.raw); got != tt.expected {
			t.Errorf("NormalizeType(%q): expected %s, got %s", tt.raw, tt.expected, got)
		}
	}

	if !AreTypesCompatible("INT8", "java.lang.Long") {
		t.Error("expected INT8 and java.lang.Long to be compatible")
	}
	if AreTypesCompatible("java.util.UUID", "java.util.UUID") {
		t.Error("expected unknown types to be incompatible")
	}
	if AreTypesCompatible("int", "double") {
		t.Error("expected int and double to be incompatible")
	}
}
