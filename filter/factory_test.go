package filter

import (
	"math/big"
	"testing"
	"time"

	"github.com/hugr-lab/tablefilter/condition"
)

var (
	colID      = condition.Column{Name: "id", Type: "long"}
	colName    = condition.Column{Name: "name", Type: "java.lang.String"}
	colPrice   = condition.Column{Name: "price", Type: "double"}
	colActive  = condition.Column{Name: "active", Type: "boolean"}
	colCreated = condition.Column{Name: "created", Type: "io.deephaven.time.DateTime"}
	colLetter  = condition.Column{Name: "letter", Type: "char"}
	colOrder   = condition.Column{Name: "order", Type: "int"}
)

func testFactory() *Factory {
	return NewFactory([]condition.Column{
		colID, colName, colPrice, colActive, colCreated, colLetter, colOrder,
	})
}

func encode(f *Factory, p condition.Predicate) string {
	return NewDuckDBEncoder(nil).EncodeFilters(f.Pushdown(p))
}

func TestFactoryEncode(t *testing.T) {
	f := testFactory()
	huge, _ := new(big.Int).SetString("18446744073709551616", 10)
	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		pred     condition.Predicate
		expected string
	}{
		{"eq long", f.Eq(colID, condition.LongValue(big.NewInt(5))), "id = 5"},
		{"not eq long", f.NotEq(colID, condition.LongValue(big.NewInt(-5))), "id <> -5"},
		{"gt double", f.Gt(colPrice, condition.NumberValue(1.5)), "price > 1.5"},
		{"lte double", f.Lte(colPrice, condition.NumberValue(2)), "price <= 2"},
		{"lt string", f.Lt(colName, condition.StringValue("m")), "name < 'm'"},
		{"gte instant", f.Gte(colCreated, condition.InstantValue(ts)), "created >= TIMESTAMPTZ '2023-01-02 03:04:05+00'"},
		{"huge long", f.Eq(colID, condition.LongValue(huge)), "id = 18446744073709551616::HUGEINT"},
		{"eq ignore case", f.EqIgnoreCase(colName, condition.StringValue("Foo")), "lower(name) = 'foo'"},
		{"not eq ignore case", f.NotEqIgnoreCase(colName, condition.StringValue("O'Neil")), "lower(name) <> 'o''neil'"},
		{"is null", f.IsNull(colName), "name IS NULL"},
		{"not is null", f.Not(f.IsNull(colName)), "NOT (name IS NULL)"},
		{"is true", f.IsTrue(colActive), "active = TRUE"},
		{"is false", f.IsFalse(colActive), "active = FALSE"},
		{"is nan", f.IsNaN(colPrice), "isnan(price)"},
		{"is negative infinity", f.IsInfinite(colPrice, true), "(isinf(price) AND price < 0)"},
		{"is positive infinity", f.IsInfinite(colPrice, false), "(isinf(price) AND price > 0)"},
		{"matches text", f.Matches(colName, "(?is).*a.*"), "regexp_full_match(name, '(?is).*a.*')"},
		{"matches number", f.Matches(colID, "1.*"), "regexp_full_match(CAST(id AS VARCHAR), '1.*')"},
		{"in", f.In(colName, []condition.Value{condition.StringValue("a"), condition.StringValue("b")}), "name IN ('a', 'b')"},
		{"not in", f.NotIn(colID, []condition.Value{condition.LongValue(big.NewInt(1)), condition.LongValue(big.NewInt(2))}), "id NOT IN (1, 2)"},
		{"reserved column", f.Eq(colOrder, condition.NumberValue(3)), `"order" = 3`},
		{"search one column", f.Search("Ab", []condition.Column{colName}), "contains(lower(CAST(name AS VARCHAR)), 'ab')"},
		{
			"search two columns",
			f.Search("x", []condition.Column{colName, colLetter}),
			"(contains(lower(CAST(name AS VARCHAR)), 'x') OR contains(lower(CAST(letter AS VARCHAR)), 'x'))",
		},
		{
			"and flattens",
			f.And(f.And(f.IsNull(colName), f.IsTrue(colActive)), f.Gt(colPrice, condition.NumberValue(0))),
			"(name IS NULL AND active = TRUE AND price > 0)",
		},
		{
			"or inside and",
			f.And(f.Or(f.IsNull(colName), f.IsTrue(colActive)), f.IsNaN(colPrice)),
			"((name IS NULL OR active = TRUE) AND isnan(price))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := encode(f, tt.pred)
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
		})
	}
}

func TestFactoryUnknownColumn(t *testing.T) {
	f := testFactory()
	missing := condition.Column{Name: "missing", Type: "int"}
	known := f.Eq(colID, condition.LongValue(big.NewInt(1)))

	if sql := encode(f, f.Eq(missing, condition.NumberValue(1))); sql != "" {
		t.Errorf("expected empty SQL for unknown column, got '%s'", sql)
	}
	if sql := encode(f, f.And(known, f.IsNull(missing))); sql != "id = 1" {
		t.Errorf("expected AND to keep supported child, got '%s'", sql)
	}
	if sql := encode(f, f.Or(known, f.IsNull(missing))); sql != "" {
		t.Errorf("expected OR with unsupported child to be dropped, got '%s'", sql)
	}
}

func TestFactorySearchAllColumns(t *testing.T) {
	f := NewFactory([]condition.Column{colName, colID})
	expected := "(contains(lower(CAST(name AS VARCHAR)), 'q') OR contains(lower(CAST(id AS VARCHAR)), 'q'))"
	if sql := encode(f, f.Search("Q", nil)); sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}

	empty := NewFactory(nil)
	if _, ok := empty.Search("q", nil).(*UnsupportedExpression); !ok {
		t.Errorf("expected unsupported expression for search over no columns")
	}
}

func TestFactoryPushdown(t *testing.T) {
	f := testFactory()
	fp := f.Pushdown(nil, f.IsNull(colName), nil, f.IsTrue(colActive))

	if len(fp.Filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(fp.Filters))
	}
	if len(fp.ColumnBindings) != 7 || fp.ColumnBindings[1] != "name" {
		t.Errorf("unexpected column bindings %v", fp.ColumnBindings)
	}

	sql := NewDuckDBEncoder(nil).EncodeFilters(fp)
	expected := "(name IS NULL) AND (active = TRUE)"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestLogicalTypeOf(t *testing.T) {
	tests := []struct {
		raw      string
		expected LogicalTypeID
	}{
		{"long", TypeIDBigInt},
		{"int", TypeIDInteger},
		{"java.lang.Integer", TypeIDBigInt},
		{"java.math.BigInteger", TypeIDHugeInt},
		{"double", TypeIDDouble},
		{"java.math.BigDecimal", TypeIDDouble},
		{"DECIMAL(18, 3)", TypeIDDecimal},
		{"boolean", TypeIDBoolean},
		{"char", TypeIDChar},
		{"java.lang.String", TypeIDVarchar},
		{"TEXT", TypeIDVarchar},
		{"io.deephaven.time.DateTime", TypeIDTimestampTZ},
		{"TIMESTAMP WITH TIME ZONE", TypeIDTimestampTZ},
		{"datetime", TypeIDTimestamp},
		{"BLOB", TypeIDUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := logicalTypeOf(tt.raw).ID; got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestEncoderColumnMapping(t *testing.T) {
	f := testFactory()
	fp := f.Pushdown(f.And(f.IsNull(colName), f.Gt(colPrice, condition.NumberValue(1))))

	enc := NewDuckDBEncoder(&EncoderOptions{
		ColumnMapping:     map[string]string{"name": "full name"},
		ColumnExpressions: map[string]string{"price": "(net + tax)"},
	})
	expected := `("full name" IS NULL AND (net + tax) > 1)`
	if sql := enc.EncodeFilters(fp); sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestFormatDouble(t *testing.T) {
	f := testFactory()
	tests := []struct {
		value    float64
		expected string
	}{
		{1234.5, "price = 1234.5"},
		{-0.25, "price = -0.25"},
		{1e21, "price = 1e+21"},
	}
	for _, tt := range tests {
		if sql := encode(f, f.Eq(colPrice, condition.NumberValue(tt.value))); sql != tt.expected {
			t.Errorf("expected '%s', got '%s'", tt.expected, sql)
		}
	}
}
