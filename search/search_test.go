package search

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/filter"
)

var testColumns = []condition.Column{
	{Name: "name", Type: "java.lang.String"},
	{Name: "qty", Type: "int"},
	{Name: "note", Type: "java.lang.String"},
}

var testRows = []filter.Row{
	{"name": "Foo", "qty": 1, "note": "plain"},
	{"name": "bar", "qty": 42, "note": "FOOTNOTE"},
	{"name": "baz", "qty": 7},
	{},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		selected []string
		invert   bool
		nilPred  bool
		matches  []int
	}{
		{name: "empty text", text: "", selected: []string{"name"}, nilPred: true},
		{name: "no columns selected", text: "x", nilPred: true},
		{name: "everything deselected", text: "x", selected: []string{"name", "qty", "note"}, invert: true, nilPred: true},
		{name: "one column", text: "foo", selected: []string{"name"}, matches: []int{1}},
		{name: "two columns", text: "foo", selected: []string{"note", "name"}, matches: []int{1, 2}},
		{name: "numbers as text", text: "4", selected: []string{"qty"}, matches: []int{2}},
		{name: "inverted", text: "foo", selected: []string{"name", "qty"}, invert: true, matches: []int{2}},
		{name: "whole row", text: "ba", selected: []string{"name", "qty", "note"}, matches: []int{2, 3}},
		{name: "whole row inverted", text: "7", invert: true, matches: []int{3}},
		{name: "unknown names ignored", text: "foo", selected: []string{"name", "missing"}, matches: []int{1}},
	}

	f := filter.NewFactory(testColumns)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compile(f, tt.text, tt.selected, testColumns, tt.invert)
			if tt.nilPred {
				if p != nil {
					t.Fatalf("expected nil predicate, got %v", p)
				}
				return
			}
			if p == nil {
				t.Fatal("expected a predicate")
			}

			var matches []int
			for i, row := range testRows {
				ok, err := filter.Evaluate(f.Pushdown(p), row)
				if err != nil {
					t.Fatalf("Evaluate on row %d failed: %v", i+1, err)
				}
				if ok {
					matches = append(matches, i+1)
				}
			}
			if !slices.Equal(matches, tt.matches) {
				t.Errorf("expected matches %v, got %v", tt.matches, matches)
			}
		})
	}
}

func TestCompileWholeRow(t *testing.T) {
	f := filter.NewFactory(testColumns)
	enc := filter.NewDuckDBEncoder(nil)

	whole := enc.EncodeFilters(f.Pushdown(Compile(f, "x", []string{"name", "qty", "note"}, testColumns, false)))
	want := enc.EncodeFilters(f.Pushdown(f.Search("x", nil)))
	if whole != want {
		t.Errorf("expected '%s', got '%s'", want, whole)
	}

	scoped := enc.EncodeFilters(f.Pushdown(Compile(f, "x", []string{"qty"}, testColumns, false)))
	want = `contains(lower(CAST(qty AS VARCHAR)), 'x')`
	if scoped != want {
		t.Errorf("expected '%s', got '%s'", want, scoped)
	}
}

func TestColumns(t *testing.T) {
	got := Columns([]string{"note", "name", "note"}, testColumns, false)
	want := []condition.Column{testColumns[0], testColumns[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	got = Columns([]string{"note"}, testColumns, true)
	want = []condition.Column{testColumns[0], testColumns[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inverted columns mismatch (-want +got):\n%s", diff)
	}
}
