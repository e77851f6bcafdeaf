// Package search compiles a cross-column search: one search term matched
// case-insensitively against a subset of a table's columns.
package search

import (
	"github.com/hugr-lab/tablefilter/condition"
)

// Compile builds the search predicate for text over the selected columns
// of all. With invert set, the searched columns are those of all that are
// not selected. Columns are matched by name.
//
// It returns nil when text is empty or no column is searched. When every
// column is searched the factory's whole-row search is used.
func Compile(f condition.Factory, text string, selected []string, all []condition.Column, invert bool) condition.Predicate {
	if text == "" {
		return nil
	}

	cols := Columns(selected, all, invert)
	if len(cols) == 0 {
		return nil
	}
	if len(cols) == len(all) {
		return f.Search(text, nil)
	}
	return f.Search(text, cols)
}

// Columns returns the columns of all a search covers, in table order.
func Columns(selected []string, all []condition.Column, invert bool) []condition.Column {
	picked := make(map[string]bool, len(selected))
	for _, name := range selected {
		picked[name] = true
	}

	var cols []condition.Column
	for _, c := range all {
		if picked[c.Name] != invert {
			cols = append(cols, c)
		}
	}
	return cols
}
