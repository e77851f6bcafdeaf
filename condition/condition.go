// Package condition defines the contract between the filter compilers and
// the table engine that evaluates their output.
//
// The compilers never build predicates themselves. They describe what they
// need through a Factory, which the host table engine implements; the
// returned Predicate values are opaque and only ever passed back to the
// same Factory for composition. The filter package provides a Factory that
// produces DuckDB expression trees.
package condition

import (
	"github.com/hugr-lab/tablefilter/coltype"
)

// Predicate is an opaque condition built by a Factory.
// A nil Predicate means "no condition".
type Predicate interface{}

// Column identifies a table column and its raw type name.
type Column struct {
	// Name is the column name as known to the table engine.
	Name string `msgpack:"name"`

	// Type is the raw type name reported by the engine,
	// e.g. "java.lang.Long" or "BIGINT".
	Type string `msgpack:"type"`
}

// SemanticType returns the normalized type of the column.
func (c Column) SemanticType() coltype.SemanticType {
	return coltype.Normalize(c.Type)
}

// Factory builds primitive predicates and combines them.
// Implementations must be safe for concurrent use.
type Factory interface {
	Eq(col Column, v Value) Predicate
	NotEq(col Column, v Value) Predicate
	EqIgnoreCase(col Column, v Value) Predicate
	NotEqIgnoreCase(col Column, v Value) Predicate
	Lt(col Column, v Value) Predicate
	Lte(col Column, v Value) Predicate
	Gt(col Column, v Value) Predicate
	Gte(col Column, v Value) Predicate

	IsNull(col Column) Predicate
	IsTrue(col Column) Predicate
	IsFalse(col Column) Predicate
	IsNaN(col Column) Predicate

	// IsInfinite matches infinite values of the given sign.
	IsInfinite(col Column, negative bool) Predicate

	// Matches reports a full match of the column value against an RE2
	// pattern.
	Matches(col Column, pattern string) Predicate

	In(col Column, values []Value) Predicate
	NotIn(col Column, values []Value) Predicate

	// Search matches rows where any of cols contains text, ignoring case.
	// A nil cols searches the whole row.
	Search(text string, cols []Column) Predicate

	And(a, b Predicate) Predicate
	Or(a, b Predicate) Predicate
	Not(p Predicate) Predicate
}

// And folds preds with f.And, skipping nil entries.
// It returns nil if every entry is nil.
func And(f Factory, preds ...Predicate) Predicate {
	var acc Predicate
	for _, p := range preds {
		switch {
		case p == nil:
		case acc == nil:
			acc = p
		default:
			acc = f.And(acc, p)
		}
	}
	return acc
}

// Or folds preds with f.Or, skipping nil entries.
func Or(f Factory, preds ...Predicate) Predicate {
	var acc Predicate
	for _, p := range preds {
		switch {
		case p == nil:
		case acc == nil:
			acc = p
		default:
			acc = f.Or(acc, p)
		}
	}
	return acc
}
