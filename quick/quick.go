// Package quick compiles quick filter text typed against a single column
// into predicates built by a condition.Factory.
//
// A quick filter is a list of atomic conditions joined by "&&" and "||".
// There is no precedence and no grouping: the text is split on "||" into
// branches, each branch is split on "&&", and the pieces are folded left to
// right, AND inside a branch and OR across branches.
//
//	>=5 && <10 || null
//	~foo*
//	!=2023-01-01
//
// How an atomic condition is read depends on the semantic type of the
// column; see CompileFragment.
package quick

import (
	"strings"
	"time"

	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/daterange"
)

// DateParser parses date text into an instant range in loc.
type DateParser func(text string, loc *time.Location) (daterange.Range, error)

// Compiler compiles quick filters for one condition factory.
// The zero value is not usable; Factory is required.
type Compiler struct {
	// Factory builds the predicates. REQUIRED.
	Factory condition.Factory

	// Location is the time zone date text is read in. Defaults to UTC.
	Location *time.Location

	// ParseDate parses date text. Defaults to daterange.Parse relative to
	// the current time.
	ParseDate DateParser
}

// Compile compiles text against col using f. Dates are read in loc.
func Compile(f condition.Factory, col condition.Column, text string, loc *time.Location) (condition.Predicate, error) {
	c := &Compiler{Factory: f, Location: loc}
	return c.Compile(col, text)
}

// CompileFragment compiles one atomic condition against col using f.
func CompileFragment(f condition.Factory, col condition.Column, fragment string, loc *time.Location) (condition.Predicate, error) {
	c := &Compiler{Factory: f, Location: loc}
	return c.CompileFragment(col, fragment)
}

// CompileValue compiles value against col with an already resolved
// operator, as advanced filter items do.
func CompileValue(f condition.Factory, col condition.Column, op condition.Operator, value string, loc *time.Location) (condition.Predicate, error) {
	c := &Compiler{Factory: f, Location: loc}
	return c.CompileValue(col, op, value)
}

// Compile compiles a full quick filter. Text that is empty after trimming
// yields a nil predicate and no error. A single bad fragment fails the
// whole filter with a *CompileError.
func (c *Compiler) Compile(col condition.Column, text string) (condition.Predicate, error) {
	var result condition.Predicate
	for _, branch := range strings.Split(text, "||") {
		var and condition.Predicate
		for _, piece := range strings.Split(branch, "&&") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			p, err := c.compileFragment(col, piece)
			if err != nil {
				return nil, &CompileError{Text: text, Fragment: piece, Err: err}
			}
			and = condition.And(c.Factory, and, p)
		}
		result = condition.Or(c.Factory, result, and)
	}
	return result, nil
}

// CompileFragment compiles one atomic condition. The fragment must not
// contain "&&" or "||"; they are read as part of the value.
//
// Boolean columns accept an optional "=", "!=" or "!" followed by a
// boolean word ("t", "yes", "0", "null", ...).
//
// Int and Decimal columns accept a comparison operator followed by a
// number with optional sign, thousands separators and fraction, or one of
// null, nan, inf, infinity, ∞.
//
// Char columns accept a comparison operator followed by a single character,
// optionally quoted, or null.
//
// DateTime columns accept a comparison operator followed by date text; an
// equality matches the whole unit typed ("2023-07" matches all of July).
//
// String and unrecognized columns accept "=", "!=", "~", "!~" followed by
// text, and "!" only before null. "~" is a case-insensitive contains. A leading "*" makes "=" an
// ends-with and a trailing "*" a starts-with; "\*" keeps a literal star.
func (c *Compiler) CompileFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	p, err := c.compileFragment(col, strings.TrimSpace(fragment))
	if err != nil {
		return nil, &CompileError{Text: fragment, Fragment: fragment, Err: err}
	}
	return p, nil
}

func (c *Compiler) compileFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	switch col.SemanticType() {
	case coltype.Boolean:
		return c.booleanFragment(col, fragment)
	case coltype.Int, coltype.Decimal:
		return c.numberFragment(col, fragment)
	case coltype.Char:
		return c.charFragment(col, fragment)
	case coltype.DateTime:
		return c.dateFragment(col, fragment)
	default:
		return c.textFragment(col, fragment)
	}
}

// CompileValue compiles value with a resolved operator. The value is read
// with the literal grammar of the column type; operator glyphs in it are
// not interpreted. String values are used verbatim.
func (c *Compiler) CompileValue(col condition.Column, op condition.Operator, value string) (condition.Predicate, error) {
	switch col.SemanticType() {
	case coltype.Boolean:
		return c.booleanValue(col, op)
	case coltype.Int, coltype.Decimal:
		return c.numberValue(col, op, value)
	case coltype.Char:
		return c.charValue(col, op, value)
	case coltype.DateTime:
		return c.dateValue(col, op, value)
	default:
		return c.textValue(col, op, value)
	}
}

func (c *Compiler) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c *Compiler) parseDate(text string) (daterange.Range, error) {
	if c.ParseDate != nil {
		return c.ParseDate(text, c.location())
	}
	return daterange.Parse(text, c.location(), time.Now())
}
