package quick

import (
	"fmt"
	"strings"

	"github.com/hugr-lab/tablefilter/condition"
)

// booleanWords is the boolean lexicon. A nil entry is the null literal.
var booleanWords = map[string]*bool{
	"null": nil,

	"0":     ptr(false),
	"f":     ptr(false),
	"fa":    ptr(false),
	"fal":   ptr(false),
	"fals":  ptr(false),
	"false": ptr(false),
	"n":     ptr(false),
	"no":    ptr(false),

	"1":    ptr(true),
	"t":    ptr(true),
	"tr":   ptr(true),
	"tru":  ptr(true),
	"true": ptr(true),
	"y":    ptr(true),
	"ye":   ptr(true),
	"yes":  ptr(true),
}

func ptr[T any](v T) *T { return &v }

// ParseBoolean reads a boolean word. It returns nil for "null".
func ParseBoolean(text string) (*bool, error) {
	v, ok := booleanWords[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBooleanLiteral, text)
	}
	return v, nil
}

func (c *Compiler) booleanFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	l := newLexer(fragment)
	op, _ := l.operator(booleanGlyphs)

	v, err := ParseBoolean(l.rest())
	if err != nil {
		return nil, err
	}

	f := c.Factory
	var p condition.Predicate
	switch {
	case v == nil:
		p = f.IsNull(col)
	case *v:
		p = f.IsTrue(col)
	default:
		p = f.IsFalse(col)
	}

	if op == condition.NotEqOp {
		return f.Not(p), nil
	}
	return p, nil
}

func (c *Compiler) booleanValue(col condition.Column, op condition.Operator) (condition.Predicate, error) {
	switch op {
	case condition.IsTrueOp:
		return c.Factory.IsTrue(col), nil
	case condition.IsFalseOp:
		return c.Factory.IsFalse(col), nil
	case condition.IsNullOp:
		return c.Factory.IsNull(col), nil
	default:
		return nil, fmt.Errorf("%w: %s on boolean column", ErrUnsupportedOperator, op)
	}
}
