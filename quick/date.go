package quick

import (
	"fmt"

	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/daterange"
)

func (c *Compiler) dateFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	l := newLexer(fragment)
	op, _ := l.operator(rangeGlyphs)
	return c.dateValue(col, op, l.rest())
}

func (c *Compiler) dateValue(col condition.Column, op condition.Operator, value string) (condition.Predicate, error) {
	r, err := c.parseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparsableLiteral, err)
	}
	return datePredicate(c.Factory, col, op, r)
}

// datePredicate maps op onto the range r. Equality covers the whole range;
// comparisons pick the bound that keeps the typed unit on the right side.
func datePredicate(f condition.Factory, col condition.Column, op condition.Operator, r daterange.Range) (condition.Predicate, error) {
	if !r.HasStart() {
		if op == condition.NotEqOp {
			return f.Not(f.IsNull(col)), nil
		}
		return f.IsNull(col), nil
	}

	start := condition.InstantValue(r.Start)
	end := condition.InstantValue(r.End)

	switch op {
	case condition.EqOp:
		if r.HasEnd() {
			return f.And(f.Gte(col, start), f.Lt(col, end)), nil
		}
		return f.Eq(col, start), nil
	case condition.LtOp:
		return f.Lt(col, start), nil
	case condition.LteOp:
		if r.HasEnd() {
			return f.Lt(col, end), nil
		}
		return f.Lte(col, start), nil
	case condition.GtOp:
		if r.HasEnd() {
			return f.Gte(col, end), nil
		}
		return f.Gt(col, start), nil
	case condition.GteOp:
		return f.Gte(col, start), nil
	case condition.NotEqOp:
		if r.HasEnd() {
			return f.Or(f.Lt(col, start), f.Gte(col, end)), nil
		}
		return f.NotEq(col, start), nil
	default:
		return nil, fmt.Errorf("%w: %s on date column", ErrUnsupportedOperator, op)
	}
}
