package quick

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hugr-lab/tablefilter/condition"
)

// wildcard records which end of a text value carried a "*" marker.
type wildcard int

const (
	noWildcard wildcard = iota
	// leadingStar is "*foo": the value ends with foo.
	leadingStar
	// trailingStar is "foo*": the value starts with foo.
	trailingStar
)

// Patterns are full-match RE2 expressions, case-insensitive, with "."
// matching newlines.
func containsPattern(v string) string   { return "(?is).*" + regexp.QuoteMeta(v) + ".*" }
func startsWithPattern(v string) string { return "(?is)" + regexp.QuoteMeta(v) + ".*" }
func endsWithPattern(v string) string   { return "(?is).*" + regexp.QuoteMeta(v) }

// splitWildcard strips the wildcard marker from v and then drops the first
// backslash, so "\*foo" is the literal "*foo".
func splitWildcard(v string) (string, wildcard) {
	mark := noWildcard
	switch {
	case strings.HasPrefix(v, "*"):
		mark = leadingStar
		v = v[1:]
	case strings.HasSuffix(v, "*") && !strings.HasSuffix(v, `\*`):
		mark = trailingStar
		v = v[:len(v)-1]
	}
	return strings.Replace(v, `\`, "", 1), mark
}

func (c *Compiler) textFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	l := newLexer(fragment)
	op, glyph := l.operator(textGlyphs)

	value := strings.TrimSpace(l.rest())
	if value == "" {
		return nil, fmt.Errorf("%w: missing text value", ErrUnparsableLiteral)
	}

	if strings.EqualFold(value, "null") {
		return nullPredicate(c.Factory, col, op)
	}
	// A bare "!" only negates null on text; "!=" is the text inequality.
	if glyph == "!" {
		return nil, fmt.Errorf("%w: \"!\" before %q on text column", ErrUnsupportedOperator, value)
	}

	value, mark := splitWildcard(value)
	f := c.Factory

	switch op {
	case condition.ContainsOp:
		return matching(f, col, containsPattern(value)), nil
	case condition.NotContainsOp:
		return notMatching(f, col, containsPattern(value)), nil
	case condition.EqOp:
		switch mark {
		case leadingStar:
			return matching(f, col, endsWithPattern(value)), nil
		case trailingStar:
			return matching(f, col, startsWithPattern(value)), nil
		}
		return f.EqIgnoreCase(col, condition.StringValue(strings.ToLower(value))), nil
	case condition.NotEqOp:
		switch mark {
		case leadingStar:
			return notMatching(f, col, endsWithPattern(value)), nil
		case trailingStar:
			return notMatching(f, col, startsWithPattern(value)), nil
		}
		return f.NotEqIgnoreCase(col, condition.StringValue(strings.ToLower(value))), nil
	default:
		return nil, fmt.Errorf("%w: %s on text column", ErrUnsupportedOperator, op)
	}
}

// textValue compiles an advanced filter item. The value is used verbatim:
// no wildcards and no null literal.
func (c *Compiler) textValue(col condition.Column, op condition.Operator, value string) (condition.Predicate, error) {
	f := c.Factory
	v := condition.StringValue(value)

	switch op {
	case condition.EqOp:
		return f.Eq(col, v), nil
	case condition.EqIgnoreCaseOp:
		return f.EqIgnoreCase(col, v), nil
	case condition.NotEqOp:
		return f.NotEq(col, v), nil
	case condition.NotEqIgnoreCaseOp:
		return f.NotEqIgnoreCase(col, v), nil
	case condition.LtOp, condition.LteOp, condition.GtOp, condition.GteOp:
		return rangePredicate(f, col, op, v)
	case condition.IsNullOp:
		return f.IsNull(col), nil
	case condition.ContainsOp:
		return matching(f, col, containsPattern(value)), nil
	case condition.NotContainsOp:
		return notMatching(f, col, containsPattern(value)), nil
	case condition.StartsWithOp:
		return matching(f, col, startsWithPattern(value)), nil
	case condition.EndsWithOp:
		return matching(f, col, endsWithPattern(value)), nil
	default:
		return nil, fmt.Errorf("%w: %s on text column", ErrUnsupportedOperator, op)
	}
}

// matching is "not null and matches pattern".
func matching(f condition.Factory, col condition.Column, pattern string) condition.Predicate {
	return f.And(f.Not(f.IsNull(col)), f.Matches(col, pattern))
}

// notMatching is "null or does not match pattern"; null rows pass.
func notMatching(f condition.Factory, col condition.Column, pattern string) condition.Predicate {
	return f.Or(f.IsNull(col), f.Not(f.Matches(col, pattern)))
}
