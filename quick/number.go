package quick

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
)

// NumericKind identifies the branch of a NumericLiteral.
type NumericKind int

const (
	NumberNormal NumericKind = iota
	NumberLong
	NumberNull
	NumberNaN
	NumberInfinity
)

// NumericLiteral is a parsed number filter value.
type NumericLiteral struct {
	Kind NumericKind
	// Float is set for NumberNormal.
	Float float64
	// Long is set for NumberLong.
	Long *big.Int
	// Negative is set for a negative NumberInfinity.
	Negative bool
}

// abnormalWords are matched case-insensitively in this order.
var abnormalWords = []string{"null", "nan", "infinity", "inf", "∞"}

// ParseNumericLiteral reads a number literal: an optional "-", digits with
// optional ",ddd" thousands groups and an optional fraction, or one of the
// abnormal words null, nan, infinity, inf and ∞. With long set the value
// is read as an arbitrary precision integer and a fraction, or a value
// outside coltype.LongInRange, is rejected.
func ParseNumericLiteral(text string, long bool) (NumericLiteral, error) {
	l := newLexer(strings.TrimSpace(text))
	return parseNumericLiteral(l, long)
}

func parseNumericLiteral(l *lexer, long bool) (NumericLiteral, error) {
	start := l.pos

	l.skipSpace()
	negative := l.accept('-')
	l.skipSpace()

	var num strings.Builder
	num.WriteString(l.digits())
	for {
		g, ok := l.group()
		if !ok {
			break
		}
		num.WriteString(g)
	}
	intPart := num.String()

	hasDot := l.accept('.')
	fraction := ""
	if hasDot {
		fraction = l.digits()
	}
	l.skipSpace()

	numeric := intPart != "" || hasDot
	word := l.word(abnormalWords...)
	l.skipSpace()

	if rest := l.rest(); rest != "" {
		if !numeric && word == "" {
			return NumericLiteral{}, fmt.Errorf("%w: %q is not a number", ErrUnparsableLiteral, l.input[start:])
		}
		return NumericLiteral{}, fmt.Errorf("%w: %q", ErrTrailingGarbage, rest)
	}

	if word != "" {
		if numeric {
			return NumericLiteral{}, fmt.Errorf("%w: %q", ErrTrailingGarbage, word)
		}
		switch strings.ToLower(word) {
		case "null":
			return NumericLiteral{Kind: NumberNull}, nil
		case "nan":
			return NumericLiteral{Kind: NumberNaN}, nil
		default:
			return NumericLiteral{Kind: NumberInfinity, Negative: negative}, nil
		}
	}

	if intPart == "" && fraction == "" {
		return NumericLiteral{}, fmt.Errorf("%w: %q is not a number", ErrUnparsableLiteral, l.input[start:])
	}

	if long {
		if hasDot {
			return NumericLiteral{}, fmt.Errorf("%w: %q is not an integer", ErrUnparsableLiteral, l.input[start:])
		}
		n, ok := new(big.Int).SetString(intPart, 10)
		if !ok {
			return NumericLiteral{}, fmt.Errorf("%w: %q", ErrUnparsableLiteral, intPart)
		}
		if negative {
			n.Neg(n)
		}
		if !coltype.LongInRange(n) {
			return NumericLiteral{}, fmt.Errorf("%w: %s is out of integer range", ErrUnparsableLiteral, n)
		}
		return NumericLiteral{Kind: NumberLong, Long: n}, nil
	}

	if intPart == "" {
		intPart = "0"
	}
	s := intPart
	if fraction != "" {
		s += "." + fraction
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NumericLiteral{}, fmt.Errorf("%w: %v", ErrUnparsableLiteral, err)
	}
	if negative {
		v = -v
	}
	return NumericLiteral{Kind: NumberNormal, Float: v}, nil
}

func (c *Compiler) numberFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	l := newLexer(fragment)
	l.skipSpace()
	op, _ := l.operator(rangeGlyphs)

	lit, err := parseNumericLiteral(l, coltype.IsLong(col.Type))
	if err != nil {
		return nil, err
	}
	return c.numberPredicate(col, op, lit)
}

func (c *Compiler) numberValue(col condition.Column, op condition.Operator, value string) (condition.Predicate, error) {
	lit, err := ParseNumericLiteral(value, coltype.IsLong(col.Type))
	if err != nil {
		return nil, err
	}
	return c.numberPredicate(col, op, lit)
}

func (c *Compiler) numberPredicate(col condition.Column, op condition.Operator, lit NumericLiteral) (condition.Predicate, error) {
	f := c.Factory

	var p condition.Predicate
	switch lit.Kind {
	case NumberNormal:
		return rangePredicate(f, col, op, condition.NumberValue(lit.Float))
	case NumberLong:
		return rangePredicate(f, col, op, condition.LongValue(lit.Long))
	case NumberNull:
		p = f.IsNull(col)
	case NumberNaN:
		p = f.IsNaN(col)
	case NumberInfinity:
		p = f.IsInfinite(col, lit.Negative)
	}

	switch op {
	case condition.EqOp:
		return p, nil
	case condition.NotEqOp:
		return f.Not(p), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
	}
}

// rangePredicate maps an equality or comparison operator onto f.
func rangePredicate(f condition.Factory, col condition.Column, op condition.Operator, v condition.Value) (condition.Predicate, error) {
	switch op {
	case condition.EqOp:
		return f.Eq(col, v), nil
	case condition.NotEqOp:
		return f.NotEq(col, v), nil
	case condition.LtOp:
		return f.Lt(col, v), nil
	case condition.LteOp:
		return f.Lte(col, v), nil
	case condition.GtOp:
		return f.Gt(col, v), nil
	case condition.GteOp:
		return f.Gte(col, v), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
	}
}
