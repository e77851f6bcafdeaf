package quick

import (
	"fmt"
	"strings"

	"github.com/hugr-lab/tablefilter/condition"
)

// parseChar reads a char literal: null, a single character, or a single
// character in double or single quotes. ok is false for null.
func parseChar(l *lexer) (ch string, ok bool, err error) {
	if l.eof() {
		return "", false, fmt.Errorf("%w: missing character", ErrUnparsableLiteral)
	}

	if l.word("null") != "" {
		ch, ok = "", false
	} else {
		ok = true
		r, _ := l.rune()
		if r == '"' || r == '\'' {
			mark := l.pos
			if inner, has := l.rune(); has && l.accept(byte(r)) {
				r = inner
			} else {
				l.pos = mark
			}
		}
		ch = string(r)
	}

	if rest := strings.TrimSpace(l.rest()); rest != "" {
		return "", false, fmt.Errorf("%w: %q", ErrTrailingGarbage, rest)
	}
	return ch, ok, nil
}

func (c *Compiler) charFragment(col condition.Column, fragment string) (condition.Predicate, error) {
	l := newLexer(fragment)
	op, _ := l.operator(rangeGlyphs)
	l.skipSpace()
	return c.charPredicate(col, op, l)
}

func (c *Compiler) charValue(col condition.Column, op condition.Operator, value string) (condition.Predicate, error) {
	return c.charPredicate(col, op, newLexer(strings.TrimSpace(value)))
}

func (c *Compiler) charPredicate(col condition.Column, op condition.Operator, l *lexer) (condition.Predicate, error) {
	ch, ok, err := parseChar(l)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nullPredicate(c.Factory, col, op)
	}
	return rangePredicate(c.Factory, col, op, condition.StringValue(ch))
}

// nullPredicate handles the null literal, which only supports equality.
func nullPredicate(f condition.Factory, col condition.Column, op condition.Operator) (condition.Predicate, error) {
	switch op {
	case condition.EqOp:
		return f.IsNull(col), nil
	case condition.NotEqOp:
		return f.Not(f.IsNull(col)), nil
	default:
		return nil, fmt.Errorf("%w: %s null", ErrUnsupportedOperator, op)
	}
}
