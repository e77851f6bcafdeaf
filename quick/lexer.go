package quick

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hugr-lab/tablefilter/condition"
)

// Operator glyph sets, longest spelling first so "!=" wins over "!".
var (
	rangeGlyphs   = []string{">=", "<=", "=>", "=<", ">", "<", "!=", "=", "!"}
	textGlyphs    = []string{"!~", "!=", "~", "=", "!"}
	booleanGlyphs = []string{"!=", "=", "!"}
)

var glyphOperators = map[string]condition.Operator{
	"=":  condition.EqOp,
	"!=": condition.NotEqOp,
	"!":  condition.NotEqOp,
	">":  condition.GtOp,
	">=": condition.GteOp,
	"=>": condition.GteOp,
	"<":  condition.LtOp,
	"<=": condition.LteOp,
	"=<": condition.LteOp,
	"~":  condition.ContainsOp,
	"!~": condition.NotContainsOp,
}

// lexer is a cursor over a single filter fragment.
type lexer struct {
	input string
	pos   int
}

func newLexer(s string) *lexer {
	return &lexer{input: s}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) skipSpace() {
	for !l.eof() {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// operator consumes the first glyph of glyphs found at the cursor and
// returns its operator. It returns EqOp and consumes nothing when no glyph
// matches.
func (l *lexer) operator(glyphs []string) (condition.Operator, string) {
	rest := l.input[l.pos:]
	for _, g := range glyphs {
		if strings.HasPrefix(rest, g) {
			l.pos += len(g)
			return glyphOperators[g], g
		}
	}
	return condition.EqOp, ""
}

func (l *lexer) accept(c byte) bool {
	if l.peek() == c && !l.eof() {
		l.pos++
		return true
	}
	return false
}

func (l *lexer) digits() string {
	start := l.pos
	for !l.eof() && isDigit(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// group consumes a ",ddd" thousands group.
func (l *lexer) group() (string, bool) {
	if l.pos+4 > len(l.input) || l.input[l.pos] != ',' {
		return "", false
	}
	g := l.input[l.pos+1 : l.pos+4]
	for i := 0; i < len(g); i++ {
		if !isDigit(g[i]) {
			return "", false
		}
	}
	l.pos += 4
	return g, true
}

// word consumes the first of words that prefixes the remaining input,
// ignoring case.
func (l *lexer) word(words ...string) string {
	rest := l.input[l.pos:]
	for _, w := range words {
		if len(rest) >= len(w) && strings.EqualFold(rest[:len(w)], w) {
			l.pos += len(w)
			return w
		}
	}
	return ""
}

// rune consumes one character.
func (l *lexer) rune() (rune, bool) {
	if l.eof() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r, true
}

func (l *lexer) rest() string {
	return l.input[l.pos:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
