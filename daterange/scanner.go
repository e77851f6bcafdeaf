package daterange

import "strings"

// scanner walks lowercase ASCII date text.
type scanner struct {
	input string
	pos   int
}

// digits consumes between min and max decimal digits. It consumes nothing
// and returns "" if fewer than min are available.
func (s *scanner) digits(min, max int) string {
	start := s.pos
	for s.pos < len(s.input) && s.pos-start < max && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos-start < min {
		s.pos = start
		return ""
	}
	return s.input[start:s.pos]
}

// alnum consumes a run of digits or a run of letters.
func (s *scanner) alnum() string {
	start := s.pos
	if s.pos >= len(s.input) {
		return ""
	}
	class := isDigit
	if !isDigit(s.input[s.pos]) {
		class = isLetter
	}
	for s.pos < len(s.input) && class(s.input[s.pos]) {
		s.pos++
	}
	return s.input[start:s.pos]
}

// peekAny reports whether the next byte is one of set.
func (s *scanner) peekAny(set string) bool {
	return s.pos < len(s.input) && strings.IndexByte(set, s.input[s.pos]) >= 0
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
