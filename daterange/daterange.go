// Package daterange parses the date text typed into a date column filter
// into a half-open instant range.
//
// The accepted forms are the keywords "null", "today", "yesterday" and
// "now", or a date with optional time of day:
//
//	2023
//	2023-07            2023.jul   2023/july
//	2023-07-04
//	2023-07-04 13      2023-07-04t13:05
//	2023-07-04 13:05:09.25
//
// The range covers the whole unit of the least significant component that
// was typed: "2023-07" is all of July, "2023-07-04 13" is one hour. A time
// with nine fractional digits is an exact instant and has no end.
package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned for text that is not a recognized date.
var ErrInvalid = errors.New("invalid date")

// Range is a half-open interval [Start, End). A range without a start
// names no date at all ("null"); a range without an end is open-ended or
// exact. Presence is tracked apart from the bounds: in UTC the start of
// year 1 is the zero time.Time.
type Range struct {
	Start time.Time
	End   time.Time

	hasStart bool
	hasEnd   bool
}

// Between returns the half-open range [start, end).
func Between(start, end time.Time) Range {
	return Range{Start: start, End: end, hasStart: true, hasEnd: true}
}

// From returns the range that starts at start and has no end.
func From(start time.Time) Range {
	return Range{Start: start, hasStart: true}
}

// HasStart reports whether the range has a lower bound.
func (r Range) HasStart() bool { return r.hasStart }

// HasEnd reports whether the range has an exclusive upper bound.
func (r Range) HasEnd() bool { return r.hasEnd }

// Parse parses text in loc. A nil loc means UTC. now is used for the
// relative keywords.
func Parse(text string, loc *time.Location, now time.Time) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}

	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "" {
		return Range{}, fmt.Errorf("%w: empty date", ErrInvalid)
	}

	switch clean {
	case "null":
		return Range{}, nil
	case "today":
		return dayRange(now.In(loc), 0), nil
	case "yesterday":
		return dayRange(now.In(loc), -1), nil
	case "now":
		return From(now), nil
	}

	parts, err := scan(clean)
	if err != nil {
		return Range{}, err
	}

	return parts.resolve(loc)
}

// dayRange returns the calendar day offset days from t.
func dayRange(t time.Time, offset int) Range {
	y, m, d := t.Date()
	return Between(
		time.Date(y, m, d+offset, 0, 0, 0, 0, t.Location()),
		time.Date(y, m, d+offset+1, 0, 0, 0, 0, t.Location()),
	)
}

// dateParts holds the raw components of a typed date. Components that were
// not typed are empty.
type dateParts struct {
	year, month, day, hours, minutes, seconds, nanos string
}

// scan splits text into date components.
func scan(text string) (dateParts, error) {
	sc := &scanner{input: text}
	var p dateParts

	if p.year = sc.digits(4, 4); p.year == "" {
		return p, fmt.Errorf("%w: expected a four digit year in %q", ErrInvalid, text)
	}

	if sc.peekAny("-./") {
		mark := sc.pos
		sc.pos++
		if p.month = sc.alnum(); p.month == "" {
			sc.pos = mark
		}
	}

	if p.month != "" && sc.peekAny("-./") {
		mark := sc.pos
		sc.pos++
		if p.day = sc.digits(1, 2); p.day == "" {
			sc.pos = mark
		}
	}

	if sc.peekAny("t ") {
		mark := sc.pos
		sc.pos++
		if p.hours = sc.digits(2, 2); p.hours == "" {
			sc.pos = mark
		}
	}

	if p.hours != "" {
		if sc.peekAny(":") {
			mark := sc.pos
			sc.pos++
			if p.minutes = sc.digits(2, 2); p.minutes == "" {
				sc.pos = mark
			}
		}
		if p.minutes != "" && sc.peekAny(":") {
			mark := sc.pos
			sc.pos++
			if p.seconds = sc.digits(2, 2); p.seconds == "" {
				sc.pos = mark
			}
		}
		if sc.peekAny(".") {
			mark := sc.pos
			sc.pos++
			if p.nanos = sc.digits(1, 9); p.nanos == "" {
				sc.pos = mark
			}
		}
	}

	if rest := sc.rest(); rest != "" {
		return p, fmt.Errorf("%w: unexpected characters after date %q: %q", ErrInvalid, text, rest)
	}

	return p, nil
}

// resolve converts the components to a range in loc.
func (p dateParts) resolve(loc *time.Location) (Range, error) {
	year, _ := strconv.Atoi(p.year)

	month := time.January
	if p.month != "" {
		m, err := parseMonth(p.month)
		if err != nil {
			return Range{}, err
		}
		month = m
	}

	day, err := component(p.day, "day", 1, 1, 31)
	if err != nil {
		return Range{}, err
	}
	hours, err := component(p.hours, "hour", 0, 0, 23)
	if err != nil {
		return Range{}, err
	}
	minutes, err := component(p.minutes, "minute", 0, 0, 59)
	if err != nil {
		return Range{}, err
	}
	seconds, err := component(p.seconds, "second", 0, 0, 59)
	if err != nil {
		return Range{}, err
	}
	nanos := 0
	if p.nanos != "" {
		nanos, _ = strconv.Atoi(p.nanos + strings.Repeat("0", 9-len(p.nanos)))
	}

	start := time.Date(year, month, day, hours, minutes, seconds, nanos, loc)
	if start.Day() != day {
		return Range{}, fmt.Errorf("%w: day %d is out of range for %s %d", ErrInvalid, day, month, year)
	}

	var end time.Time
	switch {
	case p.nanos != "":
		if len(p.nanos) == 9 {
			// Exact match requested.
			return From(start), nil
		}
		next := nextNanos(p.nanos)
		if next > 999999999 {
			seconds++
			next = 0
		}
		end = time.Date(year, month, day, hours, minutes, seconds, next, loc)
	case p.seconds != "":
		end = time.Date(year, month, day, hours, minutes, seconds+1, 0, loc)
	case p.minutes != "":
		end = time.Date(year, month, day, hours, minutes+1, 0, 0, loc)
	case p.hours != "":
		end = time.Date(year, month, day, hours+1, 0, 0, 0, loc)
	case p.day != "":
		end = time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	case p.month != "":
		end = time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	default:
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
	}

	return Between(start, end), nil
}

// nextNanos returns the nanosecond value one unit of the typed precision
// after s. "25" is 250000000, so the next value is 260000000.
func nextNanos(s string) int {
	n, _ := strconv.Atoi(s)
	next := strconv.Itoa(n+1) + strings.Repeat("0", 9-len(s))
	v, _ := strconv.Atoi(next)
	return v
}

var monthNames = [...]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// parseMonth accepts 1-12 or a month name prefix of at least three letters.
func parseMonth(s string) (time.Month, error) {
	if isDigit(s[0]) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %q", ErrInvalid, s)
		}
		return time.Month(n), nil
	}

	if len(s) >= 3 {
		for i, name := range monthNames {
			if strings.HasPrefix(name, s) {
				return time.Month(i + 1), nil
			}
		}
	}

	return 0, fmt.Errorf("%w: month %q", ErrInvalid, s)
}

// component parses an optional numeric component within [lo, hi].
func component(s, name string, def, lo, hi int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, _ := strconv.Atoi(s)
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalid, name, n)
	}
	return n, nil
}
