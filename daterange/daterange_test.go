package daterange

import (
	"errors"
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("time zone %s not available: %v", name, err)
	}
	return loc
}

func TestParseRanges(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	now := time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		text      string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			text:      "2023",
			wantStart: time.Date(2023, 1, 1, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023-07",
			wantStart: time.Date(2023, 7, 1, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2023, 8, 1, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023.Jul",
			wantStart: time.Date(2023, 7, 1, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2023, 8, 1, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023/december",
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023-07-04",
			wantStart: time.Date(2023, 7, 4, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2023, 7, 5, 0, 0, 0, 0, ny),
		},
		{
			text:      "  2023-7-4  ",
			wantStart: time.Date(2023, 7, 4, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2023, 7, 5, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023-12-31",
			wantStart: time.Date(2023, 12, 31, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, ny),
		},
		{
			text:      "2023-07-04 13",
			wantStart: time.Date(2023, 7, 4, 13, 0, 0, 0, ny),
			wantEnd:   time.Date(2023, 7, 4, 14, 0, 0, 0, ny),
		},
		{
			text:      "2023-07-04T13:05",
			wantStart: time.Date(2023, 7, 4, 13, 5, 0, 0, ny),
			wantEnd:   time.Date(2023, 7, 4, 13, 6, 0, 0, ny),
		},
		{
			text:      "2023-07-04 13:05:09",
			wantStart: time.Date(2023, 7, 4, 13, 5, 9, 0, ny),
			wantEnd:   time.Date(2023, 7, 4, 13, 5, 10, 0, ny),
		},
		{
			text:      "2023-07-04 13:05:09.25",
			wantStart: time.Date(2023, 7, 4, 13, 5, 9, 250000000, ny),
			wantEnd:   time.Date(2023, 7, 4, 13, 5, 9, 260000000, ny),
		},
		{
			text:      "2023-07-04 13:05:09.999",
			wantStart: time.Date(2023, 7, 4, 13, 5, 9, 999000000, ny),
			wantEnd:   time.Date(2023, 7, 4, 13, 5, 10, 0, ny),
		},
		{
			text:      "2023-07-04 13:05:09.123456789",
			wantStart: time.Date(2023, 7, 4, 13, 5, 9, 123456789, ny),
		},
		{
			text:      "today",
			wantStart: time.Date(2024, 3, 15, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2024, 3, 16, 0, 0, 0, 0, ny),
		},
		{
			text:      "Yesterday",
			wantStart: time.Date(2024, 3, 14, 0, 0, 0, 0, ny),
			wantEnd:   time.Date(2024, 3, 15, 0, 0, 0, 0, ny),
		},
		{
			text:      "now",
			wantStart: now,
		},
		{
			text: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, err := Parse(tt.text, ny, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, r.Start)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, r.End)
			}
		})
	}
}

func TestParseHasBounds(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	r, err := Parse("null", nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasStart() || r.HasEnd() {
		t.Errorf("expected no bounds for null, got %+v", r)
	}

	r, err = Parse("now", nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.HasStart() || r.HasEnd() {
		t.Errorf("expected start only for now, got %+v", r)
	}
}

func TestParseEarliestYears(t *testing.T) {
	tests := []struct {
		text      string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"0000", time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"0001", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"0001-01-01", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, err := Parse(tt.text, time.UTC, time.Time{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.HasStart() || !r.HasEnd() {
				t.Fatalf("expected both bounds, got %+v", r)
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, r.Start)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, r.End)
			}
		})
	}

	r, err := Parse("0001-01-01 00:00:00.000000000", time.UTC, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.HasStart() || r.HasEnd() || !r.Start.IsZero() {
		t.Errorf("expected an exact zero instant, got %+v", r)
	}
}

func TestParseAcrossDST(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// 2024-03-10 is 23 hours long in New York.
	r, err := Parse("2024-03-10", ny, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.End.Sub(r.Start); got != 23*time.Hour {
		t.Errorf("expected 23h day, got %v", got)
	}
}

func TestParseNilLocationIsUTC(t *testing.T) {
	r, err := Parse("2023-01-02", nil, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(want) {
		t.Errorf("expected %v, got %v", want, r.Start)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"23",
		"20231",
		"2023-13",
		"2023-00",
		"2023-ju",
		"2023-foo",
		"2023-02-30",
		"2023-01-32",
		"2023-01-01 24",
		"2023-01-01 12:60",
		"2023-01-01 12:00:61",
		"2023-01-01 1",
		"2023-01-01 12:00:00.1234567890",
		"2023-01-01 bogus",
		"tomorrow",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text, time.UTC, time.Now())
			if err == nil {
				t.Fatalf("expected error for %q", text)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNextNanos(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 200000000},
		{"25", 260000000},
		{"099", 100000000},
		{"9", 1000000000},
		{"12345678", 123456790},
	}

	for _, tt := range tests {
		if got := nextNanos(tt.in); got != tt.want {
			t.Errorf("nextNanos(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
