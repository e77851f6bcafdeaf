package tablefilter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hugr-lab/tablefilter/advanced"
	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/daterange"
	"github.com/hugr-lab/tablefilter/internal/recovery"
	"github.com/hugr-lab/tablefilter/quick"
	"github.com/hugr-lab/tablefilter/search"
)

// Compiler compiles quick filters, advanced filters and cross-column
// searches against one condition factory. It holds no mutable state and
// is safe for concurrent use.
type Compiler struct {
	factory  condition.Factory
	table    *Table
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a Compiler from config.
// Returns an error wrapping ErrInvalidConfig if config is invalid.
func New(config Config) (*Compiler, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Use defaults for optional fields
	factory := config.Factory
	if factory == nil {
		factory = config.Table.Factory()
	}

	location := time.UTC
	if config.TimeZone != "" {
		location, _ = time.LoadLocation(config.TimeZone)
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Compiler{
		factory:  factory,
		table:    config.Table,
		location: location,
		now:      now,
		logger:   config.logger(),
	}, nil
}

// Table returns the configured table, or nil.
func (c *Compiler) Table() *Table {
	return c.table
}

// Location returns the time zone date text is read in.
func (c *Compiler) Location() *time.Location {
	return c.location
}

// CompileQuickFilter compiles quick filter text for col. Empty text yields a
// nil predicate. Parse failures are returned as *quick.CompileError.
func (c *Compiler) CompileQuickFilter(col condition.Column, text string) (condition.Predicate, error) {
	qc := &quick.Compiler{
		Factory:   c.factory,
		Location:  c.location,
		ParseDate: c.parseDate,
	}
	return recovery.RecoverToValue(c.logger, "CompileQuickFilter", func() (condition.Predicate, error) {
		return qc.Compile(col, text)
	})
}

// CompileAdvancedFilter compiles advanced filter options for col. Items
// that fail to compile are logged and dropped; the only error is a
// recovered factory panic.
func (c *Compiler) CompileAdvancedFilter(col condition.Column, opts advanced.Options) (condition.Predicate, error) {
	ac := &advanced.Compiler{
		Factory:  c.factory,
		Location: c.location,
		Logger:   c.logger,
		Now:      c.now,
	}
	return recovery.RecoverToValue(c.logger, "CompileAdvancedFilter", func() (condition.Predicate, error) {
		return ac.Compile(col, opts), nil
	})
}

// CompileSearch compiles a cross-column search for text. A nil all uses
// the configured table's columns.
func (c *Compiler) CompileSearch(text string, selected []string, all []condition.Column, invert bool) (condition.Predicate, error) {
	if all == nil && c.table != nil {
		all = c.table.Columns()
	}
	return recovery.RecoverToValue(c.logger, "CompileSearch", func() (condition.Predicate, error) {
		return search.Compile(c.factory, text, selected, all, invert), nil
	})
}

func (c *Compiler) parseDate(text string, loc *time.Location) (daterange.Range, error) {
	return daterange.Parse(text, loc, c.now())
}

// NormalizeType maps a raw column type name to its semantic type.
func NormalizeType(raw string) coltype.SemanticType {
	return coltype.Normalize(raw)
}

// AreTypesCompatible reports whether two raw column types share a known
// semantic type.
func AreTypesCompatible(raw1, raw2 string) bool {
	return coltype.IsCompatible(raw1, raw2)
}
