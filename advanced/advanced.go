// Package advanced compiles advanced filters: an ordered list of typed
// conditions joined by positional AND/OR, combined with a value selection.
//
// Items are folded strictly left to right with no precedence, so
//
//	A and B or C
//
// means (A AND B) OR C. Each item's operator is already resolved; only its
// value is parsed, with the literal grammar of the column type shared with
// quick filters.
package advanced

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/daterange"
	"github.com/hugr-lab/tablefilter/quick"
)

// ErrInvalidJoinOperator is returned for a join other than And or Or, or
// for a missing join between two items.
var ErrInvalidJoinOperator = errors.New("invalid join operator")

// JoinOperator links two consecutive advanced filter items.
type JoinOperator string

const (
	And JoinOperator = "and"
	Or  JoinOperator = "or"
)

// Item is one advanced filter condition.
type Item struct {
	Operator condition.Operator `msgpack:"operator"`
	Value    string             `msgpack:"value"`
}

// Complete reports whether the item has both an operator and a value.
// Incomplete items are skipped.
func (it Item) Complete() bool {
	return it.Operator != condition.OperatorNone && it.Value != ""
}

// Options is the state of an advanced filter for one column.
type Options struct {
	// Items are the conditions in display order.
	Items []Item `msgpack:"items"`

	// Joins[i] links Items[i] and Items[i+1].
	Joins []JoinOperator `msgpack:"joins"`

	// SelectedValues are the values picked in the value list. A nil entry
	// selects null.
	SelectedValues []any `msgpack:"selectedValues"`

	// InvertSelection turns the selection into an exclusion.
	InvertSelection bool `msgpack:"invertSelection"`
}

// Compiler compiles advanced filters for one condition factory.
type Compiler struct {
	// Factory builds the predicates. REQUIRED.
	Factory condition.Factory

	// Location is the time zone date values are read in. Defaults to UTC.
	Location *time.Location

	// Logger receives dropped items. Defaults to slog.Default().
	Logger *slog.Logger

	// Now is the current time for relative dates and the empty selection
	// constant. Defaults to time.Now.
	Now func() time.Time
}

// Compile compiles opts against col using f. Items that fail to compile
// are logged to logger and skipped; the rest of the chain and the
// selection still apply.
func Compile(f condition.Factory, col condition.Column, opts Options, loc *time.Location, logger *slog.Logger) condition.Predicate {
	c := &Compiler{Factory: f, Location: loc, Logger: logger}
	return c.Compile(col, opts)
}

// Compile returns the item chain ANDed with the selection predicate, or nil
// when neither restricts anything.
func (c *Compiler) Compile(col condition.Column, opts Options) condition.Predicate {
	chain, dropped := c.compileItems(col, opts.Items, opts.Joins)
	for _, ie := range dropped {
		c.logger().LogAttrs(context.Background(), slog.LevelWarn, "advanced filter item dropped",
			slog.String("column", col.Name),
			slog.String("type", col.Type),
			slog.Int("index", ie.Index),
			slog.String("operator", string(ie.Item.Operator)),
			slog.String("value", ie.Item.Value),
			slog.Any("error", ie.Err),
		)
	}

	sel := c.selection(col, opts.SelectedValues, opts.InvertSelection)
	return condition.And(c.Factory, chain, sel)
}

// CompileItems folds the complete items left to right. An item that fails
// to compile, or whose join to the chain is missing or unknown, is skipped
// like an incomplete one: dropping item i also drops the join that linked
// it to its predecessor. The predicate is built from the items that were
// kept and is nil when none was. The error joins one *ItemError per
// skipped item.
func (c *Compiler) CompileItems(col condition.Column, items []Item, joins []JoinOperator) (condition.Predicate, error) {
	p, dropped := c.compileItems(col, items, joins)
	errs := make([]error, len(dropped))
	for i, ie := range dropped {
		errs[i] = ie
	}
	return p, errors.Join(errs...)
}

func (c *Compiler) compileItems(col condition.Column, items []Item, joins []JoinOperator) (condition.Predicate, []*ItemError) {
	qc := &quick.Compiler{
		Factory:   c.Factory,
		Location:  c.Location,
		ParseDate: c.dateParser(),
	}

	var result condition.Predicate
	var dropped []*ItemError
	for i, it := range items {
		if !it.Complete() {
			continue
		}

		p, err := qc.CompileValue(col, it.Operator, it.Value)
		if err != nil {
			dropped = append(dropped, &ItemError{Index: i, Item: it, Err: err})
			continue
		}

		if result == nil {
			result = p
			continue
		}

		var join JoinOperator
		if i > 0 && i-1 < len(joins) {
			join = joins[i-1]
		}
		switch join {
		case And:
			result = c.Factory.And(result, p)
		case Or:
			result = c.Factory.Or(result, p)
		default:
			err := fmt.Errorf("%w: %q", ErrInvalidJoinOperator, join)
			dropped = append(dropped, &ItemError{Index: i, Item: it, Err: err})
		}
	}
	return result, dropped
}

// ItemError reports the advanced filter item that failed to compile.
type ItemError struct {
	Index int
	Item  Item
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%s %q): %v", e.Index, e.Item.Operator, e.Item.Value, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Compiler) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// dateParser returns nil unless Now is set, leaving quick's default.
func (c *Compiler) dateParser() quick.DateParser {
	if c.Now == nil {
		return nil
	}
	return func(text string, loc *time.Location) (daterange.Range, error) {
		return daterange.Parse(text, loc, c.Now())
	}
}
