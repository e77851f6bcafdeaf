package tablefilter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hugr-lab/tablefilter/condition"
)

// Config contains configuration for a filter Compiler.
type Config struct {
	// Factory builds the predicates.
	// REQUIRED unless Table is set; Factory wins when both are set.
	Factory condition.Factory

	// Table provides a DuckDB expression factory over its columns.
	// OPTIONAL: used when Factory is nil.
	Table *Table

	// TimeZone is the IANA name of the zone date filter text is read in,
	// e.g. "America/New_York".
	// OPTIONAL: If empty, uses UTC.
	TimeZone string

	// Now returns the current time for relative dates such as "today".
	// OPTIONAL: Uses time.Now if nil.
	Now func() time.Time

	// Logger for advanced filter diagnostics and recovered panics.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level
}

// Standard errors returned by tablefilter package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid filter config")

	// ErrInvalidTable indicates a table definition is invalid.
	ErrInvalidTable = errors.New("invalid table definition")
)

// validateConfig checks that required Config fields are valid.
func validateConfig(config Config) error {
	if config.Factory == nil && config.Table == nil {
		return fmt.Errorf("factory or table is required")
	}
	if config.TimeZone != "" {
		if _, err := time.LoadLocation(config.TimeZone); err != nil {
			return fmt.Errorf("time zone: %w", err)
		}
	}
	return nil
}

func (config Config) logger() *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	if config.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *config.LogLevel}))
	}
	return slog.Default()
}
