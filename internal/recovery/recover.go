// Package recovery converts panics raised by host-supplied condition
// factories into errors, so a faulty factory cannot crash the caller.
package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ErrPanic is wrapped by every error produced from a recovered panic.
var ErrPanic = errors.New("panic recovered")

// RecoverToValue calls fn and returns its results. If fn panics, the panic
// is logged with its stack and returned as an error wrapping ErrPanic,
// along with the zero value of T.
//
// Example:
//
//	p, err := recovery.RecoverToValue(logger, "CompileQuickFilter", func() (condition.Predicate, error) {
//	    return qc.Compile(col, text)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)

			var zero T
			result = zero
			err = fmt.Errorf("%s: %w: %v", operation, ErrPanic, r)
		}
	}()

	return fn()
}
