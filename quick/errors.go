package quick

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparsableLiteral is returned when a value does not match the
	// literal grammar of the column type.
	ErrUnparsableLiteral = errors.New("unparsable literal")

	// ErrTrailingGarbage is returned when text follows a recognized literal.
	ErrTrailingGarbage = errors.New("unexpected text after literal")

	// ErrUnsupportedOperator is returned when an operator cannot be applied
	// to the literal, e.g. "<nan" or "~null".
	ErrUnsupportedOperator = errors.New("operator not supported for literal")

	// ErrUnknownBooleanLiteral is returned for boolean text outside the
	// lexicon.
	ErrUnknownBooleanLiteral = errors.New("unknown boolean literal")
)

// CompileError reports the fragment that failed to compile.
// Use errors.Is with the Err* sentinels to inspect the reason.
type CompileError struct {
	// Text is the whole quick filter text.
	Text string
	// Fragment is the atomic condition that failed.
	Fragment string
	Err      error
}

func (e *CompileError) Error() string {
	if e.Fragment == "" || e.Fragment == e.Text {
		return fmt.Sprintf("unable to parse quick filter from text %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("unable to parse quick filter from text %q: fragment %q: %v", e.Text, e.Fragment, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
