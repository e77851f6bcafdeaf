package condition

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// ValueKind identifies which field of a Value is set.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindNumber
	KindLong
	KindInstant
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindLong:
		return "long"
	case KindInstant:
		return "instant"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed constant operand.
// Build it with one of the constructors; the zero Value is the empty string.
type Value struct {
	Kind    ValueKind
	Str     string
	Bool    bool
	Number  float64
	Long    *big.Int
	Instant time.Time
}

// StringValue returns a string operand.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// BoolValue returns a boolean operand.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// NumberValue returns a floating point operand.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// LongValue returns an arbitrary precision integer operand.
// The value is copied.
func LongValue(i *big.Int) Value {
	return Value{Kind: KindLong, Long: new(big.Int).Set(i)}
}

// InstantValue returns a point-in-time operand.
func InstantValue(t time.Time) Value {
	return Value{Kind: KindInstant, Instant: t}
}

// String formats the operand for logs and error messages.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return strconv.Quote(v.Str)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindLong:
		if v.Long == nil {
			return "0"
		}
		return v.Long.String()
	case KindInstant:
		return v.Instant.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%s(?)", v.Kind)
	}
}
