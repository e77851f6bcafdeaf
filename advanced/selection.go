package advanced

import (
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/hugr-lab/tablefilter/coltype"
	"github.com/hugr-lab/tablefilter/condition"
	"github.com/hugr-lab/tablefilter/quick"
)

// Selection builds the value selection predicate for col. A nil entry in
// values selects null. Values that cannot be read as the column type are
// ignored.
//
// An empty selection matches every row when inverted (nil is returned) and
// no row otherwise.
func Selection(f condition.Factory, col condition.Column, values []any, invert bool) condition.Predicate {
	c := &Compiler{Factory: f}
	return c.selection(col, values, invert)
}

func (c *Compiler) selection(col condition.Column, values []any, invert bool) condition.Predicate {
	f := c.Factory

	var (
		nullSelected bool
		converted    []condition.Value
	)
	for _, v := range values {
		if v == nil {
			nullSelected = true
			continue
		}
		if cv, ok := selectionValue(col, v); ok {
			converted = append(converted, cv)
		}
	}

	switch {
	case !nullSelected && len(converted) == 0:
		if invert {
			return nil
		}
		v := c.emptySentinel(col)
		return f.And(f.Eq(col, v), f.NotEq(col, v))
	case nullSelected && len(converted) > 0:
		if invert {
			return f.And(f.Not(f.IsNull(col)), f.NotIn(col, converted))
		}
		return f.Or(f.IsNull(col), f.In(col, converted))
	case nullSelected:
		if invert {
			return f.Not(f.IsNull(col))
		}
		return f.IsNull(col)
	default:
		if invert {
			return f.NotIn(col, converted)
		}
		return f.In(col, converted)
	}
}

// emptySentinel is a type-appropriate constant for the never matching
// selection.
func (c *Compiler) emptySentinel(col condition.Column) condition.Value {
	switch col.SemanticType() {
	case coltype.Boolean:
		return condition.BoolValue(true)
	case coltype.DateTime:
		return condition.InstantValue(c.now())
	case coltype.Int, coltype.Decimal:
		if coltype.IsLong(col.Type) {
			return condition.LongValue(new(big.Int))
		}
		return condition.NumberValue(0)
	default:
		return condition.StringValue("a")
	}
}

// selectionValue converts a selected value to the operand type of col.
func selectionValue(col condition.Column, v any) (condition.Value, bool) {
	switch col.SemanticType() {
	case coltype.Boolean:
		return boolSelection(v)
	case coltype.DateTime:
		return instantSelection(v)
	case coltype.Int, coltype.Decimal:
		if coltype.IsLong(col.Type) {
			return longSelection(v)
		}
		return numberSelection(v)
	case coltype.String, coltype.Char:
		return textSelection(v)
	default:
		return numberSelection(v)
	}
}

func textSelection(v any) (condition.Value, bool) {
	switch x := v.(type) {
	case string:
		return condition.StringValue(x), true
	case rune:
		return condition.StringValue(string(x)), true
	case []byte:
		return condition.StringValue(string(x)), true
	}
	if n, ok := integer(v); ok && n.IsInt64() && n.Int64() >= 0 && n.Int64() <= math.MaxInt32 {
		return condition.StringValue(string(rune(n.Int64()))), true
	}
	return condition.Value{}, false
}

func boolSelection(v any) (condition.Value, bool) {
	switch x := v.(type) {
	case bool:
		return condition.BoolValue(x), true
	case string:
		b, err := quick.ParseBoolean(x)
		if err != nil || b == nil {
			return condition.Value{}, false
		}
		return condition.BoolValue(*b), true
	}
	if n, ok := integer(v); ok {
		return condition.BoolValue(n.Sign() != 0), true
	}
	if x, ok := v.(float64); ok {
		return condition.BoolValue(x != 0), true
	}
	return condition.Value{}, false
}

func instantSelection(v any) (condition.Value, bool) {
	switch x := v.(type) {
	case time.Time:
		return condition.InstantValue(x), true
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return condition.Value{}, false
		}
		return condition.InstantValue(t), true
	}
	if n, ok := integer(v); ok && n.IsInt64() {
		return condition.InstantValue(time.Unix(0, n.Int64()).UTC()), true
	}
	return condition.Value{}, false
}

func longSelection(v any) (condition.Value, bool) {
	n, ok := integer(v)
	if !ok {
		switch x := v.(type) {
		case string:
			lit, err := quick.ParseNumericLiteral(x, true)
			if err != nil || lit.Kind != quick.NumberLong {
				return condition.Value{}, false
			}
			n = lit.Long
		case float64:
			if x != math.Trunc(x) || math.IsInf(x, 0) {
				return condition.Value{}, false
			}
			n, _ = big.NewFloat(x).Int(nil)
		default:
			return condition.Value{}, false
		}
	}
	if !coltype.LongInRange(n) {
		return condition.Value{}, false
	}
	return condition.LongValue(n), true
}

func numberSelection(v any) (condition.Value, bool) {
	switch x := v.(type) {
	case float64:
		return condition.NumberValue(x), true
	case float32:
		return condition.NumberValue(float64(x)), true
	case string:
		lit, err := quick.ParseNumericLiteral(strings.TrimSpace(x), false)
		if err != nil || lit.Kind != quick.NumberNormal {
			return condition.Value{}, false
		}
		return condition.NumberValue(lit.Float), true
	}
	if n, ok := integer(v); ok {
		f, _ := new(big.Float).SetInt(n).Float64()
		return condition.NumberValue(f), true
	}
	return condition.Value{}, false
}

// integer reads any Go integer type, including *big.Int.
func integer(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case int:
		return big.NewInt(int64(x)), true
	case int8:
		return big.NewInt(int64(x)), true
	case int16:
		return big.NewInt(int64(x)), true
	case int32:
		return big.NewInt(int64(x)), true
	case int64:
		return big.NewInt(x), true
	case uint:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint64:
		return new(big.Int).SetUint64(x), true
	case *big.Int:
		if x == nil {
			return nil, false
		}
		return x, true
	}
	return nil, false
}
