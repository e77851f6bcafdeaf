package filter

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Row is a table row keyed by column name. A missing key or a nil value is
// SQL NULL. Supported value types are bool, the Go integer and float types,
// *big.Int, string and time.Time.
type Row map[string]any

// Evaluate reports whether row passes every filter of fp, with SQL WHERE
// semantics: a filter that evaluates to NULL rejects the row.
func Evaluate(fp *FilterPushdown, row Row) (bool, error) {
	ev := evaluator{bindings: fp.ColumnBindings, row: row}
	for _, f := range fp.Filters {
		v, err := ev.eval(f)
		if err != nil {
			return false, err
		}
		if b, ok := v.(bool); !ok || !b {
			return false, nil
		}
	}
	return true, nil
}

type evaluator struct {
	bindings []string
	row      Row
}

// eval returns the value of expr: nil for NULL, bool for predicates.
func (ev evaluator) eval(expr Expression) (any, error) {
	switch ex := expr.(type) {
	case *ColumnRefExpression:
		i := ex.Binding.ColumnIndex
		if i < 0 || i >= len(ev.bindings) {
			return nil, &ColumnBindingError{Index: i, Max: len(ev.bindings)}
		}
		return normalizeScalar(ev.row[ev.bindings[i]]), nil

	case *ConstantExpression:
		return constantScalar(ex.Value)

	case *ComparisonExpression:
		left, err := ev.eval(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := ev.eval(ex.Right)
		if err != nil {
			return nil, err
		}
		return compareScalars(ex.Type(), left, right)

	case *ConjunctionExpression:
		return ev.conjunction(ex)

	case *OperatorExpression:
		return ev.operator(ex)

	case *FunctionExpression:
		args := make([]any, len(ex.Children))
		for i, child := range ex.Children {
			v, err := ev.eval(child)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return callFunction(ex.Name, args)

	case *CastExpression:
		v, err := ev.eval(ex.Child)
		if err != nil || v == nil {
			return nil, err
		}
		if !ex.ReturnType.ID.IsString() {
			return nil, fmt.Errorf("%w: cast to %s", ErrUnsupportedExpression, ex.ReturnType.ID)
		}
		return formatScalar(v), nil

	case *UnsupportedExpression:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, ex.Reason)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, expr)
	}
}

// conjunction applies three-valued AND/OR: a false child decides AND, a
// true child decides OR, otherwise any NULL child makes the result NULL.
func (ev evaluator) conjunction(c *ConjunctionExpression) (any, error) {
	decisive := c.Type() == TypeConjunctionOr
	sawNull := false
	for _, child := range c.Children {
		v, err := ev.eval(child)
		if err != nil {
			return nil, err
		}
		switch b := v.(type) {
		case nil:
			sawNull = true
		case bool:
			if b == decisive {
				return decisive, nil
			}
		default:
			return nil, fmt.Errorf("filter: %s child is %T, not boolean", c.Type(), v)
		}
	}
	if sawNull {
		return nil, nil
	}
	return !decisive, nil
}

func (ev evaluator) operator(o *OperatorExpression) (any, error) {
	if len(o.Children) == 0 {
		return nil, fmt.Errorf("%w: %s without operands", ErrUnsupportedExpression, o.Type())
	}
	first, err := ev.eval(o.Children[0])
	if err != nil {
		return nil, err
	}

	switch o.Type() {
	case TypeOperatorIsNull:
		return first == nil, nil
	case TypeOperatorIsNotNull:
		return first != nil, nil
	case TypeOperatorNot:
		switch b := first.(type) {
		case nil:
			return nil, nil
		case bool:
			return !b, nil
		default:
			return nil, fmt.Errorf("filter: NOT of %T", first)
		}
	case TypeCompareIn, TypeCompareNotIn:
		res, err := ev.in(first, o.Children[1:])
		if err != nil || res == nil {
			return nil, err
		}
		if o.Type() == TypeCompareNotIn {
			return !res.(bool), nil
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: operator %s", ErrUnsupportedExpression, o.Type())
	}
}

// in follows SQL: NULL IN (...) is NULL, and a miss against a list holding
// NULL is NULL.
func (ev evaluator) in(needle any, list []Expression) (any, error) {
	if needle == nil {
		return nil, nil
	}
	sawNull := false
	for _, e := range list {
		v, err := ev.eval(e)
		if err != nil {
			return nil, err
		}
		if v == nil {
			sawNull = true
			continue
		}
		eq, err := compareScalars(TypeCompareEqual, needle, v)
		if err != nil {
			return nil, err
		}
		if eq == true {
			return true, nil
		}
	}
	if sawNull {
		return nil, nil
	}
	return false, nil
}

func callFunction(name string, args []any) (any, error) {
	for _, a := range args {
		if a == nil {
			return nil, nil
		}
	}

	switch {
	case name == "lower" && len(args) == 1:
		return strings.ToLower(formatScalar(args[0])), nil
	case name == "contains" && len(args) == 2:
		return strings.Contains(formatScalar(args[0]), formatScalar(args[1])), nil
	case name == "regexp_full_match" && len(args) == 2:
		re, err := regexp.Compile(`^(?:` + formatScalar(args[1]) + `)$`)
		if err != nil {
			return nil, fmt.Errorf("filter: invalid pattern: %w", err)
		}
		return re.MatchString(formatScalar(args[0])), nil
	case name == "isnan" && len(args) == 1:
		f, ok := args[0].(float64)
		return ok && math.IsNaN(f), nil
	case name == "isinf" && len(args) == 1:
		f, ok := args[0].(float64)
		return ok && math.IsInf(f, 0), nil
	default:
		return nil, fmt.Errorf("%w: function %s/%d", ErrUnsupportedExpression, name, len(args))
	}
}

// normalizeScalar folds row values onto the evaluator's scalar types:
// int64, uint64, *big.Int, float64, string, bool and time.Time.
func normalizeScalar(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func constantScalar(v Value) (any, error) {
	if v.IsNull {
		return nil, nil
	}
	switch v.Type.ID {
	case TypeIDHugeInt:
		if h, ok := v.Data.(HugeInt); ok {
			return hugeIntValue(h), nil
		}
	case TypeIDUHugeInt:
		if h, ok := v.Data.(UHugeInt); ok {
			return uhugeIntValue(h), nil
		}
	case TypeIDTimestampTZ, TypeIDTimestamp:
		if micros, ok := v.Data.(int64); ok {
			return time.UnixMicro(micros).UTC(), nil
		}
	case TypeIDDate:
		if days, ok := v.Data.(int64); ok {
			return time.Unix(days*86400, 0).UTC(), nil
		}
	default:
		return normalizeScalar(v.Data), nil
	}
	return nil, fmt.Errorf("filter: malformed %s constant %v", v.Type.ID, v.Data)
}

func compareScalars(typ ExpressionType, left, right any) (any, error) {
	if left == nil || right == nil {
		return nil, nil
	}
	c, err := compareValues(left, right)
	if err != nil {
		return nil, err
	}
	switch typ {
	case TypeCompareEqual:
		return c == 0, nil
	case TypeCompareNotEqual:
		return c != 0, nil
	case TypeCompareLessThan:
		return c < 0, nil
	case TypeCompareLessThanOrEqual:
		return c <= 0, nil
	case TypeCompareGreaterThan:
		return c > 0, nil
	case TypeCompareGreaterThanOrEqual:
		return c >= 0, nil
	default:
		return nil, fmt.Errorf("%w: comparison %s", ErrUnsupportedExpression, typ)
	}
}

// compareValues orders two non-NULL scalars. Integers compare exactly;
// any float operand makes the comparison a float comparison.
func compareValues(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			return boolRank(x) - boolRank(y), nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	default:
		xi, xInt := toBigInt(a)
		yi, yInt := toBigInt(b)
		if xInt && yInt {
			return xi.Cmp(yi), nil
		}
		xf, xok := toFloat(a)
		yf, yok := toFloat(b)
		if xok && yok {
			return compareFloats(xf, yf), nil
		}
	}
	return 0, fmt.Errorf("filter: cannot compare %T with %T", a, b)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareFloats orders NaN above every other value, as DuckDB does.
func compareFloats(x, y float64) int {
	switch {
	case math.IsNaN(x) && math.IsNaN(y):
		return 0
	case math.IsNaN(x):
		return 1
	case math.IsNaN(y):
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func toBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case int64:
		return big.NewInt(x), true
	case uint64:
		return new(big.Int).SetUint64(x), true
	case *big.Int:
		return x, x != nil
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	}
	return 0, false
}

// formatScalar renders v the way CAST(v AS VARCHAR) does for the types
// the factory searches.
func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *big.Int:
		return x.String()
	case time.Time:
		return x.UTC().Format("2006-01-02 15:04:05.999999+00")
	default:
		return fmt.Sprint(v)
	}
}
