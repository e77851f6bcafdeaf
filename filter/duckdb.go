package filter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DuckDBEncoder encodes filter expressions to DuckDB SQL syntax.
type DuckDBEncoder struct {
	opts           *EncoderOptions
	columnBindings []string
}

var _ Encoder = (*DuckDBEncoder)(nil)

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &DuckDBEncoder{opts: opts}
}

// EncodeFilters converts all filters to a WHERE clause body.
// Filters that cannot be encoded are skipped; the result is the widest
// filter that can be expressed, or "" if none can.
func (e *DuckDBEncoder) EncodeFilters(fp *FilterPushdown) string {
	if fp == nil || len(fp.Filters) == 0 {
		return ""
	}

	e.columnBindings = fp.ColumnBindings

	var parts []string
	for _, filter := range fp.Filters {
		if encoded := e.Encode(filter); encoded != "" {
			parts = append(parts, encoded)
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return "(" + strings.Join(parts, ") AND (") + ")"
}

// Encode converts a single expression to SQL.
// Returns empty string if expression is unsupported.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.encodeComparison(ex)
	case *ConjunctionExpression:
		return e.encodeConjunction(ex)
	case *ConstantExpression:
		return e.formatValue(ex.Value)
	case *ColumnRefExpression:
		return e.encodeColumnRef(ex)
	case *FunctionExpression:
		return e.encodeFunction(ex)
	case *CastExpression:
		return e.encodeCast(ex)
	case *OperatorExpression:
		return e.encodeOperator(ex)
	default:
		return ""
	}
}

var comparisonOperators = map[ExpressionType]string{
	TypeCompareEqual:              " = ",
	TypeCompareNotEqual:           " <> ",
	TypeCompareLessThan:           " < ",
	TypeCompareGreaterThan:        " > ",
	TypeCompareLessThanOrEqual:    " <= ",
	TypeCompareGreaterThanOrEqual: " >= ",
}

func (e *DuckDBEncoder) encodeComparison(c *ComparisonExpression) string {
	op, ok := comparisonOperators[c.Type()]
	if !ok {
		return ""
	}

	left := e.Encode(c.Left)
	right := e.Encode(c.Right)
	if left == "" || right == "" {
		return ""
	}
	return left + op + right
}

// encodeConjunction encodes AND/OR conjunctions.
// An unsupported child of AND is dropped; an unsupported child of OR drops
// the whole OR.
func (e *DuckDBEncoder) encodeConjunction(c *ConjunctionExpression) string {
	var parts []string
	for _, child := range c.Children {
		if encoded := e.Encode(child); encoded != "" {
			parts = append(parts, encoded)
		}
	}

	if c.Type() == TypeConjunctionOr && len(parts) != len(c.Children) {
		return ""
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}

	op := " AND "
	if c.Type() == TypeConjunctionOr {
		op = " OR "
	}
	return "(" + strings.Join(parts, op) + ")"
}

func (e *DuckDBEncoder) encodeColumnRef(c *ColumnRefExpression) string {
	if c.Binding.ColumnIndex < 0 || c.Binding.ColumnIndex >= len(e.columnBindings) {
		return ""
	}

	name := e.columnBindings[c.Binding.ColumnIndex]
	if expr, ok := e.opts.ColumnExpressions[name]; ok {
		return expr
	}
	if mapped, ok := e.opts.ColumnMapping[name]; ok {
		name = mapped
	}
	return quoteIdentifier(name)
}

func (e *DuckDBEncoder) encodeFunction(f *FunctionExpression) string {
	args := make([]string, 0, len(f.Children))
	for _, child := range f.Children {
		encoded := e.Encode(child)
		if encoded == "" {
			return ""
		}
		args = append(args, encoded)
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

func (e *DuckDBEncoder) encodeCast(c *CastExpression) string {
	child := e.Encode(c.Child)
	typeName := formatTypeName(c.ReturnType)
	if child == "" || typeName == "" {
		return ""
	}

	if c.TryCast {
		return "TRY_CAST(" + child + " AS " + typeName + ")"
	}
	return "CAST(" + child + " AS " + typeName + ")"
}

// encodeOperator encodes IS NULL, IS NOT NULL, NOT, IN and NOT IN.
func (e *DuckDBEncoder) encodeOperator(o *OperatorExpression) string {
	if len(o.Children) == 0 {
		return ""
	}

	switch o.Type() {
	case TypeCompareIn, TypeCompareNotIn:
		return e.encodeIn(o)
	}

	child := e.Encode(o.Children[0])
	if child == "" {
		return ""
	}

	switch o.Type() {
	case TypeOperatorIsNull:
		return child + " IS NULL"
	case TypeOperatorIsNotNull:
		return child + " IS NOT NULL"
	case TypeOperatorNot:
		return "NOT (" + child + ")"
	default:
		return ""
	}
}

// encodeIn encodes children[0] IN (children[1:]).
func (e *DuckDBEncoder) encodeIn(o *OperatorExpression) string {
	if len(o.Children) < 2 {
		return ""
	}

	left := e.Encode(o.Children[0])
	if left == "" {
		return ""
	}

	values := make([]string, 0, len(o.Children)-1)
	for _, child := range o.Children[1:] {
		encoded := e.Encode(child)
		if encoded == "" {
			return ""
		}
		values = append(values, encoded)
	}

	op := " IN "
	if o.Type() == TypeCompareNotIn {
		op = " NOT IN "
	}
	return left + op + "(" + strings.Join(values, ", ") + ")"
}

// formatValue formats a Value as a SQL literal.
func (e *DuckDBEncoder) formatValue(v Value) string {
	if v.IsNull {
		return "NULL"
	}

	switch v.Type.ID {
	case TypeIDBoolean:
		if b, ok := v.Data.(bool); ok {
			if b {
				return "TRUE"
			}
			return "FALSE"
		}
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt:
		if i, ok := v.Data.(int64); ok {
			return strconv.FormatInt(i, 10)
		}
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		if u, ok := v.Data.(uint64); ok {
			return strconv.FormatUint(u, 10)
		}
	case TypeIDHugeInt:
		if h, ok := v.Data.(HugeInt); ok {
			return hugeIntValue(h).String() + "::HUGEINT"
		}
	case TypeIDUHugeInt:
		if h, ok := v.Data.(UHugeInt); ok {
			return uhugeIntValue(h).String() + "::UHUGEINT"
		}
	case TypeIDFloat, TypeIDDouble:
		if f, ok := v.Data.(float64); ok {
			return formatDouble(f)
		}
	case TypeIDVarchar, TypeIDChar:
		if s, ok := v.Data.(string); ok {
			return quoteLiteral(s)
		}
	case TypeIDTimestampTZ:
		if micros, ok := v.Data.(int64); ok {
			return "TIMESTAMPTZ '" + time.UnixMicro(micros).UTC().Format("2006-01-02 15:04:05.999999") + "+00'"
		}
	case TypeIDTimestamp:
		if micros, ok := v.Data.(int64); ok {
			return "TIMESTAMP '" + time.UnixMicro(micros).UTC().Format("2006-01-02 15:04:05.999999") + "'"
		}
	case TypeIDDate:
		if days, ok := v.Data.(int64); ok {
			return "DATE '" + time.Unix(days*86400, 0).UTC().Format("2006-01-02") + "'"
		}
	}
	return ""
}

// formatDouble formats f as a numeric literal. Non-finite values are cast
// from their DuckDB string spellings.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "'NaN'::DOUBLE"
	case math.IsInf(f, 1):
		return "'Infinity'::DOUBLE"
	case math.IsInf(f, -1):
		return "'-Infinity'::DOUBLE"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatTypeName formats a LogicalType as a SQL type name.
func formatTypeName(lt LogicalType) string {
	switch lt.ID {
	case TypeIDTimestampTZ:
		return "TIMESTAMP WITH TIME ZONE"
	case TypeIDTimestampSec:
		return "TIMESTAMP_S"
	case TypeIDUnknown, "":
		return ""
	default:
		return string(lt.ID)
	}
}
