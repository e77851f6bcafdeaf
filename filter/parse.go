package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Parse parses filter pushdown JSON in the DuckDB Airport format, as
// produced by Marshal. Expression classes this package does not build are
// returned as UnsupportedExpression rather than failing the parse.
func Parse(data []byte) (*FilterPushdown, error) {
	if len(data) == 0 {
		return &FilterPushdown{}, nil
	}

	var raw rawFilterPushdown
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("filter: invalid JSON: %w", err)
	}

	fp := &FilterPushdown{
		ColumnBindings: raw.ColumnBindings,
		Filters:        make([]Expression, 0, len(raw.Filters)),
	}

	for i, rawExpr := range raw.Filters {
		expr, err := parseExpression(rawExpr)
		if err != nil {
			return nil, fmt.Errorf("filter: error parsing filter %d: %w", i, err)
		}
		fp.Filters = append(fp.Filters, expr)
	}

	return fp, nil
}

type rawFilterPushdown struct {
	Filters        []json.RawMessage `json:"filters"`
	ColumnBindings []string          `json:"column_binding_names_by_index"`
}

// rawExpression carries every field any supported expression class uses.
// Fields a class does not use are left empty.
type rawExpression struct {
	BaseExpression
	Left       json.RawMessage   `json:"left,omitempty"`
	Right      json.RawMessage   `json:"right,omitempty"`
	Children   []json.RawMessage `json:"children,omitempty"`
	Child      json.RawMessage   `json:"child,omitempty"`
	Value      json.RawMessage   `json:"value,omitempty"`
	ReturnType json.RawMessage   `json:"return_type,omitempty"`
	Binding    *ColumnBinding    `json:"binding,omitempty"`
	Depth      int               `json:"depth,omitempty"`
	Name       string            `json:"name,omitempty"`
	TryCast    bool              `json:"try_cast,omitempty"`
}

func parseExpression(data json.RawMessage) (Expression, error) {
	var raw rawExpression
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}
	b := raw.BaseExpression

	switch raw.ExprClass {
	case ClassBoundComparison:
		left, err := parseExpression(raw.Left)
		if err != nil {
			return nil, fmt.Errorf("invalid left operand: %w", err)
		}
		right, err := parseExpression(raw.Right)
		if err != nil {
			return nil, fmt.Errorf("invalid right operand: %w", err)
		}
		return &ComparisonExpression{BaseExpression: b, Left: left, Right: right}, nil

	case ClassBoundConjunction:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &ConjunctionExpression{BaseExpression: b, Children: children}, nil

	case ClassBoundConstant:
		value, err := parseValue(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		return &ConstantExpression{BaseExpression: b, Value: value}, nil

	case ClassBoundColumnRef:
		if raw.Binding == nil {
			return nil, errors.New("column ref without binding")
		}
		returnType, err := parseLogicalType(raw.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("invalid return type: %w", err)
		}
		return &ColumnRefExpression{
			BaseExpression: b,
			Binding:        *raw.Binding,
			ReturnType:     returnType,
			Depth:          raw.Depth,
		}, nil

	case ClassBoundFunction:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		returnType, err := parseLogicalType(raw.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("invalid return type: %w", err)
		}
		return &FunctionExpression{
			BaseExpression: b,
			Name:           raw.Name,
			Children:       children,
			ReturnType:     returnType,
		}, nil

	case ClassBoundCast:
		child, err := parseExpression(raw.Child)
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		returnType, err := parseLogicalType(raw.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("invalid return type: %w", err)
		}
		return &CastExpression{
			BaseExpression: b,
			Child:          child,
			ReturnType:     returnType,
			TryCast:        raw.TryCast,
		}, nil

	case ClassBoundOperator:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		returnType, err := parseLogicalType(raw.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("invalid return type: %w", err)
		}
		return &OperatorExpression{BaseExpression: b, Children: children, ReturnType: returnType}, nil

	default:
		return &UnsupportedExpression{
			BaseExpression: b,
			Reason:         "unsupported expression class " + string(raw.ExprClass),
		}, nil
	}
}

func parseChildren(raw []json.RawMessage) ([]Expression, error) {
	children := make([]Expression, 0, len(raw))
	for i, child := range raw {
		expr, err := parseExpression(child)
		if err != nil {
			return nil, fmt.Errorf("invalid child %d: %w", i, err)
		}
		children = append(children, expr)
	}
	return children, nil
}

// parseLogicalType parses a LogicalType, normalizing DuckDB aliases.
// Extra type info is ignored.
func parseLogicalType(data json.RawMessage) (LogicalType, error) {
	if len(data) == 0 || string(data) == "null" {
		return LogicalType{}, nil
	}

	var raw struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogicalType{}, fmt.Errorf("invalid logical type: %w", err)
	}
	return LogicalType{ID: LogicalTypeID(raw.ID).Normalize()}, nil
}

func parseValue(data json.RawMessage) (Value, error) {
	if len(data) == 0 || string(data) == "null" {
		return Value{IsNull: true}, nil
	}

	var raw struct {
		Type   json.RawMessage `json:"type"`
		IsNull bool            `json:"is_null"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("invalid value: %w", err)
	}

	logicalType, err := parseLogicalType(raw.Type)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value type: %w", err)
	}

	v := Value{Type: logicalType, IsNull: raw.IsNull}
	if raw.IsNull || len(raw.Value) == 0 || string(raw.Value) == "null" {
		v.IsNull = true
		return v, nil
	}

	v.Data, err = parseValueData(raw.Value, logicalType.ID)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value data: %w", err)
	}
	return v, nil
}

// parseValueData decodes the value payload into the Go type the encoder
// and evaluator expect for id.
func parseValueData(data json.RawMessage, id LogicalTypeID) (any, error) {
	var err error
	switch {
	case id == TypeIDBoolean:
		var v bool
		err = json.Unmarshal(data, &v)
		return v, err
	case id == TypeIDHugeInt:
		var v HugeInt
		err = json.Unmarshal(data, &v)
		return v, err
	case id == TypeIDUHugeInt:
		var v UHugeInt
		err = json.Unmarshal(data, &v)
		return v, err
	case id.IsInteger() && id.IsUnsigned():
		var v uint64
		err = json.Unmarshal(data, &v)
		return v, err
	case id.IsInteger(), id.IsTemporal():
		var v int64
		err = json.Unmarshal(data, &v)
		return v, err
	case id.IsNumeric():
		var v float64
		err = json.Unmarshal(data, &v)
		return v, err
	case id.IsString():
		var v string
		err = json.Unmarshal(data, &v)
		return v, err
	default:
		var v any
		err = json.Unmarshal(data, &v)
		return v, err
	}
}
