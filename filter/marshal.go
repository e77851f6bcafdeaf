package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedExpression is returned when an expression cannot be
// serialized or evaluated, such as a predicate on an unknown column.
var ErrUnsupportedExpression = errors.New("filter: unsupported expression")

// Marshal encodes fp as DuckDB Airport filter pushdown JSON. Parse reads
// the result back.
func Marshal(fp *FilterPushdown) ([]byte, error) {
	out := struct {
		Filters        []json.RawMessage `json:"filters"`
		ColumnBindings []string          `json:"column_binding_names_by_index"`
	}{
		Filters:        make([]json.RawMessage, 0, len(fp.Filters)),
		ColumnBindings: fp.ColumnBindings,
	}
	if out.ColumnBindings == nil {
		out.ColumnBindings = []string{}
	}

	for i, f := range fp.Filters {
		data, err := marshalExpression(f)
		if err != nil {
			return nil, fmt.Errorf("filter: error encoding filter %d: %w", i, err)
		}
		out.Filters = append(out.Filters, data)
	}

	return json.Marshal(out)
}

// exprJSON is the wire form of every supported expression.
type exprJSON struct {
	BaseExpression
	Left       json.RawMessage   `json:"left,omitempty"`
	Right      json.RawMessage   `json:"right,omitempty"`
	Children   []json.RawMessage `json:"children,omitempty"`
	Child      json.RawMessage   `json:"child,omitempty"`
	Value      *Value            `json:"value,omitempty"`
	ReturnType *LogicalType      `json:"return_type,omitempty"`
	Binding    *ColumnBinding    `json:"binding,omitempty"`
	Depth      *int              `json:"depth,omitempty"`
	Name       string            `json:"name,omitempty"`
	TryCast    bool              `json:"try_cast,omitempty"`
}

func marshalExpression(expr Expression) (json.RawMessage, error) {
	var out exprJSON
	var err error

	switch ex := expr.(type) {
	case *ComparisonExpression:
		out.BaseExpression = ex.BaseExpression
		if out.Left, err = marshalExpression(ex.Left); err != nil {
			return nil, err
		}
		if out.Right, err = marshalExpression(ex.Right); err != nil {
			return nil, err
		}
	case *ConjunctionExpression:
		out.BaseExpression = ex.BaseExpression
		if out.Children, err = marshalChildren(ex.Children); err != nil {
			return nil, err
		}
	case *ConstantExpression:
		out.BaseExpression = ex.BaseExpression
		v := ex.Value
		out.Value = &v
	case *ColumnRefExpression:
		out.BaseExpression = ex.BaseExpression
		rt, binding, depth := ex.ReturnType, ex.Binding, ex.Depth
		out.ReturnType, out.Binding, out.Depth = &rt, &binding, &depth
	case *FunctionExpression:
		out.BaseExpression = ex.BaseExpression
		out.Name = ex.Name
		rt := ex.ReturnType
		out.ReturnType = &rt
		if out.Children, err = marshalChildren(ex.Children); err != nil {
			return nil, err
		}
	case *CastExpression:
		out.BaseExpression = ex.BaseExpression
		out.TryCast = ex.TryCast
		rt := ex.ReturnType
		out.ReturnType = &rt
		if out.Child, err = marshalExpression(ex.Child); err != nil {
			return nil, err
		}
	case *OperatorExpression:
		out.BaseExpression = ex.BaseExpression
		rt := ex.ReturnType
		out.ReturnType = &rt
		if out.Children, err = marshalChildren(ex.Children); err != nil {
			return nil, err
		}
	case *UnsupportedExpression:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, ex.Reason)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, expr)
	}

	return json.Marshal(out)
}

func marshalChildren(children []Expression) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(children))
	for _, child := range children {
		data, err := marshalExpression(child)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
