package condition

import "github.com/hugr-lab/tablefilter/coltype"

// Operator is a resolved filter operation chosen for an advanced filter
// item. The string values are stable and used when options are persisted.
type Operator string

const (
	OperatorNone      Operator = ""
	EqOp              Operator = "eq"
	NotEqOp           Operator = "notEq"
	EqIgnoreCaseOp    Operator = "eqIgnoreCase"
	NotEqIgnoreCaseOp Operator = "notEqIgnoreCase"
	LtOp              Operator = "lessThan"
	LteOp             Operator = "lessThanOrEqualTo"
	GtOp              Operator = "greaterThan"
	GteOp             Operator = "greaterThanOrEqualTo"
	ContainsOp        Operator = "contains"
	NotContainsOp     Operator = "notContains"
	StartsWithOp      Operator = "startsWith"
	EndsWithOp        Operator = "endsWith"
	IsTrueOp          Operator = "isTrue"
	IsFalseOp         Operator = "isFalse"
	IsNullOp          Operator = "isNull"
)

// Operators returns the operators offered for a column of semantic type t,
// in display order. Unknown types get none.
func Operators(t coltype.SemanticType) []Operator {
	switch t {
	case coltype.Boolean:
		return []Operator{IsTrueOp, IsFalseOp, IsNullOp}
	case coltype.Char, coltype.Int, coltype.Decimal, coltype.DateTime:
		return []Operator{EqOp, NotEqOp, GtOp, GteOp, LtOp, LteOp}
	case coltype.String:
		return []Operator{
			EqOp, EqIgnoreCaseOp, NotEqOp, NotEqIgnoreCaseOp,
			ContainsOp, NotContainsOp, StartsWithOp, EndsWithOp,
		}
	default:
		return nil
	}
}

// Glyph returns the quick filter spelling of op, or "" if op has none.
func (op Operator) Glyph() string {
	switch op {
	case EqOp:
		return "="
	case NotEqOp:
		return "!="
	case GtOp:
		return ">"
	case GteOp:
		return ">="
	case LtOp:
		return "<"
	case LteOp:
		return "<="
	case ContainsOp:
		return "~"
	case NotContainsOp:
		return "!~"
	default:
		return ""
	}
}
