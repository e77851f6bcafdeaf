package filter

import (
	"math"
	"math/big"
	"strings"

	"github.com/hugr-lab/tablefilter/condition"
)

// Factory is a condition.Factory producing filter expression trees over a
// fixed set of columns. Predicates it returns are Expression values.
//
// A Factory is immutable after NewFactory and safe for concurrent use.
type Factory struct {
	columns []condition.Column
	types   []LogicalType
	index   map[string]int
}

var _ condition.Factory = (*Factory)(nil)

// NewFactory creates a factory for a table with the given columns. The
// position of a column is its binding index.
func NewFactory(columns []condition.Column) *Factory {
	f := &Factory{
		columns: make([]condition.Column, len(columns)),
		types:   make([]LogicalType, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(f.columns, columns)
	for i, c := range columns {
		f.types[i] = logicalTypeOf(c.Type)
		if _, dup := f.index[c.Name]; !dup {
			f.index[c.Name] = i
		}
	}
	return f
}

// Columns returns the table columns in binding order.
func (f *Factory) Columns() []condition.Column {
	out := make([]condition.Column, len(f.columns))
	copy(out, f.columns)
	return out
}

// Pushdown collects predicates into a FilterPushdown bound to the
// factory's columns. Nil predicates are skipped.
func (f *Factory) Pushdown(preds ...condition.Predicate) *FilterPushdown {
	fp := &FilterPushdown{
		ColumnBindings: make([]string, len(f.columns)),
	}
	for i, c := range f.columns {
		fp.ColumnBindings[i] = c.Name
	}
	for _, p := range preds {
		if p == nil {
			continue
		}
		fp.Filters = append(fp.Filters, asExpression(p))
	}
	return fp
}

func (f *Factory) Eq(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareEqual, col, v)
}

func (f *Factory) NotEq(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareNotEqual, col, v)
}

func (f *Factory) Lt(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareLessThan, col, v)
}

func (f *Factory) Lte(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareLessThanOrEqual, col, v)
}

func (f *Factory) Gt(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareGreaterThan, col, v)
}

func (f *Factory) Gte(col condition.Column, v condition.Value) condition.Predicate {
	return f.compare(TypeCompareGreaterThanOrEqual, col, v)
}

// EqIgnoreCase compares lower(col) with the lowercased value.
func (f *Factory) EqIgnoreCase(col condition.Column, v condition.Value) condition.Predicate {
	return f.compareIgnoreCase(TypeCompareEqual, col, v)
}

func (f *Factory) NotEqIgnoreCase(col condition.Column, v condition.Value) condition.Predicate {
	return f.compareIgnoreCase(TypeCompareNotEqual, col, v)
}

func (f *Factory) IsNull(col condition.Column) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	return &OperatorExpression{
		BaseExpression: base(ClassBoundOperator, TypeOperatorIsNull),
		Children:       []Expression{ref},
		ReturnType:     LogicalType{ID: TypeIDBoolean},
	}
}

func (f *Factory) IsTrue(col condition.Column) condition.Predicate {
	return f.compare(TypeCompareEqual, col, condition.BoolValue(true))
}

func (f *Factory) IsFalse(col condition.Column) condition.Predicate {
	return f.compare(TypeCompareEqual, col, condition.BoolValue(false))
}

func (f *Factory) IsNaN(col condition.Column) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	return function("isnan", TypeIDBoolean, ref)
}

// IsInfinite is isinf(col) AND col < 0 (or > 0).
func (f *Factory) IsInfinite(col condition.Column, negative bool) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	sign := TypeCompareGreaterThan
	if negative {
		sign = TypeCompareLessThan
	}
	return &ConjunctionExpression{
		BaseExpression: base(ClassBoundConjunction, TypeConjunctionAnd),
		Children: []Expression{
			function("isinf", TypeIDBoolean, ref),
			comparison(sign, ref, constant(Value{Type: LogicalType{ID: TypeIDDouble}, Data: float64(0)})),
		},
	}
}

// Matches is regexp_full_match(col, pattern). Non-text columns are cast
// to VARCHAR first.
func (f *Factory) Matches(col condition.Column, pattern string) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	return function("regexp_full_match", TypeIDBoolean, f.text(ref), varchar(pattern))
}

func (f *Factory) In(col condition.Column, values []condition.Value) condition.Predicate {
	return f.in(TypeCompareIn, col, values)
}

func (f *Factory) NotIn(col condition.Column, values []condition.Value) condition.Predicate {
	return f.in(TypeCompareNotIn, col, values)
}

// Search ORs contains(lower(CAST(col AS VARCHAR)), lower(text)) over cols,
// or over every column when cols is nil.
func (f *Factory) Search(text string, cols []condition.Column) condition.Predicate {
	if cols == nil {
		cols = f.columns
	}

	needle := varchar(strings.ToLower(text))
	var children []Expression
	for _, col := range cols {
		ref, ok := f.ref(col)
		if !ok {
			return unknownColumn(col)
		}
		lowered := function("lower", TypeIDVarchar, cast(ref, TypeIDVarchar))
		children = append(children, function("contains", TypeIDBoolean, lowered, needle))
	}

	switch len(children) {
	case 0:
		return &UnsupportedExpression{
			BaseExpression: base(ClassBoundFunction, TypeBoundFunction),
			Reason:         "search over no columns",
		}
	case 1:
		return children[0]
	}
	return &ConjunctionExpression{
		BaseExpression: base(ClassBoundConjunction, TypeConjunctionOr),
		Children:       children,
	}
}

func (f *Factory) And(a, b condition.Predicate) condition.Predicate {
	return conjunction(TypeConjunctionAnd, asExpression(a), asExpression(b))
}

func (f *Factory) Or(a, b condition.Predicate) condition.Predicate {
	return conjunction(TypeConjunctionOr, asExpression(a), asExpression(b))
}

func (f *Factory) Not(p condition.Predicate) condition.Predicate {
	return &OperatorExpression{
		BaseExpression: base(ClassBoundOperator, TypeOperatorNot),
		Children:       []Expression{asExpression(p)},
		ReturnType:     LogicalType{ID: TypeIDBoolean},
	}
}

// ref returns the column reference for col, resolved by name.
func (f *Factory) ref(col condition.Column) (*ColumnRefExpression, bool) {
	i, ok := f.index[col.Name]
	if !ok {
		return nil, false
	}
	return &ColumnRefExpression{
		BaseExpression: base(ClassBoundColumnRef, TypeBoundColumnRef),
		Binding:        ColumnBinding{ColumnIndex: i},
		ReturnType:     f.types[i],
	}, true
}

// text casts non-text column references to VARCHAR.
func (f *Factory) text(ref *ColumnRefExpression) Expression {
	if ref.ReturnType.ID.IsString() {
		return ref
	}
	return cast(ref, TypeIDVarchar)
}

func (f *Factory) compare(typ ExpressionType, col condition.Column, v condition.Value) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	return comparison(typ, ref, constantOf(v))
}

func (f *Factory) compareIgnoreCase(typ ExpressionType, col condition.Column, v condition.Value) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	lowered := function("lower", TypeIDVarchar, f.text(ref))
	return comparison(typ, lowered, varchar(strings.ToLower(v.Str)))
}

func (f *Factory) in(typ ExpressionType, col condition.Column, values []condition.Value) condition.Predicate {
	ref, ok := f.ref(col)
	if !ok {
		return unknownColumn(col)
	}
	children := make([]Expression, 0, len(values)+1)
	children = append(children, ref)
	for _, v := range values {
		children = append(children, constantOf(v))
	}
	return &OperatorExpression{
		BaseExpression: base(ClassBoundOperator, typ),
		Children:       children,
		ReturnType:     LogicalType{ID: TypeIDBoolean},
	}
}

// asExpression unwraps a predicate built by a Factory.
func asExpression(p condition.Predicate) Expression {
	if e, ok := p.(Expression); ok && e != nil {
		return e
	}
	return &UnsupportedExpression{Reason: "predicate was not built by filter.Factory"}
}

func unknownColumn(col condition.Column) Expression {
	return &UnsupportedExpression{
		BaseExpression: base(ClassBoundColumnRef, TypeBoundColumnRef),
		Reason:         "unknown column " + col.Name,
	}
}

// conjunction joins a and b, flattening children of the same type.
func conjunction(typ ExpressionType, a, b Expression) Expression {
	c := &ConjunctionExpression{BaseExpression: base(ClassBoundConjunction, typ)}
	for _, e := range []Expression{a, b} {
		if inner, ok := e.(*ConjunctionExpression); ok && inner.Type() == typ {
			c.Children = append(c.Children, inner.Children...)
			continue
		}
		c.Children = append(c.Children, e)
	}
	return c
}

func comparison(typ ExpressionType, left, right Expression) Expression {
	return &ComparisonExpression{
		BaseExpression: base(ClassBoundComparison, typ),
		Left:           left,
		Right:          right,
	}
}

func function(name string, ret LogicalTypeID, args ...Expression) Expression {
	return &FunctionExpression{
		BaseExpression: base(ClassBoundFunction, TypeBoundFunction),
		Name:           name,
		Children:       args,
		ReturnType:     LogicalType{ID: ret},
	}
}

func cast(child Expression, to LogicalTypeID) Expression {
	return &CastExpression{
		BaseExpression: base(ClassBoundCast, TypeCast),
		Child:          child,
		ReturnType:     LogicalType{ID: to},
	}
}

func constant(v Value) Expression {
	return &ConstantExpression{
		BaseExpression: base(ClassBoundConstant, TypeValueConstant),
		Value:          v,
	}
}

func varchar(s string) Expression {
	return constant(Value{Type: LogicalType{ID: TypeIDVarchar}, Data: s})
}

var (
	minHugeInt  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxHugeInt  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	maxUHugeInt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// constantOf converts a condition value to a typed constant. Instants
// become TIMESTAMP_TZ microseconds; integers use the narrowest of BIGINT,
// HUGEINT and UHUGEINT that holds them.
func constantOf(v condition.Value) Expression {
	switch v.Kind {
	case condition.KindBool:
		return constant(Value{Type: LogicalType{ID: TypeIDBoolean}, Data: v.Bool})
	case condition.KindNumber:
		return constant(Value{Type: LogicalType{ID: TypeIDDouble}, Data: v.Number})
	case condition.KindLong:
		return longConstant(v.Long)
	case condition.KindInstant:
		return constant(Value{Type: LogicalType{ID: TypeIDTimestampTZ}, Data: v.Instant.UnixMicro()})
	default:
		return varchar(v.Str)
	}
}

func longConstant(n *big.Int) Expression {
	if n == nil {
		n = new(big.Int)
	}
	switch {
	case n.IsInt64():
		return constant(Value{Type: LogicalType{ID: TypeIDBigInt}, Data: n.Int64()})
	case n.Cmp(minHugeInt) >= 0 && n.Cmp(maxHugeInt) <= 0:
		return constant(Value{Type: LogicalType{ID: TypeIDHugeInt}, Data: toHugeInt(n)})
	case n.Sign() > 0 && n.Cmp(maxUHugeInt) <= 0:
		return constant(Value{Type: LogicalType{ID: TypeIDUHugeInt}, Data: toUHugeInt(n)})
	default:
		return &UnsupportedExpression{
			BaseExpression: base(ClassBoundConstant, TypeValueConstant),
			Reason:         "integer out of range: " + n.String(),
		}
	}
}

var mask64 = new(big.Int).SetUint64(math.MaxUint64)

// toHugeInt splits n into two's complement upper and lower words.
func toHugeInt(n *big.Int) HugeInt {
	lower := new(big.Int).And(n, mask64).Uint64()
	upper := new(big.Int).Rsh(n, 64).Int64()
	return HugeInt{Upper: upper, Lower: lower}
}

func toUHugeInt(n *big.Int) UHugeInt {
	lower := new(big.Int).And(n, mask64).Uint64()
	upper := new(big.Int).Rsh(n, 64).Uint64()
	return UHugeInt{Upper: upper, Lower: lower}
}

// hugeIntValue joins the words of h.
func hugeIntValue(h HugeInt) *big.Int {
	bi := new(big.Int).SetInt64(h.Upper)
	bi.Lsh(bi, 64)
	return bi.Or(bi, new(big.Int).SetUint64(h.Lower))
}

func uhugeIntValue(h UHugeInt) *big.Int {
	bi := new(big.Int).SetUint64(h.Upper)
	bi.Lsh(bi, 64)
	return bi.Or(bi, new(big.Int).SetUint64(h.Lower))
}
