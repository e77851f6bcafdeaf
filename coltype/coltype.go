// Package coltype normalizes raw column type names into the small set of
// semantic types that drive filter construction.
//
// Raw names come from two families: JVM-style names reported by table
// servers ("long", "java.lang.Integer", "io.deephaven.time.DateTime") and
// DuckDB logical type names ("BIGINT", "TIMESTAMP WITH TIME ZONE").
// Both are folded onto the same six semantic types, so a column declared
// as "INT8" is compatible with one declared as "java.lang.Long".
package coltype

import (
	"math/big"
	"strings"
)

// SemanticType is the filter-relevant category of a column type.
type SemanticType int

const (
	Unknown SemanticType = iota
	Boolean
	Char
	String
	DateTime
	Decimal
	Int
)

var semanticTypeNames = [...]string{
	Unknown:  "unknown",
	Boolean:  "boolean",
	Char:     "char",
	String:   "string",
	DateTime: "datetime",
	Decimal:  "decimal",
	Int:      "int",
}

// String returns the lowercase name of the semantic type.
func (t SemanticType) String() string {
	if t < 0 || int(t) >= len(semanticTypeNames) {
		return semanticTypeNames[Unknown]
	}
	return semanticTypeNames[t]
}

// IsNumber reports whether t is Int or Decimal.
func (t SemanticType) IsNumber() bool {
	return t == Int || t == Decimal
}

// IsText reports whether t is String or Char.
func (t SemanticType) IsText() bool {
	return t == String || t == Char
}

// jvmTypes holds the exact-case JVM spellings and the canonical lowercase
// semantic names.
var jvmTypes = map[string]SemanticType{
	"boolean":           Boolean,
	"java.lang.Boolean": Boolean,

	"char":                Char,
	"java.lang.Character": Char,

	"java.lang.String": String,
	"string":           String,

	"io.deephaven.db.tables.utils.DBDateTime":     DateTime,
	"io.deephaven.time.DateTime":                  DateTime,
	"com.illumon.iris.db.tables.utils.DBDateTime": DateTime,

	"datetime": DateTime,

	"double":               Decimal,
	"java.lang.Double":     Decimal,
	"float":                Decimal,
	"java.lang.Float":      Decimal,
	"java.math.BigDecimal": Decimal,
	"decimal":              Decimal,

	"int":                  Int,
	"java.lang.Integer":    Int,
	"long":                 Int,
	"java.lang.Long":       Int,
	"short":                Int,
	"java.lang.Short":      Int,
	"byte":                 Int,
	"java.lang.Byte":       Int,
	"java.math.BigInteger": Int,
}

// duckTypes maps canonical DuckDB logical type names.
var duckTypes = map[string]SemanticType{
	"BOOLEAN": Boolean,

	"CHAR": Char,

	"VARCHAR": String,

	"DATE":          DateTime,
	"TIMESTAMP":     DateTime,
	"TIMESTAMP_TZ":  DateTime,
	"TIMESTAMP_SEC": DateTime,
	"TIMESTAMP_MS":  DateTime,
	"TIMESTAMP_NS":  DateTime,

	"FLOAT":   Decimal,
	"DOUBLE":  Decimal,
	"DECIMAL": Decimal,

	"TINYINT":   Int,
	"SMALLINT":  Int,
	"INTEGER":   Int,
	"BIGINT":    Int,
	"HUGEINT":   Int,
	"UTINYINT":  Int,
	"USMALLINT": Int,
	"UINTEGER":  Int,
	"UBIGINT":   Int,
	"UHUGEINT":  Int,
}

// duckAliases folds DuckDB aliases and full SQL names onto the short names
// used in duckTypes. DuckDB may report either form.
var duckAliases = map[string]string{
	"TIMESTAMP WITH TIME ZONE":    "TIMESTAMP_TZ",
	"TIMESTAMPTZ":                 "TIMESTAMP_TZ",
	"TIME WITH TIME ZONE":         "TIME_TZ",
	"TIMETZ":                      "TIME_TZ",
	"TIMESTAMP_S":                 "TIMESTAMP_SEC",
	"TIMESTAMP WITHOUT TIME ZONE": "TIMESTAMP",
	"DATETIME":                    "TIMESTAMP",

	"INT":     "INTEGER",
	"INT4":    "INTEGER",
	"SIGNED":  "INTEGER",
	"INT8":    "BIGINT",
	"LONG":    "BIGINT",
	"INT2":    "SMALLINT",
	"SHORT":   "SMALLINT",
	"INT1":    "TINYINT",
	"UINT8":   "UBIGINT",
	"UINT4":   "UINTEGER",
	"UINT2":   "USMALLINT",
	"UINT1":   "UTINYINT",
	"INT128":  "HUGEINT",
	"UINT128": "UHUGEINT",

	"FLOAT4":  "FLOAT",
	"FLOAT8":  "DOUBLE",
	"REAL":    "FLOAT",
	"NUMERIC": "DECIMAL",

	"STRING":  "VARCHAR",
	"TEXT":    "VARCHAR",
	"BPCHAR":  "CHAR",
	"BOOL":    "BOOLEAN",
	"LOGICAL": "BOOLEAN",
}

// longTypes are the integral types at least 64 bits wide. Values for them
// are parsed with arbitrary precision instead of through float64.
var longTypes = map[string]bool{
	"long":                 true,
	"java.lang.Long":       true,
	"java.math.BigInteger": true,
	"BIGINT":               true,
	"UBIGINT":              true,
	"HUGEINT":              true,
	"UHUGEINT":             true,
}

// Integer operands for long columns must lie within the widest integer
// types a column can hold: HUGEINT below zero and UHUGEINT above.
var (
	minLong = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxLong = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// LongInRange reports whether n can be compared against a long column.
func LongInRange(n *big.Int) bool {
	return n != nil && n.Cmp(minLong) >= 0 && n.Cmp(maxLong) <= 0
}

// CanonicalDuckDBName returns the short DuckDB logical type name for raw.
// Parameters such as "(18, 3)" are dropped and aliases are resolved.
// The result is uppercase; unrecognized names are returned uppercased.
func CanonicalDuckDBName(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if mapped, ok := duckAliases[name]; ok {
		return mapped
	}
	return name
}

// Normalize maps a raw column type name to its semantic type.
// Unrecognized names map to Unknown.
func Normalize(raw string) SemanticType {
	if t, ok := jvmTypes[raw]; ok {
		return t
	}
	if t, ok := duckTypes[CanonicalDuckDBName(raw)]; ok {
		return t
	}
	return Unknown
}

// IsCompatible reports whether two raw type names normalize to the same
// known semantic type.
func IsCompatible(raw1, raw2 string) bool {
	t := Normalize(raw1)
	return t != Unknown && t == Normalize(raw2)
}

// IsLong reports whether raw names an integral type of 64 bits or more.
func IsLong(raw string) bool {
	if longTypes[raw] {
		return true
	}
	return longTypes[CanonicalDuckDBName(raw)]
}

// BaseType returns the element type of an array type name such as
// "int[]", or raw unchanged.
func BaseType(raw string) string {
	if i := strings.Index(raw, "[]"); i >= 0 {
		return raw[:i]
	}
	return raw
}
