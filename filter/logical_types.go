package filter

import "github.com/hugr-lab/tablefilter/coltype"

// LogicalTypeID identifies DuckDB data types.
type LogicalTypeID string

const (
	TypeIDUnknown      LogicalTypeID = "UNKNOWN"
	TypeIDBoolean      LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt      LogicalTypeID = "TINYINT"
	TypeIDSmallInt     LogicalTypeID = "SMALLINT"
	TypeIDInteger      LogicalTypeID = "INTEGER"
	TypeIDBigInt       LogicalTypeID = "BIGINT"
	TypeIDDate         LogicalTypeID = "DATE"
	TypeIDTimestampSec LogicalTypeID = "TIMESTAMP_SEC"
	TypeIDTimestampMs  LogicalTypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampNs  LogicalTypeID = "TIMESTAMP_NS"
	TypeIDDecimal      LogicalTypeID = "DECIMAL"
	TypeIDFloat        LogicalTypeID = "FLOAT"
	TypeIDDouble       LogicalTypeID = "DOUBLE"
	TypeIDChar         LogicalTypeID = "CHAR"
	TypeIDVarchar      LogicalTypeID = "VARCHAR"
	TypeIDUTinyInt     LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt    LogicalTypeID = "USMALLINT"
	TypeIDUInteger     LogicalTypeID = "UINTEGER"
	TypeIDUBigInt      LogicalTypeID = "UBIGINT"
	TypeIDTimestampTZ  LogicalTypeID = "TIMESTAMP_TZ"
	TypeIDHugeInt      LogicalTypeID = "HUGEINT"
	TypeIDUHugeInt     LogicalTypeID = "UHUGEINT"
)

// Normalize returns the canonical LogicalTypeID for the given type ID.
// DuckDB may send either the short form (e.g., "TIMESTAMP_TZ") or the full
// SQL form (e.g., "TIMESTAMP WITH TIME ZONE"); both normalize to the short
// form. The alias table is shared with coltype so a column declared with
// any spelling classifies the same way.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	return LogicalTypeID(coltype.CanonicalDuckDBName(string(t)))
}

// LogicalType represents a DuckDB logical type.
type LogicalType struct {
	ID LogicalTypeID `json:"id"`
}

// logicalTypeOf maps a raw column type name to the DuckDB type used for
// its column references. JVM-style names map through their semantic type.
func logicalTypeOf(raw string) LogicalType {
	id := LogicalTypeID(raw).Normalize()
	if id.valid() {
		return LogicalType{ID: id}
	}

	switch coltype.Normalize(raw) {
	case coltype.Boolean:
		id = TypeIDBoolean
	case coltype.Char:
		id = TypeIDChar
	case coltype.String:
		id = TypeIDVarchar
	case coltype.DateTime:
		id = TypeIDTimestampTZ
	case coltype.Decimal:
		id = TypeIDDouble
	case coltype.Int:
		id = TypeIDBigInt
		if raw == "java.math.BigInteger" {
			id = TypeIDHugeInt
		}
	default:
		id = TypeIDUnknown
	}
	return LogicalType{ID: id}
}

func (t LogicalTypeID) valid() bool {
	return t.IsNumeric() || t.IsTemporal() || t.IsString() || t == TypeIDBoolean
}

// Value represents a typed constant value.
type Value struct {
	Type   LogicalType `json:"type"`
	IsNull bool        `json:"is_null"`
	Data   any         `json:"value"` // Type-specific data
}

// HugeInt represents a 128-bit signed integer.
type HugeInt struct {
	Upper int64  `json:"upper"`
	Lower uint64 `json:"lower"`
}

// UHugeInt represents a 128-bit unsigned integer.
type UHugeInt struct {
	Upper uint64 `json:"upper"`
	Lower uint64 `json:"lower"`
}

// IsNumeric returns true if the type is a numeric type.
func (t LogicalTypeID) IsNumeric() bool {
	return t.IsInteger() || t == TypeIDFloat || t == TypeIDDouble || t == TypeIDDecimal
}

// IsInteger returns true if the type is an integer type.
func (t LogicalTypeID) IsInteger() bool {
	switch t {
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt,
		TypeIDHugeInt, TypeIDUHugeInt:
		return true
	}
	return false
}

// IsUnsigned returns true if the type is an unsigned integer type.
func (t LogicalTypeID) IsUnsigned() bool {
	switch t {
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt, TypeIDUHugeInt:
		return true
	}
	return false
}

// IsTemporal returns true if the type is a date/time type.
func (t LogicalTypeID) IsTemporal() bool {
	switch t {
	case TypeIDDate, TypeIDTimestamp, TypeIDTimestampTZ,
		TypeIDTimestampMs, TypeIDTimestampNs, TypeIDTimestampSec:
		return true
	}
	return false
}

// IsString returns true if the type is a string type.
func (t LogicalTypeID) IsString() bool {
	return t == TypeIDVarchar || t == TypeIDChar
}
