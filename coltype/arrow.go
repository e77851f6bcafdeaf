package coltype

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// FromArrow returns the DuckDB logical type name that DuckDB uses for an
// Arrow field of type dt. Types without a filterable counterpart return
// their Arrow name, which Normalize maps to Unknown.
func FromArrow(dt arrow.DataType) string {
	switch dt.ID() {
	case arrow.BOOL:
		return "BOOLEAN"
	case arrow.INT8:
		return "TINYINT"
	case arrow.INT16:
		return "SMALLINT"
	case arrow.INT32:
		return "INTEGER"
	case arrow.INT64:
		return "BIGINT"
	case arrow.UINT8:
		return "UTINYINT"
	case arrow.UINT16:
		return "USMALLINT"
	case arrow.UINT32:
		return "UINTEGER"
	case arrow.UINT64:
		return "UBIGINT"
	case arrow.FLOAT16, arrow.FLOAT32:
		return "FLOAT"
	case arrow.FLOAT64:
		return "DOUBLE"
	case arrow.DECIMAL128, arrow.DECIMAL256:
		return "DECIMAL"
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return "VARCHAR"
	case arrow.DATE32, arrow.DATE64:
		return "DATE"
	case arrow.TIMESTAMP:
		ts, ok := dt.(*arrow.TimestampType)
		if !ok {
			return "TIMESTAMP"
		}
		if ts.TimeZone != "" {
			return "TIMESTAMP_TZ"
		}
		switch ts.Unit {
		case arrow.Second:
			return "TIMESTAMP_SEC"
		case arrow.Millisecond:
			return "TIMESTAMP_MS"
		case arrow.Nanosecond:
			return "TIMESTAMP_NS"
		default:
			return "TIMESTAMP"
		}
	default:
		return dt.Name()
	}
}
