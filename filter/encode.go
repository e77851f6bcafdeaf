package filter

import "strings"

// Encoder converts filter expressions to SQL strings.
// Implementations handle dialect-specific syntax.
type Encoder interface {
	// Encode converts a single expression to SQL.
	// Returns empty string if expression is unsupported.
	Encode(expr Expression) string

	// EncodeFilters converts all filters to a WHERE clause body.
	// Returns the condition portion without "WHERE" keyword.
	// Returns empty string if no filters can be encoded.
	EncodeFilters(fp *FilterPushdown) string
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps table column names to names in the target query.
	// Columns not in the map use their original names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column names to SQL expressions.
	// Takes precedence over ColumnMapping.
	ColumnExpressions map[string]string
}

// quoteLiteral returns a SQL string literal with single quotes doubled.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdentifier returns name, double-quoted if it is not a plain
// identifier or is a reserved word.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

func needsQuoting(name string) bool {
	if name == "" {
		return true
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}

	return reservedWords[strings.ToUpper(name)]
}

var reservedWords = map[string]bool{
	"ALL": true, "AND": true, "AS": true, "ASC": true, "BETWEEN": true,
	"BY": true, "CASE": true, "CAST": true, "CHECK": true, "CREATE": true,
	"DATE": true, "DEFAULT": true, "DELETE": true, "DESC": true,
	"DISTINCT": true, "DROP": true, "ELSE": true, "END": true, "EXCEPT": true,
	"EXISTS": true, "FALSE": true, "FROM": true, "GROUP": true,
	"HAVING": true, "IN": true, "INSERT": true, "INTERVAL": true, "INTO": true,
	"IS": true, "JOIN": true, "KEY": true, "LIKE": true, "LIMIT": true,
	"NOT": true, "NULL": true, "OFFSET": true, "ON": true, "OR": true,
	"ORDER": true, "SELECT": true, "SET": true, "TABLE": true, "THEN": true,
	"TIME": true, "TIMESTAMP": true, "TRUE": true, "UNION": true,
	"UPDATE": true, "VALUES": true, "WHEN": true, "WHERE": true,
}
