// Package filter builds, encodes and evaluates filter expression trees in
// the shape of DuckDB Airport filter pushdown JSON.
//
// Factory implements condition.Factory, so the quick, advanced and search
// compilers produce expression trees through it:
//
//	f := filter.NewFactory(columns)
//	pred, err := quick.Compile(f, col, ">=10 && <20", time.UTC)
//	if err != nil {
//	    return err
//	}
//	fp := f.Pushdown(pred)
//
// # Encoding
//
// DuckDBEncoder renders a FilterPushdown as the body of a WHERE clause:
//
//	enc := filter.NewDuckDBEncoder(nil)
//	where := enc.EncodeFilters(fp)
//
// Column names can be mapped to backend names with EncoderOptions.ColumnMapping
// or replaced by SQL expressions with EncoderOptions.ColumnExpressions.
//
// Predicates on columns the factory does not know become
// UnsupportedExpression. The encoder skips such a child of AND and drops an
// OR that holds one, so the encoded filter is never narrower than the
// compiled one.
//
// # Wire format
//
// Marshal writes the pushdown JSON and Parse reads it back. Parse accepts
// any pushdown JSON; expression classes outside this package come back as
// UnsupportedExpression.
//
// # Evaluation
//
// Evaluate applies a FilterPushdown to a single Row with SQL three-valued
// logic, which lets callers filter in memory without a database.
package filter
