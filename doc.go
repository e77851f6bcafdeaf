// Package tablefilter compiles the filters users type into table column
// headers into predicates a table engine can evaluate.
//
// Three kinds of filters are supported:
//   - Quick filters: free text per column, such as ">=5 && <10 || null"
//   - Advanced filters: typed conditions joined by positional AND/OR,
//     combined with a selection of column values
//   - Cross-column searches: one term matched against several columns
//
// # Quick Start
//
// Declare the table, create a Compiler and compile filters:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/hugr-lab/tablefilter"
//	)
//
//	func main() {
//	    table, err := tablefilter.NewTableBuilder().
//	        Column("id", "long").
//	        Column("name", "java.lang.String").
//	        Column("created", "io.deephaven.time.DateTime").
//	        Build()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    c, err := tablefilter.New(tablefilter.Config{
//	        Table:    table,
//	        TimeZone: "America/New_York",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    created, _ := table.Column("created")
//	    p, err := c.CompileQuickFilter(created, ">=2023-07 && <today")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("SELECT * FROM events WHERE " + table.Where(p))
//	}
//
// # Architecture
//
// The compilers never build predicates themselves; they call a
// condition.Factory supplied by the table engine:
//
//   - coltype: normalizes raw column type names into semantic types
//   - quick: quick filter grammar per semantic type
//   - advanced: advanced filter items, joins and value selection
//   - search: cross-column search scoping
//   - filter: a Factory producing DuckDB expression trees, with a SQL
//     encoder, the Airport filter pushdown JSON codec and an evaluator
//
// Users can either:
//   - Declare columns with the TableBuilder fluent API, or derive them from
//     an Arrow schema, and use the DuckDB factory
//   - Implement condition.Factory for their own engine
//
// # Errors
//
// Quick filters are all or nothing: a bad fragment fails the whole filter
// with a *quick.CompileError, which matches the quick.Err* sentinels with
// errors.Is. Advanced filters skip each item that fails to compile and log
// it at Warn level. Searches never fail. A panic raised by the factory is returned as
// an error on every Compile method.
//
// # Logging
//
// The package logs through Config.Logger, or slog.Default() when unset.
package tablefilter
