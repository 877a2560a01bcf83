// Package duckdb provides a DuckDB schema reader for schemagraph.
//
// This file registers the DuckDB reader with the reader registry.
// Import this package with a blank identifier to register the reader:
//
//	import _ "github.com/leapstack-labs/schemagraph/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Reader { return New(logger) })
}
