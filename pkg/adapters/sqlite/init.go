// Package sqlite provides a SQLite schema reader for schemagraph.
//
// This file registers the SQLite reader with the reader registry.
// Import this package with a blank identifier to register the reader:
//
//	import _ "github.com/leapstack-labs/schemagraph/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Reader { return New(logger) })
}
