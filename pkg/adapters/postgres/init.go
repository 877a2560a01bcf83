// Package postgres provides a PostgreSQL schema reader for schemagraph.
//
// This file registers the PostgreSQL reader with the reader registry.
// Import this package with a blank identifier to register the reader:
//
//	import _ "github.com/leapstack-labs/schemagraph/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Reader { return New(logger) })
}
