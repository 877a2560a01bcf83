// Package mysql provides a MySQL schema reader for schemagraph.
//
// This file registers the MySQL reader with the reader registry.
// Import this package with a blank identifier to register the reader:
//
//	import _ "github.com/leapstack-labs/schemagraph/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

func init() {
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Reader { return New(logger) })
}
