// Package adapter provides the schema reader contract for schemagraph.
//
// A reader connects to one database, enumerates its tables and returns
// their columns and outgoing foreign keys as a core.Schema.
// Concrete readers are in pkg/adapters/ subdirectories and register
// themselves with this package from their init functions.
package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// Config is an alias for core.ReaderConfig.
type Config = core.ReaderConfig

// Reader defines the interface that all schema readers must implement.
type Reader interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// ReadSchema enumerates every table with its columns and foreign keys.
	// A failure on any table fails the whole read.
	ReadSchema(ctx context.Context) (*core.Schema, error)
}

// Extract opens a reader for cfg, reads one schema snapshot and closes the
// reader again on every exit path.
func Extract(ctx context.Context, cfg Config, logger *slog.Logger) (schema *core.Schema, err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r, err := NewReader(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := r.Connect(ctx, cfg); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to connect %s reader: %w", cfg.Type, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s reader: %w", cfg.Type, cerr)
		}
	}()

	schema, err = r.ReadSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	logger.Debug("schema extracted",
		slog.String("type", cfg.Type),
		slog.Int("tables", schema.Len()))

	return schema, nil
}
