package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DefaultSchema is read when the target names no schema.
const DefaultSchema = "main"

var catalogQueries = adapter.CatalogQueries{
	Tables: `
		SELECT table_name
		FROM duckdb_tables()
		WHERE schema_name = ? AND database_name = current_database() AND NOT internal
		ORDER BY table_oid
	`,
	Columns: `
		SELECT
			c.table_name,
			c.column_name,
			c.data_type,
			CASE WHEN c.is_nullable THEN 'YES' ELSE 'NO' END,
			c.column_default,
			c.column_index,
			EXISTS (
				SELECT 1
				FROM duckdb_constraints() k
				WHERE k.constraint_type = 'PRIMARY KEY'
					AND k.database_name = c.database_name
					AND k.schema_name = c.schema_name
					AND k.table_name = c.table_name
					AND list_contains(k.constraint_column_names, c.column_name)
			) AS is_pk
		FROM duckdb_columns() c
		JOIN duckdb_tables() t ON t.table_oid = c.table_oid
		WHERE c.schema_name = ? AND c.database_name = current_database()
		ORDER BY c.table_name, c.column_index
	`,
	ForeignKeys: `
		SELECT
			table_name,
			CAST(constraint_index AS VARCHAR),
			constraint_column_names[i + 1],
			referenced_table,
			referenced_column_names[i + 1],
			NULL,
			NULL
		FROM (
			SELECT *, unnest(range(len(constraint_column_names))) AS i
			FROM duckdb_constraints()
			WHERE constraint_type = 'FOREIGN KEY'
				AND schema_name = ?
				AND database_name = current_database()
		)
		ORDER BY table_name, constraint_index, i
	`,
}

// Adapter implements the adapter.Reader interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
	params *Params
}

// New creates a new DuckDB reader instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Connect opens a DuckDB database file, read-only unless params say otherwise.
// Use ":memory:" as the path for an empty in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		return fmt.Errorf("duckdb database path is required")
	}

	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}

	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("failed to open duckdb database: %w", err)
		}
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", params.dsn(path))
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	for _, ext := range params.Extensions {
		if !validExtensionName(ext) {
			_ = db.Close()
			return fmt.Errorf("invalid duckdb extension name %q", ext)
		}
		if _, err := db.ExecContext(ctx, "LOAD "+ext); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to load duckdb extension %s: %w", ext, err)
		}
	}

	a.DB = db
	a.Cfg = cfg
	a.params = params
	return nil
}

// ReadSchema reads the base tables of the configured schema.
func (a *Adapter) ReadSchema(ctx context.Context) (*core.Schema, error) {
	return a.ReadCatalog(ctx, catalogQueries, a.schemaName())
}

func (a *Adapter) schemaName() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return DefaultSchema
}

func validExtensionName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return !strings.HasPrefix(name, "_")
}

// Ensure Adapter implements adapter.Reader interface
var _ adapter.Reader = (*Adapter)(nil)
