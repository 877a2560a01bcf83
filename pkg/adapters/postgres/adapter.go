package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// DefaultSchema is read when the target names no schema.
const DefaultSchema = "public"

var catalogQueries = adapter.CatalogQueries{
	Tables: `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`,
	Columns: `
		SELECT
			c.table_name,
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.ordinal_position,
			EXISTS (
				SELECT 1
				FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage k
					ON k.constraint_schema = tc.constraint_schema
					AND k.constraint_name = tc.constraint_name
				WHERE tc.constraint_type = 'PRIMARY KEY'
					AND tc.table_schema = c.table_schema
					AND tc.table_name = c.table_name
					AND k.column_name = c.column_name
			) AS is_pk
		FROM information_schema.columns c
		WHERE c.table_schema = $1
		ORDER BY c.table_name, c.ordinal_position
	`,
	ForeignKeys: `
		SELECT
			kcu.table_name,
			kcu.constraint_name,
			kcu.column_name,
			ref.table_name,
			ref.column_name,
			rc.update_rule,
			rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_schema = rc.constraint_schema
			AND kcu.constraint_name = rc.constraint_name
		JOIN information_schema.key_column_usage ref
			ON ref.constraint_schema = rc.unique_constraint_schema
			AND ref.constraint_name = rc.unique_constraint_name
			AND ref.ordinal_position = kcu.position_in_unique_constraint
		WHERE kcu.table_schema = $1
		ORDER BY kcu.table_name, kcu.constraint_name, kcu.ordinal_position
	`,
}

// Adapter implements the adapter.Reader interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL reader instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Connect establishes a connection to PostgreSQL.
// An explicit DSN wins over the individual connection fields.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildPostgresDSN(cfg)
	}

	a.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
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

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	// key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Ensure Adapter implements adapter.Reader interface
var _ adapter.Reader = (*Adapter)(nil)
