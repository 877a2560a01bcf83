package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

const (
	tablesQuery = `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`
	columnsQuery = `
		SELECT cid, name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?)
	`
	// pragma_foreign_key_list numbers constraints last-declared first.
	foreignKeysQuery = `
		SELECT id, seq, "table", "from", "to", on_update, on_delete
		FROM pragma_foreign_key_list(?)
		ORDER BY id DESC, seq
	`
)

// Adapter implements the adapter.Reader interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite reader instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Connect opens an existing SQLite database file.
// A missing file is an error; the reader never creates databases.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		return fmt.Errorf("sqlite database path is required")
	}

	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// PRAGMA results and :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ReadSchema enumerates user tables with their columns and foreign keys.
func (a *Adapter) ReadSchema(ctx context.Context) (*core.Schema, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	names, err := a.tableNames(ctx)
	if err != nil {
		return nil, err
	}

	columns := make(map[string][]core.Column, len(names))
	fks := make(map[string][]core.ForeignKey, len(names))
	for _, name := range names {
		cols, err := a.tableColumns(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		columns[name] = cols

		keys, err := a.tableForeignKeys(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		fks[name] = keys
	}

	schema := adapter.AssembleSchema(names, columns, fks)
	adapter.ResolveImplicitReferences(schema)

	a.Logger.Debug("sqlite schema read", slog.Int("tables", len(names)))
	return schema, nil
}

func (a *Adapter) tableNames(ctx context.Context) ([]string, error) {
	rows, err := a.DB.QueryContext(ctx, tablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return names, nil
}

func (a *Adapter) tableColumns(ctx context.Context, table string) ([]core.Column, error) {
	rows, err := a.DB.QueryContext(ctx, columnsQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var (
			col     core.Column
			notNull int
			def     sql.NullString
			pk      int
		)
		if err := rows.Scan(&col.Position, &col.Name, &col.Type, &notNull, &def, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = notNull == 0
		col.PrimaryKey = pk > 0
		col.PrimaryKeyOrder = pk
		if def.Valid {
			v := def.String
			col.Default = &v
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return columns, nil
}

func (a *Adapter) tableForeignKeys(ctx context.Context, table string) ([]core.ForeignKey, error) {
	rows, err := a.DB.QueryContext(ctx, foreignKeysQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fks []core.ForeignKey
	for rows.Next() {
		var (
			fk       core.ForeignKey
			to       sql.NullString
			onUpdate sql.NullString
			onDelete sql.NullString
		)
		if err := rows.Scan(&fk.ID, &fk.Seq, &fk.RefTable, &fk.Column, &to, &onUpdate, &onDelete); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		fk.RefColumn = to.String
		fk.OnUpdate = onUpdate.String
		fk.OnDelete = onDelete.String
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return fks, nil
}

// Ensure Adapter implements adapter.Reader interface
var _ adapter.Reader = (*Adapter)(nil)
