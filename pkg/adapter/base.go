package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for readers.
// Embed this struct in concrete reader implementations to get standard
// Close and catalog-reading implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.ReaderConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		err := b.DB.Close()
		b.DB = nil
		return err
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// CatalogQueries holds the three catalog queries a reader runs.
// Each query receives the schema name as its only argument.
//
//   - Tables returns one column: table name.
//   - Columns returns table, column, type, is_nullable ('YES'/'NO'),
//     default (nullable), ordinal position, is primary key.
//   - ForeignKeys returns table, constraint name, column, referenced table,
//     referenced column (nullable), update rule (nullable), delete rule (nullable),
//     with the columns of one constraint in key order.
type CatalogQueries struct {
	Tables      string
	Columns     string
	ForeignKeys string
}

// ReadCatalog runs the catalog queries and assembles a schema.
// Queries run one after another so that single-connection databases work.
func (b *BaseSQLAdapter) ReadCatalog(ctx context.Context, q CatalogQueries, schemaName string) (*core.Schema, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	tables, err := b.queryTableNames(ctx, q.Tables, schemaName)
	if err != nil {
		return nil, err
	}

	columns, err := b.queryColumns(ctx, q.Columns, schemaName)
	if err != nil {
		return nil, err
	}

	fks, err := b.queryForeignKeys(ctx, q.ForeignKeys, schemaName)
	if err != nil {
		return nil, err
	}

	schema := AssembleSchema(tables, columns, fks)
	ResolveImplicitReferences(schema)

	if b.Logger != nil {
		b.Logger.Debug("catalog read",
			slog.String("schema", schemaName),
			slog.Int("tables", len(tables)))
	}
	return schema, nil
}

func (b *BaseSQLAdapter) queryTableNames(ctx context.Context, query, schemaName string) ([]string, error) {
	rows, err := b.DB.QueryContext(ctx, query, schemaName)
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

func (b *BaseSQLAdapter) queryColumns(ctx context.Context, query, schemaName string) (map[string][]core.Column, error) {
	rows, err := b.DB.QueryContext(ctx, query, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns := make(map[string][]core.Column)
	for rows.Next() {
		var (
			table    string
			col      core.Column
			nullable string
			def      sql.NullString
		)
		if err := rows.Scan(&table, &col.Name, &col.Type, &nullable, &def, &col.Position, &col.PrimaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		if def.Valid {
			v := def.String
			col.Default = &v
		}
		columns[table] = append(columns[table], col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return columns, nil
}

func (b *BaseSQLAdapter) queryForeignKeys(ctx context.Context, query, schemaName string) (map[string][]core.ForeignKey, error) {
	rows, err := b.DB.QueryContext(ctx, query, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fks := make(map[string][]core.ForeignKey)
	ids := make(map[string]map[string]int) // table -> constraint -> id
	seqs := make(map[[2]string]int)

	for rows.Next() {
		var (
			table, constraint, column, refTable string
			refColumn, onUpdate, onDelete       sql.NullString
		)
		if err := rows.Scan(&table, &constraint, &column, &refTable, &refColumn, &onUpdate, &onDelete); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}

		if ids[table] == nil {
			ids[table] = make(map[string]int)
		}
		id, ok := ids[table][constraint]
		if !ok {
			id = len(ids[table])
			ids[table][constraint] = id
		}
		key := [2]string{table, constraint}
		seq := seqs[key]
		seqs[key] = seq + 1

		fks[table] = append(fks[table], core.ForeignKey{
			ID:        id,
			Seq:       seq,
			Column:    column,
			RefTable:  refTable,
			RefColumn: refColumn.String,
			OnUpdate:  onUpdate.String,
			OnDelete:  onDelete.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return fks, nil
}

// AssembleSchema combines per-table catalog results into a schema.
// Only tables listed in names are included, in that order.
func AssembleSchema(names []string, columns map[string][]core.Column, fks map[string][]core.ForeignKey) *core.Schema {
	schema := &core.Schema{Tables: make([]core.Table, 0, len(names))}
	for _, name := range names {
		schema.Tables = append(schema.Tables, core.Table{
			Name:        name,
			Columns:     columns[name],
			ForeignKeys: fks[name],
		})
	}
	return schema
}

// ResolveImplicitReferences fills in referenced columns left empty by the
// catalog (SQLite's "REFERENCES users" form) with the target's primary key.
// References to unknown tables or tables without a matching key stay empty.
func ResolveImplicitReferences(schema *core.Schema) {
	if schema == nil {
		return
	}
	for i := range schema.Tables {
		fks := schema.Tables[i].ForeignKeys
		for j := range fks {
			if fks[j].RefColumn != "" {
				continue
			}
			target, ok := schema.Table(fks[j].RefTable)
			if !ok {
				continue
			}
			if pk := target.PrimaryKey(); fks[j].Seq < len(pk) {
				fks[j].RefColumn = pk[fks[j].Seq]
			}
		}
	}
}
