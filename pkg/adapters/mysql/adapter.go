package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

var catalogQueries = adapter.CatalogQueries{
	Tables: `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`,
	Columns: `
		SELECT
			TABLE_NAME,
			COLUMN_NAME,
			DATA_TYPE,
			IS_NULLABLE,
			COLUMN_DEFAULT,
			ORDINAL_POSITION,
			COLUMN_KEY = 'PRI'
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ?
		ORDER BY TABLE_NAME, ORDINAL_POSITION
	`,
	ForeignKeys: `
		SELECT
			k.TABLE_NAME,
			k.CONSTRAINT_NAME,
			k.COLUMN_NAME,
			k.REFERENCED_TABLE_NAME,
			k.REFERENCED_COLUMN_NAME,
			rc.UPDATE_RULE,
			rc.DELETE_RULE
		FROM information_schema.KEY_COLUMN_USAGE k
		JOIN information_schema.REFERENTIAL_CONSTRAINTS rc
			ON rc.CONSTRAINT_SCHEMA = k.CONSTRAINT_SCHEMA
			AND rc.CONSTRAINT_NAME = k.CONSTRAINT_NAME
			AND rc.TABLE_NAME = k.TABLE_NAME
		WHERE k.TABLE_SCHEMA = ? AND k.REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY k.TABLE_NAME, k.CONSTRAINT_NAME, k.ORDINAL_POSITION
	`,
}

// Adapter implements the adapter.Reader interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
	schema string
}

// New creates a new MySQL reader instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Connect establishes a connection to MySQL.
// The schema read is the target schema, then the target database, then
// whatever database the DSN selected.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildMySQLDSN(cfg)
	}

	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	schema := cfg.Schema
	if schema == "" {
		schema = cfg.Database
	}
	if schema == "" {
		var current sql.NullString
		if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&current); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to determine current database: %w", err)
		}
		if !current.Valid || current.String == "" {
			_ = db.Close()
			return fmt.Errorf("mysql database name is required")
		}
		schema = current.String
	}

	a.DB = db
	a.Cfg = cfg
	a.schema = schema
	return nil
}

// ReadSchema reads the base tables of the selected database.
func (a *Adapter) ReadSchema(ctx context.Context) (*core.Schema, error) {
	return a.ReadCatalog(ctx, catalogQueries, a.schema)
}

// buildMySQLDSN constructs a go-sql-driver DSN from individual fields.
func buildMySQLDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	if tls, ok := cfg.Options["tls"]; ok {
		mc.TLSConfig = tls
	}

	return mc.FormatDSN()
}

// Ensure Adapter implements adapter.Reader interface
var _ adapter.Reader = (*Adapter)(nil)
