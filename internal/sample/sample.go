// Package sample creates the demonstration shop database used by the
// sample command and by integration tests.
package sample

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // sqlite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// Tables lists the tables of the shop schema in creation order.
var Tables = []string{"users", "addresses", "orders", "order_items", "products", "categories"}

// Create writes the shop schema into a new SQLite database at path.
// It refuses to touch an existing file.
func Create(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		return err
	}

	// The database is a throwaway demo; drop goose's bookkeeping so the
	// schema holds only the shop tables.
	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+goose.TableName()); err != nil {
		return fmt.Errorf("failed to drop migration table: %w", err)
	}

	return nil
}

// Migrate runs the embedded shop migrations against db.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
