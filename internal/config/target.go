// Package config provides target resolution shared by the CLI and library
// callers: defaults per reader type, DSN parsing and validation.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xo/dburl"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// driverTypes maps dburl's unaliased driver names to reader types.
var driverTypes = map[string]string{
	"sqlite3":       "sqlite",
	"moderncsqlite": "sqlite",
	"duckdb":        "duckdb",
	"postgres":      "postgres",
	"pgx":           "postgres",
	"mysql":         "mysql",
}

// fileTypes are reader types that open a local file.
var fileTypes = map[string]bool{
	"sqlite":   true,
	"duckdb":   true,
	"snapshot": true,
}

// ResolveDSN expands t.DSN into the target's type and connection fields.
// File databases get their path from the DSN; network databases keep a
// driver-native DSN. A DSN whose scheme contradicts an explicit type is
// an error.
func ResolveDSN(t *core.TargetConfig) error {
	if t == nil || t.DSN == "" {
		return nil
	}

	u, err := dburl.Parse(t.DSN)
	if err != nil {
		return fmt.Errorf("invalid dsn: %w", err)
	}

	typ, ok := driverTypes[u.UnaliasedDriver]
	if !ok {
		return fmt.Errorf("unsupported dsn scheme %q", u.OriginalScheme)
	}
	if t.Type != "" && !strings.EqualFold(t.Type, typ) {
		return fmt.Errorf("dsn scheme %q does not match target type %q", u.OriginalScheme, t.Type)
	}
	t.Type = typ

	if fileTypes[typ] {
		t.Path = u.DSN
		t.DSN = ""
		return nil
	}

	t.DSN = u.DSN
	if t.Host == "" {
		t.Host = u.Hostname()
	}
	if t.Port == 0 {
		if port, err := strconv.Atoi(u.Port()); err == nil {
			t.Port = port
		}
	}
	if t.Database == "" {
		t.Database = strings.TrimPrefix(u.Path, "/")
	}
	return nil
}

// ValidateTarget checks that the target names a registered reader and
// carries what that reader needs to connect.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil {
		return fmt.Errorf("target is required")
	}
	if t.Type == "" {
		return fmt.Errorf("target type is required\nHint: pass --path or --dsn, or set target in schemagraph.yaml")
	}

	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownReaderError{
			Type:      t.Type,
			Available: adapter.ListReaders(),
		}
	}

	if fileTypes[t.Type] && t.Path == "" && t.Database == "" {
		return fmt.Errorf("%s target requires a path\nHint: set target.path in schemagraph.yaml or pass --path", t.Type)
	}

	return nil
}
