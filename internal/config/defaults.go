package config

import (
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// DefaultTargetType is the reader used for a path with an unrecognised extension.
const DefaultTargetType = "sqlite"

// extensionTypes maps file extensions to the reader that opens them.
var extensionTypes = map[string]string{
	".duckdb": "duckdb",
	".ddb":    "duckdb",
	".yaml":   "snapshot",
	".yml":    "snapshot",
	".json":   "snapshot",
}

// defaultSchemas maps reader types to the schema they read when none is set.
// SQLite has no schemas and MySQL uses the database name.
var defaultSchemas = map[string]string{
	"postgres": "public",
	"duckdb":   "main",
}

// defaultPorts maps network reader types to their standard port.
var defaultPorts = map[string]int{
	"postgres": 5432,
	"mysql":    3306,
}

// DefaultSchemaForType returns the default schema for a reader type.
func DefaultSchemaForType(dbType string) string {
	return defaultSchemas[strings.ToLower(dbType)]
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}

	t.Type = strings.ToLower(strings.TrimSpace(t.Type))

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	// A DSN carries its own port
	if t.Port == 0 && t.DSN == "" {
		t.Port = defaultPorts[t.Type]
	}
}

// InferTargetType fills in a missing type from the target's path.
// Targets with neither a type nor a path are left alone.
func InferTargetType(t *core.TargetConfig) {
	if t == nil || t.Type != "" || t.DSN != "" {
		return
	}
	path := t.Path
	if path == "" {
		return
	}
	if typ, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		t.Type = typ
		return
	}
	t.Type = DefaultTargetType
}
