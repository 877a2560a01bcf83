package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // sqlite, postgres, mysql, duckdb, snapshot

	// File-based databases (SQLite, DuckDB) and snapshot files
	Path string `koanf:"path"`

	// DSN is a full connection URL; it overrides the fields below
	DSN string `koanf:"dsn"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds reader-specific configuration (e.g., DuckDB settings)
	Params map[string]any `koanf:"params"`
}

// ReaderConfig converts the target into the configuration a reader connects with.
func (t *TargetConfig) ReaderConfig() ReaderConfig {
	if t == nil {
		return ReaderConfig{}
	}
	return ReaderConfig{
		Type:     t.Type,
		Path:     t.Path,
		DSN:      t.DSN,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}
