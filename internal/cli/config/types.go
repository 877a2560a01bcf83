// Package config provides configuration management for the schemagraph CLI.
//
// The target type is shared with library callers through pkg/core and
// re-exported here via a type alias for convenience.
package config

import "github.com/leapstack-labs/schemagraph/pkg/core"

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// DSN is a connection URL shorthand for target.dsn.
	DSN           string               `koanf:"dsn"`
	Environment   string               `koanf:"environment"`
	Verbose       bool                 `koanf:"verbose"`
	OutputFormat  string               `koanf:"output"`
	AllowDangling bool                 `koanf:"allow_dangling"`
	EndMatch      string               `koanf:"end_match"`
	MaxDepth      int                  `koanf:"max_depth"`
	Limit         int                  `koanf:"limit"`
	Target        *TargetConfig        `koanf:"target"`
	Environments  map[string]EnvConfig `koanf:"environments"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// Default configuration values
const (
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultEndMatch = "from"
)

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// command options that never reach the config.
var flagKeys = map[string]string{
	"type":           "target.type",
	"path":           "target.path",
	"database":       "target.database",
	"schema":         "target.schema",
	"dsn":            "dsn",
	"env":            "environment",
	"allow-dangling": "allow_dangling",
	"end-match":      "end_match",
	"max-depth":      "max_depth",
	"limit":          "limit",
	"verbose":        "verbose",
	"output":         "output",
}
