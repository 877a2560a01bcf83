package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/schemagraph/internal/config"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// envPrefix is the prefix of environment variables read into the config.
const envPrefix = "SCHEMAGRAPH_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// With no explicit cfgFile, schemagraph.yaml is searched upward from the
// working directory. Relative target paths from the file resolve against
// the file's directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"verbose":        false,
		"output":         DefaultOutput,
		"allow_dangling": false,
		"end_match":      DefaultEndMatch,
		"max_depth":      0,
		"limit":          0,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = intconfig.FindConfigUpward(cwd)
		}
	} else if _, err := os.Stat(cfgFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	}

	// 3. Load environment variables (SCHEMAGRAPH_ prefix)
	// Transform: SCHEMAGRAPH_MAX_DEPTH -> max_depth, SCHEMAGRAPH_TARGET_TYPE -> target.type
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Apply environment-specific overrides if an environment is selected
	if cfg.Environment != "" {
		envCfg, ok := cfg.Environments[cfg.Environment]
		if !ok {
			return nil, fmt.Errorf("unknown environment %q", cfg.Environment)
		}
		if envCfg.Target != nil {
			cfg.Target = MergeTargetConfig(cfg.Target, envCfg.Target)
		}
		// Flags still win over the environment's target
		cfg.Target = MergeTargetConfig(cfg.Target, targetFromFlags(flags))
	}

	if cfg.Target == nil {
		cfg.Target = &core.TargetConfig{}
	}
	if cfg.DSN != "" {
		cfg.Target.DSN = cfg.DSN
	}

	// Expand environment variables in target
	expandTargetEnvVars(cfg.Target)

	// Paths from the config file are relative to the file, flag paths to CWD
	if configFileUsed != "" && (flags == nil || !flags.Changed("path")) {
		cfg.Target.Path = resolvePathRelativeTo(cfg.Target.Path, filepath.Dir(configFileUsed))
	}

	if err := intconfig.ResolveDSN(cfg.Target); err != nil {
		return nil, fmt.Errorf("invalid target configuration: %w", err)
	}
	intconfig.InferTargetType(cfg.Target)
	intconfig.ApplyTargetDefaults(cfg.Target)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateTarget checks the loaded target. Commands that read a schema call
// it; commands such as version and sample work without a target.
func (c *Config) ValidateTarget() error {
	if err := intconfig.ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// targetFromFlags collects the target fields set explicitly on the command line.
func targetFromFlags(flags *pflag.FlagSet) *core.TargetConfig {
	if flags == nil {
		return nil
	}
	t := &core.TargetConfig{}
	get := func(name string) string {
		if !flags.Changed(name) {
			return ""
		}
		v, _ := flags.GetString(name)
		return v
	}
	t.Type = get("type")
	t.Path = get("path")
	t.Database = get("database")
	t.Schema = get("schema")
	return t
}

// envKey maps an environment variable name to a config key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "target_"); ok {
		return "target." + rest
	}
	return key
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty, in-memory, or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandTargetEnvVars expands environment variables in sensitive target fields.
func expandTargetEnvVars(t *core.TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
	t.Path = expandEnvVars(t.Path)
	t.DSN = expandEnvVars(t.DSN)
}

// MergeTargetConfig merges two target configs, with override taking precedence.
func MergeTargetConfig(base, override *core.TargetConfig) *core.TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	merged.Options = make(map[string]string, len(base.Options)+len(override.Options))
	merged.Params = make(map[string]any, len(base.Params)+len(override.Params))
	for k, v := range base.Options {
		merged.Options[k] = v
	}
	for k, v := range base.Params {
		merged.Params[k] = v
	}

	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Path != "" {
		merged.Path = override.Path
	}
	if override.DSN != "" {
		merged.DSN = override.DSN
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}

	for k, v := range override.Options {
		merged.Options[k] = v
	}
	// Params: override takes precedence
	for k, v := range override.Params {
		merged.Params[k] = v
	}

	return &merged
}
