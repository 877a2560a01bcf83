package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import reader packages to ensure readers are registered via init()
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/sqlite"
)

// writeConfig writes a schemagraph.yaml into a fresh temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemagraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newFlags mirrors the persistent and paths flags the CLI registers.
func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("type", "", "")
	flags.String("path", "", "")
	flags.String("database", "", "")
	flags.String("schema", "", "")
	flags.String("dsn", "", "")
	flags.String("env", "", "")
	flags.Bool("allow-dangling", false, "")
	flags.String("end-match", "", "")
	flags.Int("max-depth", 0, "")
	flags.Int("limit", 0, "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	flags.Bool("dot", false, "")
	return flags
}

// TestExpandEnvVars tests the expandEnvVars function.
func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single variable",
			input:    "${TEST_VAR_ONE}",
			expected: "value_one",
		},
		{
			name:     "multiple variables",
			input:    "${TEST_VAR_ONE}/${TEST_VAR_TWO}",
			expected: "value_one/value_two",
		},
		{
			name:     "unset variable stays as-is",
			input:    "${UNSET_VARIABLE}",
			expected: "${UNSET_VARIABLE}",
		},
		{
			name:     "no variables",
			input:    "plain string",
			expected: "plain string",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed set and unset",
			input:    "${TEST_VAR_ONE}:${UNSET_VAR}",
			expected: "value_one:${UNSET_VAR}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

// TestMergeTargetConfig tests the MergeTargetConfig function.
func TestMergeTargetConfig(t *testing.T) {
	t.Run("nil base returns override", func(t *testing.T) {
		override := &TargetConfig{Type: "sqlite", Path: "test.db"}
		assert.Equal(t, override, MergeTargetConfig(nil, override))
	})

	t.Run("nil override returns base", func(t *testing.T) {
		base := &TargetConfig{Type: "sqlite", Path: "test.db"}
		assert.Equal(t, base, MergeTargetConfig(base, nil))
	})

	t.Run("both nil returns nil", func(t *testing.T) {
		assert.Nil(t, MergeTargetConfig(nil, nil))
	})

	t.Run("override replaces base fields", func(t *testing.T) {
		base := &TargetConfig{
			Type:     "postgres",
			Database: "base",
			Schema:   "public",
			Host:     "localhost",
		}
		override := &TargetConfig{
			Database: "override",
			Schema:   "sales",
		}

		result := MergeTargetConfig(base, override)

		assert.Equal(t, "postgres", result.Type, "Type should be inherited from base")
		assert.Equal(t, "override", result.Database, "Database should be from override")
		assert.Equal(t, "sales", result.Schema, "Schema should be from override")
		assert.Equal(t, "localhost", result.Host, "Host should be inherited from base")
		assert.Equal(t, "base", base.Database, "base must not be modified")
	})

	t.Run("options and params are merged", func(t *testing.T) {
		base := &TargetConfig{
			Options: map[string]string{"key1": "base1", "key2": "base2"},
			Params:  map[string]any{"a": 1},
		}
		override := &TargetConfig{
			Options: map[string]string{"key2": "override2", "key3": "override3"},
			Params:  map[string]any{"b": 2},
		}

		result := MergeTargetConfig(base, override)

		assert.Equal(t, map[string]string{"key1": "base1", "key2": "override2", "key3": "override3"}, result.Options)
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, result.Params)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "max_depth", envKey("SCHEMAGRAPH_MAX_DEPTH"))
	assert.Equal(t, "target.type", envKey("SCHEMAGRAPH_TARGET_TYPE"))
	assert.Equal(t, "allow_dangling", envKey("SCHEMAGRAPH_ALLOW_DANGLING"))
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, `
target:
  type: sqlite
  path: data/shop.db
allow_dangling: true
end_match: to
max_depth: 5
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "data", "shop.db"), cfg.Target.Path)
	assert.True(t, cfg.AllowDangling)
	assert.Equal(t, "to", cfg.EndMatch)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	require.NoError(t, cfg.ValidateTarget())
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultEndMatch, cfg.EndMatch)
	assert.False(t, cfg.AllowDangling)
	require.NotNil(t, cfg.Target)

	err = cfg.ValidateTarget()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target type is required")
}

func TestLoadConfig_SearchUpward(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "target:\n  path: shop.db\n")
	nested := filepath.Join(filepath.Dir(cfgPath), "sub", "dir")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Target.Type, "type is inferred from the path")
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "shop.db"), cfg.Target.Path)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadConfig_Environments(t *testing.T) {
	cfgPath := writeConfig(t, `
target:
  type: postgres
  host: localhost
  database: shop
environments:
  staging:
    target:
      host: staging.example.com
      schema: staging
`)

	t.Run("base target", func(t *testing.T) {
		ResetConfig()
		cfg, err := LoadConfig(cfgPath, nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Target.Host)
		assert.Equal(t, "public", cfg.Target.Schema)
		assert.Equal(t, 5432, cfg.Target.Port)
	})

	t.Run("selected environment", func(t *testing.T) {
		ResetConfig()
		flags := newFlags()
		require.NoError(t, flags.Set("env", "staging"))

		cfg, err := LoadConfig(cfgPath, flags)
		require.NoError(t, err)
		assert.Equal(t, "staging.example.com", cfg.Target.Host)
		assert.Equal(t, "staging", cfg.Target.Schema)
		assert.Equal(t, "shop", cfg.Target.Database)
	})

	t.Run("flags beat environment", func(t *testing.T) {
		ResetConfig()
		flags := newFlags()
		require.NoError(t, flags.Set("env", "staging"))
		require.NoError(t, flags.Set("schema", "audit"))

		cfg, err := LoadConfig(cfgPath, flags)
		require.NoError(t, err)
		assert.Equal(t, "audit", cfg.Target.Schema)
	})

	t.Run("unknown environment", func(t *testing.T) {
		ResetConfig()
		flags := newFlags()
		require.NoError(t, flags.Set("env", "prod"))

		_, err := LoadConfig(cfgPath, flags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown environment "prod"`)
	})
}

func TestLoadConfig_EnvVarsInTarget(t *testing.T) {
	ResetConfig()
	t.Setenv("TEST_DB_USER", "testuser")
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	cfgPath := writeConfig(t, `
target:
  type: postgres
  database: shop
  user: ${TEST_DB_USER}
  password: ${TEST_DB_PASSWORD}
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "testuser", cfg.Target.User)
	assert.Equal(t, "secret123", cfg.Target.Password)
}

func TestLoadConfig_DSN(t *testing.T) {
	ResetConfig()
	flags := newFlags()
	require.NoError(t, flags.Set("dsn", "postgres://reader@db.example.com:6543/shop"))

	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, "db.example.com", cfg.Target.Host)
	assert.Equal(t, 6543, cfg.Target.Port)
	assert.Equal(t, "public", cfg.Target.Schema)
	assert.NotEmpty(t, cfg.Target.DSN)
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "max_depth: 3\ntarget:\n  type: sqlite\n  path: from_file.db\n")

	t.Setenv("SCHEMAGRAPH_MAX_DEPTH", "4")

	flags := newFlags()
	require.NoError(t, flags.Set("max-depth", "5"))
	require.NoError(t, flags.Set("path", "from_flag.db"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxDepth, "flag value should override config file and env var")
	assert.Equal(t, "from_flag.db", cfg.Target.Path, "flag paths are not resolved against the config file")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "max_depth: 3\ntarget:\n  type: sqlite\n  path: shop.db\n")

	t.Setenv("SCHEMAGRAPH_MAX_DEPTH", "4")
	t.Setenv("SCHEMAGRAPH_TARGET_SCHEMA", "from_env")

	// Flag defined but not set (Changed is false)
	cfg, err := LoadConfig(cfgPath, newFlags())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxDepth, "env var should override config file")
	assert.Equal(t, "from_env", cfg.Target.Schema)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{OutputFormat: "auto", EndMatch: "from"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad output", func(c *Config) { c.OutputFormat = "xml" }, "invalid output format"},
		{"bad end match", func(c *Config) { c.EndMatch = "sideways" }, "invalid end match"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max_depth"},
		{"negative limit", func(c *Config) { c.Limit = -2 }, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
