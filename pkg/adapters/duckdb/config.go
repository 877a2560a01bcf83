package duckdb

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// AccessMode is passed to DuckDB on open: "read_only" (default) or "read_write".
	AccessMode string `mapstructure:"access_mode"`

	// Extensions to load before reading the catalog (e.g., "json", "spatial")
	Extensions []string `mapstructure:"extensions"`

	// Settings to apply at session level (e.g., memory_limit, threads)
	Settings map[string]string `mapstructure:"settings"`
}

// ParseParams decodes raw target params into Params.
// Unknown keys are rejected so that typos surface early.
func ParseParams(raw map[string]any) (*Params, error) {
	params := &Params{}
	if len(raw) == 0 {
		return params, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid duckdb params: %w", err)
	}

	switch strings.ToLower(params.AccessMode) {
	case "", "read_only", "read_write", "automatic":
	default:
		return nil, fmt.Errorf("invalid duckdb access_mode %q", params.AccessMode)
	}

	return params, nil
}

// dsn builds the DuckDB connection string for path.
// In-memory databases cannot be opened read-only.
func (p *Params) dsn(path string) string {
	values := url.Values{}
	if path != ":memory:" {
		mode := p.AccessMode
		if mode == "" {
			mode = "read_only"
		}
		values.Set("access_mode", strings.ToUpper(mode))
	}
	for k, v := range p.Settings {
		values.Set(k, v)
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
