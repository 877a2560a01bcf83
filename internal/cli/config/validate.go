package config

import (
	"fmt"

	"github.com/leapstack-labs/schemagraph/internal/graph"
)

var outputModes = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks the non-target settings.
func (c *Config) Validate() error {
	if !outputModes[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	if _, err := graph.ParseEndMatch(c.EndMatch); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	return nil
}
