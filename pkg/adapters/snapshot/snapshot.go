// Package snapshot reads and writes schema snapshots as YAML or JSON files.
//
// A snapshot is registered as the "snapshot" reader so that a saved schema
// can be analysed without a live database:
//
//	import _ "github.com/leapstack-labs/schemagraph/pkg/adapters/snapshot"
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// Version is the snapshot format version written by WriteFile.
const Version = 1

// File is the on-disk layout of a snapshot.
type File struct {
	Version int          `json:"version" yaml:"version"`
	Tables  []core.Table `json:"tables" yaml:"tables"`
}

func init() {
	adapter.Register("snapshot", func(logger *slog.Logger) adapter.Reader { return New(logger) })
}

// Reader serves a schema loaded from a snapshot file.
type Reader struct {
	logger *slog.Logger
	schema *core.Schema
}

// New creates a snapshot reader. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{logger: logger}
}

// Connect loads the snapshot named by cfg.Path.
func (r *Reader) Connect(_ context.Context, cfg adapter.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("snapshot path is required")
	}
	schema, err := ReadFile(cfg.Path)
	if err != nil {
		return err
	}
	r.logger.Debug("snapshot loaded", slog.String("path", cfg.Path), slog.Int("tables", schema.Len()))
	r.schema = schema
	return nil
}

// Close releases the loaded schema.
func (r *Reader) Close() error {
	r.schema = nil
	return nil
}

// ReadSchema returns the loaded schema.
func (r *Reader) ReadSchema(_ context.Context) (*core.Schema, error) {
	if r.schema == nil {
		return nil, fmt.Errorf("snapshot not loaded")
	}
	return r.schema, nil
}

// ReadFile parses a snapshot file. Files ending in .json are read as JSON;
// everything else is read as YAML.
func ReadFile(path string) (*core.Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data, isJSON(path))
}

// Decode parses snapshot bytes.
func Decode(data []byte, asJSON bool) (*core.Schema, error) {
	var f File
	if asJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
	}

	if f.Version > Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (max %d)", f.Version, Version)
	}

	schema := core.NewSchema(f.Tables...)
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// WriteFile saves schema to path, choosing the format from the extension.
func WriteFile(path string, schema *core.Schema) error {
	data, err := Encode(schema, isJSON(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Encode renders schema as snapshot bytes.
func Encode(schema *core.Schema, asJSON bool) ([]byte, error) {
	f := File{Version: Version, Tables: []core.Table{}}
	if schema != nil {
		f.Tables = schema.Tables
	}

	if asJSON {
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Ensure Reader implements adapter.Reader interface
var _ adapter.Reader = (*Reader)(nil)
