// Package core defines the shared language of schemagraph.
//
// This package contains:
//   - Catalog entities (Column, ForeignKey, Table, Schema)
//   - Reader configuration (ReaderConfig, TargetConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
