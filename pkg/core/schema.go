package core

import (
	"fmt"
	"sort"
	"strings"
)

// Column describes one column of a table as reported by the catalog.
type Column struct {
	Name       string  `json:"name" yaml:"name"`
	Type       string  `json:"type" yaml:"type"`
	Nullable   bool    `json:"nullable" yaml:"nullable"`
	PrimaryKey bool    `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Default    *string `json:"default,omitempty" yaml:"default,omitempty"`
	Position   int     `json:"position" yaml:"position"`

	// PrimaryKeyOrder is the 1-based position inside the primary key when
	// the catalog reports one; zero keeps column order.
	PrimaryKeyOrder int `json:"primary_key_order,omitempty" yaml:"primary_key_order,omitempty"`
}

// ForeignKey describes one column of an outgoing foreign-key constraint.
// Composite constraints produce one ForeignKey per column sharing the same ID.
type ForeignKey struct {
	// ID groups the columns of one constraint.
	ID int `json:"id" yaml:"id"`
	// Seq is the column position inside the constraint.
	Seq       int    `json:"seq" yaml:"seq"`
	Column    string `json:"column" yaml:"column"`
	RefTable  string `json:"ref_table" yaml:"ref_table"`
	RefColumn string `json:"ref_column" yaml:"ref_column"`
	OnUpdate  string `json:"on_update,omitempty" yaml:"on_update,omitempty"`
	OnDelete  string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// Table holds the catalog view of a single table.
type Table struct {
	Name        string       `json:"name" yaml:"name"`
	Columns     []Column     `json:"columns" yaml:"columns"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the names of the primary-key columns in key order,
// falling back to ordinal order when the catalog reports none.
func (t *Table) PrimaryKey() []string {
	var cols []Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			cols = append(cols, c)
		}
	}
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].PrimaryKeyOrder < cols[j].PrimaryKeyOrder
	})

	var pk []string
	for _, c := range cols {
		pk = append(pk, c.Name)
	}
	return pk
}

// Schema is one snapshot of a database catalog.
// Tables keep the order in which the reader enumerated them.
type Schema struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

// NewSchema creates a schema from the given tables.
func NewSchema(tables ...Table) *Schema {
	return &Schema{Tables: tables}
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tables)
}

// Table returns the named table.
func (s *Schema) Table(name string) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// TableNames returns the table names in enumeration order.
func (s *Schema) TableNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Validate checks that table names are unique.
func (s *Schema) Validate() error {
	if s == nil {
		return nil
	}
	seen := make(map[string]int, len(s.Tables))
	var dups []string
	for _, t := range s.Tables {
		seen[t.Name]++
		if seen[t.Name] == 2 {
			dups = append(dups, t.Name)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return &DuplicateTableError{Names: dups}
	}
	return nil
}

// DuplicateTableError is returned when a schema enumerates a table name twice.
type DuplicateTableError struct {
	Names []string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("duplicate table names in schema: %s", strings.Join(e.Names, ", "))
}
