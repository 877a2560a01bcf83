// Package graph models a database schema as a directed multigraph and
// answers reachability questions over it.
// Nodes are tables, edges are foreign-key references from the declaring
// table to the referenced table.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// Node represents a table in the graph.
type Node struct {
	// Name is the unique table name
	Name string
	// Columns holds the table's columns in ordinal order
	Columns []core.Column
	// Placeholder is set when the node was created only because an edge
	// referenced it; such nodes carry no columns.
	Placeholder bool
}

// Edge is a foreign-key reference from one table to another.
type Edge struct {
	From         string
	To           string
	FromColumn   string
	ToColumn     string
	ConstraintID int
}

func (e Edge) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", e.From, e.FromColumn, e.To, e.ToColumn)
}

// Graph is a directed multigraph of tables and foreign-key references.
// Parallel edges between the same pair of tables are kept.
// A Graph is not safe for concurrent use.
type Graph struct {
	order []string
	nodes map[string]*Node
	edges []Edge
	out   map[string][]int    // table -> indexes into edges it declares
	in    map[string][]int    // table -> indexes into edges referencing it
	adj   map[string][]string // undirected projection, built on first use
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string][]int),
		in:    make(map[string][]int),
	}
}

// Build converts a schema snapshot into a graph: one node per table and one
// edge per foreign-key column. A foreign key whose target table is not part
// of the schema gets an implicit placeholder node; call ValidateReferences
// first to reject such schemas instead. The schema is not modified.
func Build(schema *core.Schema) *Graph {
	g := NewGraph()
	if schema == nil {
		return g
	}

	for _, t := range schema.Tables {
		cols := make([]core.Column, len(t.Columns))
		copy(cols, t.Columns)
		g.AddNode(t.Name, cols)
	}

	for _, t := range schema.Tables {
		for _, fk := range t.ForeignKeys {
			g.AddEdge(Edge{
				From:         t.Name,
				To:           fk.RefTable,
				FromColumn:   fk.Column,
				ToColumn:     fk.RefColumn,
				ConstraintID: fk.ID,
			})
		}
	}

	return g
}

// AddNode adds a table to the graph.
// Adding an existing table replaces its columns and clears the placeholder flag.
func (g *Graph) AddNode(name string, columns []core.Column) {
	if n, exists := g.nodes[name]; exists {
		n.Columns = columns
		n.Placeholder = false
		return
	}
	g.nodes[name] = &Node{Name: name, Columns: columns}
	g.order = append(g.order, name)
}

// AddEdge adds a directed edge. Missing endpoints are created as placeholders.
func (g *Graph) AddEdge(e Edge) {
	for _, name := range []string{e.From, e.To} {
		if _, exists := g.nodes[name]; !exists {
			g.nodes[name] = &Node{Name: name, Placeholder: true}
			g.order = append(g.order, name)
		}
	}

	g.adj = nil
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.out[e.From] = append(g.out[e.From], idx)
	g.in[e.To] = append(g.in[e.To], idx)
}

// Node returns a node by name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, exists := g.nodes[name]
	return n, exists
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// nodeNames returns all node names in insertion order.
func (g *Graph) nodeNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// OutEdges returns the foreign keys declared by a table.
func (g *Graph) OutEdges(name string) []Edge {
	return g.collect(g.out[name])
}

// InEdges returns the foreign keys that reference a table.
func (g *Graph) InEdges(name string) []Edge {
	return g.collect(g.in[name])
}

func (g *Graph) collect(idxs []int) []Edge {
	edges := make([]Edge, 0, len(idxs))
	for _, i := range idxs {
		edges = append(edges, g.edges[i])
	}
	return edges
}

// hasEdge reports whether at least one edge runs from one table to another.
func (g *Graph) hasEdge(from, to string) bool {
	for _, i := range g.out[from] {
		if g.edges[i].To == to {
			return true
		}
	}
	return false
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Placeholders returns the names of nodes that were created implicitly.
func (g *Graph) Placeholders() []string {
	var names []string
	for _, name := range g.order {
		if g.nodes[name].Placeholder {
			names = append(names, name)
		}
	}
	return names
}

// Neighbors returns the tables adjacent to name when edge direction is
// ignored. Each neighbor appears once; self-loops are not included.
func (g *Graph) Neighbors(name string) []string {
	adj := g.undirected()[name]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

// undirected returns the adjacency of the undirected projection.
// Neighbor order follows edge insertion order.
func (g *Graph) undirected() map[string][]string {
	if g.adj != nil {
		return g.adj
	}

	adj := make(map[string][]string, len(g.nodes))
	seen := make(map[[2]string]bool, len(g.edges)*2)

	link := func(a, b string) {
		key := [2]string{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		adj[a] = append(adj[a], b)
	}

	for _, e := range g.edges {
		if e.From == e.To {
			continue
		}
		link(e.From, e.To)
		link(e.To, e.From)
	}
	g.adj = adj
	return adj
}

// DanglingReference is a foreign key whose target table is not in the schema.
type DanglingReference struct {
	Table    string
	Column   string
	RefTable string
}

// DanglingReferenceError is returned by ValidateReferences.
type DanglingReferenceError struct {
	References []DanglingReference
}

func (e *DanglingReferenceError) Error() string {
	parts := make([]string, len(e.References))
	for i, r := range e.References {
		parts[i] = fmt.Sprintf("%s.%s -> %s", r.Table, r.Column, r.RefTable)
	}
	return fmt.Sprintf("foreign keys reference unknown tables: %s\nHint: use --allow-dangling to keep them as placeholder nodes",
		strings.Join(parts, ", "))
}

// ValidateReferences checks that table names are unique and that every
// foreign key targets a table the schema enumerates.
func ValidateReferences(schema *core.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema == nil {
		return nil
	}

	known := make(map[string]bool, len(schema.Tables))
	for _, t := range schema.Tables {
		known[t.Name] = true
	}

	var dangling []DanglingReference
	for _, t := range schema.Tables {
		for _, fk := range t.ForeignKeys {
			if !known[fk.RefTable] {
				dangling = append(dangling, DanglingReference{
					Table:    t.Name,
					Column:   fk.Column,
					RefTable: fk.RefTable,
				})
			}
		}
	}

	if len(dangling) > 0 {
		sort.SliceStable(dangling, func(i, j int) bool {
			return dangling[i].Table < dangling[j].Table
		})
		return &DanglingReferenceError{References: dangling}
	}
	return nil
}
