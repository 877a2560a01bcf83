package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/cli/output"
	"github.com/leapstack-labs/schemagraph/internal/graph"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the foreign-key graph",
		Long: `Display the schema as a graph: one node per table and one edge per
foreign-key column, pointing from the declaring table to the referenced one.

Use --dot to emit Graphviz DOT regardless of the output mode.`,
		Example: `  # Show the graph
  schemagraph graph --path shop.db

  # Render with Graphviz
  schemagraph graph --dot | dot -Tsvg > schema.svg

  # Output as JSON
  schemagraph graph -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	cmd.Flags().Bool("dot", false, "Write the graph in Graphviz DOT format")

	return cmd
}

func runGraph(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	g, err := cmdCtx.LoadGraph()
	if err != nil {
		return err
	}

	if dot, _ := cmd.Flags().GetBool("dot"); dot {
		return graph.WriteDOT(r.Writer(), g)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return graphJSON(r, g)
	case output.ModeMarkdown:
		return graphMarkdown(r, g)
	default:
		return graphText(r, g)
	}
}

// graphText outputs the graph in styled text format.
func graphText(r *output.Renderer, g *graph.Graph) error {
	styles := r.Styles()

	r.Header(1, "Schema Graph")

	for _, n := range g.Nodes() {
		if n.Placeholder {
			r.Println(styles.Placeholder.Render(n.Name + " (not in schema)"))
		} else {
			r.Println(styles.Table.Render(n.Name))
		}
		for _, e := range g.OutEdges(n.Name) {
			r.Printf("  %s %s %s.%s\n",
				styles.Column.Render(e.FromColumn),
				styles.Arrow.Render("->"),
				e.To, e.ToColumn)
		}
		if refs := referencedBy(g, n.Name); len(refs) > 0 {
			r.Printf("  %s %s\n", styles.Muted.Render("referenced by:"), strings.Join(refs, ", "))
		}
		if joins := g.Neighbors(n.Name); len(joins) > 0 {
			r.Printf("  %s %s\n", styles.Muted.Render("joins with:"), strings.Join(joins, ", "))
		}
	}

	r.Println("")
	r.Muted(fmt.Sprintf("Total: %d tables, %d foreign keys", g.NodeCount(), g.EdgeCount()))

	return nil
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, g *graph.Graph) error {
	r.Println(output.FormatHeader(1, "Schema Graph"))
	r.Println("")
	r.Println(output.FormatKeyValue("Tables", fmt.Sprintf("%d", g.NodeCount())))
	r.Println(output.FormatKeyValue("Foreign keys", fmt.Sprintf("%d", g.EdgeCount())))
	r.Println("")

	for _, n := range g.Nodes() {
		title := n.Name
		if n.Placeholder {
			title += " (not in schema)"
		}
		r.Println(output.FormatHeader(2, title))
		r.Println("")

		edges := g.OutEdges(n.Name)
		if len(edges) == 0 {
			r.Println("No foreign keys.")
		}
		for _, e := range edges {
			r.Printf("- `%s` -> `%s.%s`\n", e.FromColumn, e.To, e.ToColumn)
		}
		r.Println("")

		if refs := referencedBy(g, n.Name); len(refs) > 0 {
			r.Println(output.FormatKeyValue("Referenced by", strings.Join(refs, ", ")))
		}
		if joins := g.Neighbors(n.Name); len(joins) > 0 {
			r.Println(output.FormatKeyValue("Joins with", strings.Join(joins, ", ")))
		}
		r.Println("")
	}

	return nil
}

// referencedBy lists the table.column pairs holding foreign keys to name.
func referencedBy(g *graph.Graph, name string) []string {
	in := g.InEdges(name)
	refs := make([]string, len(in))
	for i, e := range in {
		refs[i] = e.From + "." + e.FromColumn
	}
	return refs
}

// graphJSON outputs the graph in JSON format.
func graphJSON(r *output.Renderer, g *graph.Graph) error {
	out := output.GraphOutput{
		Nodes:      make([]output.GraphNode, 0, g.NodeCount()),
		Edges:      make([]output.GraphEdge, 0, g.EdgeCount()),
		TotalNodes: g.NodeCount(),
		TotalEdges: g.EdgeCount(),
	}

	for _, n := range g.Nodes() {
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = c.Name
		}
		out.Nodes = append(out.Nodes, output.GraphNode{
			Name:        n.Name,
			Columns:     cols,
			Placeholder: n.Placeholder,
		})
	}

	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, output.GraphEdge{
			From:       e.From,
			To:         e.To,
			FromColumn: e.FromColumn,
			ToColumn:   e.ToColumn,
		})
	}

	return r.JSON(out)
}
