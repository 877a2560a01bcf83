package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/cli/config"
	"github.com/leapstack-labs/schemagraph/internal/cli/output"
	"github.com/leapstack-labs/schemagraph/internal/graph"
)

// pathsResult carries everything the paths renderers need.
type pathsResult struct {
	FK1       string
	FK2       string
	EndMatch  graph.EndMatch
	Starts    []string
	Ends      []string
	Paths     []graph.Path
	Truncated bool
}

// NewPathsCommand creates the paths command.
func NewPathsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <fk1> <fk2>",
		Short: "List join paths between two foreign-key columns",
		Long: `List every simple path through the schema graph that connects a table
declaring a foreign key on <fk1> to a table matching <fk2>.

Edges are foreign-key references, walked in either direction. By default
end tables are those declaring a foreign key on <fk2>; use --end-match to
to end at tables referenced through <fk2> instead.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Paths between tables holding category_id and user_id
  schemagraph paths category_id user_id --path shop.db

  # End at tables referenced through a column
  schemagraph paths product_id id --end-match to

  # Bound the search
  schemagraph paths category_id user_id --max-depth 4 --limit 10

  # Output as JSON
  schemagraph paths category_id user_id -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd, args[0], args[1])
		},
	}

	cmd.Flags().String("end-match", config.DefaultEndMatch, "How end tables match <fk2>: from (declares it) or to (referenced through it)")
	cmd.Flags().Int("max-depth", 0, "Maximum number of tables per path (0 = unbounded)")
	cmd.Flags().Int("limit", 0, "Maximum number of paths to list (0 = unbounded)")

	return cmd
}

func runPaths(cmd *cobra.Command, fk1, fk2 string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	endMatch, err := graph.ParseEndMatch(cfg.EndMatch)
	if err != nil {
		return err
	}

	g, err := cmdCtx.LoadGraph()
	if err != nil {
		return err
	}

	res := findPaths(g, fk1, fk2, endMatch, cfg.MaxDepth, cfg.Limit)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return pathsJSON(r, res)
	case output.ModeMarkdown:
		return pathsMarkdown(r, res)
	default:
		return pathsText(r, res)
	}
}

// findPaths runs the search and reports whether the limit cut it short.
// One extra path is requested so an exact fit is not marked truncated.
func findPaths(g *graph.Graph, fk1, fk2 string, m graph.EndMatch, maxDepth, limit int) pathsResult {
	opts := []graph.FindOption{graph.WithEndMatch(m), graph.WithMaxDepth(maxDepth)}
	if limit > 0 {
		opts = append(opts, graph.WithLimit(limit+1))
	}

	paths := graph.FindPaths(g, fk1, fk2, opts...)
	truncated := false
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
		truncated = true
	}

	return pathsResult{
		FK1:       fk1,
		FK2:       fk2,
		EndMatch:  m,
		Starts:    graph.StartCandidates(g, fk1),
		Ends:      graph.EndCandidates(g, fk2, m),
		Paths:     paths,
		Truncated: truncated,
	}
}

// pathsText outputs paths one per line in styled text format.
func pathsText(r *output.Renderer, res pathsResult) error {
	styles := r.Styles()

	if len(res.Starts) == 0 {
		r.Warning(fmt.Sprintf("no table declares a foreign key on %s", res.FK1))
	}
	if len(res.Ends) == 0 {
		r.Warning(fmt.Sprintf("no table matches %s (end match: %s)", res.FK2, res.EndMatch))
	}

	arrow := " " + styles.Arrow.Render("->") + " "
	for _, p := range res.Paths {
		names := make([]string, len(p))
		for i, name := range p {
			names[i] = styles.Table.Render(name)
		}
		r.Println(strings.Join(names, arrow))
	}

	summary := fmt.Sprintf("%d path(s) from %s to %s", len(res.Paths), res.FK1, res.FK2)
	if res.Truncated {
		summary += " (limit reached)"
	}
	r.Muted(summary)

	return nil
}

// pathsMarkdown outputs paths in markdown format.
func pathsMarkdown(r *output.Renderer, res pathsResult) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Paths: %s to %s", res.FK1, res.FK2)))
	r.Println("")
	r.Println(output.FormatKeyValue("End match", res.EndMatch.String()))
	r.Println(output.FormatKeyValue("Start tables", joinOrNone(res.Starts)))
	r.Println(output.FormatKeyValue("End tables", joinOrNone(res.Ends)))
	r.Println(output.FormatKeyValue("Count", fmt.Sprintf("%d", len(res.Paths))))
	if res.Truncated {
		r.Println(output.FormatKeyValue("Truncated", "true"))
	}
	r.Println("")

	if len(res.Paths) == 0 {
		r.Println("No paths found.")
		return nil
	}

	for i, p := range res.Paths {
		r.Printf("%d. `%s`\n", i+1, p.String())
	}

	return nil
}

// pathsJSON outputs paths in JSON format.
func pathsJSON(r *output.Renderer, res pathsResult) error {
	out := output.PathsOutput{
		FK1:             res.FK1,
		FK2:             res.FK2,
		EndMatch:        res.EndMatch.String(),
		StartCandidates: nonNil(res.Starts),
		EndCandidates:   nonNil(res.Ends),
		Paths:           make([][]string, len(res.Paths)),
		Count:           len(res.Paths),
		Truncated:       res.Truncated,
	}
	for i, p := range res.Paths {
		out.Paths[i] = []string(p)
	}
	return r.JSON(out)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "_none_"
	}
	return strings.Join(names, ", ")
}

// nonNil keeps empty lists as [] in JSON output.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
