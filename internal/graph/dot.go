package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes g in Graphviz DOT format. Edges are labelled with the
// referencing and referenced column; placeholder nodes are drawn dashed.
func WriteDOT(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(bw, "digraph schema {")
	_, _ = fmt.Fprintln(bw, "  rankdir=LR;")
	_, _ = fmt.Fprintln(bw, "  node [shape=box];")

	for _, n := range g.Nodes() {
		if n.Placeholder {
			_, _ = fmt.Fprintf(bw, "  %s [style=dashed];\n", dotID(n.Name))
			continue
		}
		_, _ = fmt.Fprintf(bw, "  %s;\n", dotID(n.Name))
	}

	for _, e := range g.Edges() {
		label := e.FromColumn
		if e.ToColumn != "" {
			label += " -> " + e.ToColumn
		}
		_, _ = fmt.Fprintf(bw, "  %s -> %s [label=%s];\n", dotID(e.From), dotID(e.To), dotID(label))
	}

	_, _ = fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotID(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
