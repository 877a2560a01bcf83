package graph

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of distinct table names.
type Path []string

func (p Path) String() string {
	return strings.Join(p, " -> ")
}

// EndMatch selects how end candidates are recognised.
type EndMatch int

const (
	// MatchOutgoing treats a table as an end candidate when one of its own
	// foreign keys uses the column (the same test applied to start candidates).
	MatchOutgoing EndMatch = iota
	// MatchReferenced treats a table as an end candidate when another table
	// references it through the column.
	MatchReferenced
)

func (m EndMatch) String() string {
	switch m {
	case MatchReferenced:
		return "to"
	default:
		return "from"
	}
}

// ParseEndMatch parses "from"/"outgoing" and "to"/"referenced".
func ParseEndMatch(s string) (EndMatch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "from", "outgoing":
		return MatchOutgoing, nil
	case "to", "referenced":
		return MatchReferenced, nil
	default:
		return MatchOutgoing, fmt.Errorf("invalid end match %q (expected from or to)", s)
	}
}

type findOptions struct {
	endMatch EndMatch
	maxDepth int
	limit    int
}

// FindOption configures FindPaths.
type FindOption func(*findOptions)

// WithEndMatch sets how end candidates are recognised.
func WithEndMatch(m EndMatch) FindOption {
	return func(o *findOptions) { o.endMatch = m }
}

// WithMaxDepth limits paths to at most n tables. Zero means unbounded.
func WithMaxDepth(n int) FindOption {
	return func(o *findOptions) { o.maxDepth = n }
}

// WithLimit stops after n paths. Zero means unbounded.
func WithLimit(n int) FindOption {
	return func(o *findOptions) { o.limit = n }
}

// StartCandidates returns the tables declaring a foreign key on column fk.
func StartCandidates(g *Graph, fk string) []string {
	var names []string
	for _, name := range g.order {
		for _, i := range g.out[name] {
			if g.edges[i].FromColumn == fk {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// EndCandidates returns the tables matching fk under the given end match.
func EndCandidates(g *Graph, fk string, m EndMatch) []string {
	if m == MatchOutgoing {
		return StartCandidates(g, fk)
	}

	var names []string
	for _, name := range g.order {
		for _, i := range g.in[name] {
			if g.edges[i].ToColumn == fk {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// FindPaths returns every simple path in the undirected projection of g
// between a start candidate for fk1 and an end candidate for fk2.
//
// Pairs are visited start-major in node order and include start == end,
// which contributes the single-table path. Paths produced by different
// pairs are not deduplicated. The result is empty when either column
// matches nothing.
func FindPaths(g *Graph, fk1, fk2 string, opts ...FindOption) []Path {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}

	paths := make([]Path, 0)
	if g == nil {
		return paths
	}

	starts := StartCandidates(g, fk1)
	if len(starts) == 0 {
		return paths
	}
	ends := EndCandidates(g, fk2, o.endMatch)
	if len(ends) == 0 {
		return paths
	}

	for _, start := range starts {
		for _, end := range ends {
			more := true
			WalkSimplePaths(g, start, end, o.maxDepth, func(p Path) bool {
				paths = append(paths, p)
				more = o.limit <= 0 || len(paths) < o.limit
				return more
			})
			if !more {
				return paths
			}
		}
	}
	return paths
}

// WalkSimplePaths calls fn for every simple path from one table to another
// in the undirected projection of g, in depth-first order. Walking stops
// early when fn returns false. maxDepth bounds the number of tables per
// path; zero means unbounded.
func WalkSimplePaths(g *Graph, from, to string, maxDepth int, fn func(Path) bool) {
	if g == nil {
		return
	}
	if _, ok := g.nodes[from]; !ok {
		return
	}
	if _, ok := g.nodes[to]; !ok {
		return
	}
	walk(g.undirected(), from, to, maxDepth, fn)
}

// walk reports false if fn asked to stop.
func walk(adj map[string][]string, from, to string, maxDepth int, fn func(Path) bool) bool {
	if from == to {
		return fn(Path{from})
	}

	visited := map[string]bool{from: true}
	path := []string{from}

	var dfs func(cur string) bool
	dfs = func(cur string) bool {
		if maxDepth > 0 && len(path)+1 > maxDepth {
			return true
		}
		for _, next := range adj[cur] {
			if visited[next] {
				continue
			}
			if next == to {
				p := make(Path, len(path), len(path)+1)
				copy(p, path)
				if !fn(append(p, to)) {
					return false
				}
				continue
			}

			visited[next] = true
			path = append(path, next)
			ok := dfs(next)
			path = path[:len(path)-1]
			visited[next] = false
			if !ok {
				return false
			}
		}
		return true
	}

	return dfs(from)
}
