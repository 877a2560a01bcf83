package output

// PathsOutput is the JSON shape of the paths command.
type PathsOutput struct {
	FK1             string     `json:"fk1"`
	FK2             string     `json:"fk2"`
	EndMatch        string     `json:"end_match"`
	StartCandidates []string   `json:"start_candidates"`
	EndCandidates   []string   `json:"end_candidates"`
	Paths           [][]string `json:"paths"`
	Count           int        `json:"count"`
	Truncated       bool       `json:"truncated,omitempty"`
}

// GraphOutput is the JSON shape of the graph command.
type GraphOutput struct {
	Nodes      []GraphNode `json:"nodes"`
	Edges      []GraphEdge `json:"edges"`
	TotalNodes int         `json:"total_nodes"`
	TotalEdges int         `json:"total_edges"`
}

// GraphNode is one table in GraphOutput.
type GraphNode struct {
	Name        string   `json:"name"`
	Columns     []string `json:"columns"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// GraphEdge is one foreign-key column in GraphOutput.
type GraphEdge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromColumn string `json:"from_column"`
	ToColumn   string `json:"to_column"`
}

// TablesOutput is the JSON shape of the tables command.
type TablesOutput struct {
	Tables []TableInfo `json:"tables"`
	Total  int         `json:"total"`
}

// TableInfo describes one table in TablesOutput.
type TableInfo struct {
	Name        string       `json:"name"`
	Columns     []ColumnInfo `json:"columns"`
	ForeignKeys []string     `json:"foreign_keys"`
}

// ColumnInfo describes one column in TableInfo.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}
