package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/cli/output"
	"github.com/leapstack-labs/schemagraph/pkg/core"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [table...]",
		Short: "List tables, columns and foreign keys",
		Long: `List the tables read from the target together with their columns and
outgoing foreign keys. Pass table names to limit the listing.`,
		Example: `  # All tables
  schemagraph tables --path shop.db

  # A single table
  schemagraph tables orders

  # Output as JSON
  schemagraph tables -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args)
		},
	}

	return cmd
}

func runTables(cmd *cobra.Command, names []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	schema, err := cmdCtx.LoadSchema()
	if err != nil {
		return err
	}

	tables, err := selectTables(schema, names)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return tablesJSON(r, tables)
	case output.ModeMarkdown:
		return tablesMarkdown(r, tables)
	default:
		return tablesText(r, tables)
	}
}

// selectTables returns the named tables in the order given, or every table
// when names is empty.
func selectTables(schema *core.Schema, names []string) ([]core.Table, error) {
	if len(names) == 0 {
		return schema.Tables, nil
	}

	tables := make([]core.Table, 0, len(names))
	for _, name := range names {
		t, ok := schema.Table(name)
		if !ok {
			return nil, fmt.Errorf("table %q not found\nAvailable tables: %v", name, schema.TableNames())
		}
		tables = append(tables, *t)
	}
	return tables, nil
}

func references(t core.Table, column string) string {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk.RefTable + "." + fk.RefColumn
		}
	}
	return ""
}

func columnDefault(c core.Column) string {
	if c.Default == nil {
		return ""
	}
	return *c.Default
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// tablesText outputs tables in styled text format.
func tablesText(r *output.Renderer, tables []core.Table) error {
	styles := r.Styles()

	for i, t := range tables {
		if i > 0 {
			r.Println("")
		}
		r.Println(styles.Table.Render(t.Name))

		tw := table.NewWriter()
		tw.SetOutputMirror(r.Writer())
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Column", "Type", "Nullable", "PK", "Default", "References"})
		for _, c := range t.Columns {
			pk := ""
			if c.PrimaryKey {
				pk = "*"
			}
			tw.AppendRow(table.Row{c.Name, c.Type, yesNo(c.Nullable), pk, columnDefault(c), references(t, c.Name)})
		}
		tw.Render()
	}

	r.Println("")
	r.Muted(fmt.Sprintf("Total: %d tables", len(tables)))

	return nil
}

// tablesMarkdown outputs tables in markdown format.
func tablesMarkdown(r *output.Renderer, tables []core.Table) error {
	r.Println(output.FormatHeader(1, "Tables"))
	r.Println("")

	for _, t := range tables {
		r.Println(output.FormatHeader(2, t.Name))
		r.Println("")

		rows := make([][]string, len(t.Columns))
		for i, c := range t.Columns {
			pk := ""
			if c.PrimaryKey {
				pk = "yes"
			}
			rows[i] = []string{c.Name, c.Type, yesNo(c.Nullable), pk, columnDefault(c), references(t, c.Name)}
		}
		r.Println(output.FormatTable([]string{"Column", "Type", "Nullable", "PK", "Default", "References"}, rows))
		r.Println("")
	}

	r.Println(output.FormatKeyValue("Total", fmt.Sprintf("%d", len(tables))))

	return nil
}

// tablesJSON outputs tables in JSON format.
func tablesJSON(r *output.Renderer, tables []core.Table) error {
	out := output.TablesOutput{
		Tables: make([]output.TableInfo, 0, len(tables)),
		Total:  len(tables),
	}

	for _, t := range tables {
		info := output.TableInfo{
			Name:        t.Name,
			Columns:     make([]output.ColumnInfo, len(t.Columns)),
			ForeignKeys: make([]string, len(t.ForeignKeys)),
		}
		for i, c := range t.Columns {
			info.Columns[i] = output.ColumnInfo{
				Name:       c.Name,
				Type:       c.Type,
				Nullable:   c.Nullable,
				PrimaryKey: c.PrimaryKey,
			}
		}
		for i, fk := range t.ForeignKeys {
			info.ForeignKeys[i] = fmt.Sprintf("%s -> %s.%s", fk.Column, fk.RefTable, fk.RefColumn)
		}
		out.Tables = append(out.Tables, info)
	}

	return r.JSON(out)
}
