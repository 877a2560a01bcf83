package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/pkg/adapters/snapshot"
)

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Save the schema to a YAML or JSON file",
		Long: `Read the schema from the target and write it to a snapshot file.
The format follows the extension: .json writes JSON, anything else YAML.

A snapshot can be used as a target later (type snapshot), so paths can be
explored without access to the database.`,
		Example: `  # Capture a Postgres schema
  schemagraph snapshot shop.yaml --dsn postgres://reader@db/shop

  # Explore it offline
  schemagraph paths category_id user_id --path shop.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, args[0])
		},
	}

	return cmd
}

func runSnapshot(cmd *cobra.Command, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	schema, err := cmdCtx.LoadSchema()
	if err != nil {
		return err
	}

	if err := snapshot.WriteFile(file, schema); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %d tables to %s", schema.Len(), file))
	return nil
}
