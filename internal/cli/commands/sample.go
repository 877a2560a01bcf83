package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/sample"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <file>",
		Short: "Create a sample SQLite database",
		Long: `Create a small shop database (users, addresses, orders, order items,
products and categories) to try the other commands against.`,
		Example: `  schemagraph sample shop.db
  schemagraph paths category_id user_id --path shop.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, args[0])
		},
	}

	return cmd
}

func runSample(cmd *cobra.Command, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if err := sample.Create(cmdCtx.Ctx, file); err != nil {
		return fmt.Errorf("failed to create sample database: %w", err)
	}

	r.Success(fmt.Sprintf("Created %s with %d tables", file, len(sample.Tables)))
	r.Muted(fmt.Sprintf("Try: schemagraph paths category_id user_id --path %s", file))
	return nil
}
