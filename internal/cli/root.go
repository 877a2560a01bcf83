// Package cli provides the command-line interface for schemagraph.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/cli/commands"
	"github.com/leapstack-labs/schemagraph/internal/cli/config"
	"github.com/leapstack-labs/schemagraph/internal/cli/output"
	"github.com/leapstack-labs/schemagraph/pkg/adapter"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "schemagraph",
		Short: "schemagraph - foreign-key join path finder",
		Long: `schemagraph reads the tables and foreign keys of a relational database
and lists every way two foreign-key columns can be joined through the schema.

Tables become nodes and foreign keys become edges. Paths are simple paths
through the graph with edge direction ignored, so each one is a candidate
chain of joins.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			ctx = commands.WithConfig(ctx, cfg)

			// Create and store renderer based on output mode
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			ctx = commands.WithRenderer(ctx, renderer)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", slog.String("path", configFile))
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./schemagraph.yaml, searched upward)")
	flags.String("dsn", "", "Connection URL, e.g. postgres://user@host/db or sqlite:shop.db")
	flags.String("type", "", "Target type (sqlite|duckdb|postgres|mysql|snapshot)")
	flags.String("path", "", "Path to a database or snapshot file")
	flags.String("database", "", "Database name (or file path for file-based targets)")
	flags.String("schema", "", "Schema to read (default depends on target type)")
	flags.String("env", "", "Environment from the config file to use")
	flags.Bool("allow-dangling", false, "Keep foreign keys to tables outside the schema as placeholder nodes")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for type flag
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return adapter.ListReaders(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewPathsCommand())
	rootCmd.AddCommand(commands.NewGraphCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewSampleCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for schemagraph.

To load completions:

Bash:
  $ source <(schemagraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ schemagraph completion bash > /etc/bash_completion.d/schemagraph
  # macOS:
  $ schemagraph completion bash > $(brew --prefix)/etc/bash_completion.d/schemagraph

Zsh:
  $ schemagraph completion zsh > "${fpath[1]}/_schemagraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ schemagraph completion fish | source

  # To load completions for each session, execute once:
  $ schemagraph completion fish > ~/.config/fish/completions/schemagraph.fish

PowerShell:
  PS> schemagraph completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
