package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemagraph/internal/cli/config"
	"github.com/leapstack-labs/schemagraph/internal/cli/output"
	"github.com/leapstack-labs/schemagraph/internal/graph"
	"github.com/leapstack-labs/schemagraph/pkg/adapter"
	"github.com/leapstack-labs/schemagraph/pkg/core"

	// Register the schema readers available to every command.
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/snapshot"
	_ "github.com/leapstack-labs/schemagraph/pkg/adapters/sqlite"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer returns a context carrying r.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// CommandContext bundles what a command needs to read a schema and render results.
type CommandContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Renderer *output.Renderer
	Logger   *slog.Logger
}

// NewCommandContext collects the config, renderer and logger stored by the
// root command. A command run on its own loads config from its flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		var err error
		cfg, err = config.LoadConfig("", cmd.Flags())
		if err != nil {
			return nil, err
		}
	}

	r, ok := ctx.Value(rendererKey{}).(*output.Renderer)
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Ctx:      ctx,
		Cfg:      cfg,
		Renderer: r,
		Logger:   config.GetLogger(ctx),
	}, nil
}

// LoadSchema reads one schema snapshot from the configured target.
func (c *CommandContext) LoadSchema() (*core.Schema, error) {
	if err := c.Cfg.ValidateTarget(); err != nil {
		return nil, err
	}

	c.Logger.Debug("reading schema",
		slog.String("type", c.Cfg.Target.Type),
		slog.String("path", c.Cfg.Target.Path),
		slog.String("schema", c.Cfg.Target.Schema))

	schema, err := adapter.Extract(c.Ctx, c.Cfg.Target.ReaderConfig(), c.Logger)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// LoadGraph reads the schema and builds its graph. Foreign keys to tables
// outside the schema are an error unless allow_dangling is set, in which
// case they become placeholder nodes and a warning is printed.
func (c *CommandContext) LoadGraph() (*graph.Graph, error) {
	schema, err := c.LoadSchema()
	if err != nil {
		return nil, err
	}

	if err := graph.ValidateReferences(schema); err != nil {
		var dangling *graph.DanglingReferenceError
		if !c.Cfg.AllowDangling || !errors.As(err, &dangling) {
			return nil, err
		}
	}

	g := graph.Build(schema)
	if placeholders := g.Placeholders(); len(placeholders) > 0 {
		c.Renderer.Warning(fmt.Sprintf("%d referenced table(s) missing from schema: %v", len(placeholders), placeholders))
	}

	c.Logger.Debug("graph built",
		slog.Int("nodes", g.NodeCount()),
		slog.Int("edges", g.EdgeCount()))

	return g, nil
}
