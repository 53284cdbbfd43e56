// Package cli wires the command tree: build, run, debug, test, clean, and
// nuke, all sharing one loaded project model.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/graph"
	"github.com/masonworks/mason/internal/manifest"
	"github.com/masonworks/mason/internal/model"
	"github.com/masonworks/mason/internal/resolve"
)

// options are the persistent flags every subcommand shares.
type options struct {
	project   string
	target    string
	logLevel  string
	logFormat string
}

// New returns the root command.
func New() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "mason",
		Short:         "An incremental build tool for multi-component native projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.project, "project", "p", manifest.DefaultFile, "path to the project manifest")
	root.PersistentFlags().StringVarP(&opts.target, "target", "t", "host", "target to build against")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ctx := ctxlog.WithLogger(cmd.Context(), newLogger(opts.logLevel, opts.logFormat, os.Stderr))
		cmd.SetContext(ctx)
	}

	root.AddCommand(
		newBuildCmd(opts),
		newRunCmd(opts),
		newDebugCmd(opts),
		newTestCmd(opts),
		newCleanCmd(opts),
		newNukeCmd(opts),
	)
	return root
}

// load parses the manifest, picks the requested target, and resolves
// dependencies for it.
func load(cmd *cobra.Command, opts *options) (*manifest.Project, *model.Target, error) {
	p, err := manifest.Load(cmd.Context(), opts.project)
	if err != nil {
		return nil, nil, err
	}
	t, err := p.Target(opts.target)
	if err != nil {
		return nil, nil, err
	}
	if err := resolve.Apply(cmd.Context(), p.Registry, t); err != nil {
		return nil, nil, err
	}
	return p, t, nil
}

// buildScope resolves the requested component ids, or returns none for a
// full build.
func buildScope(reg model.Registry, ids []string) ([]*model.Component, error) {
	components := make([]*model.Component, 0, len(ids))
	for _, id := range ids {
		c, ok := reg.Lookup(id)
		if !ok {
			return nil, model.Configf("component %q not found", id)
		}
		components = append(components, c)
	}
	return components, nil
}

// execContext describes the product handed to the process runner.
func execContext(p model.Product) model.ExecContext {
	return model.ExecContext{
		TargetID:    p.Target.ID,
		ComponentID: p.Component.ID,
		BuildDir:    p.Target.BuildDir,
	}
}

// newBuilder is swapped out by tests to avoid driving the real executor.
var newBuilder = graph.NewBuilder

func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
