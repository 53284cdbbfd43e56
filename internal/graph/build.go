package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/model"
	"github.com/masonworks/mason/internal/shell"
)

// GraphFile is the graph document's filename inside the build directory.
const GraphFile = "build.ninja"

// Executor runs the external incremental-build executor against a written
// graph file, restricted to the given goals. No goals means the document's
// default goal. The call blocks until the executor's process terminates.
type Executor interface {
	Run(ctx context.Context, graphFile string, goals []string) error
}

// NinjaExecutor is the default Executor; it shells out to ninja.
type NinjaExecutor struct{}

// Run implements Executor.
func (NinjaExecutor) Run(ctx context.Context, graphFile string, goals []string) error {
	args := append([]string{"-v", "-f", graphFile}, goals...)
	return shell.Exec(ctx, "ninja", args...)
}

// Builder orchestrates builds: it writes the graph, picks the goal set,
// and drives the executor.
type Builder struct {
	Executor Executor
}

// NewBuilder returns a Builder driving ninja.
func NewBuilder() *Builder {
	return &Builder{Executor: NinjaExecutor{}}
}

// Build generates the target's graph document and runs the executor over
// it. With no components given it builds the aggregate goal and returns
// one Product per enabled component; otherwise it restricts the executor
// to exactly the given components' final artifacts, leaving unrelated
// artifacts untouched. An executor failure propagates as-is; nothing is
// retried.
//
// Concurrent invocations against one build directory are not synchronized;
// the directory is assumed to belong to a single invocation at a time.
func (b *Builder) Build(ctx context.Context, t *model.Target, reg model.Registry, components ...*model.Component) ([]model.Product, error) {
	logger := ctxlog.FromContext(ctx)

	if err := shell.Mkdir(t.BuildDir); err != nil {
		return nil, err
	}
	graphPath := filepath.Join(t.BuildDir, GraphFile)
	if err := writeGraph(ctx, graphPath, t, reg); err != nil {
		return nil, err
	}

	all := len(components) == 0
	if all {
		components = reg.Enabled(t)
	}
	products := make([]model.Product, 0, len(components))
	for _, c := range components {
		products = append(products, model.Product{Path: OutFile(t, c), Target: t, Component: c})
	}

	var goals []string
	if !all {
		for _, p := range products {
			goals = append(goals, p.Path)
		}
	}

	logger.Info("building", "target", t.ID, "graph", graphPath, "goals", goalLabel(goals))
	if err := b.Executor.Run(ctx, graphPath, goals); err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	return products, nil
}

func writeGraph(ctx context.Context, path string, t *model.Target, reg model.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return &shell.FSError{Op: "create", Path: path, Err: err}
	}
	if err := Generate(ctx, f, t, reg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &shell.FSError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func goalLabel(goals []string) string {
	if len(goals) == 0 {
		return AllGoal
	}
	return fmt.Sprintf("%d artifact(s)", len(goals))
}
