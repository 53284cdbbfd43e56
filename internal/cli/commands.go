package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/masonworks/mason/internal/manifest"
	"github.com/masonworks/mason/internal/shell"
)

// TestComponent is the synthetic component the test command builds and
// runs.
const TestComponent = "__tests__"

func newBuildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build [component...]",
		Short: "Build the named components, or everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, t, err := load(cmd, opts)
			if err != nil {
				return err
			}
			components, err := buildScope(p.Registry, args)
			if err != nil {
				return err
			}
			_, err = newBuilder().Build(cmd.Context(), t, p.Registry, components...)
			return err
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run component [args...]",
		Short: "Build a component and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponent(cmd, opts, args[0], args[1:], false)
		},
	}
}

func newDebugCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "debug component [args...]",
		Short: "Build a component and run it under a debugger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponent(cmd, opts, args[0], args[1:], true)
		},
	}
}

func newTestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "test [args...]",
		Short: "Build and run the test component",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponent(cmd, opts, TestComponent, args, false)
		},
	}
}

func newCleanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := manifest.Load(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			return shell.Rmrf(filepath.Join(p.Dir, manifest.BuildRoot))
		},
	}
}

func newNukeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "nuke",
		Short: "Remove build outputs and caches",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := manifest.Load(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			return shell.Rmrf(filepath.Join(p.Dir, manifest.ProjectDir))
		},
	}
}

// runComponent builds one component and executes its product, exporting
// the execution context only into the child's environment.
func runComponent(cmd *cobra.Command, opts *options, id string, args []string, debug bool) error {
	p, t, err := load(cmd, opts)
	if err != nil {
		return err
	}
	components, err := buildScope(p.Registry, []string{id})
	if err != nil {
		return err
	}
	products, err := newBuilder().Build(cmd.Context(), t, p.Registry, components...)
	if err != nil {
		return err
	}

	product := products[0]
	env := execContext(product).Environ()
	if debug {
		argv := append([]string{"-o", "run", product.Path}, args...)
		return shell.ExecEnv(cmd.Context(), env, "lldb", argv...)
	}
	return shell.ExecEnv(cmd.Context(), env, product.Path, args...)
}
