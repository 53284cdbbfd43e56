package model

import (
	"path/filepath"

	"github.com/zclconf/go-cty/cty"
)

// Kind classifies what a component builds into.
type Kind string

const (
	// KindLib components produce a static archive other components link against.
	KindLib Kind = "lib"
	// KindExe components produce a runnable executable. Any kind other than
	// KindLib gets the executable output shape.
	KindExe Kind = "exe"
)

// Tool is one target-bound rule invocation: the command to run, extra
// target-specific flags, and the toolchain's own files. The file set is fed
// into the graph as an order-only input so a toolchain upgrade invalidates
// previously built objects.
type Tool struct {
	Cmd   string
	Args  []string
	Files []string
}

// Target is a build configuration a component is built against.
type Target struct {
	ID       string
	BuildDir string
	// HashID fingerprints the exact target configuration. It is opaque to
	// the graph compiler and forwarded into the document for the executor's
	// cache keys.
	HashID string
	Props  map[string]cty.Value
	Tools  map[string]Tool
}

// Component is a unit of source, either a library or an executable, with
// its own directory tree, resources, and declared dependencies.
type Component struct {
	ID      string
	Kind    Kind
	Dir     string
	SubDirs []string
	Props   map[string]cty.Value
	// EnableIf restricts the component to targets whose props match every
	// entry. An empty map enables the component everywhere.
	EnableIf map[string]cty.Value
	// Requires lists the ids of directly required components, as declared
	// in the manifest.
	Requires []string
	// Resolved maps a target id to the ordered, transitively resolved
	// dependency id list for that target. It is filled by the resolver
	// before graph generation; its order is authoritative and never
	// re-sorted downstream.
	Resolved map[string][]string
}

// SubPath returns a path inside the component's directory.
func (c *Component) SubPath(sub string) string {
	return filepath.Join(c.Dir, sub)
}

// Product pairs a built artifact path with the target and component that
// produced it. It is the unit returned to the command layer.
type Product struct {
	Path      string
	Target    *Target
	Component *Component
}

// ExecContext identifies the build a product came from. It is passed by
// value to the process runner and exported into the child environment; the
// orchestrator never mutates its own environment.
type ExecContext struct {
	TargetID    string
	ComponentID string
	BuildDir    string
}

// Environ renders the context as environment variable assignments.
func (e ExecContext) Environ() []string {
	return []string{
		"MASON_TARGET=" + e.TargetID,
		"MASON_COMPONENT=" + e.ComponentID,
		"MASON_BUILDDIR=" + e.BuildDir,
	}
}
