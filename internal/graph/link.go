package graph

import (
	"context"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/model"
	"github.com/masonworks/mason/internal/ninja"
	"github.com/masonworks/mason/internal/rules"
)

// CollectLibs gathers the final artifact paths of every dependency the
// component links against, in resolution order. The resolver's ordering is
// authoritative; nothing is re-sorted here. Every non-self id must resolve
// to a library, and every id must exist in the registry — resolution
// promised both, so a miss is an error, returned before any caller can see
// a partial plan.
func CollectLibs(reg model.Registry, t *model.Target, c *model.Component) ([]string, error) {
	order, ok := c.Resolved[t.ID]
	if !ok {
		return nil, model.Configf("component %q has no resolution for target %q (resolver must run first)", c.ID, t.ID)
	}
	var libs []string
	for _, id := range order {
		if id == c.ID {
			continue
		}
		dep, ok := reg.Lookup(id)
		if !ok {
			return nil, model.Configf("resolved dependency %q of component %q is not in the registry", id, c.ID)
		}
		if dep.Kind != model.KindLib {
			return nil, model.Configf("component %q is not a library; %q cannot link against it", id, c.ID)
		}
		libs = append(libs, OutFile(t, dep))
	}
	return libs, nil
}

// link emits everything one component contributes to the graph: compile
// edges for each source bucket, resource copies, and a single terminal
// edge producing the final artifact. Libraries archive their own objects;
// executables link their objects plus every collected dependency archive.
// Resource outputs are implicit inputs of the terminal edge so they get
// staged even though no linker consumes them.
func link(ctx context.Context, w *ninja.Writer, reg model.Registry, t *model.Target, c *model.Component) (string, error) {
	logger := ctxlog.FromContext(ctx)
	w.Newline()
	out := OutFile(t, c)

	var objs []string
	for _, rule := range rules.CompileOrder {
		srcs, err := sources(c, rules.Builtin[rule].Patterns)
		if err != nil {
			return "", err
		}
		emitted, err := compileEdges(w, t, c, rule, srcs)
		if err != nil {
			return "", err
		}
		objs = append(objs, emitted...)
	}

	res, err := resourceEdges(w, t, c)
	if err != nil {
		return "", err
	}
	libs, err := CollectLibs(reg, t, c)
	if err != nil {
		return "", err
	}

	if c.Kind == model.KindLib {
		w.Build(ninja.Edge{Outputs: []string{out}, Rule: "ar", Inputs: objs, Implicit: res})
	} else {
		w.Build(ninja.Edge{Outputs: []string{out}, Rule: "ld", Inputs: append(objs, libs...), Implicit: res})
	}
	logger.Debug("planned component", "component", c.ID, "objects", len(objs), "resources", len(res), "libs", len(libs))
	return out, nil
}
