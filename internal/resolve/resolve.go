// Package resolve linearizes declared component dependencies into the
// ordered per-target lists the link planner consumes. The output order is
// authoritative downstream: the planner trusts it and never re-sorts.
//
// Resolution here is deliberately minimal. There is no cycle detection and
// no conflict handling; the visited set guarantees termination and the
// declared order is kept as-is.
package resolve

import (
	"context"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/model"
)

// Apply fills Component.Resolved for every enabled component of every
// given target. An id required by any component must exist in the
// registry.
func Apply(ctx context.Context, reg model.Registry, targets ...*model.Target) error {
	logger := ctxlog.FromContext(ctx)
	for _, t := range targets {
		for _, c := range reg.Enabled(t) {
			order, err := linearize(reg, c)
			if err != nil {
				return err
			}
			if c.Resolved == nil {
				c.Resolved = make(map[string][]string)
			}
			c.Resolved[t.ID] = order
			logger.Debug("resolved component", "target", t.ID, "component", c.ID, "order", order)
		}
	}
	return nil
}

// linearize walks the requires graph depth-first from c, emitting each id
// once in first-visit order. The component itself comes first, then its
// dependencies with dependents ahead of what they depend on, which is the
// order a linker wants archives in.
func linearize(reg model.Registry, c *model.Component) ([]string, error) {
	var order []string
	seen := make(map[string]bool)

	var walk func(owner string, ids []string) error
	walk = func(owner string, ids []string) error {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			dep, ok := reg.Lookup(id)
			if !ok {
				return model.Configf("component %q requires unknown component %q", owner, id)
			}
			order = append(order, id)
			if err := walk(id, dep.Requires); err != nil {
				return err
			}
		}
		return nil
	}

	seen[c.ID] = true
	order = append(order, c.ID)
	if err := walk(c.ID, c.Requires); err != nil {
		return nil, err
	}
	return order, nil
}
