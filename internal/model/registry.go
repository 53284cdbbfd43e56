package model

// Registry is the read-only view of the component set the graph compiler
// works from.
type Registry interface {
	// Enabled returns the components enabled for the given target, in a
	// stable order.
	Enabled(t *Target) []*Component
	// Lookup finds a component by id.
	Lookup(id string) (*Component, bool)
}

// Table is the concrete Registry populated from manifests.
type Table struct {
	byID  map[string]*Component
	order []string
}

// NewTable builds a Table preserving the given component order.
func NewTable(components ...*Component) *Table {
	t := &Table{byID: make(map[string]*Component, len(components))}
	for _, c := range components {
		if _, ok := t.byID[c.ID]; ok {
			continue
		}
		t.byID[c.ID] = c
		t.order = append(t.order, c.ID)
	}
	return t
}

// Lookup implements Registry.
func (r *Table) Lookup(id string) (*Component, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Enabled implements Registry. A component is enabled for a target when
// every entry of its EnableIf mapping matches the target's props.
func (r *Table) Enabled(t *Target) []*Component {
	var res []*Component
	for _, id := range r.order {
		c := r.byID[id]
		if enabledFor(c, t) {
			res = append(res, c)
		}
	}
	return res
}

func enabledFor(c *Component, t *Target) bool {
	for k, want := range c.EnableIf {
		got, ok := t.Props[k]
		if !ok || !want.RawEquals(got) {
			return false
		}
	}
	return true
}

// LookupKind looks up id and checks it against the expected kind. Both a
// missing component and a kind mismatch are configuration errors.
func LookupKind(r Registry, id string, kind Kind) (*Component, error) {
	c, ok := r.Lookup(id)
	if !ok {
		return nil, Configf("component %q not found", id)
	}
	if c.Kind != kind {
		return nil, Configf("component %q is %s, not %s", id, c.Kind, kind)
	}
	return c, nil
}
