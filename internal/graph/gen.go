package graph

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/model"
	"github.com/masonworks/mason/internal/ninja"
	"github.com/masonworks/mason/internal/rules"
)

// AllGoal names the phony aggregate edge grouping every final artifact. It
// carries no artifact of its own and doubles as the default goal, so a
// full build needs no special casing in the document format.
const AllGoal = "all"

// Generate writes the complete build-graph document for a target: global
// variables, the tool rules, one edge set per enabled component, and the
// default aggregate goal.
func Generate(ctx context.Context, out io.Writer, t *model.Target, reg model.Registry) error {
	logger := ctxlog.FromContext(ctx)
	w := ninja.NewWriter(out)

	w.Comment("File generated by mason, do not edit")
	w.Newline()
	w.Variable("builddir", t.BuildDir)
	w.Variable("hashid", t.HashID)

	w.Separator("Tools")

	defs, err := AggregateDefines(t)
	if err != nil {
		return err
	}
	w.Variable("cincs", strings.Join(AggregateIncludes(t, reg), " "))
	w.Variable("cdefs", strings.Join(defs, " "))
	w.Newline()

	w.Rule("cp", "cp $in $out", "")
	w.Newline()

	names := make([]string, 0, len(t.Tools))
	for name := range t.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule, ok := rules.Builtin[name]
		if !ok {
			return model.Configf("target %q binds unknown tool %q", t.ID, name)
		}
		tool := t.Tools[name]
		w.Variable(name, tool.Cmd)
		w.Variable(name+"flags", strings.Join(append(append([]string{}, rule.Args...), tool.Args...), " "))
		w.Rule(name, tool.Cmd+" "+strings.ReplaceAll(rule.Command, "$flags", "$"+name+"flags"), rule.Depfile)
		w.Newline()
	}

	w.Separator("Build")

	enabled := reg.Enabled(t)
	outs := make([]string, 0, len(enabled))
	for _, c := range enabled {
		artifact, err := link(ctx, w, reg, t, c)
		if err != nil {
			return err
		}
		outs = append(outs, artifact)
	}
	w.Newline()
	w.Build(ninja.Edge{Outputs: []string{AllGoal}, Rule: "phony", Inputs: outs})
	w.Default(AllGoal)

	logger.Debug("graph generated", "target", t.ID, "components", len(enabled))
	return w.Err()
}
