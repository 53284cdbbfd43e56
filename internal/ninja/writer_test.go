package ninja

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Variable(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Variable("builddir", "build/host")

	require.NoError(t, w.Err())
	require.Equal(t, "builddir = build/host\n", sb.String())
}

func TestWriter_Rule(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Rule("cc", "clang -c -o $out $in $ccflags", "$out.d")

	require.Equal(t, "rule cc\n  command = clang -c -o $out $in $ccflags\n  depfile = $out.d\n", sb.String())
}

func TestWriter_RuleWithoutDepfile(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Rule("cp", "cp $in $out", "")

	require.NotContains(t, sb.String(), "depfile")
}

func TestWriter_BuildEdge(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Build(Edge{
		Outputs:   []string{"obj/a.o"},
		Rule:      "cc",
		Inputs:    []string{"src/a.c"},
		Implicit:  []string{"res/logo.png"},
		OrderOnly: []string{"/usr/bin/clang"},
	})

	require.Equal(t, "build obj/a.o: cc src/a.c | res/logo.png || /usr/bin/clang\n", sb.String())
}

func TestWriter_BuildEdgeOmitsEmptySections(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Build(Edge{Outputs: []string{"all"}, Rule: "phony"})

	require.Equal(t, "build all: phony\n", sb.String())
}

func TestWriter_Default(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Default("all")

	require.Equal(t, "default all\n", sb.String())
}

func TestEscapePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a$ b$:c$$d", EscapePath("a b:c$d"))
}

func TestWriter_EscapesPathsInEdges(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Build(Edge{Outputs: []string{"out dir/a.o"}, Rule: "cc", Inputs: []string{"src dir/a.c"}})

	require.Equal(t, "build out$ dir/a.o: cc src$ dir/a.c\n", sb.String())
}
