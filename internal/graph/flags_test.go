package graph

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/masonworks/mason/internal/model"
)

func TestAggregateIncludes(t *testing.T) {
	t.Parallel()

	core := &model.Component{ID: "core", Kind: model.KindLib, Dir: filepath.Join("src", "core")}
	special := &model.Component{
		ID:    "special",
		Kind:  model.KindLib,
		Dir:   filepath.Join("vendor", "special"),
		Props: map[string]cty.Value{PropIncludeRoot: cty.True},
	}
	app := &model.Component{ID: "app", Kind: model.KindExe, Dir: filepath.Join("src", "app")}
	reg := model.NewTable(core, special, app)
	target := &model.Target{ID: "host"}

	got := AggregateIncludes(target, reg)
	require.Equal(t, []string{"-Isrc", "-I" + filepath.Join("vendor", "special")}, got)
}

func TestAggregateIncludes_DeduplicatesSiblings(t *testing.T) {
	t.Parallel()

	a := &model.Component{ID: "a", Kind: model.KindLib, Dir: filepath.Join("src", "a")}
	b := &model.Component{ID: "b", Kind: model.KindLib, Dir: filepath.Join("src", "b")}
	reg := model.NewTable(a, b)

	got := AggregateIncludes(&model.Target{ID: "host"}, reg)
	require.Equal(t, []string{"-Isrc"}, got)
}

func TestAggregateIncludes_EmptyRegistry(t *testing.T) {
	t.Parallel()

	got := AggregateIncludes(&model.Target{ID: "host"}, model.NewTable())
	require.Empty(t, got)
}

func TestAggregateDefines(t *testing.T) {
	t.Parallel()

	target := &model.Target{
		ID: "host",
		Props: map[string]cty.Value{
			"debug": cty.True,
			"strip": cty.False,
			"arch":  cty.StringVal("x86-64"),
			"opt":   cty.NumberIntVal(2),
		},
	}

	got, err := AggregateDefines(target)
	require.NoError(t, err)
	require.Equal(t, []string{
		"-D__mason_arch_value=x86-64",
		"-D__mason_arch_x86_64__",
		"-D__mason_debug__",
		"-D__mason_opt_2__",
		"-D__mason_opt_value=2",
	}, got)
}

func TestAggregateDefines_Deterministic(t *testing.T) {
	t.Parallel()

	target := &model.Target{
		ID: "host",
		Props: map[string]cty.Value{
			"a": cty.StringVal("1"),
			"b": cty.NumberIntVal(2),
			"c": cty.True,
			"d": cty.StringVal("x y.z"),
		},
	}

	first, err := AggregateDefines(target)
	require.NoError(t, err)
	second, err := AggregateDefines(target)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// Two raw keys sanitizing to one token collapse into a single flag. This
// is a known limitation of the sanitization scheme, asserted here so a
// future fix has to change this test on purpose.
func TestAggregateDefines_CollidingKeysCollapseSilently(t *testing.T) {
	t.Parallel()

	target := &model.Target{
		ID: "host",
		Props: map[string]cty.Value{
			"log-level": cty.True,
			"log.level": cty.True,
		},
	}

	got, err := AggregateDefines(target)
	require.NoError(t, err)
	require.Equal(t, []string{"-D__mason_log_level__"}, got)
}

func TestAggregateDefines_RejectsNonUnionValue(t *testing.T) {
	t.Parallel()

	target := &model.Target{
		ID: "host",
		Props: map[string]cty.Value{
			"flags": cty.ListVal([]cty.Value{cty.StringVal("-g")}),
		},
	}

	_, err := AggregateDefines(target)
	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}
