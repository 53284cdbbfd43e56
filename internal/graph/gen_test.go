package graph

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/masonworks/mason/internal/model"
)

func writeSource(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// sampleProject lays out a library with a subdirectory and a resource,
// plus an executable depending on it.
func sampleProject(t *testing.T) (*model.Target, *model.Table) {
	t.Helper()
	dir := t.TempDir()

	writeSource(t, filepath.Join(dir, "core", "a.c"), "int a(void) { return 1; }\n")
	writeSource(t, filepath.Join(dir, "core", "utils", "u.c"), "int u(void) { return 2; }\n")
	writeSource(t, filepath.Join(dir, "core", "res", "data", "logo.txt"), "logo\n")
	writeSource(t, filepath.Join(dir, "app", "main.c"), "int main(void) { return 0; }\n")

	core := &model.Component{
		ID:       "core",
		Kind:     model.KindLib,
		Dir:      filepath.Join(dir, "core"),
		SubDirs:  []string{"utils"},
		Resolved: map[string][]string{"host": {"core"}},
	}
	app := &model.Component{
		ID:       "app",
		Kind:     model.KindExe,
		Dir:      filepath.Join(dir, "app"),
		Requires: []string{"core"},
		Resolved: map[string][]string{"host": {"app", "core"}},
	}
	target := &model.Target{
		ID:       "host",
		BuildDir: filepath.Join("build", "host"),
		HashID:   "cafebabe00000000",
		Tools: map[string]model.Tool{
			"cc": {Cmd: "clang", Files: []string{"/toolchain/clang"}},
			"ar": {Cmd: "llvm-ar"},
			"ld": {Cmd: "clang"},
		},
	}
	return target, model.NewTable(core, app)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	target, reg := sampleProject(t)
	var buf bytes.Buffer
	require.NoError(t, Generate(context.Background(), &buf, target, reg))
	doc := buf.String()

	// Globals.
	require.Contains(t, doc, "# File generated by mason, do not edit\n")
	require.Contains(t, doc, "builddir = "+filepath.Join("build", "host")+"\n")
	require.Contains(t, doc, "hashid = cafebabe00000000\n")

	// Tool rules with the flags variable substituted in.
	require.Contains(t, doc, "rule cc\n  command = clang -c -o $out $in -MD -MF $out.d $ccflags $cincs $cdefs\n  depfile = $out.d\n")
	require.Contains(t, doc, "ccflags = -std=gnu2x\n")
	require.Contains(t, doc, "rule ld\n  command = clang -o $out $ldflags $in\n")
	require.Contains(t, doc, "arflags = rcs\n")
	require.Contains(t, doc, "rule cp\n  command = cp $in $out\n")

	// Compile edges mirror sources under obj/ and carry the toolchain's
	// file set as an order-only input.
	objA := filepath.Join("build", "host", "core", "obj", "a.o")
	objU := filepath.Join("build", "host", "core", "obj", "utils", "u.o")
	objMain := filepath.Join("build", "host", "app", "obj", "main.o")
	core, ok := reg.Lookup("core")
	require.True(t, ok)
	require.Contains(t, doc, "build "+objA+": cc "+filepath.Join(core.Dir, "a.c")+" || /toolchain/clang\n")
	require.Contains(t, doc, "build "+objU+": cc ")
	require.Contains(t, doc, "build "+objMain+": cc ")

	// Resource mirroring through the fixed copy rule.
	resOut := filepath.Join("build", "host", "core", "res", "data", "logo.txt")
	require.Contains(t, doc, "build "+resOut+": cp ")

	// Terminal edges: archive for the library, link for the executable
	// with the collected archive as input and resources implicit.
	archive := filepath.Join("build", "host", "core", "lib", "core.a")
	binary := filepath.Join("build", "host", "app", "bin", "app.out")
	require.Contains(t, doc, "build "+archive+": ar "+objA+" "+objU+" | "+resOut+"\n")
	require.Contains(t, doc, "build "+binary+": ld "+objMain+" "+archive+"\n")

	// Aggregate goal over every final artifact, declared default.
	require.Contains(t, doc, "build all: phony "+archive+" "+binary+"\n")
	require.Contains(t, doc, "default all\n")
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	target, reg := sampleProject(t)
	var first, second bytes.Buffer
	require.NoError(t, Generate(context.Background(), &first, target, reg))
	require.NoError(t, Generate(context.Background(), &second, target, reg))
	require.Empty(t, cmp.Diff(first.String(), second.String()))
}

func TestGenerate_NonLibraryDependency(t *testing.T) {
	t.Parallel()

	helper := &model.Component{
		ID:       "helper",
		Kind:     model.KindExe,
		Dir:      filepath.Join(t.TempDir(), "helper"),
		Resolved: map[string][]string{"host": {"helper"}},
	}
	app := &model.Component{
		ID:       "app",
		Kind:     model.KindExe,
		Dir:      filepath.Join(t.TempDir(), "app"),
		Requires: []string{"helper"},
		Resolved: map[string][]string{"host": {"app", "helper"}},
	}
	target := &model.Target{ID: "host", BuildDir: filepath.Join("build", "host")}
	reg := model.NewTable(helper, app)

	var buf bytes.Buffer
	err := Generate(context.Background(), &buf, target, reg)

	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Contains(t, err.Error(), "helper")
	// The offending link edge never reaches the document.
	require.NotContains(t, buf.String(), filepath.Join("app", "bin", "app.out"))
}

func TestGenerate_MissingResolution(t *testing.T) {
	t.Parallel()

	app := &model.Component{ID: "app", Kind: model.KindExe, Dir: filepath.Join(t.TempDir(), "app")}
	target := &model.Target{ID: "host", BuildDir: filepath.Join("build", "host")}
	reg := model.NewTable(app)

	var buf bytes.Buffer
	err := Generate(context.Background(), &buf, target, reg)
	require.ErrorContains(t, err, "resolver must run first")
}

func TestGenerate_MissingToolBinding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "core", "a.c"), "int a;\n")
	core := &model.Component{
		ID:       "core",
		Kind:     model.KindLib,
		Dir:      filepath.Join(dir, "core"),
		Resolved: map[string][]string{"host": {"core"}},
	}
	target := &model.Target{ID: "host", BuildDir: filepath.Join("build", "host")}
	reg := model.NewTable(core)

	var buf bytes.Buffer
	err := Generate(context.Background(), &buf, target, reg)

	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Contains(t, err.Error(), `no "cc" tool`)
}

func TestGenerate_UnknownToolName(t *testing.T) {
	t.Parallel()

	target := &model.Target{
		ID:       "host",
		BuildDir: filepath.Join("build", "host"),
		Tools:    map[string]model.Tool{"weird": {Cmd: "weird"}},
	}

	var buf bytes.Buffer
	err := Generate(context.Background(), &buf, target, model.NewTable())
	require.ErrorContains(t, err, "unknown tool")
}
