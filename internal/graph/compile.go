package graph

import (
	"path/filepath"
	"strings"

	"github.com/masonworks/mason/internal/model"
	"github.com/masonworks/mason/internal/ninja"
	"github.com/masonworks/mason/internal/shell"
)

// resDir is the component subdirectory mirrored verbatim into the build
// tree.
const resDir = "res"

// sources enumerates the component's files matching the given patterns.
// Discovery is shallow: the component's own directory plus its declared
// subdirectories, one level each.
func sources(c *model.Component, patterns []string) ([]string, error) {
	dirs := make([]string, 0, len(c.SubDirs)+1)
	dirs = append(dirs, c.Dir)
	for _, sub := range c.SubDirs {
		dirs = append(dirs, c.SubPath(sub))
	}
	return shell.Find(dirs, patterns, false)
}

// compileEdges emits one compile edge per source, mirroring the source's
// path relative to the component root under obj/ with the object suffix.
// The bound tool's own files ride along as order-only inputs: a toolchain
// upgrade invalidates the objects without being an input to any
// translation unit.
func compileEdges(w *ninja.Writer, t *model.Target, c *model.Component, rule string, srcs []string) ([]string, error) {
	if len(srcs) == 0 {
		return nil, nil
	}
	tool, ok := t.Tools[rule]
	if !ok {
		return nil, model.Configf("component %q has %s sources but target %q binds no %q tool", c.ID, rule, t.ID, rule)
	}
	objs := make([]string, 0, len(srcs))
	for _, src := range srcs {
		rel, err := filepath.Rel(c.Dir, src)
		if err != nil {
			return nil, model.Configf("source %q is outside component %q", src, c.ID)
		}
		obj := BuildPath(t, c, filepath.Join("obj", withExt(rel, objExt)))
		w.Build(ninja.Edge{
			Outputs:   []string{obj},
			Rule:      rule,
			Inputs:    []string{src},
			OrderOnly: tool.Files,
		})
		objs = append(objs, obj)
	}
	return objs, nil
}

// resourceEdges mirrors every file under the component's res directory,
// byte for byte, into the build tree through the fixed copy rule.
func resourceEdges(w *ninja.Writer, t *model.Target, c *model.Component) ([]string, error) {
	root := c.SubPath(resDir)
	files, err := shell.Find([]string{root}, nil, true)
	if err != nil {
		return nil, err
	}
	outs := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			return nil, model.Configf("resource %q is outside component %q", f, c.ID)
		}
		out := BuildPath(t, c, filepath.Join(resDir, rel))
		w.Build(ninja.Edge{Outputs: []string{out}, Rule: "cp", Inputs: []string{f}})
		outs = append(outs, out)
	}
	return outs, nil
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
