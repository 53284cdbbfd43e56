package graph

import (
	"path/filepath"

	"github.com/masonworks/mason/internal/model"
)

const (
	objExt     = ".o"
	archiveExt = ".a"
	execExt    = ".out"
)

// BuildPath places sub under the component's artifact root,
// <builddir>/<componentID>. Everything a component produces nests there,
// so distinct (target, component) pairs can never collide on output paths.
func BuildPath(t *model.Target, c *model.Component, sub string) string {
	return filepath.Join(t.BuildDir, c.ID, sub)
}

// OutFile returns the component's final artifact path: lib/<id>.a for
// libraries, bin/<id>.out for everything else.
func OutFile(t *model.Target, c *model.Component) string {
	if c.Kind == model.KindLib {
		return BuildPath(t, c, filepath.Join("lib", c.ID+archiveExt))
	}
	return BuildPath(t, c, filepath.Join("bin", c.ID+execExt))
}
