package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/masonworks/mason/internal/model"
)

// PropIncludeRoot marks a component whose headers are included relative to
// its own directory instead of through its parent.
const PropIncludeRoot = "cpp-root-include"

// definePrefix namespaces every generated preprocessor macro.
const definePrefix = "__mason_"

// AggregateIncludes collects the include-path flags for a target. Include-
// root components contribute their own directory; every other library
// contributes its parent, so consumers write #include <libid/header.h>.
// The result is deduplicated and sorted.
func AggregateIncludes(t *model.Target, reg model.Registry) []string {
	dirs := make(map[string]struct{})
	for _, c := range reg.Enabled(t) {
		if v, ok := c.Props[PropIncludeRoot]; ok && v.Type() == cty.Bool && v.True() {
			dirs[c.Dir] = struct{}{}
		} else if c.Kind == model.KindLib {
			dirs[filepath.Dir(c.Dir)] = struct{}{}
		}
	}
	flags := make([]string, 0, len(dirs))
	for dir := range dirs {
		flags = append(flags, "-I"+dir)
	}
	sort.Strings(flags)
	return flags
}

// AggregateDefines turns the target's props into preprocessor flags. A
// true boolean becomes a presence macro; a false one emits nothing; a
// string or number becomes a presence macro combining key and value plus a
// value-carrying macro usable in expressions.
//
// Keys and values are sanitized identically, and two distinct raw keys
// that sanitize to the same token collide silently into one flag.
func AggregateDefines(t *model.Target) ([]string, error) {
	set := make(map[string]struct{})
	for k, v := range t.Props {
		if v.Type() == cty.Bool {
			if v.True() {
				set[definePrefix+sanitize(k)+"__"] = struct{}{}
			}
			continue
		}
		s, err := model.FormatProp(v)
		if err != nil {
			return nil, err
		}
		set[definePrefix+sanitize(k)+"_"+sanitize(s)+"__"] = struct{}{}
		set[definePrefix+sanitize(k)+"_value="+s] = struct{}{}
	}
	flags := make([]string, 0, len(set))
	for d := range set {
		flags = append(flags, "-D"+d)
	}
	sort.Strings(flags)
	return flags, nil
}

var sanitizer = strings.NewReplacer(" ", "_", "-", "_", ".", "_")

func sanitize(s string) string {
	return sanitizer.Replace(strings.ToLower(s))
}
