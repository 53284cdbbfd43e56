package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/masonworks/mason/internal/ctxlog"
	"github.com/masonworks/mason/internal/model"
)

const (
	// ProjectDir holds everything the tool writes inside a project.
	ProjectDir = ".mason"
	// BuildRoot holds the per-target build directories under ProjectDir.
	BuildRoot = ".mason/build"
	// DefaultFile is the manifest filename looked up when none is given.
	DefaultFile = "project.hcl"
)

// Project is the loaded, not yet resolved, project model.
type Project struct {
	Name     string
	Dir      string
	Targets  map[string]*model.Target
	Registry *model.Table
}

// Target returns the target with the given id.
func (p *Project) Target(id string) (*model.Target, error) {
	t, ok := p.Targets[id]
	if !ok {
		return nil, model.Configf("target %q not declared in project %q", id, p.Name)
	}
	return t, nil
}

type projectFile struct {
	Project    *projectBlock     `hcl:"project,block"`
	Targets    []*targetBlock    `hcl:"target,block"`
	Components []*componentBlock `hcl:"component,block"`
}

type projectBlock struct {
	Name string `hcl:"name"`
}

type targetBlock struct {
	ID    string       `hcl:"id,label"`
	Props cty.Value    `hcl:"props,optional"`
	Tools []*toolBlock `hcl:"tool,block"`
}

type toolBlock struct {
	Name  string   `hcl:"name,label"`
	Cmd   string   `hcl:"cmd"`
	Args  []string `hcl:"args,optional"`
	Files []string `hcl:"files,optional"`
}

type componentBlock struct {
	ID       string    `hcl:"id,label"`
	Kind     string    `hcl:"kind"`
	Dir      string    `hcl:"dir,optional"`
	SubDirs  []string  `hcl:"subdirs,optional"`
	Requires []string  `hcl:"requires,optional"`
	Props    cty.Value `hcl:"props,optional"`
	EnableIf cty.Value `hcl:"enable_if,optional"`
}

// Load parses the manifest at path and builds the project model. Paths in
// the result are relative to the manifest's directory.
func Load(ctx context.Context, path string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var pf projectFile
	if diags := gohcl.DecodeBody(file.Body, nil, &pf); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}
	if pf.Project == nil {
		return nil, model.Configf("%s: missing project block", path)
	}

	baseDir := filepath.Dir(path)
	p := &Project{
		Name:    pf.Project.Name,
		Dir:     baseDir,
		Targets: make(map[string]*model.Target, len(pf.Targets)),
	}

	for _, tb := range pf.Targets {
		t, err := buildTarget(baseDir, tb)
		if err != nil {
			return nil, err
		}
		if _, ok := p.Targets[t.ID]; ok {
			return nil, model.Configf("%s: duplicate target %q", path, t.ID)
		}
		p.Targets[t.ID] = t
	}

	components := make([]*model.Component, 0, len(pf.Components))
	seen := make(map[string]bool)
	for _, cb := range pf.Components {
		c, err := buildComponent(baseDir, cb)
		if err != nil {
			return nil, err
		}
		if seen[c.ID] {
			return nil, model.Configf("%s: duplicate component %q", path, c.ID)
		}
		seen[c.ID] = true
		components = append(components, c)
	}
	p.Registry = model.NewTable(components...)

	logger.Debug("manifest loaded", "project", p.Name, "targets", len(p.Targets), "components", len(components))
	return p, nil
}

func buildTarget(baseDir string, tb *targetBlock) (*model.Target, error) {
	props, err := propsMap("target "+tb.ID, tb.Props)
	if err != nil {
		return nil, err
	}
	tools := make(map[string]model.Tool, len(tb.Tools))
	for _, tool := range tb.Tools {
		if _, ok := tools[tool.Name]; ok {
			return nil, model.Configf("target %q binds tool %q twice", tb.ID, tool.Name)
		}
		tools[tool.Name] = model.Tool{Cmd: tool.Cmd, Args: tool.Args, Files: tool.Files}
	}
	t := &model.Target{
		ID:       tb.ID,
		BuildDir: filepath.Join(baseDir, BuildRoot, tb.ID),
		Props:    props,
		Tools:    tools,
	}
	t.HashID = fingerprint(t)
	return t, nil
}

func buildComponent(baseDir string, cb *componentBlock) (*model.Component, error) {
	var kind model.Kind
	switch cb.Kind {
	case "lib":
		kind = model.KindLib
	case "exe":
		kind = model.KindExe
	default:
		return nil, model.Configf("component %q has unknown kind %q (want lib or exe)", cb.ID, cb.Kind)
	}
	props, err := propsMap("component "+cb.ID, cb.Props)
	if err != nil {
		return nil, err
	}
	enableIf, err := propsMap("component "+cb.ID+" enable_if", cb.EnableIf)
	if err != nil {
		return nil, err
	}
	dir := cb.Dir
	if dir == "" {
		dir = cb.ID
	}
	return &model.Component{
		ID:       cb.ID,
		Kind:     kind,
		Dir:      filepath.Join(baseDir, dir),
		SubDirs:  cb.SubDirs,
		Props:    props,
		EnableIf: enableIf,
		Requires: cb.Requires,
	}, nil
}

// propsMap converts a decoded props expression into a validated mapping.
func propsMap(owner string, v cty.Value) (map[string]cty.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, model.Configf("%s: props must be an object", owner)
	}
	props := v.AsValueMap()
	if err := model.CheckProps(owner, props); err != nil {
		return nil, err
	}
	return props, nil
}

// fingerprint hashes the exact target configuration. The executor uses it
// as an opaque cache key; two targets differing in any prop or tool
// binding must not share one.
func fingerprint(t *model.Target) string {
	h := sha256.New()
	fmt.Fprintln(h, t.ID)
	for _, k := range sortedKeys(t.Props) {
		s, err := model.FormatProp(t.Props[k])
		if err != nil {
			// Props are validated before fingerprinting.
			panic(err)
		}
		fmt.Fprintf(h, "prop %s=%s\n", k, s)
	}
	for _, name := range sortedKeys(t.Tools) {
		tool := t.Tools[name]
		fmt.Fprintf(h, "tool %s %s %s %s\n", name, tool.Cmd,
			strings.Join(tool.Args, " "), strings.Join(tool.Files, " "))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
