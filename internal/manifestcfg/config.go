// Package manifestcfg loads a manifest tree from a YAML (or JSON)
// configuration file, binding route paths to models, views and middleware
// registered by name.
package manifestcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/manifest"
	"github.com/avral/tessera/pkg/registry"
	"gopkg.in/yaml.v3"
)

// ProgramConfig declares one route in the manifest file.
type ProgramConfig struct {
	// Path is the full route, e.g. "blog/edit". Empty or "/" is the root
	// program.
	Path string `yaml:"path" json:"path"`

	// Alias redirects this path's key to a sibling key instead of
	// declaring a program.
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`

	Model       string   `yaml:"model,omitempty" json:"model,omitempty"`
	View        string   `yaml:"view,omitempty" json:"view,omitempty"`
	Controllers []string `yaml:"controllers,omitempty" json:"controllers,omitempty"`
	Cache       int      `yaml:"cache,omitempty" json:"cache,omitempty"`
	PreInput    []string `yaml:"pre_input,omitempty" json:"pre_input,omitempty"`
	Input       []string `yaml:"input,omitempty" json:"input,omitempty"`
	Output      []string `yaml:"output,omitempty" json:"output,omitempty"`
}

// File is the root of a manifest configuration file.
type File struct {
	Programs []ProgramConfig `yaml:"programs" json:"programs"`
}

// Load reads a manifest file. The extension selects the format; anything
// that is not .json parses as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest config: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest config: %w", err)
		}
		return &f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse manifest config: %w", err)
	}
	return &f, nil
}

// treeNode is the intermediate nested structure built before validation.
type treeNode struct {
	entries  map[string]manifest.Entry
	children map[string]*treeNode
}

func newTreeNode() *treeNode {
	return &treeNode{
		entries:  make(map[string]manifest.Entry),
		children: make(map[string]*treeNode),
	}
}

// Build resolves registered names and assembles the manifest tree.
func Build(f *File, reg *registry.Registry) (*manifest.Node, error) {
	root := newTreeNode()

	for _, cfg := range f.Programs {
		segments := splitRoute(cfg.Path)
		node := root
		for _, seg := range segments[:max(len(segments)-1, 0)] {
			child, ok := node.children[seg]
			if !ok {
				child = newTreeNode()
				node.children[seg] = child
			}
			node = child
		}
		key := ""
		if len(segments) > 0 {
			key = segments[len(segments)-1]
		}

		if cfg.Alias != "" {
			node.entries[key] = manifest.Alias(cfg.Alias)
			continue
		}

		entry, err := buildProgram(cfg, key, reg)
		if err != nil {
			return nil, err
		}
		node.entries[key] = entry
	}

	return assemble(root)
}

func buildProgram(cfg ProgramConfig, key string, reg *registry.Registry) (manifest.Entry, error) {
	pc := domain.ProgramConfig{
		Name:         key,
		Controllers:  cfg.Controllers,
		CacheSeconds: cfg.Cache,
	}

	if cfg.Model != "" {
		entry, err := reg.Model(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", cfg.Path, err)
		}
		pc.Model = entry.Model
		pc.Params = entry.Params
	}
	if cfg.View != "" {
		v, err := reg.View(cfg.View)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", cfg.Path, err)
		}
		pc.View = v
	}
	for _, chain := range []struct {
		names []string
		dst   *[]domain.Middleware
	}{
		{cfg.PreInput, &pc.PreInput},
		{cfg.Input, &pc.Input},
		{cfg.Output, &pc.Output},
	} {
		for _, name := range chain.names {
			m, err := reg.Middleware(name)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", cfg.Path, err)
			}
			*chain.dst = append(*chain.dst, m)
		}
	}

	p, err := domain.NewProgram(pc)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", cfg.Path, err)
	}
	return manifest.Program(p), nil
}

// assemble converts the intermediate tree bottom-up into manifest nodes.
// A key declared both as a program and as a namespace folds the program
// into the namespace's root key.
func assemble(t *treeNode) (*manifest.Node, error) {
	entries := make(map[string]manifest.Entry, len(t.entries)+len(t.children))
	for key, e := range t.entries {
		entries[key] = e
	}
	for key, child := range t.children {
		sub, err := assemble(child)
		if err != nil {
			return nil, err
		}
		if existing, ok := entries[key]; ok {
			if _, taken := child.entries[""]; taken {
				return nil, fmt.Errorf("route conflict at %q: program and namespace root both declared", key)
			}
			withRoot := make(map[string]manifest.Entry, len(child.entries)+len(child.children)+1)
			withRoot[""] = existing
			for k, e := range child.entries {
				withRoot[k] = e
			}
			for k, grand := range child.children {
				sub2, err := assemble(grand)
				if err != nil {
					return nil, err
				}
				withRoot[k] = sub2
			}
			merged, err := manifest.New(withRoot)
			if err != nil {
				return nil, err
			}
			entries[key] = merged
			continue
		}
		entries[key] = sub
	}
	return manifest.New(entries)
}

func splitRoute(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
