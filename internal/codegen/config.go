package codegen

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New()

// Config drives a generation run. It is read from stripegen.toml.
type Config struct {
	// Module is the import path of the runtime library the generated code
	// depends on.
	Module string `toml:"module" validate:"required"`

	// Package is the Go package name the output belongs to.
	Package string `toml:"package" validate:"required,alphanum,lowercase"`

	// Components selects which component paths to generate. Empty means
	// everything in the spec.
	Components []string `toml:"components"`

	// IDPrefixes maps a component path to the accepted ID prefixes of its
	// resource, e.g. price = ["price", "plan"].
	IDPrefixes map[string][]string `toml:"id_prefixes"`

	// Packages optionally splits output across packages: maps a package
	// name to the component paths it owns. Unlisted components fall into
	// Package. Cross-package dependencies must be acyclic.
	Packages map[string][]string `toml:"packages"`
}

// LoadConfig reads and validates a stripegen.toml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("codegen: parse config %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("codegen: invalid config %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("codegen: invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) check() error {
	owner := make(map[string]string)
	for pkg, comps := range c.Packages {
		for _, comp := range comps {
			if prev, ok := owner[comp]; ok && prev != pkg {
				return fmt.Errorf("component %q assigned to both %q and %q", comp, prev, pkg)
			}
			owner[comp] = pkg
		}
	}
	return nil
}

// PackageOf returns the package owning a component path.
func (c *Config) PackageOf(path ComponentPath) string {
	for pkg, comps := range c.Packages {
		for _, comp := range comps {
			if comp == string(path) {
				return pkg
			}
		}
	}
	return c.Package
}

// Selected filters the catalog down to the configured component set, in
// deterministic order. Dependencies of selected components are pulled in
// transitively so the output always compiles.
func (c *Config) Selected(cat *Catalog) ([]*Component, error) {
	if len(c.Components) == 0 {
		return cat.Sorted(), nil
	}
	want := make(map[ComponentPath]bool)
	var add func(p ComponentPath) error
	add = func(p ComponentPath) error {
		if want[p] {
			return nil
		}
		comp, ok := cat.Components[p]
		if !ok {
			return fmt.Errorf("codegen: config selects unknown component %q", p)
		}
		want[p] = true
		for _, dep := range comp.Deps {
			if err := add(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range c.Components {
		if err := add(ComponentPath(name)); err != nil {
			return nil, err
		}
	}
	out := make([]*Component, 0, len(want))
	for p := range want {
		out = append(out, cat.Components[p])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
