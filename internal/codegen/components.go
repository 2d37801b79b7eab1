// Package codegen turns an OpenAPI component catalog into Go source for
// the resources package.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stripekit/stripekit/internal/openapi"
)

// ComponentPath is the dotted schema name from components.schemas, e.g.
// "customer" or "checkout.session".
type ComponentPath string

func (p ComponentPath) String() string { return string(p) }

// Base returns the final path segment.
func (p ComponentPath) Base() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// deletedPrefix marks tombstone component variants in the Stripe spec.
const deletedPrefix = "deleted_"

// IsDeleted reports whether the component is the tombstone half of a
// live/deleted pair.
func (p ComponentPath) IsDeleted() bool {
	return strings.HasPrefix(p.Base(), deletedPrefix)
}

// LiveCounterpart maps "deleted_customer" to "customer". For non-deleted
// paths it returns p unchanged.
func (p ComponentPath) LiveCounterpart() ComponentPath {
	if !p.IsDeleted() {
		return p
	}
	s := string(p)
	i := strings.LastIndexByte(s, '.') + 1
	return ComponentPath(s[:i] + strings.TrimPrefix(s[i:], deletedPrefix))
}

// Kind classifies what Go declaration a component becomes.
type Kind int

const (
	// KindObject emits a struct.
	KindObject Kind = iota
	// KindUnion emits a discriminated union dispatching on `object`.
	KindUnion
	// KindEnum emits a string type with constants.
	KindEnum
	// KindAlias emits a named scalar type.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Component is one classified schema plus the components it references.
type Component struct {
	Path   ComponentPath
	Schema *openapi.Schema
	Kind   Kind
	Deps   []ComponentPath
}

// Classify decides the Kind for a top-level component schema.
func Classify(s *openapi.Schema) Kind {
	switch {
	case len(s.AnyOf) > 0 || len(s.OneOf) > 0:
		return KindUnion
	case len(s.Enum) > 0:
		return KindEnum
	case s.Type == "object" || len(s.Properties) > 0:
		return KindObject
	default:
		return KindAlias
	}
}

// Catalog is the classified component set of one spec.
type Catalog struct {
	Spec       *openapi.Spec
	Components map[ComponentPath]*Component
}

// BuildCatalog classifies every component schema and records its
// dependencies on other components.
func BuildCatalog(spec *openapi.Spec) (*Catalog, error) {
	cat := &Catalog{
		Spec:       spec,
		Components: make(map[ComponentPath]*Component, len(spec.Components.Schemas)),
	}
	for name, schema := range spec.Components.Schemas {
		if schema == nil {
			return nil, fmt.Errorf("codegen: component %q has no schema", name)
		}
		path := ComponentPath(name)
		cat.Components[path] = &Component{
			Path:   path,
			Schema: schema,
			Kind:   Classify(schema),
			Deps:   collectDeps(schema),
		}
	}
	for _, c := range cat.Components {
		for _, dep := range c.Deps {
			if _, ok := cat.Components[dep]; !ok {
				return nil, fmt.Errorf("codegen: component %q references unknown component %q", c.Path, dep)
			}
		}
	}
	return cat, nil
}

// Sorted returns components in deterministic path order.
func (cat *Catalog) Sorted() []*Component {
	out := make([]*Component, 0, len(cat.Components))
	for _, c := range cat.Components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func collectDeps(s *openapi.Schema) []ComponentPath {
	seen := make(map[ComponentPath]bool)
	walkRefs(s, seen)
	deps := make([]ComponentPath, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
	return deps
}

func walkRefs(s *openapi.Schema, seen map[ComponentPath]bool) {
	if s == nil {
		return
	}
	if name := openapi.RefName(s.Ref); name != "" {
		seen[ComponentPath(name)] = true
	}
	for _, p := range s.Properties {
		walkRefs(p, seen)
	}
	walkRefs(s.Items, seen)
	for _, v := range s.AnyOf {
		walkRefs(v, seen)
	}
	for _, v := range s.OneOf {
		walkRefs(v, seen)
	}
	if s.ExpansionResources != nil {
		for _, v := range s.ExpansionResources.OneOf {
			walkRefs(v, seen)
		}
	}
}
