package codegen

import (
	"errors"
	"strings"
	"testing"
)

func graphFixture(cfg *Config, deps map[string][]string) *Graph {
	var comps []*Component
	for name, d := range deps {
		c := &Component{Path: ComponentPath(name)}
		for _, dep := range d {
			c.Deps = append(c.Deps, ComponentPath(dep))
		}
		comps = append(comps, c)
	}
	return BuildGraph(cfg, comps)
}

func TestCheckAcyclicPasses(t *testing.T) {
	cfg := &Config{
		Package: "resources",
		Packages: map[string][]string{
			"core":    {"customer"},
			"billing": {"invoice"},
		},
	}
	g := graphFixture(cfg, map[string][]string{
		"customer": nil,
		"invoice":  {"customer"},
		"price":    {"customer"}, // falls into the default package
	})
	if err := g.CheckAcyclic(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAcyclicDetectsCycle(t *testing.T) {
	cfg := &Config{
		Package: "resources",
		Packages: map[string][]string{
			"core":    {"customer"},
			"billing": {"invoice"},
		},
	}
	g := graphFixture(cfg, map[string][]string{
		"customer": {"invoice"},
		"invoice":  {"customer"},
	})

	err := g.CheckAcyclic()
	if err == nil {
		t.Fatal("expected cycle error")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("err = %T", err)
	}
	if len(cycle.Packages) < 3 {
		t.Fatalf("cycle = %v", cycle.Packages)
	}
	if !strings.Contains(err.Error(), "->") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestCyclesInsideOnePackageAllowed(t *testing.T) {
	cfg := &Config{Package: "resources"}
	g := graphFixture(cfg, map[string][]string{
		"customer": {"invoice"},
		"invoice":  {"customer"},
	})
	if err := g.CheckAcyclic(); err != nil {
		t.Fatalf("intra-package cycle rejected: %v", err)
	}
}

func TestDOTDeterministic(t *testing.T) {
	cfg := &Config{
		Package: "resources",
		Packages: map[string][]string{
			"core":    {"customer"},
			"billing": {"invoice"},
		},
	}
	deps := map[string][]string{
		"customer": nil,
		"invoice":  {"customer"},
	}

	first := graphFixture(cfg, deps).DOT()
	for range 10 {
		if got := graphFixture(cfg, deps).DOT(); got != first {
			t.Fatalf("DOT output unstable:\n%s\nvs\n%s", got, first)
		}
	}
	if !strings.Contains(first, `"billing" -> "core"`) {
		t.Fatalf("missing edge in:\n%s", first)
	}
}
