package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is the dependency graph of selected components, with each node
// assigned to an output package by the config.
type Graph struct {
	nodes map[ComponentPath]*Component
	pkg   map[ComponentPath]string
}

// BuildGraph assembles the graph for the selected components.
func BuildGraph(cfg *Config, comps []*Component) *Graph {
	g := &Graph{
		nodes: make(map[ComponentPath]*Component, len(comps)),
		pkg:   make(map[ComponentPath]string, len(comps)),
	}
	for _, c := range comps {
		g.nodes[c.Path] = c
		g.pkg[c.Path] = cfg.PackageOf(c.Path)
	}
	return g
}

// CycleError reports a dependency cycle between output packages.
type CycleError struct {
	Packages []string
}

func (e *CycleError) Error() string {
	return "codegen: package dependency cycle: " + strings.Join(e.Packages, " -> ")
}

// CheckAcyclic verifies that package-level dependencies form a DAG.
// Cycles inside one package are fine; Go forbids them between packages.
func (g *Graph) CheckAcyclic() error {
	edges := g.packageEdges()

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int)
	var stack []string

	var visit func(pkg string) *CycleError
	visit = func(pkg string) *CycleError {
		state[pkg] = inStack
		stack = append(stack, pkg)
		for _, next := range edges[pkg] {
			switch state[next] {
			case inStack:
				// Trim the stack to the cycle itself.
				start := 0
				for i, p := range stack {
					if p == next {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, stack[start:]...), next)
				return &CycleError{Packages: cycle}
			case unvisited:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[pkg] = done
		return nil
	}

	for _, pkg := range sortedKeys(edges) {
		if state[pkg] == unvisited {
			if err := visit(pkg); err != nil {
				return err
			}
		}
	}
	return nil
}

// DOT renders the package graph in Graphviz format, deterministically.
func (g *Graph) DOT() string {
	edges := g.packageEdges()
	var b strings.Builder
	b.WriteString("digraph packages {\n")
	for _, pkg := range sortedKeys(edges) {
		fmt.Fprintf(&b, "\t%q;\n", pkg)
	}
	for _, pkg := range sortedKeys(edges) {
		for _, next := range edges[pkg] {
			fmt.Fprintf(&b, "\t%q -> %q;\n", pkg, next)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// packageEdges collapses component edges to unique sorted package edges,
// dropping self edges and edges to unselected components.
func (g *Graph) packageEdges() map[string][]string {
	set := make(map[string]map[string]bool)
	for path, c := range g.nodes {
		from := g.pkg[path]
		if set[from] == nil {
			set[from] = make(map[string]bool)
		}
		for _, dep := range c.Deps {
			to, ok := g.pkg[dep]
			if !ok || to == from {
				continue
			}
			set[from][to] = true
		}
	}
	edges := make(map[string][]string, len(set))
	for from, tos := range set {
		list := make([]string, 0, len(tos))
		for to := range tos {
			list = append(list, to)
		}
		sort.Strings(list)
		edges[from] = list
	}
	return edges
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
