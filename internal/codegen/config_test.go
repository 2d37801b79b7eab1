package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stripekit/stripekit/internal/openapi"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stripegen.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
module = "github.com/stripekit/stripekit"
package = "resources"
components = ["customer", "payment_intent"]

[id_prefixes]
customer = ["cus"]
price = ["price", "plan"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package != "resources" || len(cfg.Components) != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.IDPrefixes["price"]; len(got) != 2 || got[1] != "plan" {
		t.Fatalf("prefixes = %v", got)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing module", `package = "resources"`},
		{"missing package", `module = "example.com/m"`},
		{"uppercase package", "module = \"example.com/m\"\npackage = \"Resources\""},
		{"bad toml", `module = `},
		{"double assignment", `
module = "example.com/m"
package = "resources"
[packages]
core = ["customer"]
billing = ["customer"]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPackageOf(t *testing.T) {
	cfg := &Config{
		Package:  "resources",
		Packages: map[string][]string{"billing": {"invoice"}},
	}
	if got := cfg.PackageOf("invoice"); got != "billing" {
		t.Fatalf("PackageOf(invoice) = %q", got)
	}
	if got := cfg.PackageOf("customer"); got != "resources" {
		t.Fatalf("PackageOf(customer) = %q", got)
	}
}

func catalogFixture(t *testing.T) *Catalog {
	t.Helper()
	spec := &openapi.Spec{
		Components: openapi.Components{Schemas: map[string]*openapi.Schema{
			"customer": {Type: "object", Properties: map[string]*openapi.Schema{
				"id":             {Type: "string"},
				"default_source": {Ref: "#/components/schemas/card"},
			}},
			"card":   {Type: "object", Properties: map[string]*openapi.Schema{"id": {Type: "string"}}},
			"orphan": {Type: "object"},
		}},
	}
	cat, err := BuildCatalog(spec)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestSelectedPullsDependencies(t *testing.T) {
	cat := catalogFixture(t)
	cfg := &Config{Package: "resources", Components: []string{"customer"}}

	comps, err := cfg.Selected(cat)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range comps {
		names = append(names, c.Path.String())
	}
	if strings.Join(names, ",") != "card,customer" {
		t.Fatalf("selected = %v, card must be pulled in transitively", names)
	}
}

func TestSelectedUnknownComponent(t *testing.T) {
	cat := catalogFixture(t)
	cfg := &Config{Package: "resources", Components: []string{"treasury"}}
	if _, err := cfg.Selected(cat); err == nil {
		t.Fatal("expected unknown component error")
	}
}

func TestSelectedEmptyMeansAll(t *testing.T) {
	cat := catalogFixture(t)
	cfg := &Config{Package: "resources"}
	comps, err := cfg.Selected(cat)
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 3 {
		t.Fatalf("selected %d components", len(comps))
	}
}
