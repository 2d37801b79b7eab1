// Command stripegen generates typed Go bindings for the Stripe API from
// the published OpenAPI spec.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/stripekit/stripekit/internal/codegen"
	"github.com/stripekit/stripekit/internal/openapi"
)

const version = "0.9.0"

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Fetch   FetchCmd   `cmd:"" help:"Download a spec3 document and write its lockfile."`
	Gen     GenCmd     `cmd:"" help:"Generate Go source from a spec3 document."`
	Graph   GraphCmd   `cmd:"" help:"Print the package dependency graph as Graphviz DOT."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("stripegen " + version)
	return nil
}

type FetchCmd struct {
	Ref string `arg:"" help:"Spec git ref to fetch (tag like v1268, or master)."`
	Out string `help:"Directory to write spec3.json and version.lock into." default:"openapi" short:"o"`
}

func (c *FetchCmd) Run() error {
	var f openapi.Fetcher
	data, lock, err := f.Fetch(context.Background(), c.Ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Out, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.Out, "spec3.json"), data, 0644); err != nil {
		return err
	}
	if err := lock.Write(filepath.Join(c.Out, "version.lock")); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "fetched %s (%d bytes, sha256 %s)\n", lock.Source, len(data), lock.SHA256)
	return nil
}

type GenCmd struct {
	Spec   string `arg:"" help:"Path to spec3.json."`
	Out    string `arg:"" help:"Output directory for generated files."`
	Config string `help:"Path to stripegen.toml." default:"stripegen.toml" short:"c"`
	Lock   string `help:"Lockfile to verify the spec against." short:"l"`
}

func (c *GenCmd) Run() error {
	cfg, cat, err := load(c.Config, c.Spec, c.Lock)
	if err != nil {
		return err
	}
	emitter := codegen.NewEmitter(cfg, cat, codegen.NewFilesystemSink(c.Out))
	return emitter.Emit(context.Background())
}

type GraphCmd struct {
	Spec   string `arg:"" help:"Path to spec3.json."`
	Config string `help:"Path to stripegen.toml." default:"stripegen.toml" short:"c"`
}

func (c *GraphCmd) Run() error {
	cfg, cat, err := load(c.Config, c.Spec, "")
	if err != nil {
		return err
	}
	comps, err := cfg.Selected(cat)
	if err != nil {
		return err
	}
	fmt.Print(codegen.BuildGraph(cfg, comps).DOT())
	return nil
}

func load(configPath, specPath, lockPath string) (*codegen.Config, *codegen.Catalog, error) {
	cfg, err := codegen.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, nil, err
	}
	if lockPath != "" {
		lock, err := openapi.ReadLockfile(lockPath)
		if err != nil {
			return nil, nil, err
		}
		if err := lock.Verify(data); err != nil {
			return nil, nil, err
		}
	}
	spec, err := openapi.Load(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	cat, err := codegen.BuildCatalog(spec)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stripegen"),
		kong.Description("Generator for the stripekit typed Stripe API bindings."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
