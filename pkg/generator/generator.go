// Package generator runs the whole download-to-file pipeline.
package generator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/holon-run/nativegen/pkg/codegen"
	"github.com/holon-run/nativegen/pkg/config"
	"github.com/holon-run/nativegen/pkg/fetch"
	"github.com/holon-run/nativegen/pkg/inflate"
	nglog "github.com/holon-run/nativegen/pkg/log"
	"github.com/holon-run/nativegen/pkg/natives"
	"github.com/holon-run/nativegen/pkg/template"
)

// TimestampLayout formats the {0} placeholder of the template.
const TimestampLayout = "1/2/2006 3:04:05 PM"

// Options configures a Generator beyond the run Config.
type Options struct {
	// Fetcher downloads the catalog. Nil builds one from the config.
	Fetcher *fetch.Fetcher
	// Now stamps the output. Nil means time.Now.
	Now func() time.Time
	// DryRun renders everything but skips the final write.
	DryRun bool
}

// Result describes a finished run.
type Result struct {
	OutputPath string
	Bytes      int
	Written    bool
	Stats      codegen.Stats
}

// Generator turns the remote catalog into the wrapper source file.
type Generator struct {
	cfg     config.Config
	fetcher *fetch.Fetcher
	now     func() time.Time
	dryRun  bool
}

// New validates cfg and prepares a Generator.
func New(cfg config.Config, opts Options) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	g := &Generator{
		cfg:     cfg,
		fetcher: opts.Fetcher,
		now:     opts.Now,
		dryRun:  opts.DryRun,
	}
	if g.fetcher == nil {
		g.fetcher = fetch.New(fetch.WithUserAgent(cfg.UserAgent))
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g, nil
}

// Run executes every stage in order. Any failure aborts the run before the
// output file is touched.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	tmpl, err := g.loadTemplate()
	if err != nil {
		return nil, err
	}

	catalog, err := g.download(ctx)
	if err != nil {
		return nil, err
	}

	if len(g.cfg.Namespaces) > 0 {
		total := len(catalog.Namespaces)
		catalog = catalog.Filter(g.cfg.NamespaceFilter())
		nglog.Info("filtered namespaces", "kept", len(catalog.Namespaces), "total", total, "patterns", g.cfg.Namespaces)
		if len(catalog.Namespaces) == 0 {
			nglog.Warn("no namespace matched the configured patterns", "patterns", g.cfg.Namespaces)
		}
	}

	renderer := codegen.NewRenderer()
	renderer.OnNamespace = func(name string, functions int) {
		nglog.Progressf("Processing %s", name)
		nglog.Debug("rendering namespace", "namespace", name, "functions", functions)
	}
	body, stats := renderer.Render(catalog)

	out, err := template.Fill(tmpl, g.now().Format(TimestampLayout), body)
	if err != nil {
		return nil, fmt.Errorf("failed to fill template: %w", err)
	}

	result := &Result{
		OutputPath: g.cfg.Output,
		Bytes:      len(out),
		Stats:      stats,
	}
	if g.dryRun {
		nglog.Info("dry run, output not written", "output", g.cfg.Output, "bytes", len(out))
		return result, nil
	}

	if err := os.WriteFile(g.cfg.Output, []byte(out), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", g.cfg.Output, err)
	}
	result.Written = true
	nglog.Progress("Generated natives", "output", g.cfg.Output, "functions", stats.Functions(), "namespaces", len(stats.Namespaces))
	return result, nil
}

func (g *Generator) loadTemplate() (string, error) {
	path := g.cfg.Template
	if path == "" {
		var err error
		if path, err = template.DefaultPath(); err != nil {
			return "", err
		}
	}
	nglog.Debug("loading template", "path", path)
	return template.Load(path)
}

func (g *Generator) download(ctx context.Context) (*natives.Catalog, error) {
	nglog.Progress("Downloading natives.json", "url", g.cfg.SourceURL)

	payload, err := g.fetcher.Fetch(ctx, g.cfg.SourceURL)
	if err != nil {
		return nil, err
	}

	raw, err := inflate.Payload(payload.Body, payload.ContentEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress catalog: %w", err)
	}

	text, err := inflate.DecodeUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	catalog, err := natives.Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	nglog.Info("catalog parsed", "namespaces", len(catalog.Namespaces), "functions", catalog.Len())
	return catalog, nil
}
