package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/apidocs/internal/apitree"
	"github.com/dgallion1/apidocs/internal/config"
)

const coreExtract = `{
  "kind": "Package",
  "name": "@builder.io/qwik",
  "members": [
    {"kind": "EntryPoint", "name": "", "members": [
      {"kind": "Function", "name": "render"},
      {"kind": "Variable", "name": "Slot"}
    ]}
  ]
}`

// fakeGenerator writes fixed fragments into the output directory.
type fakeGenerator struct {
	fragments map[string]string
	fail      map[string]bool // keyed by input dir base name
	calls     []string
}

func (g *fakeGenerator) Generate(_ context.Context, inputDir, outputDir string) error {
	g.calls = append(g.calls, inputDir)
	if g.fail[filepath.Base(inputDir)] {
		return errors.New("api-documenter: exit status 1")
	}
	for name, content := range g.fragments {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(root string) config.Config {
	return config.Config{
		RootDir:        root,
		InputDir:       filepath.Join(root, "dist-dev", "api"),
		PackagesDir:    filepath.Join(root, "packages"),
		Packages:       "qwik,qwik-react",
		Scope:          "@builder.io",
		FragmentPrefix: "qwik",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOrchestrator_Run(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.InputDir, "qwik", "core", "docs.api.json"), coreExtract)

	gen := &fakeGenerator{fragments: map[string]string{
		"qwik.render.md": "## render() function\n\nRender into [Slot](./qwik.slot.md).\n",
		"qwik.slot.md":   "## Slot variable\n\nProjection.\n",
	}}

	sum, err := NewOrchestrator(cfg, gen, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Jobs) != 1 || sum.Completed() != 1 {
		t.Fatalf("expected 1 completed job, got %+v", sum.Jobs)
	}
	job := sum.Jobs[0]
	if job.Package != "@builder.io/qwik" {
		t.Errorf("expected package %q, got %q", "@builder.io/qwik", job.Package)
	}
	if job.Members != 2 {
		t.Errorf("expected 2 members, got %d", job.Members)
	}

	outDir := filepath.Join(cfg.PackagesDir, "docs", "src", "routes", "api", "qwik")
	if job.OutputDir != outDir {
		t.Errorf("expected output dir %q, got %q", outDir, job.OutputDir)
	}

	b, err := os.ReadFile(filepath.Join(outDir, "api.json"))
	if err != nil {
		t.Fatalf("read api.json: %v", err)
	}
	var data apitree.Data
	if err := json.Unmarshal(b, &data); err != nil {
		t.Fatalf("decode api.json: %v", err)
	}
	if data.ID != "qwik" || len(data.Members) != 2 {
		t.Fatalf("unexpected api data %+v", data)
	}
	if data.Members[0].Name != "render" || data.Members[1].Name != "Slot" {
		t.Errorf("expected members sorted render, Slot; got %s, %s", data.Members[0].Name, data.Members[1].Name)
	}
	if data.Members[0].Content != "Render into [Slot](#slot)." {
		t.Errorf("expected rewritten link, got %q", data.Members[0].Content)
	}

	page, err := os.ReadFile(filepath.Join(outDir, "index.mdx"))
	if err != nil {
		t.Fatalf("read index.mdx: %v", err)
	}
	if !strings.Contains(string(page), `<h2 id="slot">`) {
		t.Errorf("expected slot heading in page, got %s", page)
	}

	if _, err := os.Stat(filepath.Join(root, "dist-dev", "api-docs", "qwik", "qwik.render.md")); err != nil {
		t.Errorf("expected fragments in markdown dir: %v", err)
	}
}

func TestOrchestrator_FailedPackageDoesNotStopRun(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.InputDir, "qwik", "core", "docs.api.json"), coreExtract)
	writeFile(t, filepath.Join(cfg.InputDir, "qwik", "server", "docs.api.json"), coreExtract)
	writeFile(t, filepath.Join(cfg.InputDir, "qwik-react", "core", "docs.api.json"), `{"members": [`)

	gen := &fakeGenerator{fail: map[string]bool{"server": true}}

	sum, err := NewOrchestrator(cfg, gen, testLogger()).Run(context.Background())
	if err == nil {
		t.Fatal("expected run error")
	}
	if len(gen.calls) != 3 {
		t.Errorf("expected generator to run for 3 packages, got %d", len(gen.calls))
	}
	if sum.Completed() != 1 {
		t.Errorf("expected 1 completed, got %d", sum.Completed())
	}
	failed := sum.Failed()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed, got %d", len(failed))
	}
	if !strings.Contains(err.Error(), "@builder.io/qwik/server") || !strings.Contains(err.Error(), "@builder.io/qwik-react") {
		t.Errorf("expected failed package names in error, got %v", err)
	}
	// The package that completed still has its output.
	if _, err := os.Stat(filepath.Join(cfg.DocsRoutesDir(), "qwik", "index.mdx")); err != nil {
		t.Errorf("expected qwik output despite other failures: %v", err)
	}
}

func TestOrchestrator_NoPackages(t *testing.T) {
	cfg := testConfig(t.TempDir())
	sum, err := NewOrchestrator(cfg, &fakeGenerator{}, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(sum.Jobs))
	}
}

func TestOrchestrator_Canceled(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.InputDir, "qwik", "core", "docs.api.json"), coreExtract)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &fakeGenerator{}
	if _, err := NewOrchestrator(cfg, gen, testLogger()).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("expected no generator calls, got %d", len(gen.calls))
	}
}

func TestMarkdownDirName(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"qwik", "core"}, "qwik"},
		{[]string{"qwik-city", "middleware", "node"}, "qwik-city-middleware-node"},
		{[]string{"qwik", "server"}, "qwik-server"},
	}
	for _, tt := range tests {
		if got := markdownDirName(tt.path); got != tt.want {
			t.Errorf("markdownDirName(%v): expected %q, got %q", tt.path, tt.want, got)
		}
	}
}
