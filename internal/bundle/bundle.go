// Package bundle builds a library submodule into ESM and CommonJS outputs
// using github.com/evanw/esbuild and writes its package manifest.
package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"golang.org/x/sync/errgroup"
)

// Options describes one submodule build.
type Options struct {
	Submodule   string // e.g. "build"
	PackageName string // e.g. "@builder.io/qwik/build"
	GlobalName  string // global assigned by the CommonJS wrapper, e.g. "qwikBuild"
	Version     string

	SrcDir     string // contains <submodule>/index.ts
	DtsDir     string // tsc output root
	DistPkgDir string
}

// PackageJSON is the manifest written next to the bundles.
type PackageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Main    string `json:"main"`
	Types   string `json:"types"`
	Private bool   `json:"private"`
	Type    string `json:"type"`
}

// DestDir returns the output directory of the submodule.
func (o Options) DestDir() string {
	return filepath.Join(o.DistPkgDir, o.Submodule)
}

// Build bundles the submodule, copies its type declarations and writes its
// package.json. The ESM and CommonJS builds run concurrently and either
// failing fails the build.
func Build(ctx context.Context, opts Options, log *slog.Logger) error {
	dest := opts.DestDir()
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	base := api.BuildOptions{
		EntryPoints: []string{filepath.Join(opts.SrcDir, opts.Submodule, "index.ts")},
		EntryNames:  "index",
		Outdir:      dest,
		Bundle:      true,
		Sourcemap:   api.SourceMapLinked,
		Target:      api.ES2020,
		Write:       true,
		LogLevel:    api.LogLevelSilent,
	}

	esm := base
	esm.Format = api.FormatESModule
	esm.OutExtension = map[string]string{".js": ".mjs"}

	cjs := base
	cjs.Format = api.FormatCommonJS
	cjs.OutExtension = map[string]string{".js": ".cjs"}
	cjs.Banner = map[string]string{
		"js": fmt.Sprintf("globalThis.%s = (function (module) {", opts.GlobalName),
	}
	cjs.Footer = map[string]string{
		"js": "return module.exports; })(typeof module === 'object' && module.exports ? module : { exports: {} });",
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return run(ctx, "esm", esm) })
	g.Go(func() error { return run(ctx, "cjs", cjs) })
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("bundled submodule", "submodule", opts.Submodule, "dir", dest)

	dts := filepath.Join(opts.DtsDir, "packages", "qwik", "src", opts.Submodule, "index.d.ts")
	if err := copyFile(dts, filepath.Join(dest, "index.d.ts")); err != nil {
		return err
	}

	return WritePackageJSON(dest, PackageJSON{
		Name:    opts.PackageName,
		Version: opts.Version,
		Main:    "index.mjs",
		Types:   "index.d.ts",
		Private: true,
		Type:    "module",
	})
}

func run(ctx context.Context, format string, opts api.BuildOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%s build: %s", format, formatMessages(result.Errors))
	}
	return nil
}

func formatMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%s:%d: %s", m.Location.File, m.Location.Line, m.Text))
			continue
		}
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "; ")
}

// WritePackageJSON writes pkg as dir/package.json.
func WritePackageJSON(dir string, pkg PackageJSON) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pkg); err != nil {
		return fmt.Errorf("encode package.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write package.json: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
