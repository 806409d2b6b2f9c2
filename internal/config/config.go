package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Repository layout
	RootDir     string
	InputDir    string // api-extractor output, one dir per package
	PackagesDir string

	// API docs generation
	Packages       string // comma separated package paths, e.g. "qwik,qwik-city/middleware"
	Scope          string
	FragmentPrefix string
	DocumenterBin  string

	// Submodule build
	SrcDir      string
	DtsDir      string
	DistPkgDir  string
	DistVersion string
	Submodule   string
	GlobalName  string

	// Preview server
	Port string

	LogLevel slog.Level
}

func Load() Config {
	root := envOr("APIDOCS_ROOT_DIR", ".")

	cfg := Config{
		RootDir:     root,
		InputDir:    envOr("APIDOCS_INPUT_DIR", filepath.Join(root, "dist-dev", "api")),
		PackagesDir: envOr("APIDOCS_PACKAGES_DIR", filepath.Join(root, "packages")),

		Packages:       envOr("APIDOCS_PACKAGES", "qwik,qwik-city,qwik-city/middleware,qwik-city/static,qwik-city/vite,qwik-react"),
		Scope:          envOr("APIDOCS_SCOPE", "@builder.io"),
		FragmentPrefix: envOr("APIDOCS_FRAGMENT_PREFIX", "qwik"),
		DocumenterBin:  envOr("APIDOCS_DOCUMENTER_BIN", filepath.Join(root, "node_modules", ".bin", "api-documenter")),

		SrcDir:      envOr("APIDOCS_SRC_DIR", filepath.Join(root, "packages", "qwik", "src")),
		DtsDir:      envOr("APIDOCS_DTS_DIR", filepath.Join(root, "dist-dev", "tsc-out")),
		DistPkgDir:  envOr("APIDOCS_DIST_PKG_DIR", filepath.Join(root, "packages", "qwik", "dist")),
		DistVersion: envOr("APIDOCS_DIST_VERSION", "0.0.0-dev"),
		Submodule:   envOr("APIDOCS_SUBMODULE", "build"),
		GlobalName:  envOr("APIDOCS_GLOBAL_NAME", "qwikBuild"),

		Port: envOr("APIDOCS_PORT", "8091"),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.FragmentPrefix == "" {
		cfg.FragmentPrefix = "qwik"
	}
	if cfg.Submodule == "" {
		cfg.Submodule = "build"
	}

	return cfg
}

// DocsRoutesDir is where per-package reference pages are written.
func (c Config) DocsRoutesDir() string {
	return filepath.Join(c.PackagesDir, "docs", "src", "routes", "api")
}

// MarkdownDir is where api-documenter writes fragments for a package id.
func (c Config) MarkdownDir(dirName string) string {
	return filepath.Join(c.RootDir, "dist-dev", "api-docs", dirName)
}

// ValidateDocs checks the settings used by the generate command.
func (c Config) ValidateDocs() error {
	if c.InputDir == "" {
		return fmt.Errorf("APIDOCS_INPUT_DIR is required")
	}
	if c.PackagesDir == "" {
		return fmt.Errorf("APIDOCS_PACKAGES_DIR is required")
	}
	if c.DocumenterBin == "" {
		return fmt.Errorf("APIDOCS_DOCUMENTER_BIN is required")
	}
	if strings.TrimSpace(c.Packages) == "" {
		return fmt.Errorf("APIDOCS_PACKAGES must name at least one package")
	}
	return nil
}

// ValidateBuild checks the settings used by the submodule command.
func (c Config) ValidateBuild() error {
	if c.SrcDir == "" || c.DtsDir == "" || c.DistPkgDir == "" {
		return fmt.Errorf("APIDOCS_SRC_DIR, APIDOCS_DTS_DIR and APIDOCS_DIST_PKG_DIR are required")
	}
	if c.DistVersion == "" {
		return fmt.Errorf("APIDOCS_DIST_VERSION is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
