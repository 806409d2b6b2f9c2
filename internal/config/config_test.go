package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APIDOCS_ROOT_DIR", "/repo")
	t.Setenv("APIDOCS_INPUT_DIR", "")
	t.Setenv("APIDOCS_PACKAGES_DIR", "")
	t.Setenv("APIDOCS_DOCUMENTER_BIN", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.InputDir != filepath.Join("/repo", "dist-dev", "api") {
		t.Errorf("unexpected input dir %q", cfg.InputDir)
	}
	if cfg.DocumenterBin != filepath.Join("/repo", "node_modules", ".bin", "api-documenter") {
		t.Errorf("unexpected documenter bin %q", cfg.DocumenterBin)
	}
	if cfg.DocsRoutesDir() != filepath.Join("/repo", "packages", "docs", "src", "routes", "api") {
		t.Errorf("unexpected routes dir %q", cfg.DocsRoutesDir())
	}
	if cfg.MarkdownDir("qwik-city") != filepath.Join("/repo", "dist-dev", "api-docs", "qwik-city") {
		t.Errorf("unexpected markdown dir %q", cfg.MarkdownDir("qwik-city"))
	}
	if cfg.Scope != "@builder.io" || cfg.FragmentPrefix != "qwik" {
		t.Errorf("unexpected scope/prefix %q/%q", cfg.Scope, cfg.FragmentPrefix)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if err := cfg.ValidateDocs(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
	if err := cfg.ValidateBuild(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APIDOCS_PACKAGES", "qwik-react")
	t.Setenv("APIDOCS_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Packages != "qwik-react" {
		t.Errorf("expected packages %q, got %q", "qwik-react", cfg.Packages)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port %q, got %q", "9000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if cfg := Load(); cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected fallback to info, got %v", cfg.LogLevel)
	}
}

func TestValidateDocs(t *testing.T) {
	cfg := Load()
	cfg.Packages = " "
	if err := cfg.ValidateDocs(); err == nil {
		t.Error("expected error for empty package list")
	}
	cfg = Load()
	cfg.DocumenterBin = ""
	if err := cfg.ValidateDocs(); err == nil {
		t.Error("expected error for missing documenter binary")
	}
}

func TestValidateBuild(t *testing.T) {
	cfg := Load()
	cfg.DistVersion = ""
	if err := cfg.ValidateBuild(); err == nil {
		t.Error("expected error for missing version")
	}
}
