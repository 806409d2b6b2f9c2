package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExtractFile is the API extraction file looked for in each package directory.
const ExtractFile = "docs.api.json"

// DefaultRoots are the package paths documented by a full run.
var DefaultRoots = [][]string{
	{"qwik"},
	{"qwik-city"},
	{"qwik-city", "middleware"},
	{"qwik-city", "static"},
	{"qwik-city", "vite"},
	{"qwik-react"},
}

// Package is one directory holding an extraction file.
type Package struct {
	Path        []string // path segments below the input root, e.g. ["qwik-city", "middleware", "node"]
	Dir         string
	ExtractFile string
}

// Packages lists the sub-packages of every root that carry an extraction file.
// Roots that do not exist and directories without the file are skipped.
func Packages(inputDir string, roots [][]string) ([]Package, error) {
	var out []Package
	for _, root := range roots {
		rootDir := filepath.Join(append([]string{inputDir}, root...)...)
		entries, err := os.ReadDir(rootDir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read package dir %s: %w", rootDir, err)
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			dir := filepath.Join(rootDir, e.Name())
			extract := filepath.Join(dir, ExtractFile)
			if _, err := os.Stat(extract); err != nil {
				continue
			}
			path := append(append([]string{}, root...), e.Name())
			out = append(out, Package{Path: path, Dir: dir, ExtractFile: extract})
		}
	}
	return out, nil
}

// ParseRoots parses a comma separated list of slash separated package paths,
// e.g. "qwik,qwik-city/middleware".
func ParseRoots(s string) [][]string {
	var roots [][]string
	for _, item := range strings.Split(s, ",") {
		item = strings.Trim(strings.TrimSpace(item), "/")
		if item == "" {
			continue
		}
		roots = append(roots, strings.Split(item, "/"))
	}
	return roots
}
