package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/apidocs/internal/apitree"
	"github.com/dgallion1/apidocs/internal/fragment"
)

// Output file names inside a package route directory.
const (
	JSONFile  = "api.json"
	IndexFile = "index.mdx"
)

// JSON encodes the package data with two-space indentation.
func JSON(data *apitree.Data) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("encode api data: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Markdown renders the reference page for a package.
func Markdown(data *apitree.Data) []byte {
	md := []string{
		"---",
		// A plain YAML scalar cannot start with "@".
		fmt.Sprintf(`title: \%s API Reference`, data.Package),
		"---",
		"",
		fmt.Sprintf("# **API** %s", data.Package),
		"",
	}

	for _, m := range data.Members {
		md = append(md,
			fmt.Sprintf(`<h2 id="%s"><a aria-hidden="true" tabindex="-1" href="#%s"><span class="icon icon-link"></span></a>%s</h2>`, m.ID, m.ID, m.Name),
			"",
			fragment.Sanitize(m.Content),
			"",
		)
	}
	return []byte(strings.Join(md, "\n"))
}

// Result describes the files written for one package.
type Result struct {
	Dir         string
	JSONPath    string
	IndexPath   string
	ContentHash string // SHA-256 of api.json
}

// Write emits api.json and index.mdx into dir, creating it if needed.
func Write(dir string, data *apitree.Data) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	js, err := JSON(data)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Dir:         dir,
		JSONPath:    filepath.Join(dir, JSONFile),
		IndexPath:   filepath.Join(dir, IndexFile),
		ContentHash: fmt.Sprintf("%x", sha256.Sum256(js)),
	}
	if err := os.WriteFile(res.JSONPath, js, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", JSONFile, err)
	}
	if err := os.WriteFile(res.IndexPath, Markdown(data), 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", IndexFile, err)
	}
	return res, nil
}
