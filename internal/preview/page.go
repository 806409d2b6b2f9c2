package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/apidocs/internal/render"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoPage is returned when a package has no emitted reference page.
var ErrNoPage = errors.New("page not found")

// Page is an emitted reference page rendered to HTML.
type Page struct {
	ID    string
	Title string
	HTML  []byte
	TOC   []Heading
}

// Heading is one member heading of a page.
type Heading struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pageMeta struct {
	Title string `yaml:"title"`
}

// The pages embed raw HTML headings, so unsafe rendering is required.
var md = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))

// LoadPage reads and renders dir/<id>/index.mdx.
func LoadPage(dir, id string) (*Page, error) {
	if !validID(id) {
		return nil, ErrNoPage
	}
	src, err := os.ReadFile(filepath.Join(dir, id, render.IndexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoPage
	}
	if err != nil {
		return nil, err
	}

	var meta pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Page{
		ID:    id,
		Title: strings.TrimPrefix(meta.Title, `\`),
		HTML:  buf.Bytes(),
		TOC:   headings(buf.Bytes()),
	}, nil
}

// headings collects the anchored <h2> elements of rendered HTML.
func headings(src []byte) []Heading {
	toc := []Heading{}
	z := html.NewTokenizer(bytes.NewReader(src))

	var cur *Heading
	var text strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return toc
		case html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.H2 {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "id" && a.Val != "" {
					cur = &Heading{ID: a.Val}
					text.Reset()
				}
			}
		case html.TextToken:
			if cur != nil {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			if cur != nil && z.Token().DataAtom == atom.H2 {
				cur.Name = strings.TrimSpace(text.String())
				toc = append(toc, *cur)
				cur = nil
			}
		}
	}
}

// ListPages returns the ids of packages with an emitted page, sorted.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), render.IndexFile)); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
