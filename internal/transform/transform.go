// Package transform flattens an API extraction tree into the per-package
// reference data consumed by the docs site.
package transform

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgallion1/apidocs/internal/apitree"
	"github.com/dgallion1/apidocs/internal/fragment"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultFragmentPrefix is the file name prefix of generated fragments.
const DefaultFragmentPrefix = "qwik"

// Options configures a Transformer.
type Options struct {
	Scope          string // npm scope stripped from package ids, e.g. "@builder.io"
	FragmentPrefix string
	Language       language.Tag // collation used to order members
}

// Transformer turns extraction trees into apitree.Data.
type Transformer struct {
	fragments fragment.Reader
	log       *slog.Logger
	opts      Options
}

func New(fragments fragment.Reader, log *slog.Logger, opts Options) *Transformer {
	if opts.FragmentPrefix == "" {
		opts.FragmentPrefix = DefaultFragmentPrefix
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Transformer{fragments: fragments, log: log, opts: opts}
}

// Transform builds the reference data for one package.
func (t *Transformer) Transform(pkgName string, root *apitree.Node) (*apitree.Data, error) {
	data := apitree.NewData(apitree.PackageID(t.opts.Scope, pkgName), pkgName)

	if err := t.flatten(data, root, nil); err != nil {
		return nil, err
	}
	RewriteLinks(data.Members)
	SortMembers(data.Members, t.opts.Language)

	t.log.Debug("transformed package", "package", pkgName, "members", len(data.Members))
	return data, nil
}

// flatten registers the members below node depth-first. A member is registered
// after its own subtree, so nested symbols come before their owner.
func (t *Transformer) flatten(data *apitree.Data, node *apitree.Node, path []string) error {
	for _, child := range node.Members {
		if child == nil {
			continue
		}
		childPath := path
		if !child.Structural() && child.Name != "" {
			childPath = append(slices.Clip(path), child.Name)
		}
		if err := t.flatten(data, child, childPath); err != nil {
			return err
		}

		if child.Structural() || child.Name == "" {
			continue
		}
		if data.Has(child.Name, child.Kind) {
			continue
		}
		m, err := t.member(child, childPath)
		if err != nil {
			return err
		}
		data.Members = append(data.Members, m)
	}
	return nil
}

func (t *Transformer) member(node *apitree.Node, path []string) (apitree.Member, error) {
	hierarchy := make([]apitree.HierarchyEntry, len(path))
	for i, name := range path {
		hierarchy[i] = apitree.HierarchyEntry{Name: name, ID: apitree.Canonical(path[:i+1])}
	}

	mdFile := apitree.FragmentFile(t.opts.FragmentPrefix, path)
	src, err := t.fragments.ReadFragment(mdFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		t.log.Warn("unable to find md for fragment", "fragment", mdFile, "member", node.Name)
		src = ""
	case err != nil:
		return apitree.Member{}, fmt.Errorf("read fragment %s: %w", mdFile, err)
	}

	return apitree.Member{
		Name:      node.Name,
		ID:        apitree.Canonical(path),
		Hierarchy: hierarchy,
		Kind:      node.Kind,
		Content:   fragment.Clean(src),
		MDFile:    mdFile,
	}, nil
}

// RewriteLinks replaces relative links between fragments with anchors on the
// combined page. Running it again on rewritten content is a no-op.
func RewriteLinks(members []apitree.Member) {
	if len(members) == 0 {
		return
	}
	links := make([]apitree.Member, len(members))
	copy(links, members)
	// Longer file names first so "./qwik.a.md.md" is not split by "./qwik.a.md".
	slices.SortStableFunc(links, func(a, b apitree.Member) int {
		return len(b.MDFile) - len(a.MDFile)
	})

	pairs := make([]string, 0, 2*len(links))
	for _, m := range links {
		pairs = append(pairs, "./"+m.MDFile, "#"+m.ID)
	}
	r := strings.NewReplacer(pairs...)
	for i := range members {
		members[i].Content = r.Replace(members[i].Content)
	}
}

// SortMembers orders members by name using the collation rules of lang.
// Members with equal names keep their relative order.
func SortMembers(members []apitree.Member, lang language.Tag) {
	c := collate.New(lang)
	slices.SortStableFunc(members, func(a, b apitree.Member) int {
		return c.CompareString(a.Name, b.Name)
	})
}
