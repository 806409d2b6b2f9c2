package apitree

import (
	"encoding/json"
	"fmt"
	"io"
)

// Kinds that describe package structure rather than documentable symbols.
const (
	KindPackage    = "Package"
	KindEntryPoint = "EntryPoint"
)

// Node is one entry of an API extraction tree (docs.api.json).
type Node struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Members []*Node `json:"members"`
}

// Structural reports whether the node is a package or entry point.
func (n *Node) Structural() bool {
	return n.Kind == KindPackage || n.Kind == KindEntryPoint
}

// Parse decodes an extraction tree.
func Parse(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse extraction: %w", err)
	}
	return &root, nil
}

// HierarchyEntry is one ancestor of a member, root first.
type HierarchyEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Member is a flattened, documentable API symbol.
type Member struct {
	Name      string           `json:"name"`
	ID        string           `json:"id"`
	Hierarchy []HierarchyEntry `json:"hierarchy"`
	Kind      string           `json:"kind"`
	Content   string           `json:"content"`
	MDFile    string           `json:"mdFile"` // fragment file the content was read from
}

// Data is the API surface of one package.
type Data struct {
	ID      string   `json:"id"`
	Package string   `json:"package"`
	Members []Member `json:"members"`
}

// NewData returns an empty Data for the named package.
func NewData(id, pkg string) *Data {
	return &Data{ID: id, Package: pkg, Members: []Member{}}
}

// Has reports whether a member with the same name and kind is registered.
func (d *Data) Has(name, kind string) bool {
	for _, m := range d.Members {
		if m.Name == name && m.Kind == kind {
			return true
		}
	}
	return false
}
