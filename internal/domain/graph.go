package domain

import (
	"iter"
	"slices"
)

// Document is a node of the link graph
type Document struct {
	Path     string
	outgoing map[string]struct{}
	incoming map[string]struct{}
}

// Graph is a directed graph of documents keyed by normalized relative path.
//
// Graph is not safe for concurrent mutation. Build it from a single goroutine:
// register every document first, then add links, so that forward references
// resolve regardless of scan order.
type Graph struct {
	docs  map[string]*Document
	links int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{docs: make(map[string]*Document)}
}

// AddDocument registers a document if it is not present yet
func (g *Graph) AddDocument(path string) {
	if _, ok := g.docs[path]; ok {
		return
	}
	g.docs[path] = &Document{
		Path:     path,
		outgoing: make(map[string]struct{}),
		incoming: make(map[string]struct{}),
	}
}

// HasDocument reports whether path is registered
func (g *Graph) HasDocument(path string) bool {
	_, ok := g.docs[path]
	return ok
}

// AddLink adds the edge source -> target. It returns false, without error,
// when either endpoint is not a registered document or the edge already exists.
func (g *Graph) AddLink(source, target string) bool {
	src, ok := g.docs[source]
	if !ok {
		return false
	}
	dst, ok := g.docs[target]
	if !ok {
		return false
	}
	if _, exists := src.outgoing[target]; exists {
		return false
	}
	src.outgoing[target] = struct{}{}
	dst.incoming[source] = struct{}{}
	g.links++
	return true
}

// IncomingCount returns the number of documents linking to path
func (g *Graph) IncomingCount(path string) int {
	if d, ok := g.docs[path]; ok {
		return len(d.incoming)
	}
	return 0
}

// OutgoingCount returns the number of documents path links to
func (g *Graph) OutgoingCount(path string) int {
	if d, ok := g.docs[path]; ok {
		return len(d.outgoing)
	}
	return 0
}

// Incoming returns the documents linking to path, in lexical order
func (g *Graph) Incoming(path string) []string {
	if d, ok := g.docs[path]; ok {
		return sortedKeys(d.incoming)
	}
	return nil
}

// Outgoing returns the documents path links to, in lexical order
func (g *Graph) Outgoing(path string) []string {
	if d, ok := g.docs[path]; ok {
		return sortedKeys(d.outgoing)
	}
	return nil
}

// Documents yields every registered document once, in lexical order.
// The sequence can be ranged over any number of times.
func (g *Graph) Documents() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range sortedKeys(g.docs) {
			if !yield(p) {
				return
			}
		}
	}
}

// Links yields every edge as (source, target), ordered by source then target
func (g *Graph) Links() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for src := range g.Documents() {
			for _, dst := range sortedKeys(g.docs[src].outgoing) {
				if !yield(src, dst) {
					return
				}
			}
		}
	}
}

// Len returns the number of registered documents
func (g *Graph) Len() int {
	return len(g.docs)
}

// LinkCount returns the number of distinct edges
func (g *Graph) LinkCount() int {
	return g.links
}

// BuildGraph registers every inventory file and then adds the extracted links.
// Links to unregistered targets are dropped.
func BuildGraph(inv *Inventory, extractions []Extraction) *Graph {
	g := NewGraph()
	for _, f := range inv.Files {
		g.AddDocument(f.Path)
	}
	for _, ex := range extractions {
		for _, target := range ex.Targets {
			g.AddLink(ex.Source, target)
		}
	}
	return g
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
