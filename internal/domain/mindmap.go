package domain

import (
	"path"
	"slices"
	"strings"
)

// NodeKind distinguishes directories from files in a mindmap
type NodeKind string

const (
	KindDirectory NodeKind = "directory"
	KindFile      NodeKind = "file"
)

// MindmapNode is one directory or file of the physical document layout
type MindmapNode struct {
	Name     string         `json:"name"`
	Kind     NodeKind       `json:"type"`
	Path     string         `json:"path"` // Relative to the scan root, "" for the root
	Children []*MindmapNode `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory
func (n *MindmapNode) IsDir() bool {
	return n.Kind == KindDirectory
}

// Walk visits the node and its descendants depth-first, in child order
func (n *MindmapNode) Walk(fn func(node *MindmapNode, depth int)) {
	n.walk(fn, 0)
}

func (n *MindmapNode) walk(fn func(node *MindmapNode, depth int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// CountFiles returns the number of file leaves below n
func (n *MindmapNode) CountFiles() int {
	count := 0
	n.Walk(func(node *MindmapNode, _ int) {
		if node.Kind == KindFile {
			count++
		}
	})
	return count
}

// BuildMindmap projects the document paths onto a directory tree.
// The result does not depend on link topology.
func BuildMindmap(rootName string, paths []string) *MindmapNode {
	root := &MindmapNode{Name: rootName, Kind: KindDirectory}
	dirs := map[string]*MindmapNode{"": root}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		parent := root
		for i := range parts[:len(parts)-1] {
			dirPath := strings.Join(parts[:i+1], "/")
			dir, ok := dirs[dirPath]
			if !ok {
				dir = &MindmapNode{Name: parts[i], Kind: KindDirectory, Path: dirPath}
				dirs[dirPath] = dir
				parent.Children = append(parent.Children, dir)
			}
			parent = dir
		}
		parent.Children = append(parent.Children, &MindmapNode{
			Name: path.Base(p),
			Kind: KindFile,
			Path: p,
		})
	}

	sortMindmap(root)
	return root
}

// sortMindmap orders directories before files, each group lexically
func sortMindmap(n *MindmapNode) {
	slices.SortFunc(n.Children, func(a, b *MindmapNode) int {
		if a.Kind != b.Kind {
			if a.Kind == KindDirectory {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, c := range n.Children {
		if c.IsDir() {
			sortMindmap(c)
		}
	}
}
