package views

import "docgraph/internal/domain"

// TreeNode is a mindmap node with the browser's expand state
type TreeNode struct {
	Node     *domain.MindmapNode
	Parent   *TreeNode
	Children []*TreeNode
	Expanded bool
}

// NewTree wraps a mindmap. The root and its directories start expanded.
func NewTree(root *domain.MindmapNode) *TreeNode {
	t := wrap(root, nil)
	t.Expanded = true
	for _, c := range t.Children {
		c.Expanded = c.Node.IsDir()
	}
	return t
}

func wrap(n *domain.MindmapNode, parent *TreeNode) *TreeNode {
	t := &TreeNode{Node: n, Parent: parent}
	for _, c := range n.Children {
		t.Children = append(t.Children, wrap(c, t))
	}
	return t
}

// Flatten returns the visible nodes in display order, root first
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flatten(&result, false)
	return result
}

// All returns every node in display order, ignoring expand state
func (n *TreeNode) All() []*TreeNode {
	var result []*TreeNode
	n.flatten(&result, true)
	return result
}

func (n *TreeNode) flatten(result *[]*TreeNode, all bool) {
	*result = append(*result, n)
	if n.Expanded || all {
		for _, c := range n.Children {
			c.flatten(result, all)
		}
	}
}

// Depth returns the distance from the root
func (n *TreeNode) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// IsDir reports whether the node is a directory
func (n *TreeNode) IsDir() bool {
	return n.Node.IsDir()
}

// Toggle flips the expand state
func (n *TreeNode) Toggle() {
	n.Expanded = !n.Expanded
}

// Expand opens the node
func (n *TreeNode) Expand() {
	n.Expanded = true
}

// Collapse closes the node
func (n *TreeNode) Collapse() {
	n.Expanded = false
}

// Reveal expands every ancestor so the node becomes visible
func (n *TreeNode) Reveal() {
	for p := n.Parent; p != nil; p = p.Parent {
		p.Expanded = true
	}
}
