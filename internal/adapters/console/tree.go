package console

import (
	"strings"

	"docgraph/internal/domain"
)

// RenderTree draws the mindmap with box-drawing connectors.
// Directories are suffixed with a slash.
func RenderTree(root *domain.MindmapNode) string {
	var b strings.Builder
	b.WriteString(root.Name)
	b.WriteString("/\n")
	writeChildren(&b, root, "")
	return b.String()
}

func writeChildren(b *strings.Builder, node *domain.MindmapNode, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1

		connector, extension := "├── ", "│   "
		if last {
			connector, extension = "└── ", "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.Name)
		if child.IsDir() {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if child.IsDir() {
			writeChildren(b, child, prefix+extension)
		}
	}
}
