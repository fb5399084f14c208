package plantuml

import (
	"strings"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Encoder serializes a mindmap tree into PlantUML mindmap notation
type Encoder struct {
	highlight map[string]string // document path -> background color
}

// Ensure Encoder implements MindmapEncoder
var _ ports.MindmapEncoder = (*Encoder)(nil)

// EncoderOption configures the Encoder
type EncoderOption func(*Encoder)

// WithHighlight colors the listed documents. It decorates the output only;
// the tree itself is unchanged.
func WithHighlight(paths []string, color string) EncoderOption {
	return func(e *Encoder) {
		for _, p := range paths {
			e.highlight[p] = color
		}
	}
}

// NewEncoder creates a new PlantUML encoder
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{highlight: make(map[string]string)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes one line per node, depth expressed by repeated '*'.
// Directories carry a trailing slash.
func (e *Encoder) Encode(root *domain.MindmapNode) (string, error) {
	var b strings.Builder
	b.WriteString("@startmindmap\n")

	root.Walk(func(node *domain.MindmapNode, depth int) {
		b.WriteString(strings.Repeat("*", depth+1))
		if color, ok := e.highlight[node.Path]; ok && !node.IsDir() {
			b.WriteString("[")
			b.WriteString(color)
			b.WriteString("]")
		}
		b.WriteString(" ")
		b.WriteString(label(node))
		b.WriteString("\n")
	})

	b.WriteString("@endmindmap\n")
	return b.String(), nil
}

func label(node *domain.MindmapNode) string {
	// Line breaks would start a new node
	name := strings.NewReplacer("\r", " ", "\n", " ").Replace(node.Name)
	if node.IsDir() {
		return name + "/"
	}
	return name
}
