package ports

import (
	"context"

	"docgraph/internal/domain"
)

// MindmapEncoder serializes a mindmap tree into a textual notation
type MindmapEncoder interface {
	Encode(root *domain.MindmapNode) (string, error)
}

// GraphEncoder serializes the link graph, with nodes classified by the report
type GraphEncoder interface {
	EncodeGraph(g *domain.Graph, report domain.Report) (string, error)
}

// DiagramRenderer turns a serialized diagram into an image using an external tool
type DiagramRenderer interface {
	// Available returns true if the external renderer can be executed
	Available() bool

	// Render rasterizes the source file and returns the image path
	Render(ctx context.Context, sourcePath string) (string, error)
}
