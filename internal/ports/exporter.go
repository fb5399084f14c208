package ports

import (
	"context"

	"docgraph/internal/domain"
)

// Snapshot is one analysis run handed to an exporter
type Snapshot struct {
	Root   string
	Graph  *domain.Graph
	Report domain.Report
}

// SnapshotExporter persists an analysis run outside the process
type SnapshotExporter interface {
	// Export writes the snapshot and returns the identifier of the stored run
	Export(ctx context.Context, snap Snapshot) (string, error)
	Close() error
}
