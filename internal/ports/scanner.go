package ports

import (
	"context"

	"docgraph/internal/domain"
)

// DocumentScanner discovers the markdown documents under a root
type DocumentScanner interface {
	// Scan walks the configured root. Unreadable subdirectories are recorded
	// as inventory warnings; only a problem with the root itself is returned.
	Scan(ctx context.Context) (*domain.Inventory, error)
}

// DocumentReader loads the text of one document
type DocumentReader interface {
	ReadDocument(absPath string) (string, error)
}
