package sqlite

import (
	"context"
	"database/sql"

	"docgraph/internal/domain"
)

// exportTx groups the inserts of one run
type exportTx struct {
	tx *sql.Tx
}

// InsertRun adds the run header row
func (t *exportTx) InsertRun(ctx context.Context, run RunSummary) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, created_at, total_documents, total_links, orphaned)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.CreatedAt, run.TotalDocuments, run.TotalLinks, run.Orphaned)
	return err
}

// InsertDocument adds one document with its degree
func (t *exportTx) InsertDocument(ctx context.Context, runID string, d domain.DocumentDegree) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO documents (run_id, path, incoming, outgoing, orphaned)
		VALUES (?, ?, ?, ?, ?)
	`, runID, d.Path, d.Incoming, d.Outgoing, d.IsOrphaned())
	return err
}

// InsertLink adds one edge
func (t *exportTx) InsertLink(ctx context.Context, runID, source, target string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO links (run_id, source_path, target_path)
		VALUES (?, ?, ?)
	`, runID, source, target)
	return err
}

// Commit commits the transaction
func (t *exportTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *exportTx) Rollback() error {
	return t.tx.Rollback()
}
