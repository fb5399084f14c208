package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Exporter implements ports.SnapshotExporter using SQLite.
// Every Export call appends a new run; earlier runs are kept.
type Exporter struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Exporter implements SnapshotExporter
var _ ports.SnapshotExporter = (*Exporter)(nil)

// RunSummary describes one exported run
type RunSummary struct {
	ID             string
	Root           string
	CreatedAt      string
	TotalDocuments int
	TotalLinks     int
	Orphaned       int
}

// NewExporter creates a new SQLite exporter
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Open creates (or reuses) the database at dbPath
func (e *Exporter) Open(dbPath string) error {
	dbPath = filesystem.ExpandHome(dbPath)
	e.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	e.db = db

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			created_at TEXT NOT NULL,
			total_documents INTEGER NOT NULL,
			total_links INTEGER NOT NULL,
			orphaned INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS documents (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			incoming INTEGER NOT NULL,
			outgoing INTEGER NOT NULL,
			orphaned INTEGER NOT NULL,
			PRIMARY KEY (run_id, path)
		);
		CREATE TABLE IF NOT EXISTS links (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			PRIMARY KEY (run_id, source_path, target_path)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_links_target ON links(run_id, target_path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (e *Exporter) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// Path returns the database file path
func (e *Exporter) Path() string {
	return e.dbPath
}

// Export writes the run, its documents and its links in one transaction
func (e *Exporter) Export(ctx context.Context, snap ports.Snapshot) (string, error) {
	if e.db == nil {
		return "", fmt.Errorf("exporter is not open")
	}

	tx, err := e.begin(ctx)
	if err != nil {
		return "", err
	}

	runID := uuid.NewString()
	stats := snap.Report.Stats

	if err := tx.InsertRun(ctx, RunSummary{
		ID:             runID,
		Root:           snap.Root,
		CreatedAt:      e.now().UTC().Format(time.RFC3339),
		TotalDocuments: stats.TotalDocuments,
		TotalLinks:     stats.TotalLinks,
		Orphaned:       stats.Orphaned,
	}); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, d := range snap.Report.Documents {
		if err := tx.InsertDocument(ctx, runID, d); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert document %s: %w", d.Path, err)
		}
	}

	if snap.Graph != nil {
		for source, target := range snap.Graph.Links() {
			if err := tx.InsertLink(ctx, runID, source, target); err != nil {
				tx.Rollback()
				return "", fmt.Errorf("failed to insert link %s -> %s: %w", source, target, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Runs lists the exported runs, newest first
func (e *Exporter) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT id, root, created_at, total_documents, total_links, orphaned
		FROM runs ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Root, &r.CreatedAt, &r.TotalDocuments, &r.TotalLinks, &r.Orphaned); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (e *Exporter) begin(ctx context.Context) (*exportTx, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &exportTx{tx: tx}, nil
}
