package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

func openTestExporter(t *testing.T) *Exporter {
	t.Helper()

	e := NewExporter()
	require.NoError(t, e.Open(filepath.Join(t.TempDir(), "out", "graph.db")))
	t.Cleanup(func() { e.Close() })
	return e
}

func sampleSnapshot() ports.Snapshot {
	inv := &domain.Inventory{
		Root:  "/docs",
		Files: []domain.File{{Path: "a.md"}, {Path: "b.md"}, {Path: "c.md"}},
	}
	g := domain.BuildGraph(inv, []domain.Extraction{
		{Source: "a.md", Targets: []string{"b.md"}},
		{Source: "b.md", Targets: []string{"a.md"}},
	})
	return ports.Snapshot{Root: inv.Root, Graph: g, Report: domain.Analyze(g)}
}

func TestExporter_Export(t *testing.T) {
	e := openTestExporter(t)
	ctx := context.Background()

	runID, err := e.Export(ctx, sampleSnapshot())
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	assert.NoError(t, err)

	var docs, orphaned, links int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE run_id = ?`, runID).Scan(&docs))
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE run_id = ? AND orphaned = 1`, runID).Scan(&orphaned))
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM links WHERE run_id = ?`, runID).Scan(&links))
	assert.Equal(t, 3, docs)
	assert.Equal(t, 1, orphaned)
	assert.Equal(t, 2, links)

	var orphan string
	require.NoError(t, e.db.QueryRow(`SELECT path FROM documents WHERE run_id = ? AND orphaned = 1`, runID).Scan(&orphan))
	assert.Equal(t, "c.md", orphan)
}

func TestExporter_RunsAreAppended(t *testing.T) {
	e := openTestExporter(t)
	ctx := context.Background()

	e.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	first, err := e.Export(ctx, sampleSnapshot())
	require.NoError(t, err)

	e.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }
	second, err := e.Export(ctx, sampleSnapshot())
	require.NoError(t, err)

	runs, err := e.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, "2024-01-02T00:00:00Z", runs[0].CreatedAt)
	assert.Equal(t, RunSummary{
		ID:             first,
		Root:           "/docs",
		CreatedAt:      "2024-01-01T00:00:00Z",
		TotalDocuments: 3,
		TotalLinks:     2,
		Orphaned:       1,
	}, runs[1])
}

func TestExporter_EmptySnapshot(t *testing.T) {
	e := openTestExporter(t)
	g := domain.NewGraph()

	_, err := e.Export(context.Background(), ports.Snapshot{Root: "/empty", Graph: g, Report: domain.Analyze(g)})
	require.NoError(t, err)

	runs, err := e.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Zero(t, runs[0].TotalDocuments)
}

func TestExporter_ExportBeforeOpen(t *testing.T) {
	_, err := NewExporter().Export(context.Background(), sampleSnapshot())

	assert.Error(t, err)
}

func TestExporter_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")

	e := NewExporter()
	require.NoError(t, e.Open(path))
	_, err := e.Export(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, e.Close())

	again := NewExporter()
	require.NoError(t, again.Open(path))
	defer again.Close()

	runs, err := again.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func BenchmarkExport(b *testing.B) {
	inv := &domain.Inventory{Root: "/bench"}
	var ex []domain.Extraction
	for i := range 500 {
		p := filepath.ToSlash(filepath.Join("dir", string(rune('a'+i%26)), uuid.NewString()+".md"))
		inv.Files = append(inv.Files, domain.File{Path: p})
		if i > 0 {
			ex = append(ex, domain.Extraction{Source: p, Targets: []string{inv.Files[i-1].Path}})
		}
	}
	g := domain.BuildGraph(inv, ex)
	snap := ports.Snapshot{Root: inv.Root, Graph: g, Report: domain.Analyze(g)}

	e := NewExporter()
	if err := e.Open(filepath.Join(b.TempDir(), "bench.db")); err != nil {
		b.Fatalf("failed to open exporter: %v", err)
	}
	defer e.Close()

	b.ResetTimer()
	for b.Loop() {
		if _, err := e.Export(context.Background(), snap); err != nil {
			b.Fatalf("export failed: %v", err)
		}
	}
}
