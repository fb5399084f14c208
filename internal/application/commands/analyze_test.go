package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/application"
	"docgraph/internal/domain"
)

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func runAnalyze(t *testing.T, root string, opts ...AnalyzeOption) *AnalyzeResult {
	t.Helper()

	cmd := NewAnalyzeCommand(
		filesystem.NewScanner(root),
		filesystem.NewReader(),
		domain.NewLinkExtractor(nil),
		opts...,
	)
	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	return result
}

// failingReader fails for the listed absolute paths
type failingReader struct {
	next  *filesystem.Reader
	fails map[string]bool
}

func (r *failingReader) ReadDocument(absPath string) (string, error) {
	if r.fails[absPath] {
		return "", errors.New("permission denied")
	}
	return r.next.ReadDocument(absPath)
}

func TestAnalyzeCommand_SingleLink(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "see [b](b.md)",
		"b.md": "# B",
		"c.md": "# C",
	})

	r := runAnalyze(t, root)

	assert.Equal(t, domain.Statistics{
		TotalDocuments: 3,
		TotalLinks:     1,
		Orphaned:       1,
		NoIncoming:     2,
		NoOutgoing:     2,
	}, r.Report.Stats)
	assert.Equal(t, []string{"c.md"}, r.Report.Orphaned)
	assert.Equal(t, []string{"a.md", "c.md"}, r.Report.NoIncoming)
	assert.Equal(t, []string{"b.md", "c.md"}, r.Report.NoOutgoing)
	assert.Equal(t, 1, r.RawMatches)
	assert.Empty(t, r.Warnings)
}

func TestAnalyzeCommand_NestedRelativeLinks(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"README.md":          "[guide](docs/guide.md) and [again](./docs/guide.md#setup)",
		"docs/guide.md":      "[home](../README.md) [api](api/ref.md)",
		"docs/api/ref.md":    "[out](../../../elsewhere.md)",
		"docs/lonely.md":     "[site](https://example.com) [top](#top)",
		"docs/image-link.md": "![img](pic.png)",
	})

	r := runAnalyze(t, root)

	assert.Equal(t, 5, r.Report.Stats.TotalDocuments)
	assert.Equal(t, 3, r.Report.Stats.TotalLinks)
	assert.Equal(t, []string{"docs/image-link.md", "docs/lonely.md"}, r.Report.Orphaned)
	assert.Equal(t, 8, r.RawMatches)
	assert.Equal(t, 1, r.ByKind[domain.LinkExternal])
	assert.Equal(t, 1, r.ByKind[domain.LinkAnchor])
	assert.Equal(t, 1, r.ByKind[domain.LinkOutsideRoot])
	assert.Equal(t, 1, r.ByKind[domain.LinkNotMarkdown])
}

func TestAnalyzeCommand_ExcludedDirectories(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md":                       "[dep](node_modules/pkg/README.md) [env](.venv/notes.md)",
		"node_modules/pkg/README.md": "[back](../../a.md)",
		".venv/notes.md":             "[back](../a.md)",
	})

	r := runAnalyze(t, root)

	assert.Equal(t, 1, r.Report.Stats.TotalDocuments)
	assert.Equal(t, 0, r.Report.Stats.TotalLinks)
	assert.Equal(t, []string{"a.md"}, r.Report.Orphaned)
	assert.Equal(t, 2, r.ByKind[domain.LinkExcluded])
}

func TestAnalyzeCommand_LinkToMissingDocumentIsDropped(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "[gone](missing.md)",
	})

	r := runAnalyze(t, root)

	assert.Equal(t, 0, r.Report.Stats.TotalLinks)
	assert.Equal(t, []string{"a.md"}, r.Report.Orphaned)
}

func TestAnalyzeCommand_EmptyRoot(t *testing.T) {
	r := runAnalyze(t, t.TempDir())

	assert.Equal(t, domain.Statistics{}, r.Report.Stats)
	assert.Empty(t, r.Report.Orphaned)
	assert.Empty(t, r.Report.Documents)
}

func TestAnalyzeCommand_Deterministic(t *testing.T) {
	docs := map[string]string{}
	for _, name := range []string{"z", "y", "x", "w", "v", "u", "t", "s"} {
		docs[name+".md"] = "[next](a/" + name + ".md)"
		docs["a/"+name+".md"] = "[up](../" + name + ".md) [root](../z.md)"
	}
	root := writeDocs(t, docs)

	first := runAnalyze(t, root, WithWorkers(1))
	for i := 0; i < 5; i++ {
		again := runAnalyze(t, root, WithWorkers(4))
		assert.Equal(t, first.Report, again.Report)
	}
}

func TestAnalyzeCommand_UnreadableDocumentIsWarning(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "[b](b.md)",
		"b.md": "[a](a.md)",
	})

	cmd := NewAnalyzeCommand(
		filesystem.NewScanner(root),
		&failingReader{
			next:  filesystem.NewReader(),
			fails: map[string]bool{filepath.Join(root, "b.md"): true},
		},
		domain.NewLinkExtractor(nil),
	)
	r, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	// b.md stays registered and still receives a's link
	assert.Equal(t, 2, r.Report.Stats.TotalDocuments)
	assert.Equal(t, 1, r.Report.Stats.TotalLinks)
	assert.Equal(t, []string{"b.md"}, r.Report.NoOutgoing)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "b.md", r.Warnings[0].Path)
	assert.Equal(t, "read", r.Warnings[0].Op)
}

func TestAnalyzeCommand_MissingRootIsFatal(t *testing.T) {
	cmd := NewAnalyzeCommand(
		filesystem.NewScanner(filepath.Join(t.TempDir(), "nope")),
		filesystem.NewReader(),
		domain.NewLinkExtractor(nil),
	)

	_, err := cmd.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrRootNotFound)
	var rootErr *application.RootError
	assert.ErrorAs(t, err, &rootErr)
}

func TestAnalyzeCommand_Validate(t *testing.T) {
	cmd := NewAnalyzeCommand(nil, nil, nil, WithWorkers(0))

	err := cmd.Validate()

	var vErr *application.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "workers", vErr.Field)
}

func TestAnalyzeCommand_SymlinkAliasDoesNotOrphanLinkedDocs(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"index.md":      "[guide](real/guide.md)",
		"real/guide.md": "# Guide",
	})
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	r := runAnalyze(t, root)

	assert.Equal(t, []string{"index.md", "real/guide.md"}, r.Inventory.Paths())
	assert.Equal(t, 1, r.Report.Stats.TotalLinks)
	assert.Empty(t, r.Report.Orphaned)
}
