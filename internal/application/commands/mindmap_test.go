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
	"docgraph/internal/adapters/plantuml"
	"docgraph/internal/application"
	"docgraph/internal/domain"
)

type stubRenderer struct {
	available bool
	err       error
	rendered  []string
}

func (r *stubRenderer) Available() bool { return r.available }

func (r *stubRenderer) Render(_ context.Context, source string) (string, error) {
	r.rendered = append(r.rendered, source)
	if r.err != nil {
		return "", r.err
	}
	return plantuml.ImagePath(source, "png"), nil
}

func TestMindmapCommand_TreeIgnoresLinks(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"README.md":                  "[a](guide/a.md)",
		"guide/a.md":                 "# A",
		"guide/deep/b.md":            "# B",
		"node_modules/pkg/README.md": "# dep",
	})

	result, err := NewMindmapCommand(filesystem.NewScanner(root), plantuml.NewEncoder()).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(root), result.Root.Name)
	assert.Equal(t, 3, result.Root.CountFiles())
	require.Len(t, result.Root.Children, 2)
	assert.Equal(t, "guide", result.Root.Children[0].Name)
	assert.Equal(t, "README.md", result.Root.Children[1].Name)
	assert.NotContains(t, result.Text, "node_modules")
	assert.Empty(t, result.SourcePath)
}

func TestMindmapCommand_WritesSourceAndRenders(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# A"})
	out := filepath.Join(t.TempDir(), "docs_mindmap.puml")
	renderer := &stubRenderer{available: true}

	result, err := NewMindmapCommand(
		filesystem.NewScanner(root),
		plantuml.NewEncoder(),
		WithOutput(out),
		WithRenderer(renderer),
	).Execute(context.Background())
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, result.Text, string(written))
	assert.Equal(t, []string{out}, renderer.rendered)
	assert.Equal(t, plantuml.ImagePath(out, "png"), result.ImagePath)
	assert.NoError(t, result.Warning)
}

func TestMindmapCommand_RendererAbsentIsDegraded(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# A"})
	out := filepath.Join(t.TempDir(), "docs_mindmap.puml")
	renderer := &stubRenderer{available: false}

	result, err := NewMindmapCommand(
		filesystem.NewScanner(root),
		plantuml.NewEncoder(),
		WithOutput(out),
		WithRenderer(renderer),
	).Execute(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.Empty(t, renderer.rendered)
	assert.Empty(t, result.ImagePath)
	assert.ErrorIs(t, result.Warning, application.ErrRendererUnavailable)
}

func TestMindmapCommand_RenderFailureIsDegraded(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# A"})
	out := filepath.Join(t.TempDir(), "docs_mindmap.puml")
	renderer := &stubRenderer{available: true, err: errors.New("boom")}

	result, err := NewMindmapCommand(
		filesystem.NewScanner(root),
		plantuml.NewEncoder(),
		WithOutput(out),
		WithRenderer(renderer),
	).Execute(context.Background())
	require.NoError(t, err)

	var renderErr *application.RenderError
	require.ErrorAs(t, result.Warning, &renderErr)
	assert.Equal(t, out, renderErr.Source)
	assert.NotErrorIs(t, result.Warning, application.ErrRendererUnavailable)
}

func TestMindmapCommand_ReusesInventory(t *testing.T) {
	inv := &domain.Inventory{
		Root:  "/srv/docs",
		Files: []domain.File{{Path: "b.md"}, {Path: "a/x.md"}},
	}

	result, err := NewMindmapCommand(nil, plantuml.NewEncoder(), WithInventory(inv)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "@startmindmap\n* docs/\n** a/\n*** x.md\n** b.md\n@endmindmap\n", result.Text)
}

func TestMindmapCommand_Deterministic(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"z.md": "", "a.md": "", "m/n.md": "", "m/a.md": "", "b/c/d.md": "",
	})

	first, err := NewMindmapCommand(filesystem.NewScanner(root), plantuml.NewEncoder()).Execute(context.Background())
	require.NoError(t, err)
	second, err := NewMindmapCommand(filesystem.NewScanner(root), plantuml.NewEncoder()).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestMindmapCommand_Validate(t *testing.T) {
	err := NewMindmapCommand(nil, plantuml.NewEncoder()).Validate()

	var vErr *application.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "scanner", vErr.Field)
}
