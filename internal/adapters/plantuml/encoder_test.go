package plantuml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgraph/internal/domain"
)

func TestEncoder_Encode(t *testing.T) {
	root := domain.BuildMindmap("docs", []string{
		"README.md",
		"guide/setup.md",
		"guide/api/ref.md",
		"about.md",
	})

	text, err := NewEncoder().Encode(root)
	require.NoError(t, err)

	want := `@startmindmap
* docs/
** guide/
*** api/
**** ref.md
*** setup.md
** README.md
** about.md
@endmindmap
`
	assert.Equal(t, want, text)
}

func TestEncoder_EmptyTree(t *testing.T) {
	text, err := NewEncoder().Encode(domain.BuildMindmap("empty", nil))
	require.NoError(t, err)

	assert.Equal(t, "@startmindmap\n* empty/\n@endmindmap\n", text)
}

func TestEncoder_HighlightDecoratesFilesOnly(t *testing.T) {
	root := domain.BuildMindmap("docs", []string{"a.md", "sub/b.md"})

	text, err := NewEncoder(WithHighlight([]string{"sub/b.md", "sub"}, "#Orange")).Encode(root)
	require.NoError(t, err)

	assert.Contains(t, text, "***[#Orange] b.md\n")
	assert.Contains(t, text, "** sub/\n")
	assert.Contains(t, text, "** a.md\n")
}
