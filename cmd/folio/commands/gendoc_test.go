package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/folio/internal/post"
)

func TestGenDoc(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs")

	stdout, _, err := execute(t, "gen-doc", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Documentation generated in "+out)

	data, err := os.ReadFile(filepath.Join(out, "folio_config_path.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data),
		"---\ntitle: folio config path\npublishedAt: 2024-07-01\nsummary: Reference for folio config path\n---\n"),
		"unexpected header:\n%s", data)

	// the generated pages are posts folio can read
	loader := post.NewLoader(out, post.WithExtension(".md"))
	posts, err := loader.Load(t.Context())
	require.NoError(t, err)
	assert.NotEmpty(t, posts)
	for _, p := range posts {
		assert.False(t, p.Validate().HasErrors(), "%s: %v", p.Slug, p.Validate().Issues)
	}
}

func TestGenDoc_RequiresOut(t *testing.T) {
	_, _, err := execute(t, "gen-doc")
	require.Error(t, err)
}

func TestDocLink(t *testing.T) {
	assert.Equal(t, "/blog/folio_list", docLink("folio_list.md"))
}
