package noteparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrandt/noteweave/internal/noteparse"
)

func TestParse_FrontMatter_DecodesProperties(t *testing.T) {
	content := "---\ntitle: My Note\npublished: true\ncount: 3\n---\n- a bullet\n"

	note, err := noteparse.Parse("a.md", []byte(content), noteparse.DefaultConfig())
	require.NoError(t, err)

	title, ok := note.Properties.Get("title")
	require.True(t, ok)
	assert.Equal(t, "My Note", title)

	published, ok := note.Properties.Get("published")
	require.True(t, ok)
	assert.Equal(t, "true", published)

	count, ok := note.Properties.Get("count")
	require.True(t, ok)
	assert.Equal(t, "3", count)
}

func TestParse_FrontMatter_QuotedValueKeepsQuotesVerbatim(t *testing.T) {
	content := "---\ntitle: \"Quoted \\\"Title\\\"\"\n---\n- body\n"

	note, err := noteparse.Parse("a.md", []byte(content), noteparse.DefaultConfig())
	require.NoError(t, err)

	title, ok := note.Properties.Get("title")
	require.True(t, ok)
	assert.Equal(t, `"Quoted \"Title\""`, title)
}

func TestParse_FrontMatter_NonCanonicalScalarsAreNeverReformatted(t *testing.T) {
	content := "---\nid: 05\nflag: True\ncode: 0x1A\ncount: 1_000\nn: +5\n---\n- body\n"

	note, err := noteparse.Parse("a.md", []byte(content), noteparse.DefaultConfig())
	require.NoError(t, err)

	for key, want := range map[string]string{
		"id":    "05",
		"flag":  "True",
		"code":  "0x1A",
		"count": "1_000",
		"n":     "+5",
	} {
		got, ok := note.Properties.Get(key)
		require.True(t, ok, "missing property %q", key)
		assert.Equal(t, want, got, "property %q", key)
	}
}

func TestParse_FrontMatter_StripsAtMostOneLeadingSpaceAfterColon(t *testing.T) {
	content := "---\ntitle:   extra spaces kept\n---\n- body\n"

	note, err := noteparse.Parse("a.md", []byte(content), noteparse.DefaultConfig())
	require.NoError(t, err)

	title, ok := note.Properties.Get("title")
	require.True(t, ok)
	assert.Equal(t, "  extra spaces kept", title)
}

func TestParse_NoFrontMatter_IsNotAnError(t *testing.T) {
	note, err := noteparse.Parse("a.md", []byte("- just a bullet\n"), noteparse.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, note.Properties.Len())
}

func TestParse_UnclosedFrontMatterFence_IsAnError(t *testing.T) {
	_, err := noteparse.Parse("a.md", []byte("---\ntitle: Orphaned\n- bullet\n"), noteparse.DefaultConfig())
	require.Error(t, err)
}

func TestParse_FrontMatterLineMissingColon_IsAnError(t *testing.T) {
	_, err := noteparse.Parse("a.md", []byte("---\nnot a property\n---\n"), noteparse.DefaultConfig())
	require.Error(t, err)
}
