package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/noteparse"
)

func mustParse(t *testing.T, path, content string) *noteparse.Note {
	t.Helper()
	note, err := noteparse.Parse(path, []byte(content), noteparse.DefaultConfig())
	require.NoError(t, err)
	return note
}

func TestGraph_Insert_ResolvesKnownTargetAndRecordsBackLink(t *testing.T) {
	g := graph.New(graph.DefaultConfig())

	beta := mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- no links here\n")
	alpha := mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n")

	g.Insert(beta)
	problems := g.Insert(alpha)
	assert.Empty(t, problems)

	backs := g.BackLinks("beta.md")
	require.Len(t, backs, 1)
	assert.Equal(t, "alpha.md", backs[0].Referrer)
	assert.Equal(t, "Beta", backs[0].Display)
}

func TestGraph_Insert_UnresolvedTargetIsInformationalOnly(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	alpha := mustParse(t, "alpha.md", "- sees [[Nowhere]]\n")

	problems := g.Insert(alpha)
	require.Len(t, problems, 1)
	assert.Equal(t, "Nowhere", problems[0].Target)

	_, ok := g.ResolveTarget("Nowhere")
	assert.False(t, ok)
}

func TestGraph_ResolveTarget_IsCaseInsensitiveByDefault(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "Alpha.md", "---\ntitle: Alpha\n---\n- content\n"))

	resolved, ok := g.ResolveTarget("alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha.md", resolved)
}

func TestGraph_ResolveTarget_CaseSensitiveConfigRejectsMismatch(t *testing.T) {
	g := graph.New(graph.Config{CaseInsensitive: false, SlashEncoding: graph.SlashEncodingTripleUnderscore})
	g.Insert(mustParse(t, "Alpha.md", "---\ntitle: Alpha\n---\n- content\n"))

	_, ok := g.ResolveTarget("alpha")
	assert.False(t, ok)

	resolved, ok := g.ResolveTarget("Alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha.md", resolved)
}

func TestGraph_ResolveTarget_SlashEncodingRewritesTripleUnderscore(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "projects___roadmap.md", "---\ntitle: Roadmap\n---\n- content\n"))

	resolved, ok := g.ResolveTarget("projects/roadmap")
	require.True(t, ok)
	assert.Equal(t, "projects___roadmap.md", resolved)
}

func TestGraph_ResolveTarget_TriesWithMDSuffixAppended(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- content\n"))

	resolved, ok := g.ResolveTarget("Beta")
	require.True(t, ok)
	assert.Equal(t, "beta.md", resolved)
}

func TestGraph_Stats_CountsOrphanPagesWithNoForwardOrBackLinks(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n"))
	g.Insert(mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- no links\n"))
	g.Insert(mustParse(t, "gamma.md", "---\ntitle: Gamma\n---\n- isolated\n"))

	stats := g.Stats()
	assert.Equal(t, 3, stats.PageCount)
	assert.Equal(t, 1, stats.OrphanPages)
	assert.True(t, g.IsOrphan("gamma.md"))
	assert.False(t, g.IsOrphan("alpha.md"))
	assert.False(t, g.IsOrphan("beta.md"))
}

func TestGraph_EmptyGraph_StatsAreAllZero(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	stats := g.Stats()
	assert.Equal(t, graph.Stats{}, stats)
}
