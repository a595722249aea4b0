package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrandt/noteweave/internal/export"
	"github.com/cbrandt/noteweave/internal/graph"
)

func findArtifact(t *testing.T, artifacts []export.Artifact, path string) string {
	t.Helper()
	for _, a := range artifacts {
		if a.Path == path {
			return string(a.Bytes)
		}
	}
	t.Fatalf("artifact %q not found", path)
	return ""
}

func TestRender_TitleAndBlockContentAreEscaped(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "evil.md", "---\ntitle: <script>alert(1)</script>\n---\n- <img src=x onerror=\"alert(2)\">\n"))

	exporter := export.New(g, export.Config{})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "evil.html")

	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, page, `onerror="alert(2)"`)
}

func TestRender_WikiLinkToKnownNoteProducesResolvedHref(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n"))
	g.Insert(mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- no links\n"))

	exporter := export.New(g, export.Config{})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "alpha.html")

	assert.Contains(t, page, `href="beta.html"`)
	assert.Contains(t, page, `class="wiki-link"`)
}

func TestRender_WikiLinkToUnknownNoteIsMarkedUnresolved(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Nowhere]]\n"))

	exporter := export.New(g, export.Config{})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "alpha.html")

	assert.Contains(t, page, "wiki-link unresolved")
}

func TestRender_BacklinksSectionOmittedWhenConfigured(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n"))
	g.Insert(mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- no links\n"))

	exporter := export.New(g, export.Config{IncludeBacklinks: false})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "beta.html")

	assert.NotContains(t, page, "note-backlinks")
}

func TestRender_BacklinksSectionListsReferrersWhenIncluded(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n"))
	g.Insert(mustParse(t, "beta.md", "---\ntitle: Beta\n---\n- no links\n"))

	exporter := export.New(g, export.Config{IncludeBacklinks: true})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "beta.html")

	assert.Contains(t, page, "note-backlinks")
	assert.Contains(t, page, `href="alpha.html"`)
}

func TestRender_FrontMatterPropertiesNeverRenderWikiLinks(t *testing.T) {
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "alpha.md", "---\ntitle: Alpha\nsummary: mentions [[Beta]] literally\n---\n- content\n"))

	exporter := export.New(g, export.Config{})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "alpha.html")

	assert.Contains(t, page, "mentions [[Beta]] literally")
	assert.NotContains(t, page, `class="wiki-link"`)
}

func TestRender_FencedCodeBlockContentIsEscapedNotInterpreted(t *testing.T) {
	content := "---\ntitle: Snippet\n---\n- ```html\n<b>not bold</b>\n```\n"
	g := graph.New(graph.DefaultConfig())
	g.Insert(mustParse(t, "snippet.md", content))

	exporter := export.New(g, export.Config{})
	artifacts, _ := exporter.Export()
	page := findArtifact(t, artifacts, "snippet.html")

	assert.Contains(t, page, `<pre><code class="language-html">`)
	assert.Contains(t, page, "&lt;b&gt;not bold&lt;/b&gt;")
}
