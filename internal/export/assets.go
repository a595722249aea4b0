package export

// defaultCSS returns the base stylesheet for theme, falling back to the
// default theme for any unrecognized label (spec.md §3 ExportConfig.theme).
func defaultCSS(theme string) string {
	accent := "#3b6ea5"
	bg := "#ffffff"
	fg := "#1b1b1b"

	switch theme {
	case "dark":
		accent = "#7aa2f7"
		bg = "#111318"
		fg = "#e6e6e6"
	case "", "default":
		// already set above
	default:
		// unknown theme label: fall back to default, silently
	}

	return `:root {
  --nw-accent: ` + accent + `;
  --nw-bg: ` + bg + `;
  --nw-fg: ` + fg + `;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  background: var(--nw-bg);
  color: var(--nw-fg);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  line-height: 1.5;
}

.container {
  max-width: 48rem;
  margin: 0 auto;
  padding: 1.5rem;
}

nav a, .wiki-link {
  color: var(--nw-accent);
  text-decoration: none;
}

nav a:hover, .wiki-link:hover {
  text-decoration: underline;
}

.wiki-link.unresolved {
  color: #a94442;
  border-bottom: 1px dashed #a94442;
}

.note-properties {
  display: grid;
  grid-template-columns: max-content 1fr;
  gap: 0.25rem 1rem;
  margin: 1rem 0;
}

.note-tags {
  margin: 0.5rem 0 1rem;
}

.tag {
  display: inline-block;
  padding: 0.1rem 0.5rem;
  margin-right: 0.25rem;
  border-radius: 999px;
  background: color-mix(in srgb, var(--nw-accent) 18%, transparent);
  font-size: 0.85em;
}

.block-list {
  list-style: none;
  padding-left: 1.25rem;
}

.block-list > .block {
  margin: 0.2rem 0;
}

.note-index .orphan {
  opacity: 0.6;
}

.note-backlinks ul {
  padding-left: 1.25rem;
}

pre code {
  display: block;
  padding: 0.75rem;
  overflow-x: auto;
  background: color-mix(in srgb, var(--nw-fg) 6%, transparent);
  border-radius: 0.25rem;
}
`
}

// appJS returns the minimal navigation script: no network calls, and a
// toggleable empty hook for graph-view rendering (spec.md §1, §3).
func appJS() string {
	return `(function () {
  "use strict";

  function focusArticle() {
    var article = document.querySelector("article[data-path]");
    if (article) {
      article.setAttribute("tabindex", "-1");
    }
  }

  function renderGraphView() {
    // Graph-view rendering is a no-op in the core; the host or a
    // companion script may replace this hook.
    if (!window.noteweaveGraphView) {
      return;
    }
  }

  document.addEventListener("DOMContentLoaded", function () {
    focusArticle();
    renderGraphView();
  });
})();
`
}

func (e *Exporter) styleCSS() string {
	css := defaultCSS(e.cfg.Theme)
	if e.cfg.CustomCSS != "" {
		css += "\n" + e.cfg.CustomCSS
	}
	return css
}

func (e *Exporter) appJS() string {
	return appJS()
}
