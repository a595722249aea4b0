package export

import (
	"fmt"
	"strings"

	"github.com/cbrandt/noteweave/internal/escape"
	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/inline"
	"github.com/cbrandt/noteweave/internal/noteparse"
)

func (e *Exporter) renderIndex() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>Notes</title>\n")
	b.WriteString("<link rel=\"stylesheet\" href=\"style.css\">\n")
	b.WriteString("</head>\n<body>\n<div class=\"container\">\n")
	b.WriteString("<h1>Notes</h1>\n<ul class=\"note-index\">\n")

	for _, sp := range e.sortedByTitle() {
		note, _ := e.g.Note(sp)
		class := ""
		if e.g.IsOrphan(sp) {
			class = " class=\"orphan\""
		}
		if href, ok := e.hrefFor(sp); ok {
			fmt.Fprintf(&b, "<li%s><a href=\"%s\">%s</a></li>\n", class, href, escape.HTMLText(note.Title))
		} else {
			fmt.Fprintf(&b, "<li%s>%s</li>\n", class, escape.HTMLText(note.Title))
		}
	}

	b.WriteString("</ul>\n</div>\n")
	b.WriteString(e.scriptTag())
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (e *Exporter) renderNote(note *noteparse.Note) string {
	escapedTitle := escape.HTMLText(note.Title)
	escapedPath := escape.HTMLText(note.SourcePath)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if e.cfg.RunID != "" {
		fmt.Fprintf(&b, "<meta name=\"generator-run\" content=\"%s\">\n", escape.HTMLText(e.cfg.RunID))
	}
	b.WriteString("<title>" + escapedTitle + "</title>\n")
	b.WriteString("<link rel=\"stylesheet\" href=\"style.css\">\n")
	b.WriteString(e.scriptTag())
	b.WriteString("</head>\n<body>\n<div class=\"container\">\n")
	b.WriteString("<nav><a href=\"index.html\">&larr; Index</a></nav>\n")
	fmt.Fprintf(&b, "<article data-path=\"%s\">\n", escapedPath)
	b.WriteString("<h1>" + escapedTitle + "</h1>\n")

	if note.Properties.Len() > 0 {
		b.WriteString(e.renderProperties(note.Properties))
	}
	if len(note.Tags) > 0 {
		b.WriteString(e.renderTags(note.Tags))
	}

	b.WriteString("<div class=\"note-blocks\">")
	b.WriteString(e.renderBlockList(note.Blocks, 1))
	b.WriteString("</div>\n")

	if e.cfg.IncludeBacklinks {
		if backs := e.g.BackLinks(note.SourcePath); len(backs) > 0 {
			b.WriteString(e.renderBacklinks(backs))
		}
	}

	b.WriteString("</article>\n</div>\n</body>\n</html>\n")
	return b.String()
}

func (e *Exporter) renderProperties(props *noteparse.OrderedMap) string {
	var b strings.Builder
	b.WriteString("<dl class=\"note-properties\">\n")
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		b.WriteString("<dt>" + escape.HTMLText(k) + "</dt><dd>" + escape.HTMLText(v) + "</dd>\n")
	}
	b.WriteString("</dl>\n")
	return b.String()
}

func (e *Exporter) renderTags(tags []string) string {
	var b strings.Builder
	b.WriteString("<div class=\"note-tags\">")
	for i, t := range tags {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("<span class=\"tag\">#" + escape.HTMLText(t) + "</span>")
	}
	b.WriteString("</div>\n")
	return b.String()
}

func (e *Exporter) renderBacklinks(backs []graph.BackRef) string {
	var b strings.Builder
	b.WriteString("<section class=\"note-backlinks\">\n<h2>Backlinks</h2>\n<ul>\n")
	for _, r := range backs {
		if href, ok := e.hrefFor(r.Referrer); ok {
			b.WriteString("<li><a href=\"" + href + "\">" + escape.HTMLText(r.Display) + "</a></li>\n")
		} else {
			b.WriteString("<li>" + escape.HTMLText(r.Display) + "</li>\n")
		}
	}
	b.WriteString("</ul>\n</section>\n")
	return b.String()
}

// renderBlockList recurses into block.Children bounded by maxRenderDepth,
// mirroring the parser's own depth cap so a pathologically deep tree (were
// one somehow constructed outside the parser) cannot blow the call stack.
func (e *Exporter) renderBlockList(blocks []*noteparse.Block, depth int) string {
	if len(blocks) == 0 || depth > maxRenderDepth {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul class=\"block-list\">")
	for _, blk := range blocks {
		b.WriteString(e.renderBlock(blk, depth))
	}
	b.WriteString("</ul>")
	return b.String()
}

func (e *Exporter) renderBlock(blk *noteparse.Block, depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<li class=\"block\" data-block-id=\"%s\" data-depth=\"%d\">",
		escape.HTMLText(blk.ID), blk.Depth)
	b.WriteString("<div class=\"block-content\">" + e.renderInline(blk.Content) + "</div>")
	if len(blk.Children) > 0 {
		b.WriteString(e.renderBlockList(blk.Children, depth+1))
	}
	b.WriteString("</li>")
	return b.String()
}

// renderInline tokenizes raw block content with the shared inline lexer and
// escapes each piece exactly once at the point it is written, rather than
// escaping the whole string up front and then re-scanning the escaped
// result: that would force link targets through HTML-entity mangling
// before they are resolved against the graph.
func (e *Exporter) renderInline(content string) string {
	var b strings.Builder
	for _, tok := range inline.Tokenize(content) {
		switch tok.Kind {
		case inline.Text:
			b.WriteString(escape.HTMLText(tok.Text))
		case inline.WikiLink:
			b.WriteString(e.renderWikiLink(tok.Target, tok.Display))
		case inline.Tag:
			b.WriteString("<span class=\"tag\">#" + escape.HTMLText(tok.Text) + "</span>")
		case inline.Strong:
			b.WriteString("<strong>" + escape.HTMLText(tok.Text) + "</strong>")
		case inline.Em:
			b.WriteString("<em>" + escape.HTMLText(tok.Text) + "</em>")
		case inline.Code:
			b.WriteString("<code>" + escape.HTMLText(tok.Text) + "</code>")
		case inline.Fence:
			b.WriteString(e.renderFence(tok.Lang, tok.Text))
		}
	}
	return b.String()
}

func (e *Exporter) renderWikiLink(target, display string) string {
	escapedDisplay := escape.HTMLText(display)

	if resolvedPath, ok := e.g.ResolveTarget(target); ok {
		if href, safe := e.hrefFor(resolvedPath); safe {
			return "<a href=\"" + href + "\" class=\"wiki-link\">" + escapedDisplay + "</a>"
		}
	}

	return "<a href=\"#" + escape.HTMLText(target) + "\" class=\"wiki-link unresolved\">" + escapedDisplay + "</a>"
}

func (e *Exporter) renderFence(lang, body string) string {
	class := ""
	if lang != "" && langClassRE.MatchString(lang) {
		class = " class=\"language-" + lang + "\""
	}
	return "<pre><code" + class + ">" + escape.HTMLText(body) + "</code></pre>"
}

func (e *Exporter) scriptTag() string {
	var b strings.Builder
	b.WriteString("<script src=\"app.js\" defer></script>\n")
	if e.cfg.IncludeGraphView {
		b.WriteString("<script>window.noteweaveGraphView = true;</script>\n")
	}
	return b.String()
}
