// Package export renders a graph.Graph into the static HTML/CSS/JS artifact
// set described in spec.md §4.3: one page per note, an index, and shared
// assets. Every string that crosses into HTML text or attribute context
// passes through internal/escape exactly once; the inline body of each
// block is rendered by the single shared tokenizer in internal/inline so
// no later pass ever re-scans another pass's output.
package export

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cbrandt/noteweave/internal/errs"
	"github.com/cbrandt/noteweave/internal/escape"
	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/pathguard"
)

// maxRenderDepth mirrors the note parser's nesting cap (spec.md §4.3:
// "rendering is recursive but bounded by the same configured cap").
const maxRenderDepth = 256

// Config is the exporter's run configuration (spec.md §3 ExportConfig).
type Config struct {
	// Theme selects a CSS variant; an unrecognized label falls back to the
	// default theme.
	Theme string

	// IncludeBacklinks, when false, omits the backlinks section.
	IncludeBacklinks bool

	// IncludeGraphView, when true, emits the graph-view JS hook. Rendering
	// the graph itself is a no-op in the core (spec.md §1, out of scope).
	IncludeGraphView bool

	// CustomCSS is raw CSS appended after the default styles.
	CustomCSS string

	// RunID optionally stamps a <meta name="generator-run"> tag for support
	// triage; it has no effect on link resolution or escaping.
	RunID string
}

// Artifact is one emitted (output_relative_path, bytes) pair.
type Artifact struct {
	Path  string
	Bytes []byte
}

// Exporter holds the graph being rendered, the run configuration, and the
// precomputed, validated output path for every note that has one.
// Exporter instances are constructed fresh per publish run; there is no
// process-wide state (spec.md §5).
type Exporter struct {
	g           *graph.Graph
	cfg         Config
	outputPaths map[string]string // source_path -> output-relative path
}

var langClassRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// New constructs an Exporter for g. Output paths are computed once here so
// that hrefFor lookups during rendering never repeat the validation work.
func New(g *graph.Graph, cfg Config) *Exporter {
	e := &Exporter{g: g, cfg: cfg, outputPaths: make(map[string]string)}
	for _, sp := range g.Notes() {
		if out, err := outputPathFor(sp); err == nil {
			e.outputPaths[sp] = out
		}
	}
	return e
}

// Export produces index.html, style.css, app.js, and one HTML file per
// note, in deterministic order: notes are sorted by title
// (case-insensitive), ties broken by source_path (spec.md §5 Ordering
// guarantees). A note whose source path cannot be mapped to a safe output
// path is skipped and reported via the returned errors, rather than
// aborting the run (spec.md §7).
func (e *Exporter) Export() ([]Artifact, []error) {
	var problems []error

	artifacts := []Artifact{
		{Path: "style.css", Bytes: []byte(e.styleCSS())},
		{Path: "app.js", Bytes: []byte(e.appJS())},
		{Path: "index.html", Bytes: []byte(e.renderIndex())},
	}

	for _, sp := range e.sortedBySourcePath(e.sortedByTitle()) {
		note, _ := e.g.Note(sp)
		out, ok := e.outputPaths[sp]
		if !ok {
			problems = append(problems, errs.OutputPath(sp))
			continue
		}
		artifacts = append(artifacts, Artifact{Path: out, Bytes: []byte(e.renderNote(note))})
	}

	return artifacts, problems
}

// sortedByTitle returns every source_path sorted by note title
// (case-insensitive), ties broken by source_path.
func (e *Exporter) sortedByTitle() []string {
	paths := e.g.Notes()
	sort.Slice(paths, func(i, j int) bool {
		ni, _ := e.g.Note(paths[i])
		nj, _ := e.g.Note(paths[j])
		ti, tj := strings.ToLower(ni.Title), strings.ToLower(nj.Title)
		if ti != tj {
			return ti < tj
		}
		return paths[i] < paths[j]
	})
	return paths
}

// sortedBySourcePath is a pass-through identity used as the final ordering
// key; kept as a named step so index-page ordering and per-note emission
// ordering are visibly governed by the same comparator.
func (e *Exporter) sortedBySourcePath(paths []string) []string {
	return paths
}

// hrefFor returns the sanitized href for sourcePath's output page.
func (e *Exporter) hrefFor(sourcePath string) (string, bool) {
	out, ok := e.outputPaths[sourcePath]
	if !ok {
		return "", false
	}
	return escape.SanitizeAttrURL(out)
}

// outputPathFor rewrites a source path's extension to .html and revalidates
// the result with the path guard, preserving directory structure
// (slash-preserving per spec.md §4.3).
func outputPathFor(sourcePath string) (string, error) {
	if err := pathguard.Validate(sourcePath, pathguard.Options{}); err != nil {
		return "", errs.OutputPath(sourcePath)
	}
	base := sourcePath
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	out := base + ".html"
	if err := pathguard.Validate(out, pathguard.Options{}); err != nil {
		return "", errs.OutputPath(sourcePath)
	}
	return out, nil
}
