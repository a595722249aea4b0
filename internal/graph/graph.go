// Package graph builds the path→note map and forward/back-link indices
// from parsed notes, and answers link-resolution, statistics, and
// neighbor-traversal queries over the result.
package graph

import (
	"strings"

	"github.com/cbrandt/noteweave/internal/errs"
	"github.com/cbrandt/noteweave/internal/noteparse"
)

const (
	SlashEncodingTripleUnderscore = noteparse.SlashEncodingTripleUnderscore
	SlashEncodingNone             = noteparse.SlashEncodingNone
)

// Config controls link-target normalization (spec.md §4.2, §9 Open
// Questions 1 and 2).
type Config struct {
	// CaseInsensitive controls whether link targets are lowercased before
	// lookup. Default true.
	CaseInsensitive bool

	// SlashEncoding controls whether "/" in a link target is rewritten to
	// "___" before lookup, matching how source paths with slash-bearing
	// titles are stored. Default "triple-underscore".
	SlashEncoding string
}

// DefaultConfig returns the specification's suggested defaults.
func DefaultConfig() Config {
	return Config{CaseInsensitive: true, SlashEncoding: SlashEncodingTripleUnderscore}
}

// BackRef is one incoming reference: a referrer source_path and the display
// text the referrer used for the link.
type BackRef struct {
	Referrer string
	Display  string
}

// Graph is the collection of notes plus the forward and back indices built
// by successive calls to Insert. It is constructed serially by the
// orchestrator and is read-only once export begins.
type Graph struct {
	cfg Config

	notes      map[string]*noteparse.Note
	order      []string // insertion order of source paths, for deterministic iteration
	lowerIndex map[string]string // lowercased source_path -> actual source_path

	// backIndex maps a normalized target identifier to the ordered,
	// deduplicated sequence of (referrer, display) pairs that reference it.
	backIndex map[string][]BackRef
}

// New constructs an empty Graph.
func New(cfg Config) *Graph {
	if cfg.SlashEncoding == "" {
		cfg.SlashEncoding = SlashEncodingTripleUnderscore
	}
	return &Graph{
		cfg:        cfg,
		notes:      make(map[string]*noteparse.Note),
		lowerIndex: make(map[string]string),
		backIndex:  make(map[string][]BackRef),
	}
}

// Insert adds note to the graph and updates the back-link index for every
// forward link it carries. The returned errors are informational
// GraphError::UnresolvedTarget values (spec.md §4.2): the link is still
// recorded in the back-index, and insertion never fails outright.
func (g *Graph) Insert(note *noteparse.Note) []*errs.Error {
	if _, exists := g.notes[note.SourcePath]; !exists {
		g.order = append(g.order, note.SourcePath)
	}
	g.notes[note.SourcePath] = note
	g.lowerIndex[strings.ToLower(note.SourcePath)] = note.SourcePath

	var problems []*errs.Error
	for _, link := range note.ForwardLinks {
		normalized, resolved := g.normalize(link.Target)
		g.recordBackRef(normalized, note.SourcePath, link.Display)
		if !resolved {
			problems = append(problems, errs.UnresolvedTarget(note.SourcePath, link.Target))
		}
	}
	return problems
}

func (g *Graph) recordBackRef(normalizedTarget, referrer, display string) {
	for _, existing := range g.backIndex[normalizedTarget] {
		if existing.Referrer == referrer && existing.Display == display {
			return
		}
	}
	g.backIndex[normalizedTarget] = append(g.backIndex[normalizedTarget], BackRef{Referrer: referrer, Display: display})
}

// normalize applies the link-target normalization algorithm (spec.md §4.2):
// trim, optionally lowercase, optionally rewrite "/" to "___", then try the
// candidate as-is before trying it with ".md" appended. It returns the
// normalized form used as the back-index key and whether that form resolved
// to a known note.
func (g *Graph) normalize(target string) (normalized string, resolved bool) {
	c := strings.TrimSpace(target)
	if g.cfg.CaseInsensitive {
		c = strings.ToLower(c)
	}
	if g.cfg.SlashEncoding == SlashEncodingTripleUnderscore {
		c = strings.ReplaceAll(c, "/", "___")
	}

	candidates := []string{c}
	if !strings.HasSuffix(c, ".md") {
		candidates = append(candidates, c+".md")
	}

	for _, cand := range candidates {
		if g.lookup(cand) != nil {
			return cand, true
		}
	}
	return candidates[len(candidates)-1], false
}

func (g *Graph) lookup(normalizedCandidate string) *noteparse.Note {
	if g.cfg.CaseInsensitive {
		if actual, ok := g.lowerIndex[normalizedCandidate]; ok {
			return g.notes[actual]
		}
		return nil
	}
	return g.notes[normalizedCandidate]
}

// Note returns the note stored at source_path, if any.
func (g *Graph) Note(sourcePath string) (*noteparse.Note, bool) {
	n, ok := g.notes[sourcePath]
	return n, ok
}

// Notes returns every source_path in insertion order.
func (g *Graph) Notes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// BackLinks returns the back-references recorded for sourcePath, resolved
// the same way a link target would be.
func (g *Graph) BackLinks(sourcePath string) []BackRef {
	normalized, _ := g.normalize(sourcePath)
	return g.backIndex[normalized]
}

// ResolveTarget reports whether target normalizes to a known note, and if
// so returns that note's source_path.
func (g *Graph) ResolveTarget(target string) (sourcePath string, ok bool) {
	normalized, resolved := g.normalize(target)
	if !resolved {
		return "", false
	}
	if g.cfg.CaseInsensitive {
		actual := g.lowerIndex[normalized]
		return actual, actual != ""
	}
	return normalized, true
}
