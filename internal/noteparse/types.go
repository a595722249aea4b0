// Package noteparse lexes and parses a single note's front-matter and
// indentation-based block tree, and extracts its inline wiki-links and
// hashtags. Parse is a pure function: it performs no I/O.
package noteparse

// OrderedMap is an insertion-ordered string-to-string mapping, used for
// front-matter and block properties where both key uniqueness and
// rendering order matter.
type OrderedMap struct {
	keys []string
	vals map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{vals: make(map[string]string)}
}

// Set inserts or overwrites key, preserving its original insertion position
// on overwrite.
func (m *OrderedMap) Set(key, value string) {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns keys in insertion order. The caller must not mutate it.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// LinkRef is one inline [[Target]] or [[Target|Display]] occurrence.
type LinkRef struct {
	Target  string
	Display string
}

// Block is a single bullet in the outline, and the tree node it roots.
type Block struct {
	// ID is a stable identifier unique within a note: a hyphen-joined
	// ordinal path, e.g. "0", "0-1", "1-0-2".
	ID string

	// Content is the raw UTF-8 bullet text, after stripping the "- "
	// marker and leading indentation and joining any continuation lines
	// with a single interior newline. It is never concatenated into HTML
	// without passing through the escape layer.
	Content string

	// Depth is 1 for a top-level bullet (the implicit note root is
	// depth 0) and parent.Depth+1 for every descendant.
	Depth int

	Children []*Block

	// Properties holds this block's own "key:: value" children, if any.
	// Nil when the block has none.
	Properties *OrderedMap
}

// Note is one source file after parsing.
type Note struct {
	// SourcePath is the relative path identifier; acts as the primary key
	// in the graph. Parse does not validate it; publish.Publish checks it
	// with the path guard before parsing.
	SourcePath string

	Title      string
	Properties *OrderedMap
	Blocks     []*Block

	// Tags is the insertion-ordered, deduplicated set of hashtags found
	// across all blocks.
	Tags []string

	// ForwardLinks is every wiki-link occurrence across all blocks, in
	// document order, duplicates included.
	ForwardLinks []LinkRef
}

// Config controls parser behavior at the edges the specification leaves
// open (spec.md §9, Open Questions 1 and 2).
type Config struct {
	// TabWidth is the number of spaces one leading tab counts as when
	// computing a line's indentation. Default 2.
	TabWidth int

	// MaxDepth is the nesting cap; exceeding it yields ParseError::DepthLimit
	// instead of unbounded recursion. Default 256.
	MaxDepth int

	// SlashEncoding controls how "___" in a file stem is decoded for title
	// derivation. "triple-underscore" (default) decodes it to "/"; "none"
	// leaves it literal. This mirrors the graph's link-target encoding
	// (internal/graph.Config.SlashEncoding) and should normally be set to
	// the same value.
	SlashEncoding string
}

const (
	SlashEncodingTripleUnderscore = "triple-underscore"
	SlashEncodingNone             = "none"
)

// DefaultConfig returns the specification's suggested defaults.
func DefaultConfig() Config {
	return Config{TabWidth: 2, MaxDepth: 256, SlashEncoding: SlashEncodingTripleUnderscore}
}
