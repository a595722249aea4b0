// Package inline implements the single-pass tokenizer shared by the note
// parser (which mines wiki-links and tags out of it for graph data) and the
// HTML exporter (which renders every token kind). Using one tokenizer for
// both concerns is what makes "escape once, escape correctly" tractable: no
// later pass ever re-scans another pass's output.
//
// The character-class dispatch here is adapted from goldmark's inline
// parser trigger-table approach (github.com/yuin/goldmark/parser), reduced
// to the narrow subset of spans the note format defines: wiki-links,
// hashtags, **strong**, *em*, `code`, and fenced code blocks. It is not a
// CommonMark parser; unrecognized syntax degrades to plain text.
package inline

import "regexp"

// Kind identifies the span a Token represents.
type Kind int

const (
	// Text is a run of plain content between recognized spans.
	Text Kind = iota
	// WikiLink is a [[Target]] or [[Target|Display]] occurrence.
	WikiLink
	// Tag is a #hashtag occurrence.
	Tag
	// Strong is a **bold** span.
	Strong
	// Em is a *italic* span.
	Em
	// Code is an inline `code` span.
	Code
	// Fence is a fenced code block (```lang\n...\n```).
	Fence
)

// Token is one recognized span of a block's raw content.
type Token struct {
	Kind Kind

	// Text holds: the literal run for Text, the tag name (without '#') for
	// Tag, the inner text for Strong/Em/Code, and the body for Fence.
	Text string

	// Target and Display are populated only for WikiLink.
	Target  string
	Display string

	// Lang is populated only for Fence; it is the raw (unvalidated) label
	// between the opening fence and the newline.
	Lang string
}

// masterRE matches every recognized span in priority order: fenced code
// blocks first (they may contain characters that would otherwise look like
// other spans), then wiki-links, tags, strong, em, and inline code. Group
// indices are noted beside each alternative.
var masterRE = regexp.MustCompile("(?s)" +
	"(```([^`\n]*)\n(.*?)```)" + // 1: fence, 2: lang, 3: body
	"|(\\[\\[([^\\]|]+)(?:\\|([^\\]]+))?\\]\\])" + // 4: wikilink, 5: target, 6: display
	"|(#[A-Za-z0-9_\\-/]+)" + // 7: tag
	"|(\\*\\*([^*]+)\\*\\*)" + // 8: strong, 9: inner
	"|(\\*([^*]+)\\*)" + // 10: em, 11: inner
	"|(`([^`]+)`)") // 12: code, 13: inner

const numGroups = 13

// Tokenize scans content in one pass and returns it as an ordered sequence
// of tokens. A '#' immediately preceded by '[' is not treated as a tag (it
// would otherwise false-match inside a wiki-link's bracket interior); it is
// left as part of the surrounding Text run.
func Tokenize(content string) []Token {
	idx := masterRE.FindAllStringSubmatchIndex(content, -1)
	var tokens []Token
	pos := 0

	for _, m := range idx {
		start, end := m[0], m[1]
		if start < pos {
			continue
		}

		if groupSet(m, 7) && start > 0 && content[start-1] == '[' {
			// Leave the '#' run as plain text; it will be absorbed into the
			// next flushed Text span.
			continue
		}

		if start > pos {
			tokens = append(tokens, Token{Kind: Text, Text: content[pos:start]})
		}

		switch {
		case groupSet(m, 1):
			tokens = append(tokens, Token{
				Kind: Fence,
				Lang: group(content, m, 2),
				Text: group(content, m, 3),
			})
		case groupSet(m, 4):
			target := trimSpace(group(content, m, 5))
			display := target
			if groupSet(m, 6) {
				display = trimSpace(group(content, m, 6))
			}
			tokens = append(tokens, Token{Kind: WikiLink, Target: target, Display: display})
		case groupSet(m, 7):
			tokens = append(tokens, Token{Kind: Tag, Text: content[start+1 : end]})
		case groupSet(m, 8):
			tokens = append(tokens, Token{Kind: Strong, Text: group(content, m, 9)})
		case groupSet(m, 10):
			tokens = append(tokens, Token{Kind: Em, Text: group(content, m, 11)})
		case groupSet(m, 12):
			tokens = append(tokens, Token{Kind: Code, Text: group(content, m, 13)})
		}

		pos = end
	}

	if pos < len(content) {
		tokens = append(tokens, Token{Kind: Text, Text: content[pos:]})
	}

	return tokens
}

func groupSet(m []int, group int) bool {
	return m[2*group] != -1
}

func group(s string, m []int, g int) string {
	lo, hi := m[2*g], m[2*g+1]
	if lo == -1 {
		return ""
	}
	return s[lo:hi]
}

// trimSpace trims ASCII space, tab, carriage return, and newline without pulling in strings
// for a single-purpose helper used only on already-bounded regex captures.
func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
