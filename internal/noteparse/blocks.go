package noteparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cbrandt/noteweave/internal/errs"
	"github.com/cbrandt/noteweave/internal/inline"
)

// blockLineRE matches a bullet line: zero or more leading space/tab
// characters, a literal "-", one or more spaces or tabs, then content
// (possibly empty).
var blockLineRE = regexp.MustCompile(`^([ \t]*)-[ \t]+(.*)$`)

// propertyRE matches a "key:: value" block-property line after the bullet
// marker has already been stripped.
var propertyRE = regexp.MustCompile(`^([A-Za-z0-9_.\-]+):: ?(.*)$`)

// frame is one level of the indentation stack used to build the block tree
// iteratively; block is nil for the implicit note root.
type frame struct {
	level      int
	block      *Block
	childCount int
}

// parseBlocks builds the block tree from body lines, using an explicit
// stack rather than recursion so that pathological nesting fails with
// ParseError::DepthLimit instead of growing the call stack.
//
// lineOffset is the number of lines already consumed by the front-matter
// fence, so that reported line numbers are absolute within the source file.
func parseBlocks(sourcePath string, bodyLines []string, lineOffset int, cfg Config) ([]*Block, error) {
	stack := []*frame{{level: -1, block: nil}}
	var roots []*Block
	var lastBlock *Block

	for i, raw := range bodyLines {
		absLine := lineOffset + i + 1

		if strings.TrimSpace(raw) == "" {
			continue
		}

		m := blockLineRE.FindStringSubmatch(raw)
		if m == nil {
			trimmed := strings.TrimSpace(raw)
			if lastBlock == nil {
				block, err := newBlock(sourcePath, stack[0], 1, trimmed, absLine, cfg)
				if err != nil {
					return nil, err
				}
				roots = append(roots, block)
				stack = append(stack[:1], &frame{level: 0, block: block})
				lastBlock = block
				continue
			}
			lastBlock.Content += "\n" + trimmed
			continue
		}

		indent := indentWidth(m[1], cfg.TabWidth)
		level := indent / 2
		content := strings.TrimSpace(m[2])

		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		if key, value, isProp := matchProperty(content); isProp {
			if parent.block != nil {
				if parent.block.Properties == nil {
					parent.block.Properties = NewOrderedMap()
				}
				parent.block.Properties.Set(key, value)
			}
			lastBlock = parent.block
			continue
		}

		depth := 1
		if parent.block != nil {
			depth = parent.block.Depth + 1
		}
		if depth > cfg.MaxDepth {
			return nil, errs.DepthLimit(sourcePath, absLine)
		}

		idx := parent.childCount
		parent.childCount++
		var id string
		if parent.block != nil {
			id = parent.block.ID + "-" + strconv.Itoa(idx)
		} else {
			id = strconv.Itoa(idx)
		}

		block := &Block{ID: id, Content: content, Depth: depth}
		if parent.block != nil {
			parent.block.Children = append(parent.block.Children, block)
		} else {
			roots = append(roots, block)
		}
		stack = append(stack, &frame{level: level, block: block})
		lastBlock = block
	}

	return roots, nil
}

// newBlock constructs a top-level block created from a continuation line
// that appears before any bullet has been seen (spec.md §4.1: "If no
// previous block exists it starts a depth-0 block"; the note's implicit
// root is depth 0, so this top-level bullet is depth 1).
func newBlock(sourcePath string, root *frame, depth int, content string, line int, cfg Config) (*Block, error) {
	if depth > cfg.MaxDepth {
		return nil, errs.DepthLimit(sourcePath, line)
	}
	idx := root.childCount
	root.childCount++
	return &Block{ID: strconv.Itoa(idx), Content: content, Depth: depth}, nil
}

func matchProperty(content string) (key, value string, ok bool) {
	m := propertyRE.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func indentWidth(prefix string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 2
	}
	width := 0
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}

// collectInline walks the block tree in document order, tokenizing each
// block's content with the shared inline lexer to gather forward links (in
// document order, duplicates included) and tags (insertion-ordered, deduped).
func collectInline(roots []*Block) ([]LinkRef, []string) {
	var links []LinkRef
	var tags []string
	seenTags := make(map[string]bool)

	var walk func(blocks []*Block)
	walk = func(blocks []*Block) {
		for _, b := range blocks {
			for _, tok := range inline.Tokenize(b.Content) {
				switch tok.Kind {
				case inline.WikiLink:
					links = append(links, LinkRef{Target: tok.Target, Display: tok.Display})
				case inline.Tag:
					if !seenTags[tok.Text] {
						seenTags[tok.Text] = true
						tags = append(tags, tok.Text)
					}
				}
			}
			walk(b.Children)
		}
	}
	walk(roots)

	return links, tags
}

// CountBlocks returns the total number of nodes in the given block forest,
// including all descendants.
func CountBlocks(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		n += 1 + CountBlocks(b.Children)
	}
	return n
}
