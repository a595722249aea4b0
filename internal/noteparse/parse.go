package noteparse

import (
	"strings"
	"unicode/utf8"

	"github.com/cbrandt/noteweave/internal/errs"
)

// Parse lexes and parses one note's raw content into a Note. It performs no
// I/O and never panics. Malformed front-matter, depth limit violations and
// invalid UTF-8 are returned as errors; any other malformation is recovered
// silently per spec.md §4.1.
func Parse(sourcePath string, content []byte, cfg Config) (*Note, error) {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 2
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 256
	}
	if cfg.SlashEncoding == "" {
		cfg.SlashEncoding = SlashEncodingTripleUnderscore
	}

	if !utf8.Valid(content) {
		return nil, errs.InvalidUTF8(sourcePath)
	}

	lines := splitLines(content)

	props, bodyStart, err := parseFrontMatter(sourcePath, lines)
	if err != nil {
		return nil, err
	}

	bodyLines := lines[bodyStart:]
	roots, err := parseBlocks(sourcePath, bodyLines, bodyStart, cfg)
	if err != nil {
		return nil, err
	}

	links, tags := collectInline(roots)

	title, hasTitle := props.Get("title")
	if !hasTitle || title == "" {
		title = deriveTitle(sourcePath, cfg.SlashEncoding)
	}

	return &Note{
		SourcePath:   sourcePath,
		Title:        title,
		Properties:   props,
		Blocks:       roots,
		Tags:         tags,
		ForwardLinks: links,
	}, nil
}

// splitLines splits raw file bytes into lines without their line endings.
// Both "\n" and "\r\n" are accepted; a trailing newline does not introduce
// a spurious extra line beyond the natural empty final split.
func splitLines(content []byte) []string {
	raw := strings.Split(string(content), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// deriveTitle computes the fallback title from the file stem, decoding the
// "___" slash-encoding when configured to do so (spec.md §4.1, §9 Open
// Question 2).
func deriveTitle(sourcePath, slashEncoding string) string {
	base := sourcePath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if slashEncoding == SlashEncodingTripleUnderscore {
		base = strings.ReplaceAll(base, "___", "/")
	}
	return base
}
