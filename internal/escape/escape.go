// Package escape provides the two pure escaping functions every exporter
// string must pass through exactly once before crossing into HTML text or
// attribute context.
package escape

import (
	"fmt"
	"strings"
)

// HTMLText replaces &, <, >, ", ' with their corresponding named or numeric
// entities. A single pass over the input runes means the replacements never
// see each other's output, so there is no double-escaping risk regardless of
// call order.
func HTMLText(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var disallowedSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}

// SanitizeAttrURL converts a candidate relative path into a value safe for an
// href attribute. It percent-encodes bytes outside the safe set
// (A-Za-z0-9._~/-) and rejects any candidate containing "..", scheme prefixes, and a leading
// "/" (only relative output is permitted). ok is false when the candidate
// must be treated as unresolved.
func SanitizeAttrURL(s string) (sanitized string, ok bool) {
	if s == "" {
		return "", false
	}
	if strings.Contains(s, "..") {
		return "", false
	}
	if strings.HasPrefix(s, "/") {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, scheme := range disallowedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSafeURLByte(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String(), true
}

func isSafeURLByte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '~', c == '/', c == '-':
		return true
	default:
		return false
	}
}
