package noteparse

import (
	"strings"

	"github.com/cbrandt/noteweave/internal/errs"
)

// parseFrontMatter consumes a leading "---" ... "---" fence, if the first
// non-empty line is exactly "---". It returns the decoded properties and
// the index of the first body line. Missing front-matter is not an error;
// an unclosed fence is.
func parseFrontMatter(sourcePath string, lines []string) (*OrderedMap, int, error) {
	props := NewOrderedMap()

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) || strings.TrimSpace(lines[i]) != "---" {
		return props, 0, nil
	}

	fenceLine := i
	i++
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "---" {
			return props, i + 1, nil
		}
		if strings.TrimSpace(lines[i]) != "" {
			idx := strings.IndexByte(lines[i], ':')
			if idx < 0 {
				return nil, 0, errs.FrontMatter(sourcePath, i+1)
			}
			key := strings.TrimSpace(lines[i][:idx])
			props.Set(key, decodeFrontMatterValue(lines[i][idx+1:]))
		}
		i++
	}

	return nil, 0, errs.FrontMatter(sourcePath, fenceLine+1)
}

// decodeFrontMatterValue returns the remainder of a "key: value" line
// verbatim, stripping at most one leading space after the colon. It does
// not reinterpret the text: a value that looks numeric or boolean is kept
// exactly as written, so "id: 05" stays "05" and "flag: True" stays "True".
func decodeFrontMatterValue(raw string) string {
	if strings.HasPrefix(raw, " ") {
		return raw[1:]
	}
	return raw
}
