// Package pathguard validates every host-supplied path before it is used to
// read, write, or derive an output location, per the path guard component of
// the core design.
package pathguard

import (
	"strings"

	"github.com/cbrandt/noteweave/internal/errs"
)

// Options configures path validation. AllowedPrefixes lets the host
// explicitly allowlist one or more absolute prefixes (for example, the
// configured input_root); any other absolute path is rejected.
type Options struct {
	AllowedPrefixes []string
}

// Validate applies the path guard rules described in spec.md §4.5: reject
// empty, reject any ".." segment, reject an interior NUL byte, reject a
// leading "/" or "\" unless it falls under an allowlisted prefix.
func Validate(path string, opts Options) error {
	if path == "" {
		return errs.EmptyPath()
	}
	if strings.IndexByte(path, 0) >= 0 {
		return errs.NullByte(path)
	}
	for _, seg := range strings.Split(strings.ReplaceAll(path, "\\", "/"), "/") {
		if seg == ".." {
			return errs.Traversal(path)
		}
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		if !hasAllowedPrefix(path, opts.AllowedPrefixes) {
			return errs.Absolute(path)
		}
	}
	return nil
}

func hasAllowedPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
