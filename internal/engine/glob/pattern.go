// Package glob implements the per-package glob cache: pattern expansion over
// a package directory, memoized results, and background expansion on a
// shared bounded worker pool.
package glob

import (
	"path"
	"strings"

	"go.trai.ch/zerr"

	"github.com/bjorndm/bazel/internal/core/domain"
)

// doubleStar matches zero or more path segments.
const doubleStar = "**"

// pattern is a validated glob pattern split into path segments. A trailing
// slash in the source text marks the pattern as directory-anchored.
type pattern struct {
	source   string
	segments []string
	dirsOnly bool
}

// parsePattern validates and splits a glob pattern. Patterns are relative to
// the package directory; absolute paths, empty strings, and segments that
// would escape the package root are rejected.
func parsePattern(raw string) (pattern, error) {
	if raw == "" {
		return pattern{}, zerr.Wrap(domain.ErrBadPattern, "pattern is empty")
	}
	if strings.HasPrefix(raw, "/") {
		return pattern{}, zerr.With(zerr.Wrap(domain.ErrBadPattern, "pattern is absolute"), "pattern", raw)
	}

	text := raw
	dirsOnly := strings.HasSuffix(text, "/")
	if dirsOnly {
		text = strings.TrimSuffix(text, "/")
	}

	segments := strings.Split(text, "/")
	for _, seg := range segments {
		switch seg {
		case "":
			return pattern{}, zerr.With(zerr.Wrap(domain.ErrBadPattern, "pattern contains empty segment"), "pattern", raw)
		case ".", "..":
			return pattern{}, zerr.With(zerr.Wrap(domain.ErrBadPattern, "pattern references parent or current directory"), "pattern", raw)
		case doubleStar:
			continue
		}
		// path.Match validates segment syntax, e.g. unterminated
		// character classes.
		if _, err := path.Match(seg, "probe"); err != nil {
			return pattern{}, zerr.With(zerr.Wrap(domain.ErrBadPattern, "pattern segment is malformed"), "pattern", raw)
		}
	}
	return pattern{source: raw, segments: segments, dirsOnly: dirsOnly}, nil
}

func parsePatterns(raws []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(raws))
	for _, raw := range raws {
		p, err := parsePattern(raw)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// matchSegments reports whether the path segments fully match the pattern
// segments, with ** consuming zero or more of them.
func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == doubleStar {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, _ := path.Match(pat[0], segs[0])
	return ok && matchSegments(pat[1:], segs[1:])
}

// subtreePrefixes extracts, from the exclude patterns, the directory-pattern
// prefixes of patterns shaped like "dir/**". Traversal prunes any directory
// matching one of these, since nothing below it can survive subtraction.
func subtreePrefixes(excludes []pattern) [][]string {
	var prefixes [][]string
	for _, p := range excludes {
		n := len(p.segments)
		if n >= 2 && p.segments[n-1] == doubleStar {
			prefixes = append(prefixes, p.segments[:n-1])
		}
	}
	return prefixes
}
