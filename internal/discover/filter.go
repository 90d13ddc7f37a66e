package discover

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter reports whether the slash-separated relative path rel is
// analyzed under opts.
//
// Logic:
//  1. The file must match at least one include pattern (DefaultInclude
//     when none are set).
//  2. If the file matches any exclude pattern, it is excluded.
//  3. Otherwise, the file is included.
func Filter(rel string, opts Options) bool {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	matched := false
	for _, pattern := range include {
		if matchGlob(pattern, rel) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return !excluded(rel, opts.Exclude)
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// matchGlob matches rel against a doublestar pattern. A pattern
// without a separator is also tried against the base name, so
// "conftest.py" matches at any depth. Malformed patterns never match.
func matchGlob(pattern, rel string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, path.Base(rel))
		return err == nil && ok
	}
	return false
}

// ValidatePatterns returns the first malformed pattern, or "" when
// all patterns are valid.
func ValidatePatterns(patterns []string) string {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return p
		}
	}
	return ""
}
