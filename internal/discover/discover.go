// Package discover finds the Python source files under a directory
// for directory-mode analysis.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Options configures a Find invocation.
type Options struct {
	// Include lists patterns a file must match. Empty means
	// DefaultInclude.
	Include []string

	// Exclude lists patterns that remove a file, or a directory and
	// everything below it.
	Exclude []string

	// SkipHidden skips entries whose name starts with a dot.
	SkipHidden bool
}

// DefaultInclude matches every .py file at any depth.
var DefaultInclude = []string{"**/*.py"}

// Find walks root and returns the slash-separated paths, relative to
// root, of every regular file that passes Filter. The result is
// sorted. The walk stops with ctx's error when ctx is done.
func Find(ctx context.Context, root string, opts Options) ([]string, error) {
	if len(opts.Include) == 0 {
		opts.Include = DefaultInclude
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if Filter(rel, opts) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
