// Package walker enumerates the C# source files of a project tree.
package walker

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"dbcalls/internal/errors"
)

// SourceExt is the extension of the files the walker yields, compared
// case-insensitively.
const SourceExt = ".cs"

// Options controls the walk.
type Options struct {
	// Exclude lists directory base names that are skipped entirely
	Exclude []string
}

// Files lazily yields every regular *.cs file (or symlink to one) under root in lexical walk
// order. An error (unreadable root or subdirectory) is yielded once and
// ends the sequence.
func Files(root string, opts Options) iter.Seq2[string, error] {
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = true
	}

	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if d.IsDir() {
				if path != root && exclude[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			if !IsSource(path) || !isRegularFile(path, d) {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if err != nil && !stopped {
			yield("", errors.Wrap(errors.FileReadFailed, err, "failed to enumerate %s", root))
		}
	}
}

// isRegularFile accepts regular files and symlinks that resolve to one.
// Symlinked directories are not descended into; dangling links are skipped.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSource reports whether path names a C# source file.
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExt)
}
