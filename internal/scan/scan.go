// Package scan enumerates candidate audio files beneath a directory.
package scan

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"tagreport/internal/failure"
)

// DefaultExtensions is used when Options.Extensions is empty.
var DefaultExtensions = []string{".mp3"}

// Options controls which files are yielded.
type Options struct {
	// Extensions are matched case-insensitively and include the leading dot.
	Extensions []string
	Recursive  bool
}

// Files validates root and returns a lazy sequence of absolute paths whose
// extension matches opts. Subdirectories that cannot be read are yielded as
// errors and skipped; iteration continues. Order follows the filesystem
// walk.
func Files(root string, opts Options) (iter.Seq2[string, error], error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDirectoryNotFound, "scan", "resolve root", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDirectoryNotFound, "scan", "stat root", abs, err)
	}
	if !info.IsDir() {
		return nil, failure.Wrap(failure.ErrDirectoryNotFound, "scan", "stat root", abs+" is not a directory", nil)
	}

	match := extensionSet(opts.Extensions)
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", fmt.Errorf("read directory %s: %w", path, err)) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != abs && !opts.Recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !match(path) || !isFile(path, d) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// HasExtension reports whether path ends in one of exts, ignoring case.
func HasExtension(path string, exts []string) bool {
	return extensionSet(exts)(path)
}

func extensionSet(exts []string) func(string) bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return func(path string) bool {
		_, ok := set[strings.ToLower(filepath.Ext(path))]
		return ok
	}
}

// isFile accepts regular files and symlinks that resolve to one.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
