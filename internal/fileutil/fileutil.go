package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFunc streams content into an output file.
type WriteFunc func(w io.Writer) error

// WriteAtomic writes to a temporary file next to dst with default permissions
// (0o644) and renames it into place once write succeeds.
func WriteAtomic(dst string, write WriteFunc) error {
	return WriteAtomicMode(dst, 0o644, write)
}

// WriteAtomicMode is WriteAtomic with an explicit file mode. On any failure
// the temporary file is removed and dst is left untouched.
func WriteAtomicMode(dst string, mode os.FileMode, write WriteFunc) (err error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
