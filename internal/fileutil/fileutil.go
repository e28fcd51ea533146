// Package fileutil provides safe file replacement helpers for subtitle
// output. Fixing a file in place must never leave a half-written result,
// so writes go through a temp file and rename.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic writes via fn to a temp file next to path and renames it into
// place on success. The temp file is removed on failure.
func WriteAtomic(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fn(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set temp file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// CopyFile streams src to dst with 0o644 permissions.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Backup copies path to path+".bak", replacing any previous backup. Used
// before an in-place fix overwrites the original subtitle file.
func Backup(path string) (string, error) {
	backupPath := path + ".bak"
	if err := CopyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("back up %s: %w", path, err)
	}
	return backupPath, nil
}
