// Package ioutils provides file system utilities for the panels-downloader.
//
// This package contains functions for:
//   - Atomic file writing
//   - Directory creation
//   - Existence checks
package ioutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes a file through a temporary sibling and renames it
// over path once write has succeeded.
//
// An existing file at path is replaced. If write returns an error the
// temporary file is removed and path is left untouched.
//
// Example:
//
//	err := WriteFileAtomic("/out/report.json", func(w io.Writer) error {
//	    return json.NewEncoder(w).Encode(report)
//	})
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)

	// Fixed short pattern: the temp name must not outgrow a long final name.
	tmp, err := os.CreateTemp(dir, ".panels-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// created reports whether the directory had to be created.
//
// Example:
//
//	created, err := EnsureDir("downloads")
func EnsureDir(path string) (created bool, err error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return false, err
	}
	return true, nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
