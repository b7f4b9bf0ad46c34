// Package fileutil provides write-to-temp-then-replace file output.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the previous version of a replaced file.
const BackupSuffix = ".bak"

// DefaultFileMode is the permission of files that did not exist before.
const DefaultFileMode os.FileMode = 0o644

// ReplaceFile writes a new version of path. The content is assembled in a
// temporary file in the target directory and moved over path only after write
// succeeded. The previous version is moved to path+".bak" first and restored
// if the final move fails; it is removed afterwards unless keepBackup is set.
// The new version keeps the permissions of the previous one.
func ReplaceFile(path string, write func(w io.Writer) error, keepBackup bool) (err error) {
	mode := DefaultFileMode
	info, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		mode = info.Mode().Perm()
	case !errors.Is(statErr, os.ErrNotExist):
		return fmt.Errorf("checking %s: %w", path, statErr)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	backup := ""
	if statErr == nil {
		backup = path + BackupSuffix
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("backing up %s: %w", path, err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if backup != "" {
			_ = os.Rename(backup, path)
		}
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	if backup != "" && !keepBackup {
		_ = os.Remove(backup)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
