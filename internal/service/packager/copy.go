package packager

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// replaceTree copies src into dst, deleting any existing dst first.
// Replacement is total: stale files from a previous run never survive.
func replaceTree(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		if err = os.RemoveAll(dst); err != nil {
			return fmt.Errorf("remove previous output %s: %w", dst, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dst, err)
	}

	return copyTree(src, dst)
}

// copyTree recursively copies the directory tree at src to dst,
// preserving relative structure and file permissions.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		switch {
		case d.IsDir():
			if err = os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case d.Type().IsRegular():
			if err = copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			// Build outputs contain only regular files; anything else
			// (sockets, devices) is skipped.
		}

		return nil
	})
}

// copyFile copies a single regular file, truncating any existing target.
func copyFile(src, dst string, perm fs.FileMode) (err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}

	// Best-effort cleanup.
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, closeErr)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	return nil
}
