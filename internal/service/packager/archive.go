package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// archiveEntry is one file scheduled for the archive. Name is the base
// filename only; Source is the file whose bytes end up in the entry.
type archiveEntry struct {
	Name   string
	Source string
}

// packTree writes a zip archive at dst containing every regular file under
// src, flattened to its base filename. When two files share a basename, the
// one visited last in walk order wins; the archive holds a single entry per
// name. Any existing archive at dst is overwritten.
func packTree(src, dst string) (err error) {
	entries, err := collectArchiveEntries(src)
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return fmt.Errorf("create archive %s: %w", dst, err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", dst, closeErr)
		}
	}()

	zw := zip.NewWriter(out)

	// Deflate at maximum ratio, keeping the output readable by any extractor.
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, entry := range entries {
		if err = writeArchiveEntry(zw, entry); err != nil {
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", dst, err)
	}

	return nil
}

// collectArchiveEntries walks root in lexical order and returns archive
// entries keyed by basename. A later file with an already seen basename
// replaces the earlier source, matching last-visited-wins semantics.
func collectArchiveEntries(root string) ([]archiveEntry, error) {
	var (
		entries []archiveEntry
		byName  = make(map[string]int)
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		name := filepath.Base(path)
		if i, ok := byName[name]; ok {
			entries[i].Source = path

			return nil
		}

		byName[name] = len(entries)
		entries = append(entries, archiveEntry{Name: name, Source: path})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return entries, nil
}

// writeArchiveEntry streams one source file into the archive under its base name.
func writeArchiveEntry(zw *zip.Writer, entry archiveEntry) (err error) {
	in, err := os.Open(filepath.Clean(entry.Source))
	if err != nil {
		return fmt.Errorf("open %s: %w", entry.Source, err)
	}

	// Best-effort cleanup.
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", entry.Source, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("describe %s: %w", entry.Source, err)
	}

	header.Name = entry.Name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", entry.Name, err)
	}

	if _, err = io.Copy(w, in); err != nil {
		return fmt.Errorf("compress %s: %w", entry.Source, err)
	}

	return nil
}
