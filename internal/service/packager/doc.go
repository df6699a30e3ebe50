// Package packager locates compiled plugin build outputs and materializes
// them at a destination directory, either as copied directory trees or as
// flattened zip archives.
//
// Processing is strictly sequential and fail-fast: plugins are handled in
// configured list order and the first missing path or I/O failure aborts the
// whole run.
package packager
