// Package config defines the packaging layout settings used by the CLI and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the plugin source root, the build output path segments
// and the ordered plugin list. Defaults reproduce the built-in layout, so the
// settings file is optional.
package config
