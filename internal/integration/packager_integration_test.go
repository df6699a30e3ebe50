package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/extmeta/plugin-packager/internal/config"
	"github.com/extmeta/plugin-packager/internal/service/packager"
)

// TestPackager_CopyScenario builds a realistic plugin source tree and
// verifies the copy mode end to end: destination/Demo/out.dll exists with
// identical bytes after a successful run.
func TestPackager_CopyScenario(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	payload := []byte("compiled plugin bytes")
	buildOutput := filepath.Join(src, "Demo", "bin", "Debug", "net462")
	require.NoError(t, os.MkdirAll(buildOutput, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildOutput, "out.dll"), payload, 0o644))

	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(settings, &config.Config{
		SourceRoot: src,
		Plugins:    []string{"Demo"},
	}))

	// Run packager with timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{
		ConfigPath:  settings,
		Mode:        "copy",
		Destination: dest,
	})
	require.NoError(t, err)

	copied, err := os.ReadFile(filepath.Join(dest, "Demo", "out.dll"))
	require.NoError(t, err)
	require.Equal(t, payload, copied)
}

// TestPackager_DefaultLayout exercises the built-in ../src layout without a
// settings file, working from a temporary directory shaped like the real
// checkout (tool run from a subdirectory next to src).
func TestPackager_DefaultLayout(t *testing.T) {
	dir := t.TempDir()

	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))

	dest := filepath.Join(dir, "release")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	for _, plugin := range config.Default().Plugins {
		buildOutput := filepath.Join(dir, "src", plugin, "bin", "Debug", "net462")
		require.NoError(t, os.MkdirAll(buildOutput, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(buildOutput, plugin+".dll"), []byte(plugin), 0o644))
	}

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(scripts))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = packager.Run(ctx, &packager.Options{
		// Point at a settings file that does not exist so defaults apply.
		ConfigPath:  filepath.Join(dir, "absent.yaml"),
		Mode:        "copy",
		Destination: dest,
	})
	require.NoError(t, err)

	for _, plugin := range config.Default().Plugins {
		_, err = os.Stat(filepath.Join(dest, plugin, plugin+".dll"))
		require.NoError(t, err)
	}
}

// TestPackager_PackScenario verifies pack mode end to end, including that
// the produced archives open with the standard library reader.
func TestPackager_PackScenario(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	buildOutput := filepath.Join(src, "Demo", "bin", "Debug", "net462")
	require.NoError(t, os.MkdirAll(filepath.Join(buildOutput, "locales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildOutput, "out.dll"), []byte("binary"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(buildOutput, "locales", "en.json"), []byte("{}"), 0o644))

	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(settings, &config.Config{
		SourceRoot: src,
		Plugins:    []string{"Demo"},
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{
		ConfigPath:  settings,
		Mode:        "pack",
		Destination: dest,
	})
	require.NoError(t, err)

	// The archive is flattened: both files sit at the root.
	entries := readArchive(t, filepath.Join(dest, "Demo.zip"))
	require.Equal(t, map[string]string{
		"out.dll": "binary",
		"en.json": "{}",
	}, entries)
}
