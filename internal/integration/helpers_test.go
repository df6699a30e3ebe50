package integration

import (
	"archive/zip"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// readArchive returns entry name -> content for every file in the zip.
func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer func() {
		_ = r.Close()
	}()

	contents := make(map[string]string, len(r.File))

	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		contents[f.Name] = string(data)
	}

	return contents
}
