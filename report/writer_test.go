package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")
	path := filepath.Join(dir, "report-2017.06.30.html")

	require.NoError(t, Write(path, []byte("<html>report</html>")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", string(content))

	// Only the report remains; the temporary file was renamed.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report-2017.06.30.html", entries[0].Name())
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Write(path, []byte("old")))
	require.NoError(t, Write(path, []byte("new")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	exists, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	exists, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}
