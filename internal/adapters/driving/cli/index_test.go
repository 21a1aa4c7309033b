package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index [path...]", indexCmd.Use)
}

func TestIndexCmd_RequiresAtLeastOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestIndexCmd_ReportsOutcomeSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", path})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "indexed")
	assert.Contains(t, buf.String(), "1 indexed, 0 failed, 0 skipped")
}

func TestExpandPaths_ListsDirectoryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("b"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("c"), 0o644))

	paths, err := expandPaths([]string{dir})

	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestExpandPaths_RecursiveDescends(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("c"), 0o644))

	indexRecursive = true
	defer func() { indexRecursive = false }()

	paths, err := expandPaths([]string{dir})

	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestExpandPaths_KeepsMissingFilesForStatusReporting(t *testing.T) {
	paths, err := expandPaths([]string{"/nonexistent/file.txt"})

	require.NoError(t, err)
	assert.Equal(t, []string{"/nonexistent/file.txt"}, paths)
}
