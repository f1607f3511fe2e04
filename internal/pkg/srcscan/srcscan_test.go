package srcscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.go", "package main\n\nfunc main() {}\n")
	conflicted := writeFile(t, dir, "conflicted.go",
		"package main\n<<<<<<< HEAD\nvar a = 1\n=======\nvar a = 2\n>>>>>>> feature\n")
	writeFile(t, dir, "notes.txt", "<<<<<<< HEAD ignored, not a source extension\n")
	writeFile(t, dir, "node_modules/dep.js", "<<<<<<< HEAD skipped directory\n")

	findings, err := New().ScanTree(dir)
	require.NoError(t, err)

	require.Len(t, findings, 2)
	assert.Equal(t, conflicted, findings[0].Path)
	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, 6, findings[1].Line)
}

func TestScanFile_ExtraFragments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.go", "package config\n\nconst key = \"sk_live_123\"\n")

	findings, err := New("sk_live_").ScanFile(path)
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, "sk_live_", findings[0].Fragment)
	assert.Equal(t, 3, findings[0].Line)
}

func TestScanTree_CleanTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")

	findings, err := New().ScanTree(dir)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
