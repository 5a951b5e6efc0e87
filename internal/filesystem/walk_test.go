package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}
}

func TestWalk_BasicTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "file1.txt", "dir1/file2.txt", "dir1/subdir/file3.txt")

	var visited []string
	err := Walk(tmpDir, WalkOptions{IgnoreDirs: []string{}}, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tmpDir, path)
		if rel != "." {
			visited = append(visited, rel)
		}
		return nil
	})
	require.NoError(t, err)

	// 2 dirs + 3 files
	assert.Len(t, visited, 5)
}

func TestWalk_IgnoreDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "node_modules/a.json", "vendor/b.json", ".git/c.json", "bin/d.json", "keep.json")

	var visited []string
	err := Walk(tmpDir, WalkOptions{}, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tmpDir, path)
		visited = append(visited, rel)
		return nil
	})
	require.NoError(t, err)

	for _, v := range visited {
		for _, ignored := range []string{"node_modules", "vendor", ".git", "bin"} {
			assert.False(t, strings.HasPrefix(v, ignored), "visited ignored path %s", v)
		}
	}
	assert.Contains(t, visited, "keep.json")
}

func TestWalk_IncludeHidden(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, ".ez.yml")

	var visited []string
	err := Walk(tmpDir, WalkOptions{IncludeHidden: true}, func(path string, info os.FileInfo) error {
		visited = append(visited, info.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, visited, ".ez.yml")
}

func TestWalk_MaxDepth(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "top.json", "schemas/customer.json", "schemas/deep/order.json")

	var visited []string
	err := Walk(tmpDir, WalkOptions{MaxDepth: 1}, func(path string, info os.FileInfo) error {
		if !info.IsDir() {
			rel, _ := filepath.Rel(tmpDir, path)
			visited = append(visited, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"top.json", "schemas/customer.json"}, visited)
}

func TestWalk_NonexistentRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "missing"), WalkOptions{}, func(string, os.FileInfo) error {
		return nil
	})
	assert.Error(t, err)
}

func TestFindSchemaCandidates(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"entity.json",
		"order.yaml",
		"README.md",
		"package.json",
		"tsconfig.build.json",
		"appsettings.Development.json",
		"schemas/product.yml",
		"node_modules/lib/index.json",
	)

	got, err := FindSchemaCandidates(tmpDir, 1)
	require.NoError(t, err)

	want := []string{"entity.json", "order.yaml", filepath.Join("schemas", "product.yml")}
	assert.Equal(t, want, got)
}

func TestFindSchemaCandidates_Empty(t *testing.T) {
	got, err := FindSchemaCandidates(t.TempDir(), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
