package spec

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSpecs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ws-a.md", "x")
	writeFile(t, dir, "nested/ws-b.md", "x")
	writeFile(t, dir, "README.txt", "x")
	writeFile(t, dir, "templates/ws-template.md", "x")
	writeFile(t, dir, "schemas/workstream.md", "x")
	writeFile(t, dir, "fixtures/broken.md", "x")
	writeFile(t, dir, "nested/testdata/sample.md", "x")

	paths, err := DiscoverSpecs(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "nested", "ws-b.md"),
		filepath.Join(dir, "ws-a.md"),
	}
	assert.Equal(t, want, paths, "excluded subtrees and non-markdown files are skipped")
}

func TestDiscoverSpecs_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "x")
	writeFile(t, dir, "a.md", "x")
	writeFile(t, dir, "c.md", "x")

	first, err := DiscoverSpecs(dir)
	require.NoError(t, err)
	second, err := DiscoverSpecs(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.md"),
	}, first)
}

func TestDiscoverSpecsExcluding_CustomList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep/ws-a.md", "x")
	writeFile(t, dir, "drop/ws-b.md", "x")

	paths, err := DiscoverSpecsExcluding(dir, []string{"drop"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep", "ws-a.md")}, paths)
}
