package spec

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
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const goodRegistry = `---
contracts:
  - id: contract-auth
    type: api
    path: contracts/auth.md
    owner: platform-team
    version: 1.0.0
  - id: contract-storage
    type: schema
    path: contracts/storage.md
    owner: data-team
    version: 2.1.0
---
`

func TestLoadRegistry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "contracts.md", goodRegistry)

	reg, issues := LoadRegistry(path)
	require.Empty(t, issues)
	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Has("contract-auth"))
	assert.True(t, reg.Has("contract-storage"))
	assert.False(t, reg.Has("contract-missing"))

	assert.Equal(t, "api", reg.Entries[0].Type)
	assert.Equal(t, "data-team", reg.Entries[1].Owner)
	assert.Equal(t, "2.1.0", reg.Entries[1].Version)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	reg, issues := LoadRegistry(filepath.Join(t.TempDir(), "contracts.md"))

	require.Len(t, issues, 1, "missing file is a single issue")
	assert.Equal(t, CategoryRegistry, issues[0].Category)
	assert.Contains(t, issues[0].Message, "missing contract registry")
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Has("anything"), "empty id set makes every reference unresolved")
}

func TestLoadRegistry_IncompleteEntry(t *testing.T) {
	content := `---
contracts:
  - id: contract-auth
    type: api
---
`
	path := writeFile(t, t.TempDir(), "contracts.md", content)

	reg, issues := LoadRegistry(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "registry entry missing fields: path, owner, version")

	// Incomplete entries still register their id.
	assert.True(t, reg.Has("contract-auth"))
}

func TestLoadRegistry_DuplicateIDs(t *testing.T) {
	content := `---
contracts:
  - id: contract-auth
    type: api
    path: a.md
    owner: t
    version: 1
  - id: contract-auth
    type: api
    path: b.md
    owner: t
    version: 2
---
`
	path := writeFile(t, t.TempDir(), "contracts.md", content)

	reg, issues := LoadRegistry(path)
	require.Len(t, issues, 1, "one issue per duplicate occurrence")
	assert.Contains(t, issues[0].Message, "duplicate registry id: contract-auth")
	assert.Equal(t, 1, reg.Len(), "first occurrence wins")
}

func TestLoadRegistry_ScalarEntry(t *testing.T) {
	content := "---\ncontracts:\n  - just-a-string\n---\n"
	path := writeFile(t, t.TempDir(), "contracts.md", content)

	_, issues := LoadRegistry(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "registry entry must be a record")
}

func TestLoadRegistry_NoContractsList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "contracts.md", "---\nid: registry\n---\n")

	_, issues := LoadRegistry(path)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "registry has no contracts list")
}
