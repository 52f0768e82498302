package spec

import (
	"os"
	"strings"
)

// registryFields are the fields every registry entry must carry.
var registryFields = []string{"id", "type", "path", "owner", "version"}

// RegistryEntry is one contract definition from the shared registry.
type RegistryEntry struct {
	ID      string
	Type    string
	Path    string
	Owner   string
	Version string
}

// Registry is the loaded contract registry. A nil Registry behaves as an
// empty one, so callers see every referenced id as unknown.
type Registry struct {
	Entries []RegistryEntry
	ids     map[string]bool
}

// Has reports whether the registry defines the given contract id.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	return r.ids[id]
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// LoadRegistry parses the shared contract registry document. Entries are
// list records under the `contracts` key, each requiring id, type, path,
// owner, and version. A missing file yields a single issue and an empty
// registry; incomplete entries and duplicate ids each yield one issue.
func LoadRegistry(path string) (*Registry, []Issue) {
	reg := &Registry{ids: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, []Issue{issuef(CategoryRegistry, path, "missing contract registry")}
		}
		return reg, []Issue{issuef(CategoryRegistry, path, "read contract registry: %v", err)}
	}

	doc, issues := ParseDocument(path, string(data))

	items, ok := doc.Meta.List("contracts")
	if !ok {
		issues = append(issues, issuef(CategoryRegistry, path, "registry has no contracts list"))
		return reg, issues
	}

	for _, item := range items {
		if item.Record == nil {
			issues = append(issues, issuef(CategoryRegistry, path,
				"line %d: registry entry must be a record", item.Line))
			continue
		}

		var missing []string
		for _, key := range registryFields {
			if v, ok := item.Record.Get(key); !ok || v == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, issuef(CategoryRegistry, path,
				"line %d: registry entry missing fields: %s", item.Line, strings.Join(missing, ", ")))
		}

		id, _ := item.Record.Get("id")
		if id == "" {
			continue
		}
		if reg.ids[id] {
			issues = append(issues, issuef(CategoryRegistry, path,
				"duplicate registry id: %s", id))
			continue
		}

		entry := RegistryEntry{ID: id}
		entry.Type, _ = item.Record.Get("type")
		entry.Path, _ = item.Record.Get("path")
		entry.Owner, _ = item.Record.Get("owner")
		entry.Version, _ = item.Record.Get("version")

		reg.Entries = append(reg.Entries, entry)
		reg.ids[id] = true
	}

	return reg, issues
}
