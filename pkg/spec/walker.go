package spec

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExcludes are directory names skipped during spec discovery.
// Template, schema, and fixture subtrees hold markdown that is not a
// spec document and must not enter a validation batch.
var DefaultExcludes = []string{
	"templates",
	"schemas",
	"fixtures",
	"testdata",
	".git",
	"node_modules",
	"vendor",
}

// DiscoverSpecs walks root recursively and returns candidate spec files
// in deterministic lexical order.
func DiscoverSpecs(root string) ([]string, error) {
	return DiscoverSpecsExcluding(root, DefaultExcludes)
}

// DiscoverSpecsExcluding walks root with an explicit exclude list.
func DiscoverSpecsExcluding(root string, excludes []string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if d.IsDir() {
			for _, name := range excludes {
				if d.Name() == name {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return paths, nil
}
