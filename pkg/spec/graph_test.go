package spec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphDoc builds a minimal parsed document with an id and dependencies.
func graphDoc(t *testing.T, id string, deps ...string) *Document {
	t.Helper()
	text := "---\nid: " + id + "\ndependencies:\n"
	for _, d := range deps {
		text += fmt.Sprintf("  - %s\n", d)
	}
	text += "---\n"
	doc, issues := ParseDocument(id+".md", text)
	require.Empty(t, issues)
	return doc
}

func TestBuildGraph_NoCycle(t *testing.T) {
	docs := []*Document{
		graphDoc(t, "A", "B"),
		graphDoc(t, "B", "C"),
		graphDoc(t, "C"),
	}

	g, issues := BuildGraph(docs)
	require.Empty(t, issues)
	assert.Equal(t, 3, g.Len())
	assert.Empty(t, g.DetectCycles())
}

func TestDetectCycles_SingleCycleFullPath(t *testing.T) {
	docs := []*Document{
		graphDoc(t, "A", "B"),
		graphDoc(t, "B", "C"),
		graphDoc(t, "C", "A"),
	}

	g, issues := BuildGraph(docs)
	require.Empty(t, issues)

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1, "exactly one issue per cycle")
	assert.Equal(t, CategoryGraph, cycles[0].Category)
	assert.Contains(t, cycles[0].Message, "A -> B -> C -> A")
}

func TestDetectCycles_TwoDisjointCycles(t *testing.T) {
	docs := []*Document{
		graphDoc(t, "A", "B"),
		graphDoc(t, "B", "A"),
		graphDoc(t, "C", "D"),
		graphDoc(t, "D", "C"),
	}

	g, issues := BuildGraph(docs)
	require.Empty(t, issues)

	cycles := g.DetectCycles()
	require.Len(t, cycles, 2)
	assert.Contains(t, cycles[0].Message, "A -> B -> A")
	assert.Contains(t, cycles[1].Message, "C -> D -> C")
}

func TestBuildGraph_DanglingDependency(t *testing.T) {
	docs := []*Document{
		graphDoc(t, "A", "B", "ghost"),
		graphDoc(t, "B", "phantom"),
	}

	_, issues := BuildGraph(docs)
	require.Len(t, issues, 2, "one issue per (document, missing id) pair")
	assert.Equal(t, "A.md", issues[0].File)
	assert.Contains(t, issues[0].Message, "dangling dependency: ghost")
	assert.Equal(t, "B.md", issues[1].File)
	assert.Contains(t, issues[1].Message, "dangling dependency: phantom")
}

func TestBuildGraph_DuplicateIDs(t *testing.T) {
	first := graphDoc(t, "A")
	second, _ := ParseDocument("other.md", "---\nid: A\ndependencies:\n---\n")
	third := graphDoc(t, "B", "A")

	g, issues := BuildGraph([]*Document{first, second, third})

	// Both declaring files are named; the id joins the graph in neither.
	var dupFiles []string
	for _, issue := range issues {
		if issue.Category == CategoryIdentity {
			assert.Contains(t, issue.Message, "duplicate document id: A")
			dupFiles = append(dupFiles, issue.File)
		}
	}
	assert.Equal(t, []string{"A.md", "other.md"}, dupFiles)
	assert.Equal(t, 1, g.Len(), "only B remains in the arena")

	// B's edge onto the excluded id is dropped without a dangling report.
	for _, issue := range issues {
		assert.NotEqual(t, CategoryGraph, issue.Category)
	}
}

func TestBuildGraph_DocumentWithoutID(t *testing.T) {
	noID, _ := ParseDocument("anon.md", "---\ntitle: anon\n---\n")

	g, issues := BuildGraph([]*Document{noID, graphDoc(t, "A")})
	require.Empty(t, issues, "missing ids are a schema concern, not a graph one")
	assert.Equal(t, 1, g.Len())
}
