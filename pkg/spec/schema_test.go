package spec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validWorkstreamText builds a workstream document that passes schema
// validation, with the given dependencies and contract references.
func validWorkstreamText(id string, deps, contracts []string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "id: %s\n", id)
	fmt.Fprintf(&sb, "title: Workstream %s\n", id)
	sb.WriteString("owner: team-a\n")
	sb.WriteString("scope: some bounded scope\n")
	sb.WriteString("status: draft\n")
	sb.WriteString("dependencies:\n")
	for _, d := range deps {
		fmt.Fprintf(&sb, "  - %s\n", d)
	}
	sb.WriteString("contracts:\n")
	for _, c := range contracts {
		fmt.Fprintf(&sb, "  - %s\n", c)
	}
	sb.WriteString("---\n")
	sb.WriteString("# Objective\n\n# Deliverables\n\n# Interfaces & Contracts\n\n# Acceptance Criteria\n")
	return sb.String()
}

func parseDoc(t *testing.T, path, text string) *Document {
	t.Helper()
	doc, issues := ParseDocument(path, text)
	require.Empty(t, issues)
	doc.Type = Classify(path, doc.Meta)
	return doc
}

func registryWith(ids ...string) *Registry {
	reg := &Registry{ids: make(map[string]bool)}
	for _, id := range ids {
		reg.ids[id] = true
		reg.Entries = append(reg.Entries, RegistryEntry{ID: id})
	}
	return reg
}

func TestValidateSchema_ValidWorkstream(t *testing.T) {
	doc := parseDoc(t, "ws-a.md", validWorkstreamText("ws-a", nil, []string{"contract-x"}))
	require.Equal(t, TypeWorkstream, doc.Type)

	issues := ValidateSchema(doc, registryWith("contract-x"))
	assert.Empty(t, issues)
}

func TestValidateSchema_MissingField(t *testing.T) {
	text := strings.Replace(validWorkstreamText("ws-a", nil, nil), "owner: team-a\n", "", 1)
	doc, _ := ParseDocument("ws-a.md", text)
	doc.Type = TypeWorkstream

	issues := ValidateSchema(doc, registryWith())
	require.Len(t, issues, 1)
	assert.Equal(t, CategorySchema, issues[0].Category)
	assert.Contains(t, issues[0].Message, "missing required field: owner")
}

func TestValidateSchema_ScalarWhereListRequired(t *testing.T) {
	text := strings.Replace(validWorkstreamText("ws-a", nil, nil),
		"contracts:\n", "contracts: contract-x\n", 1)
	doc, _ := ParseDocument("ws-a.md", text)
	doc.Type = TypeWorkstream

	issues := ValidateSchema(doc, registryWith())
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "field must be a list: contracts")
}

func TestValidateSchema_MissingSection(t *testing.T) {
	text := strings.Replace(validWorkstreamText("ws-a", nil, nil),
		"# Deliverables\n", "", 1)
	doc := parseDoc(t, "ws-a.md", text)

	issues := ValidateSchema(doc, registryWith())
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "missing required section: deliverables")
}

func TestValidateSchema_UnknownType(t *testing.T) {
	doc := parseDoc(t, "notes.md", "---\nid: notes\n---\nbody")
	require.Equal(t, TypeUnknown, doc.Type)

	issues := ValidateSchema(doc, registryWith())
	require.Len(t, issues, 1, "unknown type yields a single issue, not per-field noise")
	assert.Contains(t, issues[0].Message, "unknown spec type")
}

func TestValidateSchema_UnknownContract(t *testing.T) {
	doc := parseDoc(t, "ws-a.md", validWorkstreamText("ws-a", nil, []string{"contract-x", "contract-y"}))

	issues := ValidateSchema(doc, registryWith("contract-y"))
	require.Len(t, issues, 1)
	assert.Equal(t, CategoryRegistry, issues[0].Category)
	assert.Contains(t, issues[0].Message, "unknown contract: contract-x")
}

func TestValidateSchema_ContractRecordWithoutID(t *testing.T) {
	text := `---
id: ws-a
title: T
owner: team-a
scope: s
status: draft
dependencies:
contracts:
  - type: api
---
# Objective

# Deliverables

# Interfaces & Contracts

# Acceptance Criteria
`
	doc := parseDoc(t, "ws-a.md", text)

	issues := ValidateSchema(doc, registryWith())
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "contract reference missing id")
}

func TestValidateSchema_Monotonic(t *testing.T) {
	// Adding a previously missing field strictly reduces the issue count.
	broken := strings.Replace(validWorkstreamText("ws-a", nil, nil), "status: draft\n", "", 1)
	brokenDoc, _ := ParseDocument("ws-a.md", broken)
	brokenDoc.Type = TypeWorkstream
	before := len(ValidateSchema(brokenDoc, registryWith()))

	fixedDoc, _ := ParseDocument("ws-a.md", validWorkstreamText("ws-a", nil, nil))
	fixedDoc.Type = TypeWorkstream
	after := len(ValidateSchema(fixedDoc, registryWith()))

	assert.Less(t, after, before)
}

func TestValidateSchema_ProblemAndMaster(t *testing.T) {
	problem := `---
id: prob-login
title: Login failures
summary: users cannot log in
success-criteria:
  - login succeeds
---
# Context

# Constraints

# Success Criteria
`
	doc := parseDoc(t, "problem-login.md", problem)
	require.Equal(t, TypeProblem, doc.Type)
	assert.Empty(t, ValidateSchema(doc, registryWith()))

	master := `---
id: master-plan
title: The Plan
status: draft
workstreams:
  - ws-a
gates:
  - schema-validation
---
# Overview

# Workstreams

# Gates
`
	mdoc := parseDoc(t, "master.md", master)
	require.Equal(t, TypeMaster, mdoc.Type)
	assert.Empty(t, ValidateSchema(mdoc, registryWith()))
}
