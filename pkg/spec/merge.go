package spec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MergeGates is the fixed gate list stamped into every merged document.
var MergeGates = []string{
	"schema-validation",
	"contract-registry",
	"dependency-graph",
}

// Defaults for merged document identity when no override is given.
const (
	DefaultMergeID    = "merged-spec"
	DefaultMergeTitle = "Merged Specification"
)

// GateReport is the machine-readable pass/fail summary of a merge run.
// Created once per invocation, written to disk, never mutated afterward.
type GateReport struct {
	Status          string    `json:"status"` // "pass" or "fail"
	GeneratedAt     time.Time `json:"generated_at"`
	WorkstreamCount int       `json:"workstream_count"`
	ContractCount   int       `json:"contract_count"`
	Issues          []Issue   `json:"issues"`
}

// Passed reports whether the gate passed.
func (r *GateReport) Passed() bool {
	return r.Status == "pass"
}

// Encode serializes the report as indented JSON.
func (r *GateReport) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal gate report: %w", err)
	}
	return append(data, '\n'), nil
}

// MergedDocument is the synthesized combination of the batch's workstream
// documents.
type MergedDocument struct {
	ID          string
	Title       string
	Status      string
	Workstreams []string // input order
	Contracts   []string // union, first-reference order
	Gates       []string
	summary     []mergeSummary
}

type mergeSummary struct {
	id    string
	owner string
	scope string
}

// Encode serializes the merged document in block syntax with a body
// summarizing workstreams and contracts.
func (d *MergedDocument) Encode() string {
	block := &Block{}
	block.Fields = append(block.Fields,
		&Field{Key: "id", Scalar: d.ID},
		&Field{Key: "title", Scalar: d.Title},
		&Field{Key: "status", Scalar: d.Status},
		scalarList("workstreams", d.Workstreams),
		scalarList("contracts", d.Contracts),
		scalarList("gates", d.Gates),
	)

	var sb strings.Builder
	sb.WriteString(block.Encode())
	sb.WriteString("\n# " + d.Title + "\n")

	sb.WriteString("\n## Workstreams\n\n")
	if len(d.summary) == 0 {
		sb.WriteString("None.\n")
	}
	for _, ws := range d.summary {
		fmt.Fprintf(&sb, "- **%s** (owner: %s): %s\n", ws.id, valueOr(ws.owner, "unassigned"), valueOr(ws.scope, "no scope declared"))
	}

	sb.WriteString("\n## Contracts\n\n")
	if len(d.Contracts) == 0 {
		sb.WriteString("None.\n")
	}
	for _, id := range d.Contracts {
		fmt.Fprintf(&sb, "- %s\n", id)
	}

	sb.WriteString("\n## Gates\n\n")
	for _, g := range d.Gates {
		fmt.Fprintf(&sb, "- %s\n", g)
	}

	return sb.String()
}

func scalarList(key string, values []string) *Field {
	f := &Field{Key: key, IsList: true}
	for _, v := range values {
		f.Items = append(f.Items, &Item{Scalar: v})
	}
	return f
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Synthesize combines the validated workstream documents and the full
// accumulated issue list into a merged document and a gate report. The
// report fails if and only if any issue was collected.
func Synthesize(docs []*Document, issues []Issue, id, title string) (*MergedDocument, *GateReport) {
	if id == "" {
		id = DefaultMergeID
	}
	if title == "" {
		title = DefaultMergeTitle
	}

	merged := &MergedDocument{
		ID:     id,
		Title:  title,
		Status: "draft",
		Gates:  MergeGates,
	}

	wsSeen := make(map[string]bool)
	contractSeen := make(map[string]bool)
	for _, doc := range docs {
		wsID := doc.ID()
		if wsID == "" || wsSeen[wsID] {
			continue
		}
		wsSeen[wsID] = true
		merged.Workstreams = append(merged.Workstreams, wsID)

		owner, _ := doc.Meta.Scalar("owner")
		scope, _ := doc.Meta.Scalar("scope")
		merged.summary = append(merged.summary, mergeSummary{id: wsID, owner: owner, scope: scope})

		for _, cid := range doc.ContractIDs() {
			if !contractSeen[cid] {
				contractSeen[cid] = true
				merged.Contracts = append(merged.Contracts, cid)
			}
		}
	}

	status := "pass"
	if len(issues) > 0 {
		status = "fail"
	}
	if issues == nil {
		issues = []Issue{}
	}

	report := &GateReport{
		Status:          status,
		GeneratedAt:     time.Now().UTC(),
		WorkstreamCount: len(merged.Workstreams),
		ContractCount:   len(merged.Contracts),
		Issues:          issues,
	}

	return merged, report
}
