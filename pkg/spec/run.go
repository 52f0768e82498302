package spec

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultRegistryFile is the registry filename resolved relative to the
// spec root when no explicit registry path is given.
const DefaultRegistryFile = "contracts.md"

// DefaultReportFile is the gate report filename written next to the
// merged document when no explicit report path is given.
const DefaultReportFile = "gate-report.json"

// ValidateOptions configures a validation batch.
type ValidateOptions struct {
	Paths        []string // explicit document paths; wins over Root
	Root         string   // directory to scan when Paths is empty
	RegistryPath string   // contract registry; defaults under Root
	AllowEmpty   bool     // zero discovered documents is a success
}

// ValidateResult is the outcome of one validation batch.
type ValidateResult struct {
	Documents []*Document
	Registry  *Registry
	Issues    []Issue
}

// Passed reports whether the batch produced no issues.
func (r *ValidateResult) Passed() bool {
	return len(r.Issues) == 0
}

// ValidateSet runs the validation pipeline over a document batch:
// parse -> classify -> schema -> registry cross-reference. All issues
// accumulate; no stage aborts the batch. The returned error covers only
// discovery-level failures, never validation findings.
func ValidateSet(opts ValidateOptions) (*ValidateResult, error) {
	paths, err := resolvePaths(opts.Paths, opts.Root)
	if err != nil {
		return nil, err
	}
	regPath := registryPath(opts.RegistryPath, opts.Root)
	paths = withoutRegistry(paths, regPath)

	result := &ValidateResult{}
	if len(paths) == 0 {
		if opts.AllowEmpty {
			return result, nil
		}
		result.Issues = append(result.Issues,
			issuef(CategoryParse, valueOr(opts.Root, "."), "no spec documents found"))
		return result, nil
	}

	registry, regIssues := LoadRegistry(regPath)
	result.Registry = registry
	result.Issues = append(result.Issues, regIssues...)

	for _, path := range paths {
		doc, issues := readDocument(path)
		result.Issues = append(result.Issues, issues...)
		if doc == nil {
			continue
		}
		result.Documents = append(result.Documents, doc)
		result.Issues = append(result.Issues, ValidateSchema(doc, registry)...)
	}

	return result, nil
}

// MergeOptions configures a merge batch.
type MergeOptions struct {
	Paths        []string
	Root         string
	RegistryPath string
	OutputPath   string // required; overwritten on every run
	ReportPath   string // defaults to a sibling gate-report.json
	ID           string // merged document id override
	Title        string // merged document title override
}

// MergeResult is the outcome of one merge batch. Both artifacts are
// written even when the gate fails; the report status is the only
// pass/fail signal.
type MergeResult struct {
	Merged     *MergedDocument
	Report     *GateReport
	OutputPath string
	ReportPath string
}

// MergeSet runs the full pipeline over a workstream batch and writes the
// merged document and gate report. Documents discovered under a root, or
// supplied explicitly, that do not classify as workstreams still
// contribute validation issues but are not merged.
func MergeSet(opts MergeOptions) (*MergeResult, error) {
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("merge requires an output path")
	}

	paths, err := resolvePaths(opts.Paths, opts.Root)
	if err != nil {
		return nil, err
	}
	regPath := registryPath(opts.RegistryPath, opts.Root)
	paths = withoutRegistry(paths, regPath)

	var (
		issues      []Issue
		workstreams []*Document
	)

	if len(paths) == 0 {
		issues = append(issues,
			issuef(CategoryParse, valueOr(opts.Root, "."), "no workstream documents found"))
	}

	registry, regIssues := LoadRegistry(regPath)
	issues = append(issues, regIssues...)

	for _, path := range paths {
		doc, docIssues := readDocument(path)
		issues = append(issues, docIssues...)
		if doc == nil {
			continue
		}
		if doc.Type != TypeWorkstream {
			// Root scans pick up every candidate file; only workstreams
			// are merge inputs.
			if len(opts.Paths) > 0 {
				issues = append(issues, ValidateSchema(doc, registry)...)
			}
			continue
		}
		workstreams = append(workstreams, doc)
		issues = append(issues, ValidateSchema(doc, registry)...)
	}

	graph, graphIssues := BuildGraph(workstreams)
	issues = append(issues, graphIssues...)
	issues = append(issues, graph.DetectCycles()...)

	merged, report := Synthesize(workstreams, issues, opts.ID, opts.Title)

	reportPath := opts.ReportPath
	if reportPath == "" {
		reportPath = filepath.Join(filepath.Dir(opts.OutputPath), DefaultReportFile)
	}

	if err := writeArtifact(opts.OutputPath, []byte(merged.Encode())); err != nil {
		return nil, err
	}
	reportData, err := report.Encode()
	if err != nil {
		return nil, err
	}
	if err := writeArtifact(reportPath, reportData); err != nil {
		return nil, err
	}

	return &MergeResult{
		Merged:     merged,
		Report:     report,
		OutputPath: opts.OutputPath,
		ReportPath: reportPath,
	}, nil
}

// readDocument reads, parses, and classifies one spec file. An unreadable
// file yields a single issue and no document.
func readDocument(path string) (*Document, []Issue) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []Issue{issuef(CategoryParse, path, "read spec: %v", err)}
	}
	doc, issues := ParseDocument(path, string(data))
	if doc.noMeta {
		doc.Type = TypeUnknown
	} else {
		doc.Type = Classify(path, doc.Meta)
	}
	return doc, issues
}

func resolvePaths(paths []string, root string) ([]string, error) {
	if len(paths) > 0 {
		return paths, nil
	}
	if root == "" {
		return nil, nil
	}
	return DiscoverSpecs(root)
}

// withoutRegistry drops the registry document from the batch so a root
// scan does not validate it as a spec.
func withoutRegistry(paths []string, regPath string) []string {
	regClean := filepath.Clean(regPath)
	out := paths[:0]
	for _, p := range paths {
		if filepath.Clean(p) != regClean {
			out = append(out, p)
		}
	}
	return out
}

func registryPath(explicit, root string) string {
	if explicit != "" {
		return explicit
	}
	if root != "" {
		return filepath.Join(root, DefaultRegistryFile)
	}
	return DefaultRegistryFile
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
