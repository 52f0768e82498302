// Package spec implements the specification validation and merge engine.
//
// A spec document is a plain-text file with a metadata block (opened and
// closed by a `---` separator line) followed by a markdown-style body. The
// engine parses a batch of documents, validates them against per-type
// schemas, cross-references the shared contract registry, builds a
// dependency graph, and synthesizes a merged document plus a gate report.
package spec

// DocType is the inferred type of a spec document.
type DocType string

const (
	// TypeWorkstream is a bounded unit of work with an owner, scope,
	// dependencies, and contract references.
	TypeWorkstream DocType = "workstream"
	// TypeProblem is a problem brief with a summary and success criteria.
	TypeProblem DocType = "problem"
	// TypeMaster is the top-level plan enumerating workstreams and gates.
	TypeMaster DocType = "master"
	// TypeUnknown matches no structural or path signal.
	TypeUnknown DocType = "unknown"
)

// Document is one parsed spec file. Immutable after Parse; classification
// is recorded once by Classify.
type Document struct {
	Path string
	Meta *Block
	Body string
	Type DocType

	// noMeta records that no metadata block was found at all; such
	// documents always classify as unknown regardless of path.
	noMeta bool
}

// ID returns the document id, or "" when the id field is absent.
func (d *Document) ID() string {
	id, _ := d.Meta.Scalar("id")
	return id
}

// Dependencies returns the declared dependency ids in document order.
func (d *Document) Dependencies() []string {
	return d.Meta.Strings("dependencies")
}

// ContractIDs returns the referenced contract ids in document order.
// Scalar list items are taken verbatim; record items contribute their
// "id" field. Records without an id are skipped here and flagged by
// schema validation.
func (d *Document) ContractIDs() []string {
	items, ok := d.Meta.List("contracts")
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Record == nil {
			if item.Scalar != "" {
				ids = append(ids, item.Scalar)
			}
			continue
		}
		if id, ok := item.Record.Get("id"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
