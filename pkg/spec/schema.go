package spec

// fieldKind is the type predicate a required field must satisfy.
type fieldKind int

const (
	fieldString fieldKind = iota // non-empty scalar
	fieldList                    // list field, possibly empty
)

type requiredField struct {
	key  string
	kind fieldKind
}

// docSchema is the per-type validation table: required metadata fields
// and required canonical section names.
type docSchema struct {
	fields   []requiredField
	sections []string
}

var schemas = map[DocType]docSchema{
	TypeWorkstream: {
		fields: []requiredField{
			{"id", fieldString},
			{"title", fieldString},
			{"owner", fieldString},
			{"scope", fieldString},
			{"status", fieldString},
			{"dependencies", fieldList},
			{"contracts", fieldList},
		},
		sections: []string{
			"objective",
			"deliverables",
			"interfaces and contracts",
			"acceptance criteria",
		},
	},
	TypeProblem: {
		fields: []requiredField{
			{"id", fieldString},
			{"title", fieldString},
			{"summary", fieldString},
			{"success-criteria", fieldList},
		},
		sections: []string{
			"context",
			"constraints",
			"success criteria",
		},
	},
	TypeMaster: {
		fields: []requiredField{
			{"id", fieldString},
			{"title", fieldString},
			{"status", fieldString},
			{"workstreams", fieldList},
			{"gates", fieldList},
		},
		sections: []string{
			"overview",
			"workstreams",
			"gates",
		},
	},
}

// ValidateSchema checks a classified document against its type schema.
// Every missing field or section yields one issue; validation never stops
// at the first failure. Workstream contract references are additionally
// resolved against the registry.
func ValidateSchema(doc *Document, reg *Registry) []Issue {
	schema, ok := schemas[doc.Type]
	if !ok {
		return []Issue{issuef(CategorySchema, doc.Path, "unknown spec type")}
	}

	var issues []Issue
	for _, rf := range schema.fields {
		issues = append(issues, checkField(doc, rf)...)
	}

	sections := SectionIndex(doc.Body)
	for _, name := range schema.sections {
		if !sections[name] {
			issues = append(issues, issuef(CategorySchema, doc.Path,
				"missing required section: %s", name))
		}
	}

	if doc.Type == TypeWorkstream {
		issues = append(issues, checkContracts(doc, reg)...)
	}

	return issues
}

func checkField(doc *Document, rf requiredField) []Issue {
	switch rf.kind {
	case fieldList:
		if _, ok := doc.Meta.List(rf.key); !ok {
			if _, scalar := doc.Meta.Scalar(rf.key); scalar {
				return []Issue{issuef(CategorySchema, doc.Path, "field must be a list: %s", rf.key)}
			}
			return []Issue{issuef(CategorySchema, doc.Path, "missing required field: %s", rf.key)}
		}
	default:
		v, ok := doc.Meta.Scalar(rf.key)
		if !ok || v == "" {
			return []Issue{issuef(CategorySchema, doc.Path, "missing required field: %s", rf.key)}
		}
	}
	return nil
}

// checkContracts resolves every referenced contract id against the
// registry and flags contract records that carry no id at all.
func checkContracts(doc *Document, reg *Registry) []Issue {
	items, ok := doc.Meta.List("contracts")
	if !ok {
		return nil
	}

	var issues []Issue
	for _, item := range items {
		id := item.Scalar
		if item.Record != nil {
			var found bool
			if id, found = item.Record.Get("id"); !found || id == "" {
				issues = append(issues, issuef(CategorySchema, doc.Path,
					"line %d: contract reference missing id", item.Line))
				continue
			}
		}
		if id == "" {
			continue
		}
		if !reg.Has(id) {
			issues = append(issues, issuef(CategoryRegistry, doc.Path,
				"unknown contract: %s", id))
		}
	}
	return issues
}
