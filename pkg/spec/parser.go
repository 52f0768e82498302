package spec

import (
	"fmt"
	"strings"
)

// Block is the metadata block AST: an ordered list of fields.
type Block struct {
	Fields []*Field
}

// Field is one metadata field, either a scalar or a list.
type Field struct {
	Key    string
	Line   int
	IsList bool
	Scalar string
	Items  []*Item
}

// Item is one list entry: a scalar value or a record.
type Item struct {
	Line   int
	Scalar string
	Record *Record
}

// Record is an ordered set of key/value pairs inside a list item.
// An item opened with `- key: value` absorbs subsequent deeper-indented
// `key: value` lines as additional record fields.
type Record struct {
	Fields []RecordField
}

// RecordField is one key/value pair of a record.
type RecordField struct {
	Key   string
	Value string
}

// Get returns the value of the first field with the given key.
func (r *Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Scalar returns the value of the first scalar field with the given key.
func (b *Block) Scalar(key string) (string, bool) {
	for _, f := range b.Fields {
		if f.Key == key && !f.IsList {
			return f.Scalar, true
		}
	}
	return "", false
}

// List returns the items of the first list field with the given key.
func (b *Block) List(key string) ([]*Item, bool) {
	for _, f := range b.Fields {
		if f.Key == key && f.IsList {
			return f.Items, true
		}
	}
	return nil, false
}

// Has reports whether any field with the given key exists.
func (b *Block) Has(key string) bool {
	for _, f := range b.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Strings flattens a list field to plain values: scalar items verbatim,
// record items contributing their "id" field when present.
func (b *Block) Strings(key string) []string {
	items, ok := b.List(key)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		if item.Record != nil {
			if id, ok := item.Record.Get("id"); ok {
				values = append(values, id)
			}
			continue
		}
		if item.Scalar != "" {
			values = append(values, item.Scalar)
		}
	}
	return values
}

// Encode serializes the block back to metadata syntax, including the
// opening and closing separators. Parse-then-encode-then-parse is
// lossless for scalar and list-of-scalar fields.
func (b *Block) Encode() string {
	var sb strings.Builder
	sb.WriteString(separator + "\n")
	for _, f := range b.Fields {
		if !f.IsList {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, f.Scalar)
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", f.Key)
		for _, item := range f.Items {
			if item.Record == nil {
				fmt.Fprintf(&sb, "  - %s\n", item.Scalar)
				continue
			}
			for i, rf := range item.Record.Fields {
				if i == 0 {
					fmt.Fprintf(&sb, "  - %s: %s\n", rf.Key, rf.Value)
				} else {
					fmt.Fprintf(&sb, "    %s: %s\n", rf.Key, rf.Value)
				}
			}
		}
	}
	sb.WriteString(separator + "\n")
	return sb.String()
}

// ParseDocument parses raw document text into a Document. Parse problems
// are returned as issues, one per offending line; partial metadata is
// always returned so downstream validation can still run.
func ParseDocument(path, text string) (*Document, []Issue) {
	tokens, body, found, terminated := scanDocument(text)

	doc := &Document{Path: path, Meta: &Block{}, Body: body}
	if !found {
		doc.Body = text
		doc.noMeta = true
		return doc, []Issue{issuef(CategoryParse, path, "missing metadata block")}
	}

	var issues []Issue
	if !terminated {
		issues = append(issues, issuef(CategoryParse, path, "unterminated metadata block"))
	}

	block, parseIssues := parseBlock(path, tokens)
	doc.Meta = block
	return doc, append(issues, parseIssues...)
}

// parseBlock runs recursive-descent over the block tokens, building the
// AST and collecting one issue per unparseable line.
func parseBlock(path string, tokens []token) (*Block, []Issue) {
	block := &Block{}
	var issues []Issue
	var open *Field // list field currently accepting items, or nil

	for _, tok := range tokens {
		switch tok.kind {
		case tokenBlank:
			continue

		case tokenKeyValue:
			if tok.indent > 0 {
				if rec := openRecord(open); rec != nil {
					rec.Fields = append(rec.Fields, RecordField{Key: tok.key, Value: tok.value})
					continue
				}
				open = nil
				issues = append(issues, issuef(CategoryParse, path,
					"line %d: unexpected indented line: %s", tok.line, strings.TrimSpace(tok.raw)))
				continue
			}
			open = nil
			block.Fields = append(block.Fields, &Field{Key: tok.key, Line: tok.line, Scalar: tok.value})

		case tokenListKey:
			if tok.indent > 0 {
				open = nil
				issues = append(issues, issuef(CategoryParse, path,
					"line %d: nested lists are not supported", tok.line))
				continue
			}
			f := &Field{Key: tok.key, Line: tok.line, IsList: true}
			block.Fields = append(block.Fields, f)
			open = f

		case tokenListItem:
			if open == nil {
				issues = append(issues, issuef(CategoryParse, path,
					"line %d: list item outside a list: %s", tok.line, strings.TrimSpace(tok.raw)))
				continue
			}
			open.Items = append(open.Items, &Item{Line: tok.line, Scalar: tok.value})

		case tokenRecordItem:
			if open == nil {
				issues = append(issues, issuef(CategoryParse, path,
					"line %d: list item outside a list: %s", tok.line, strings.TrimSpace(tok.raw)))
				continue
			}
			rec := &Record{Fields: []RecordField{{Key: tok.key, Value: tok.value}}}
			open.Items = append(open.Items, &Item{Line: tok.line, Record: rec})

		case tokenGarbage:
			open = nil
			issues = append(issues, issuef(CategoryParse, path,
				"line %d: unrecognized metadata line: %s", tok.line, strings.TrimSpace(tok.raw)))
		}
	}

	return block, issues
}

// openRecord returns the record of the last item of the open list, if the
// open list's last item is a record.
func openRecord(open *Field) *Record {
	if open == nil || len(open.Items) == 0 {
		return nil
	}
	return open.Items[len(open.Items)-1].Record
}
