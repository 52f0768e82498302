package spec

import "fmt"

// Category classifies a validation issue by the stage that produced it.
type Category string

const (
	// CategoryParse covers malformed or missing metadata blocks.
	CategoryParse Category = "parse"
	// CategorySchema covers missing required fields and sections.
	CategorySchema Category = "schema"
	// CategoryRegistry covers registry load failures and unresolved
	// contract references.
	CategoryRegistry Category = "registry"
	// CategoryGraph covers dangling dependencies and dependency cycles.
	CategoryGraph Category = "graph"
	// CategoryIdentity covers duplicate document ids within a batch.
	CategoryIdentity Category = "identity"
)

// Issue is one self-contained validation finding. Issues accumulate across
// the whole batch; no stage aborts on the first failure.
type Issue struct {
	File     string   `json:"file"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// String renders the issue as a single `file: message` line.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

func issuef(cat Category, file, format string, args ...any) Issue {
	return Issue{File: file, Message: fmt.Sprintf(format, args...), Category: cat}
}
