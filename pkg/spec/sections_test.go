package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Objective", "objective"},
		{"  Acceptance Criteria  ", "acceptance criteria"},
		{"Interfaces & Contracts", "interfaces and contracts"},
		{"Success-Criteria", "success criteria"},
		{"What, exactly?!", "what exactly"},
		{"A   B\tC", "a b c"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeading(tt.in))
		})
	}
}

func TestSectionIndex(t *testing.T) {
	body := `
# Objective

Some text with # not a heading.

## Interfaces & Contracts

### Acceptance Criteria

#not-a-heading
`

	sections := SectionIndex(body)
	assert.True(t, sections["objective"])
	assert.True(t, sections["interfaces and contracts"])
	assert.True(t, sections["acceptance criteria"])
	assert.False(t, sections["not a heading"], "marker must be followed by a space")
	assert.Len(t, sections, 3)
}
