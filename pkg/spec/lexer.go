package spec

import "strings"

// separator delimits the metadata block at the top of a document.
const separator = "---"

type tokenKind int

const (
	tokenSeparator  tokenKind = iota
	tokenKeyValue             // key: value
	tokenListKey              // key:
	tokenListItem             // - value
	tokenRecordItem           // - key: value
	tokenBlank
	tokenGarbage
)

// token is one classified line of the metadata block.
type token struct {
	kind   tokenKind
	line   int // 1-based line number in the source document
	indent int // leading whitespace runes
	key    string
	value  string
	raw    string
}

// scanDocument locates the metadata block and tokenizes it.
// Returns the block tokens, the body text after the closing separator,
// whether an opening separator was found, and whether the block was
// closed by a second separator.
func scanDocument(text string) (tokens []token, body string, found, terminated bool) {
	lines := strings.Split(text, "\n")

	// The block must open on the first non-blank line.
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == separator {
			start = i
		}
		break
	}
	if start < 0 {
		return nil, text, false, false
	}

	for i := start + 1; i < len(lines); i++ {
		tok := lexLine(lines[i], i+1)
		if tok.kind == tokenSeparator {
			return tokens, strings.Join(lines[i+1:], "\n"), true, true
		}
		tokens = append(tokens, tok)
	}

	// Unterminated block: everything after the opening separator was
	// consumed as metadata, leaving no body.
	return tokens, "", true, false
}

// lexLine classifies a single metadata line.
func lexLine(raw string, n int) token {
	trimmed := strings.TrimRight(raw, " \t\r")
	content := strings.TrimLeft(trimmed, " \t")
	indent := len(trimmed) - len(content)

	tok := token{line: n, indent: indent, raw: raw}

	switch {
	case content == "":
		tok.kind = tokenBlank
	case content == separator && indent == 0:
		tok.kind = tokenSeparator
	case strings.HasPrefix(content, "- "), content == "-":
		rest := strings.TrimSpace(strings.TrimPrefix(content, "-"))
		if key, value, ok := splitKeyValue(rest); ok {
			tok.kind = tokenRecordItem
			tok.key = key
			tok.value = unquote(value)
		} else {
			tok.kind = tokenListItem
			tok.value = unquote(rest)
		}
	default:
		key, value, ok := splitKeyValue(content)
		switch {
		case ok && value == "":
			tok.kind = tokenListKey
			tok.key = key
		case ok:
			tok.kind = tokenKeyValue
			tok.key = key
			tok.value = unquote(value)
		default:
			tok.kind = tokenGarbage
		}
	}

	return tok
}

// splitKeyValue splits `key: value` or `key:` where key is a bare
// identifier (letters, digits, underscore, hyphen, dot).
func splitKeyValue(s string) (key, value string, ok bool) {
	idx := strings.Index(s, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = s[:idx]
	for _, r := range key {
		if !isKeyRune(r) {
			return "", "", false
		}
	}
	rest := s[idx+1:]
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		// `key:value` without a space is not a metadata line.
		return "", "", false
	}
	return key, strings.TrimSpace(rest), true
}

func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
