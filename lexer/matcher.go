package lexer

import "strings"

// RegexMatcher recognizes a terminal by a single lexmachine regular
// expression, e.g. `[0-9]+` for an integer literal. The grammar-file format
// keeps "regex" and "alternation of literals" as two distinct matcher
// variants rather than collapsing every terminal to one regex-only path.
type RegexMatcher struct {
	Expr string
}

// Pattern returns the matcher's lexmachine pattern verbatim.
func (m RegexMatcher) Pattern() string { return m.Expr }

// LiteralSetMatcher recognizes a terminal by a fixed set of literal
// spellings, e.g. a keyword with several accepted casings. Pattern joins
// the escaped literals into a single lexmachine alternation.
type LiteralSetMatcher struct {
	Literals []string
}

// Pattern returns the matcher's literals as a parenthesized alternation,
// each literal escaped so that punctuation inside it is matched verbatim
// rather than interpreted as a regex metacharacter.
func (m LiteralSetMatcher) Pattern() string {
	parts := make([]string, len(m.Literals))
	for i, lit := range m.Literals {
		parts[i] = escapeLiteral(lit)
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// escapeLiteral backslash-escapes every lexmachine regex metacharacter in s
// so that s matches only its own literal text.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isRegexMeta(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isRegexMeta(r rune) bool {
	switch r {
	case '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '\\':
		return true
	}
	return false
}
