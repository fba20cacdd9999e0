package gconfig

import (
	"fmt"
	"sort"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lexer"
)

// Build turns a decoded Spec into a grammar.Grammar, resolving each
// `tokens`/`ignore` entry into a concrete lexer.Matcher and each `actions`
// entry into a grammar.ActionPref. Rules are added in the order
// Decode recorded them, so symbol IDs and the start-symbol default ("first
// rule head") are deterministic.
func Build(spec *Spec) (*grammar.Grammar, error) {
	b := grammar.NewBuilder(spec.Name)
	if spec.StartSymbol != "" {
		b.SetStart(spec.StartSymbol)
	}

	for _, re := range spec.ruleOrder {
		b.AddRule(re.head, re.body)
	}

	for _, name := range sortedKeys(spec.Tokens) {
		b.AddToken(name, matcherFor(spec.Tokens[name]))
	}
	for _, name := range sortedStringMapKeys(spec.Ignore) {
		b.AddIgnore(name, lexer.RegexMatcher{Expr: spec.Ignore[name]})
	}
	for _, name := range sortedStringMapKeys(spec.Actions) {
		pref, err := actionPrefFor(spec.Actions[name])
		if err != nil {
			return nil, lllrparse.NewGrammarFileError(fmt.Sprintf("action preference for %q", name), err)
		}
		b.SetActionPref(name, pref)
	}

	g, err := b.Build()
	if err != nil {
		return nil, lllrparse.NewGrammarFileError("cannot build grammar", err)
	}
	return g, nil
}

// matcherFor resolves one `tokens` entry: a single value is a regex, a list
// of two or more strings is a literal alternation. A one-element list cannot
// be told apart from a bare string after decoding, so it is also a regex.
func matcherFor(vals stringOrList) grammar.Matcher {
	if len(vals) == 1 {
		return lexer.RegexMatcher{Expr: vals[0]}
	}
	return lexer.LiteralSetMatcher{Literals: append([]string(nil), vals...)}
}

func actionPrefFor(v string) (grammar.ActionPref, error) {
	switch v {
	case "shift":
		return grammar.PrefShift, nil
	case "reduce":
		return grammar.PrefReduce, nil
	default:
		return grammar.PrefNone, fmt.Errorf("expected %q or %q, found %q", "shift", "reduce", v)
	}
}

func sortedKeys(m map[string]stringOrList) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedStringMapKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
