package gconfig

import (
	"testing"

	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lexer"
)

func TestBuildConstructsGrammarFromDecodedSpec(t *testing.T) {
	spec, err := Decode([]byte(validDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	g, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	sID, ok := g.SymbolByName("S")
	if !ok || g.StartSymbol() != sID {
		t.Fatalf("StartSymbol() should resolve to the declared start_symbol S")
	}
	if g.NumRules() != 3 { // augmentation + 2 alternatives
		t.Fatalf("NumRules() = %d, want 3", g.NumRules())
	}
}

func TestBuildDefaultsStartToFirstRuleHeadWhenUnset(t *testing.T) {
	spec, err := Decode([]byte(`
name: demo
rules:
  A: "x"
  B: "y"
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	g, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	aID, _ := g.SymbolByName("A")
	if g.StartSymbol() != aID {
		t.Fatalf("StartSymbol() should default to the first rule head (A)")
	}
}

func TestBuildRejectsInvalidActionPreference(t *testing.T) {
	_, err := Build(&Spec{
		Name:      "bad-actions",
		ruleOrder: []ruleEntry{{head: "S", body: []string{"x"}}},
		Actions:   map[string]string{"x": "sideways"},
	})
	if err == nil {
		t.Fatalf("Build should reject an action preference that isn't shift or reduce")
	}
}

func TestBuildResolvesActionPreference(t *testing.T) {
	g, err := Build(&Spec{
		Name:      "good-actions",
		ruleOrder: []ruleEntry{{head: "S", body: []string{"x"}}},
		Actions:   map[string]string{"x": "shift"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	xID, _ := g.SymbolByName("x")
	if g.ActionPreference(xID) != grammar.PrefShift {
		t.Fatalf("ActionPreference(x) = %v, want PrefShift", g.ActionPreference(xID))
	}
}

func TestMatcherForSingleValueIsRegex(t *testing.T) {
	m := matcherFor(stringOrList{"[0-9]+"})
	rm, ok := m.(lexer.RegexMatcher)
	if !ok || rm.Expr != "[0-9]+" {
		t.Fatalf("matcherFor(single) = %#v, want a RegexMatcher", m)
	}
}

func TestMatcherForMultipleValuesIsLiteralSet(t *testing.T) {
	m := matcherFor(stringOrList{"if", "then"})
	lm, ok := m.(lexer.LiteralSetMatcher)
	if !ok || len(lm.Literals) != 2 {
		t.Fatalf("matcherFor(multiple) = %#v, want a LiteralSetMatcher with 2 literals", m)
	}
}

func TestActionPrefForRecognizesBothDirections(t *testing.T) {
	if p, err := actionPrefFor("shift"); err != nil || p != grammar.PrefShift {
		t.Fatalf("actionPrefFor(shift) = (%v, %v), want (PrefShift, nil)", p, err)
	}
	if p, err := actionPrefFor("reduce"); err != nil || p != grammar.PrefReduce {
		t.Fatalf("actionPrefFor(reduce) = (%v, %v), want (PrefReduce, nil)", p, err)
	}
	if _, err := actionPrefFor("sideways"); err == nil {
		t.Fatalf("actionPrefFor(sideways) should fail")
	}
}
