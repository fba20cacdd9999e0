package driver

import (
	"errors"
	"testing"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
)

// conflictedGrammar builds the classic prediction-ambiguous S -> a A | a B; A -> c; B -> d.
// Both S-alternatives start with the terminal a, so a plain LL(1) table
// cannot predict which one to take from a alone -- S is conflicted and must
// be resolved by an embedded LR(1) wrapper.
func conflictedGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder("conflicted")
	b.AddRule("S", []string{"a", "A"})
	b.AddRule("S", []string{"a", "B"})
	b.AddRule("A", []string{"c"})
	b.AddRule("B", []string{"d"})
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return g
}

func TestBuildLLOnConflictedGrammarReportsConflict(t *testing.T) {
	g := conflictedGrammar(t)
	_, err := BuildLL(g)
	var pe *lllrparse.Error
	if !errors.As(err, &pe) || pe.Cause != lllrparse.CauseLLConflict {
		t.Fatalf("BuildLL() = %v, want CauseLLConflict", err)
	}
	if pe.Symbol != "S" {
		t.Fatalf("Symbol = %q, want %q", pe.Symbol, "S")
	}
}

func TestBuildLLLRResolvesConflictAndDrivesAC(t *testing.T) {
	g := conflictedGrammar(t)
	tables, err := BuildLLLR(g)
	if err != nil {
		t.Fatalf("BuildLLLR: %v", err)
	}
	if !tables.Conflicted[g.StartSymbol()] {
		t.Fatalf("S should have been handed over to an embedded LR wrapper")
	}
	if len(tables.Wrappers) == 0 {
		t.Fatalf("BuildLLLR should have synthesized at least one wrapper")
	}

	tokens := []lllrparse.Token{tok(g, "a"), tok(g, "c")}
	rules, err := DriveLLLR(g, tables, tokens)
	if err != nil {
		t.Fatalf("DriveLLLR: %v", err)
	}
	assertRuleSequence(t, g, rules, []string{
		"(0) #start → #end S #end",
		"(1) S → a A",
		"(3) A → c",
	})
}

func TestBuildLLLRDrivesAD(t *testing.T) {
	g := conflictedGrammar(t)
	tables, err := BuildLLLR(g)
	if err != nil {
		t.Fatalf("BuildLLLR: %v", err)
	}
	tokens := []lllrparse.Token{tok(g, "a"), tok(g, "d")}
	rules, err := DriveLLLR(g, tables, tokens)
	if err != nil {
		t.Fatalf("DriveLLLR: %v", err)
	}
	assertRuleSequence(t, g, rules, []string{
		"(0) #start → #end S #end",
		"(2) S → a B",
		"(4) B → d",
	})
}

// TestDriveLLLREarlyStop drives a wrapped parse where the embedded LR run
// can stop before consuming the whole island: after shifting "a c" in
// S -> a A | a B; A -> c e; B -> d, the lookahead e is explained by exactly
// one unique item (A -> c . e), so the driver emits S -> a A and A -> c e
// directly and hands the trailing e back to the outer LL loop instead of
// running the automaton to its accept state.
func TestDriveLLLREarlyStop(t *testing.T) {
	b := grammar.NewBuilder("early-stop")
	b.AddRule("S", []string{"a", "A"})
	b.AddRule("S", []string{"a", "B"})
	b.AddRule("A", []string{"c", "e"})
	b.AddRule("B", []string{"d"})
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tables, err := BuildLLLR(g)
	if err != nil {
		t.Fatalf("BuildLLLR: %v", err)
	}
	tokens := []lllrparse.Token{tok(g, "a"), tok(g, "c"), tok(g, "e")}
	rules, err := DriveLLLR(g, tables, tokens)
	if err != nil {
		t.Fatalf("DriveLLLR: %v", err)
	}
	assertRuleSequence(t, g, rules, []string{
		"(0) #start → #end S #end",
		"(1) S → a A",
		"(3) A → c e",
	})
}

// TestBuildLLLRDegeneratesToLLOnUnambiguousGrammar exercises the "LLLR on
// an LL(1) grammar degenerates to the LL(1) trace" property: no head is
// conflicted, so BuildLLLR must synthesize zero wrappers and DriveLLLR must
// reproduce exactly what DriveLL would.
func TestBuildLLLRDegeneratesToLLOnUnambiguousGrammar(t *testing.T) {
	g := parensGrammar(t)
	tables, err := BuildLLLR(g)
	if err != nil {
		t.Fatalf("BuildLLLR: %v", err)
	}
	if len(tables.Conflicted) != 0 {
		t.Fatalf("Conflicted = %v, want empty on an LL(1) grammar", tables.Conflicted)
	}
	if len(tables.Wrappers) != 0 {
		t.Fatalf("Wrappers = %v, want empty on an LL(1) grammar", tables.Wrappers)
	}

	tokens := []lllrparse.Token{tok(g, "("), tok(g, "x"), tok(g, ")")}
	rules, err := DriveLLLR(g, tables, tokens)
	if err != nil {
		t.Fatalf("DriveLLLR: %v", err)
	}
	assertRuleSequence(t, g, rules, []string{
		"(0) #start → #end S #end",
		"(1) S → ( S )",
		"(2) S → x",
	})
}

// TestBuildLLLRDegenerateBalancedGrammar exercises the balanced grammar S -> a S
// b | ε) through the LLLR driver: this grammar is already LL(1) (FIRST(a S
// b) and FOLLOW(S) are disjoint), so the hybrid path should behave exactly
// like the plain LL(1) driver on nested input.
func TestBuildLLLRDegenerateBalancedGrammar(t *testing.T) {
	b := grammar.NewBuilder("balanced")
	b.AddRule("S", []string{"a", "S", "b"})
	b.AddRule("S", nil)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tables, err := BuildLLLR(g)
	if err != nil {
		t.Fatalf("BuildLLLR: %v", err)
	}
	if len(tables.Wrappers) != 0 {
		t.Fatalf("Wrappers = %v, want empty: S -> aSb | ε is already LL(1)", tables.Wrappers)
	}

	tokens := []lllrparse.Token{tok(g, "a"), tok(g, "a"), tok(g, "b"), tok(g, "b")}
	rules, err := DriveLLLR(g, tables, tokens)
	if err != nil {
		t.Fatalf("DriveLLLR: %v", err)
	}
	assertRuleSequence(t, g, rules, []string{
		"(0) #start → #end S #end",
		"(1) S → a S b",
		"(1) S → a S b",
		"(2) S → ε",
	})
}
