package lr

import (
	"errors"
	"testing"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
)

// parensGrammar builds the classic unambiguous S -> ( S ) | x, which has no
// LR(1) conflicts of any kind.
func parensGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder("parens")
	b.AddRule("S", []string{"(", "S", ")"})
	b.AddRule("S", []string{"x"})
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return g
}

func TestBuildAndExtractNoConflictOnUnambiguousGrammar(t *testing.T) {
	g := parensGrammar(t)
	aut := Build(g, 0)
	if len(aut.States) == 0 {
		t.Fatalf("Build produced no states")
	}
	data, err := Extract(aut)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	// State 0 only ever holds the augmentation item at its seed lookahead
	// (Null), whose head is the leading End sentinel every input queue is
	// wrapped with (driver.buildInputQueue); its one action is a shift on
	// End into the state that actually starts recognizing S.
	startAct, ok := data.GetAction(0, grammar.EndID)
	if !ok || startAct.Kind != ActShift {
		t.Fatalf("state 0 should shift on the leading End sentinel, got %+v, ok=%v", startAct, ok)
	}

	lparenID, _ := g.SymbolByName("(")
	xID, _ := g.SymbolByName("x")
	real := startAct.Target
	if _, ok := data.GetAction(real, lparenID); !ok {
		t.Fatalf("state %d should have an action on '(' (shift into S -> ( S ))", real)
	}
	if _, ok := data.GetAction(real, xID); !ok {
		t.Fatalf("state %d should have an action on 'x' (shift into S -> x)", real)
	}
}

func TestStateAndItemTransitionsStayInRange(t *testing.T) {
	g := parensGrammar(t)
	aut := Build(g, 0)
	for _, st := range aut.StateTransitions() {
		if st.From < 0 || st.From >= len(aut.States) || st.To < 0 || st.To >= len(aut.States) {
			t.Fatalf("state transition %+v references an out-of-range state", st)
		}
	}
	for _, it := range aut.ItemTransitions() {
		if it.FromState < 0 || it.FromState >= len(aut.States) || it.ToState < 0 || it.ToState >= len(aut.States) {
			t.Fatalf("item transition %+v references an out-of-range state", it)
		}
		if it.FromPort < 0 || it.FromPort >= len(aut.States[it.FromState].Items) {
			t.Fatalf("item transition %+v has an out-of-range FromPort", it)
		}
		if it.ToPort < 0 || it.ToPort >= len(aut.States[it.ToState].Items) {
			t.Fatalf("item transition %+v has an out-of-range ToPort", it)
		}
	}
}

// TestExtractLeftAndBacktrackOverWrapper builds the embedded automaton the
// LLLR driver would use for S -> a A | a B; A -> c e; B -> d and checks the
// two tables its early-stop depends on: LEFT must name the lone unique item
// A -> c . e for the terminal e (every other terminal is explained by two or
// more items at once), and BACKTRACK must invert the closure derivations so
// that item's chain can be walked back to the wrapper kernel.
func TestExtractLeftAndBacktrackOverWrapper(t *testing.T) {
	b := grammar.NewBuilder("island")
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

	sID, _ := g.SymbolByName("S")
	wrapHead := g.WrapSymbols(sID, []int{sID}, []int{grammar.EndID})
	wrapRule := g.RulesForHead(wrapHead)[0]

	aut := Build(g, wrapRule)
	data, err := Extract(aut)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	eID, _ := g.SymbolByName("e")
	aRuleID := g.RulesForHead(mustSymbol(t, g, "A"))[0]
	found := false
	for key, itemID := range data.Left {
		if key[1] != eID {
			continue
		}
		found = true
		it := aut.Items[itemID]
		if it.Rule != aRuleID || it.Dot != 1 || !it.Unique {
			t.Fatalf("LEFT on e = %+v, want the unique item A -> c . e", it)
		}
	}
	if !found {
		t.Fatalf("no LEFT entry on e; e is the one terminal a single item explains")
	}
	if len(data.Backtrack) == 0 {
		t.Fatalf("BACKTRACK is empty; closure derivations of unique items should be invertible")
	}
}

func mustSymbol(t *testing.T, g *grammar.Grammar, name string) int {
	t.Helper()
	id, ok := g.SymbolByName(name)
	if !ok {
		t.Fatalf("symbol %q not declared", name)
	}
	return id
}

func TestExtractDetectsReduceReduceConflict(t *testing.T) {
	// S -> A | B, A -> x, B -> x: after shifting x, both A -> x . and
	// B -> x . want to reduce under the same lookahead (End), an
	// unresolvable reduce/reduce collision with no declared preference.
	b := grammar.NewBuilder("rr")
	b.AddRule("S", []string{"A"})
	b.AddRule("S", []string{"B"})
	b.AddRule("A", []string{"x"})
	b.AddRule("B", []string{"x"})
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	aut := Build(g, 0)
	_, err = Extract(aut)
	var pe *lllrparse.Error
	if !errors.As(err, &pe) || pe.Cause != lllrparse.CauseBuildConflict {
		t.Fatalf("Extract() = %v, want CauseBuildConflict", err)
	}
}

func TestActionPreferenceResolvesShiftReduceConflict(t *testing.T) {
	// The textbook case: E -> E + E | id is ambiguous on '+' (the state
	// after "E + E" both wants to reduce on lookahead '+' and wants to
	// shift the next '+'). Without a preference this is a genuine
	// conflict; declaring one resolves it.
	b := grammar.NewBuilder("expr")
	b.AddRule("E", []string{"E", "+", "E"})
	b.AddRule("E", []string{"id"})
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := Extract(Build(g, 0)); !lllrparse.IsConflict(err) {
		t.Fatalf("expected an unresolved conflict without a declared preference, got %v", err)
	}

	b2 := grammar.NewBuilder("expr")
	b2.AddRule("E", []string{"E", "+", "E"})
	b2.AddRule("E", []string{"id"})
	b2.SetActionPref("+", grammar.PrefShift)
	g2, err := b2.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := Extract(Build(g2, 0)); err != nil {
		t.Fatalf("Extract with a declared shift preference should not conflict: %v", err)
	}
}
