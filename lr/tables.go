package lr

import (
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lr/sparse"
)

// ActionKind tags an ACTION-table cell.
type ActionKind int8

const (
	ActShift ActionKind = iota
	ActReduce
	ActAccept
)

// actionScale packs (kind, target) into one int32 cell of sparse.IntMatrix;
// target (a state or rule ID) is assumed to fit under 1<<24, comfortably
// beyond any grammar this module is built to handle.
const actionScale = 1 << 24

func encodeAction(kind ActionKind, target int) int32 {
	return int32(kind)*actionScale + int32(target)
}

func decodeAction(v int32) (ActionKind, int) {
	return ActionKind(v / actionScale), int(v % actionScale)
}

// Action is the decoded form of an ACTION-table cell.
type Action struct {
	Kind   ActionKind
	Target int // state ID for Shift, rule ID for Reduce/Accept
}

// Data holds the four extracted tables for one automaton.
type Data struct {
	Automaton *Automaton

	Action *sparse.IntMatrix // (state, symbol) -> encoded Action
	Goto   *sparse.IntMatrix // (state, nonterminal) -> state

	// Left maps (state, symbol) to the unique item that symbol predicts,
	// when exactly one candidate item exists and it is unique.
	Left map[[2]int]int
	// Backtrack maps (to-state, to-port) to (from-state, from-port) for
	// every closure (ε) ItemTransition whose target item is unique.
	Backtrack map[[2]int][2]int
}

// Extract builds ACTION, GOTO, LEFT and BACKTRACK over a.
// Returns a *lllrparse.Error with CauseBuildConflict on an unresolved
// shift/reduce or reduce/reduce collision.
func Extract(a *Automaton) (*Data, error) {
	g := a.Grammar
	d := &Data{
		Automaton: a,
		Action:    sparse.NewIntMatrix(len(a.States), g.NumSymbols(), sparse.DefaultNullValue),
		Goto:      sparse.NewIntMatrix(len(a.States), g.NumSymbols(), sparse.DefaultNullValue),
		Left:      map[[2]int]int{},
		Backtrack: map[[2]int][2]int{},
	}

	for _, t := range a.StateTransitions() {
		sym := g.Symbol(t.Symbol)
		switch {
		case sym.IsTerminalLike():
			d.Action.Set(t.From, t.Symbol, encodeAction(ActShift, t.To))
		case sym.IsNonTerminal():
			d.Goto.Set(t.From, t.Symbol, int32(t.To))
		}
	}

	for _, st := range a.States {
		for _, id := range st.Items {
			it := a.Items[id]
			body := g.Rule(it.Rule).Body
			switch {
			case it.CanAccept(a.StartRule, body):
				// Only the true augmentation's pre-End-shift accept (dot
				// stopped at the closing End, CanAccept) must win its cell
				// unconditionally -- that collision is always this rule's
				// own structural End-shift, never a real ambiguity. A
				// wrapper's ordinary full-consumption accept goes through
				// the same conflict/preference resolution as any other
				// entry, so a genuinely ambiguous wrapper candidate still
				// surfaces as a BuildConflict for tryBuildWrapper to reject.
				overridesEndShift := len(body) > 0 && body[len(body)-1] == grammar.EndID
				if err := d.trySetAction(g, st.ID, it.AcceptSymbol(), ActAccept, it.Rule, overridesEndShift); err != nil {
					return nil, err
				}
			case it.CanReduce(a.StartRule, body):
				if err := d.trySetAction(g, st.ID, it.Lookahead, ActReduce, it.Rule, false); err != nil {
					return nil, err
				}
			}
		}
	}

	// A LEFT candidate for (state, s) is any item that can explain s as the
	// next terminal: s is in FIRST over the item's unmatched remainder plus
	// lookahead. A parent closure item predicts everything its children
	// predict, so a cell survives with a single candidate only where one
	// item -- typically a partially matched kernel -- is alone in explaining
	// the terminal.
	leftCandidates := map[[2]int][]int{}
	for _, st := range a.States {
		for _, id := range st.Items {
			it := a.Items[id]
			body := g.Rule(it.Rule).Body
			first := g.FirstSequence(it.follow(body))
			for _, sym := range first {
				if sym == grammar.NullID {
					continue
				}
				key := [2]int{st.ID, sym}
				leftCandidates[key] = append(leftCandidates[key], id)
			}
		}
	}
	for key, ids := range leftCandidates {
		if len(ids) == 1 && a.Items[ids[0]].Unique {
			d.Left[key] = ids[0]
		}
	}

	// Only closure (epsilon) transitions go into BACKTRACK: those are the
	// only ones that stay within a single state, so walking them back
	// recovers the chain of rules this state's closure derived from without
	// re-crossing a real shift/goto that already consumed input.
	for _, t := range a.ItemTransitions() {
		if !t.Eps {
			continue
		}
		targetID := a.States[t.ToState].Items[t.ToPort]
		if a.Items[targetID].Unique {
			d.Backtrack[[2]int{t.ToState, t.ToPort}] = [2]int{t.FromState, t.FromPort}
		}
	}

	return d, nil
}

// trySetAction resolves a write to an ACTION cell: Accept beats
// Reduce at the same cell unconditionally. When overrideShift is set -- only
// for the true augmentation rule's pre-End-shift accept (CanAccept) --
// Accept also beats a pre-existing Shift unconditionally, because that
// collision is always this rule's own structural End-shift, never a genuine
// grammar ambiguity. Any other collision (shift/reduce, reduce/reduce, or an
// ordinary wrapper accept colliding with a shift) is resolved by the
// grammar's declared action preference for that terminal, or fails the
// build.
func (d *Data) trySetAction(g *grammar.Grammar, state, symbol int, kind ActionKind, target int, overrideShift bool) error {
	if !d.Action.Conflict(state, symbol) {
		d.Action.Set(state, symbol, encodeAction(kind, target))
		return nil
	}
	existingKind, existingTarget := decodeAction(d.Action.Value(state, symbol))
	if existingKind == kind && existingTarget == target {
		return nil
	}
	if existingKind == ActAccept {
		return nil
	}
	if kind == ActAccept {
		if existingKind == ActReduce || overrideShift {
			d.Action.Set(state, symbol, encodeAction(kind, target))
			return nil
		}
	}
	switch g.ActionPreference(symbol) {
	case grammar.PrefShift:
		if kind == ActShift {
			d.Action.Set(state, symbol, encodeAction(kind, target))
		}
		return nil
	case grammar.PrefReduce:
		if kind == ActReduce {
			d.Action.Set(state, symbol, encodeAction(kind, target))
		}
		return nil
	default:
		tracer().Errorf("lr: unresolved action conflict in state %d on %s", state, g.Symbol(symbol))
		return lllrparse.NewBuildConflictError(state, g.Symbol(symbol).Name)
	}
}

// GetAction decodes the ACTION cell at (state, symbol), if any.
func (d *Data) GetAction(state, symbol int) (Action, bool) {
	if !d.Action.Conflict(state, symbol) {
		return Action{}, false
	}
	kind, target := decodeAction(d.Action.Value(state, symbol))
	return Action{Kind: kind, Target: target}, true
}

// GetGoto returns the GOTO target for (state, nonterminal), if any.
func (d *Data) GetGoto(state, nonterminal int) (int, bool) {
	if !d.Goto.Conflict(state, nonterminal) {
		return 0, false
	}
	return int(d.Goto.Value(state, nonterminal)), true
}
