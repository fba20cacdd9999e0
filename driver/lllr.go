package driver

import (
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lr"
)

// LLLRTables bundles the plain LL(1) table left after conflicted heads are
// carved out, plus one embedded LR(1) table per wrapper position chosen
// during the build phase.
type LLLRTables struct {
	LL *LLTable

	// Wrappers maps (ruleID, bodyIndex) -- the position within a rule's
	// body where a conflicted symbol was wrapped -- to the embedded LR(1)
	// table for that wrapper's automaton.
	Wrappers map[[2]int]*lr.Data
	// WrapperLen maps the same key to the number of body symbols the
	// wrapper covers, so the driver knows how many outer stack frames the
	// embedded parse replaces.
	WrapperLen map[[2]int]int
	// Conflicted holds every nonterminal that ended up driven entirely by
	// an embedded LR parse rather than by LL prediction.
	Conflicted map[int]bool
}

type chosenWrapper struct {
	head   int
	seq    []int
	follow []int
}

// BuildLLLR runs the LLLR wrapper-synthesis build phase: starting from
// the set of nonterminals the plain LL(1) table cannot predict, it grows
// that set to a fixed point, trying at each round to shield every
// not-yet-conflicted rule that mentions a conflicted symbol by wrapping the
// shortest body slice starting at that symbol that yields a conflict-free
// LR(1) island. A
// rule whose head cannot be shielded this way hands its head over to C too,
// and the round repeats. C only grows, so the loop terminates within
// NumSymbols rounds.
func BuildLLLR(g *grammar.Grammar) (*LLLRTables, error) {
	base, _ := BuildLL(g)
	C := map[int]bool{}
	for h := range base.Conflicted {
		C[h] = true
	}

	var chosen map[[2]int]chosenWrapper
	lastFailed := ""
	fixedPoint := false

	maxRounds := g.NumSymbols() + 1
	for round := 0; round < maxRounds; round++ {
		chosen = map[[2]int]chosenWrapper{}
		headFailed := map[int]bool{}

		for _, r := range g.Rules() {
			if C[r.Head] {
				continue
			}
			for i, sym := range r.Body {
				if !C[sym] {
					continue
				}
				seq, follow, ok := tryBuildWrapper(g, r, i)
				if !ok {
					headFailed[r.Head] = true
					lastFailed = g.Symbol(sym).Name
					continue
				}
				chosen[[2]int{r.ID, i}] = chosenWrapper{head: r.Head, seq: seq, follow: follow}
			}
		}
		if len(headFailed) == 0 {
			fixedPoint = true
			break
		}
		for h := range headFailed {
			C[h] = true
		}
		for key, cw := range chosen {
			if headFailed[cw.head] {
				delete(chosen, key)
			}
		}
	}
	if !fixedPoint || C[grammar.StartID] {
		// No wrapper strategy covers a conflict that climbed all the way to
		// the augmentation rule; there is nothing left to drive the parse.
		return nil, lllrparse.NewWrapperFailError(lastFailed)
	}

	wrappers := map[[2]int]*lr.Data{}
	wrapperLens := map[[2]int]int{}
	for key, cw := range chosen {
		wrapperHead := g.WrapSymbols(cw.head, cw.seq, cw.follow)
		wrapRuleID := g.RulesForHead(wrapperHead)[0]
		aut := lr.Build(g, wrapRuleID)
		data, err := lr.Extract(aut)
		if err != nil {
			return nil, err
		}
		wrappers[key] = data
		wrapperLens[key] = len(cw.seq)
	}

	ll, err := buildLLIgnoring(g, C)
	if err != nil {
		return nil, err
	}

	tracer().Debugf("lllr: %d head(s) resolved via %d wrapper(s)", len(C), len(wrappers))
	return &LLLRTables{LL: ll, Wrappers: wrappers, WrapperLen: wrapperLens, Conflicted: C}, nil
}

// tryBuildWrapper looks, in order of increasing length, for the shortest
// prefix r.Body[i:i+k] that yields a conflict-free LR(1) automaton when
// wrapped, growing the candidate one symbol at a time. Candidate k's whose
// FIRSTFOLLOW lookahead set is empty are skipped rather than tried. All
// trial automata are built over a disposable clone so a failed or
// superseded attempt never pollutes the real grammar; only the caller
// commits the winning choice via WrapSymbols on g itself.
func tryBuildWrapper(g *grammar.Grammar, r *grammar.Rule, i int) (seq []int, follow []int, ok bool) {
	for k := 1; i+k <= len(r.Body); k++ {
		candidate := r.Body[i : i+k]
		rest := r.Body[i+k:]
		f := g.FirstFollow(rest, r.Head)
		if len(f) == 0 {
			continue
		}
		clone := g.Clone()
		wrapperHead := clone.WrapSymbols(r.Head, candidate, f)
		wrapRuleID := clone.RulesForHead(wrapperHead)[0]
		aut := lr.Build(clone, wrapRuleID)
		if _, err := lr.Extract(aut); err != nil {
			if lllrparse.IsConflict(err) {
				continue
			}
			return nil, nil, false
		}
		return append([]int(nil), candidate...), f, true
	}
	return nil, nil, false
}

// DriveLLLR runs the hybrid LLLR driving loop: an LL(1) driver that,
// whenever the symbol on top of the stack was pushed at a wrapped body
// position, hands the wrapped body slice to an embedded LR(1) parse over
// that wrapper's table until the slice's input is fully consumed or an
// early-stop fires.
func DriveLLLR(g *grammar.Grammar, tables *LLLRTables, tokens []lllrparse.Token) ([]int, error) {
	input := buildInputQueue(tokens)
	stack := []frame{{Symbol: grammar.StartID, Position: noPosition}}
	var out []int
	pos := 0

	for len(stack) > 0 {
		if pos >= len(input) {
			return out, lllrparse.NewParseEOFError()
		}
		top := stack[len(stack)-1]
		a := input[pos]

		if data, ok := tables.Wrappers[top.Position]; ok {
			k := tables.WrapperLen[top.Position]
			if k > len(stack) {
				return out, lllrparse.NewInternalError("lllr: wrapper covers more symbols than the stack holds")
			}
			// The k frames below (and including) top are the wrapped body
			// slice σ1…σk, pushed together when their rule was expanded.
			popped := make([]frame, k)
			copy(popped, stack[len(stack)-k:])
			for i, j := 0, len(popped)-1; i < j; i, j = i+1, j-1 {
				popped[i], popped[j] = popped[j], popped[i]
			}
			stack = stack[:len(stack)-k]

			rules, splice, err := runEmbeddedLR(g, data, popped, &pos, input)
			if err != nil {
				return out, err
			}
			out = append(out, rules...)
			for i := len(splice) - 1; i >= 0; i-- {
				stack = append(stack, splice[i])
			}
			continue
		}

		if rid, ok := tables.LL.Lookup(top.Symbol, a.Symbol); ok {
			stack = stack[:len(stack)-1]
			body := g.Rule(rid).Body
			for i := len(body) - 1; i >= 0; i-- {
				if body[i] == grammar.NullID {
					continue
				}
				stack = append(stack, frame{Symbol: body[i], Position: [2]int{rid, i}})
			}
			out = append(out, rid)
			continue
		}
		if top.Symbol == a.Symbol {
			stack = stack[:len(stack)-1]
			pos++
			continue
		}
		return out, lllrparse.NewParseUnexpectedError(a)
	}
	return out, nil
}

// runEmbeddedLR drives one wrapper's LR(1) automaton, bootstrapped past the
// wrapper rule's synthetic leading End without consuming any real input
// ("wrapper rules carry an explicit End"). popped holds the outer
// frames for the wrapped body slice, first symbol first. It returns the
// rule IDs emitted (already in leftmost order) and the outer-stack frames
// to splice back in place of popped, nearest-to-parse first.
//
// Before consulting ACTION at each step it probes the LEFT table for an
// early-stop: if the upcoming external terminal is explained by exactly one
// unique item, the closure chain behind that item fixes the rest of the
// wrapped parse without consuming further input, so the chain's rules are
// emitted directly and the unparsed remainders handed back to the outer LL
// driver (earlyStop below). When the probe finds nothing -- or anything
// about the recovered chain fails to line up -- the parse simply continues
// with ordinary shift/reduce/accept moves, which are always correct.
func runEmbeddedLR(g *grammar.Grammar, data *lr.Data, popped []frame, pos *int, input []lllrparse.Token) ([]int, []frame, error) {
	aut := data.Automaton

	act0, ok := data.GetAction(0, grammar.EndID)
	if !ok || act0.Kind != lr.ActShift {
		return nil, nil, lllrparse.NewInternalError("lllr: wrapper automaton missing leading End shift")
	}
	wrapHead := g.Rule(aut.StartRule).Head
	lrStack := []lrFrame{{Symbol: wrapHead, State: 0}, {Symbol: grammar.EndID, State: act0.Target}}
	bufStack := [][]int{nil, nil} // one buffer per lrStack frame, including the bootstrap End

	for {
		top := lrStack[len(lrStack)-1]
		if *pos >= len(input) {
			return nil, nil, lllrparse.NewParseEOFError()
		}
		a := input[*pos]

		if itemID, ok := probeLeft(g, data, top.State, a.Symbol); ok {
			if rules, splice, ok := earlyStop(g, data, lrStack, bufStack, itemID, popped); ok {
				return rules, splice, nil
			}
		}

		act, ok := data.GetAction(top.State, a.Symbol)
		if !ok {
			return nil, nil, lllrparse.NewParseUnexpectedError(a)
		}
		switch act.Kind {
		case lr.ActShift:
			lrStack = append(lrStack, lrFrame{Symbol: a.Symbol, State: act.Target})
			bufStack = append(bufStack, nil)
			*pos++
		case lr.ActReduce:
			r := g.Rule(act.Target)
			var err error
			lrStack, bufStack, err = reduceLR(g, data, lrStack, bufStack, r)
			if err != nil {
				return nil, nil, err
			}
		case lr.ActAccept:
			// The wrapper rule itself is synthetic and never emitted; its
			// children σ1…σk sit above the two bootstrap frames, each with
			// the left parse of its completed subtree.
			var out []int
			for _, b := range bufStack[2:] {
				out = append(out, b...)
			}
			return out, nil, nil
		}
	}
}

// probeLeft checks the early-stop preconditions: the upcoming
// symbol must be an external terminal (never a sentinel), the cell must not
// be an accept cell, and LEFT must name a unique item for it.
func probeLeft(g *grammar.Grammar, data *lr.Data, state, symbol int) (int, bool) {
	if symbol < 0 || symbol >= g.NumSymbols() || g.Symbol(symbol).IsInternal() {
		return 0, false
	}
	if act, ok := data.GetAction(state, symbol); ok && act.Kind == lr.ActAccept {
		return 0, false
	}
	itemID, ok := data.Left[[2]int{state, symbol}]
	if !ok || !data.Automaton.Items[itemID].Unique {
		return 0, false
	}
	return itemID, true
}

// earlyStop recovers the unique closure chain behind item itemID and turns
// it into (rules to emit, frames to splice).
//
// The chain runs from the wrapper rule's kernel down to the item the LEFT
// probe hit: each link is a rule caught mid-recognition at some dot. Dots
// were advanced by the shifts and reduces recorded on lrStack -- one frame
// per advance -- so walking a link's dot backwards is pure arithmetic over
// lrStack, and only the hop from a rule's dot-0 closure item up to its
// deriving parent needs the BACKTRACK table. Every link is unique (a unique
// item's ancestors are unique by construction), so the recovered chain is
// the only possible explanation of the lookahead and the parse may commit
// to it without consuming further input.
//
// The emitted sequence interleaves the chain's rules, outermost first, with
// the buffered left parses of each link's already-completed children, which
// sit on bufStack in exactly that order. The splice lists every link's
// unmatched remainder, innermost first; the wrapper rule's own remainder is
// represented by the original outer frames (popped[1:]), which keep their
// registered body positions so a conflicted symbol among them re-enters its
// own wrapper.
//
// Any lookup failure or arithmetic mismatch reports ok == false and the
// caller falls back to ordinary LR evaluation (fall back to full LR
// evaluation rather than guessing).
func earlyStop(g *grammar.Grammar, data *lr.Data, lrStack []lrFrame, bufStack [][]int, itemID int, popped []frame) ([]int, []frame, bool) {
	aut := data.Automaton

	type link struct {
		rule, dot int
	}
	var chain []link // innermost first

	cur := aut.Items[itemID]
	idx := len(lrStack) - 1
	for {
		chain = append(chain, link{rule: cur.Rule, dot: cur.Dot})
		idx -= cur.Dot
		if idx < 0 {
			return nil, nil, false
		}
		if cur.Rule == aut.StartRule {
			break
		}
		// Step back to the rule's dot-0 closure item in the state it was
		// derived in, then up to the deriving parent.
		st := aut.States[lrStack[idx].State]
		zeroID, ok := aut.FindItem(lr.ItemKey{Rule: cur.Rule, Dot: 0, Lookahead: cur.Lookahead, Unique: true})
		if !ok {
			return nil, nil, false
		}
		port, ok := st.PortOf(zeroID)
		if !ok {
			return nil, nil, false
		}
		from, ok := data.Backtrack[[2]int{st.ID, port}]
		if !ok {
			return nil, nil, false
		}
		cur = aut.Items[aut.States[from[0]].Items[from[1]]]
	}
	if len(chain) < 2 || idx != 0 {
		// The probe hit the wrapper kernel itself (nothing to shortcut), or
		// the chain does not account for every stack frame.
		return nil, nil, false
	}

	// Outermost chain link is the wrapper rule; skip it when emitting. Its
	// single advance is the bootstrap End at bufStack[1], so the child
	// buffers of the remaining links start at bufStack[2].
	var rules []int
	bufIdx := 2
	for i := len(chain) - 2; i >= 0; i-- {
		l := chain[i]
		rules = append(rules, l.rule)
		for j := 0; j < l.dot; j++ {
			rules = append(rules, bufStack[bufIdx]...)
			bufIdx++
		}
	}
	if bufIdx != len(bufStack) {
		return nil, nil, false
	}

	// Splice, nearest-to-parse first: each link's unmatched remainder. The
	// innermost link resumes at its dot; enclosing links resume one past
	// theirs, because the position at the dot is covered by the link below.
	var splice []frame
	for i, l := range chain[:len(chain)-1] {
		body := g.Rule(l.rule).Body
		start := l.dot
		if i > 0 {
			start = l.dot + 1
		}
		for j := start; j < len(body); j++ {
			if body[j] == grammar.NullID {
				continue
			}
			splice = append(splice, frame{Symbol: body[j], Position: [2]int{l.rule, j}})
		}
	}
	splice = append(splice, popped[1:]...)

	tracer().Debugf("lllr: early stop over %d rule(s), %d frame(s) spliced back", len(rules), len(splice))
	return rules, splice, true
}
