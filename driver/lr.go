package driver

import (
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lr"
)

// lrFrame is a plain LR(1) stack entry: a symbol and the automaton state
// reached after shifting or reducing to it.
type lrFrame struct {
	Symbol int
	State  int
}

// DriveLR runs the canonical LR(1) driving loop over a fully
// extracted table and returns the leftmost derivation, starting with the
// augmentation rule.
//
// Reduces fire in rightmost-derivation-in-reverse order, which is not the
// leftmost order the output contract requires, so rules are not emitted into
// a flat list. Instead every stack frame carries a buffer holding the left
// parse of the subtree that frame covers: a shift pushes an empty buffer,
// and a reduce of body length n replaces the top n buffers with the reduced
// rule followed by those buffers in body order. When Accept fires, the
// concatenated buffers are the left parse of the whole input.
func DriveLR(g *grammar.Grammar, data *lr.Data, tokens []lllrparse.Token) ([]int, error) {
	input := buildInputQueue(tokens)
	stack := []lrFrame{{Symbol: grammar.StartID, State: 0}}
	bufs := [][]int{nil}
	pos := 0

	for {
		if pos >= len(input) {
			return nil, lllrparse.NewParseEOFError()
		}
		top := stack[len(stack)-1]
		a := input[pos]

		act, ok := data.GetAction(top.State, a.Symbol)
		if !ok {
			return nil, lllrparse.NewParseUnexpectedError(a)
		}
		switch act.Kind {
		case lr.ActShift:
			stack = append(stack, lrFrame{Symbol: a.Symbol, State: act.Target})
			bufs = append(bufs, nil)
			pos++
		case lr.ActReduce:
			r := g.Rule(act.Target)
			var err error
			stack, bufs, err = reduceLR(g, data, stack, bufs, r)
			if err != nil {
				return nil, err
			}
		case lr.ActAccept:
			// The accept item sits one dot short of the augmentation rule's
			// trailing End; everything between the two End frames is the
			// start symbol's completed subtree.
			out := []int{act.Target}
			for _, b := range bufs[1:] {
				out = append(out, b...)
			}
			return out, nil
		}
	}
}

// reduceLR pops r's body off the stack, confirming the popped symbols match
// the body in reverse (ε bodies pop nothing), merges the popped buffers
// behind r's ID, and pushes the GOTO frame for r's head.
func reduceLR(g *grammar.Grammar, data *lr.Data, stack []lrFrame, bufs [][]int, r *grammar.Rule) ([]lrFrame, [][]int, error) {
	n := len(r.Body)
	if r.IsEpsilon() {
		n = 0
	}
	if len(stack) < n+1 {
		return nil, nil, lllrparse.NewInternalError("lr: stack underflow on reduce")
	}
	for i := 0; i < n; i++ {
		if stack[len(stack)-1-i].Symbol != r.Body[n-1-i] {
			return nil, nil, lllrparse.NewInternalError("lr: stack does not match rule body on reduce")
		}
	}

	merged := []int{r.ID}
	for _, b := range bufs[len(bufs)-n:] {
		merged = append(merged, b...)
	}
	bufs = append(bufs[:len(bufs)-n], merged)

	stack = stack[:len(stack)-n]
	exposed := stack[len(stack)-1]
	gto, ok := data.GetGoto(exposed.State, r.Head)
	if !ok {
		return nil, nil, lllrparse.NewInternalError("lr: missing goto on reduce")
	}
	stack = append(stack, lrFrame{Symbol: r.Head, State: gto})
	return stack, bufs, nil
}
