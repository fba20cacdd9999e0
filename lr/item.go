package lr

import (
	"fmt"

	"github.com/halvorsen/lllrparse/grammar"
)

// NoHead marks an item whose dot has reached the end of its rule's body.
const NoHead = -1

// ItemKey is the equality/hash identity of an item: two items with the same
// (Rule, Dot, Lookahead, Unique) are the same item. ID is excluded
// deliberately, so that equality never distinguishes two interned copies.
type ItemKey struct {
	Rule      int
	Dot       int
	Lookahead int
	Unique    bool
}

// Item is a rule annotated with a dot position and a one-symbol lookahead.
// Head caches body[Dot] (or NoHead past the end) so drivers and table
// extraction never need to re-fetch the rule body just to test for a
// reduce/accept position.
type Item struct {
	ID        int
	Rule      int
	Dot       int
	Head      int
	Lookahead int
	Unique    bool
}

// Key returns its equality identity.
func (it Item) Key() ItemKey {
	return ItemKey{Rule: it.Rule, Dot: it.Dot, Lookahead: it.Lookahead, Unique: it.Unique}
}

func headAt(body []int, dot int) int {
	if dot < len(body) {
		return body[dot]
	}
	return NoHead
}

// advance returns the item obtained by shifting the dot across it.Head.
// Lookahead and uniqueness carry over unchanged: a kernel item derived by a
// shift or goto is explained by exactly as many closure chains as the item
// it was advanced from.
func (it Item) advance(body []int) Item {
	nd := it.Dot + 1
	return Item{Rule: it.Rule, Dot: nd, Head: headAt(body, nd), Lookahead: it.Lookahead, Unique: it.Unique}
}

// tail returns the symbols of body after the dot, plus the item's
// lookahead appended -- the sequence FIRST is computed over during closure
// to pick lookaheads for the productions of a nonterminal at the dot.
func (it Item) tail(body []int) []int {
	var rest []int
	if it.Dot+1 < len(body) {
		rest = body[it.Dot+1:]
	}
	out := make([]int, 0, len(rest)+1)
	out = append(out, rest...)
	out = append(out, it.Lookahead)
	return out
}

// follow returns the symbols of body from the dot onward (the still-unmatched
// part, dot symbol included), plus the lookahead. FIRST over this sequence is
// the set of terminals this item can explain next -- the candidate key the
// LEFT table is extracted from.
func (it Item) follow(body []int) []int {
	var rest []int
	if it.Dot < len(body) {
		rest = body[it.Dot:]
	}
	out := make([]int, 0, len(rest)+1)
	out = append(out, rest...)
	out = append(out, it.Lookahead)
	return out
}

// CanReduce reports whether it calls for a reduction of its rule: the dot
// has run off the end of the body, or (special case) the rule is a bare
// epsilon production, which has no real symbols to shift over in the first
// place. The augmented start rule never reduces via this path -- it
// accepts instead.
func (it Item) CanReduce(startRule int, body []int) bool {
	if it.Rule == startRule {
		return false
	}
	if it.Head == NoHead {
		return true
	}
	return len(body) == 1 && body[0] == grammar.NullID
}

// CanAccept reports whether it is the accept item of this automaton's start
// rule. The true augmentation rule `#start -> End S End` carries a trailing
// End sentinel in its body, and accepts one dot position early -- at
// `End S · End`, Head still pointing at that closing End rather than past it
// -- because the same dot also has a real StateTransition shifting over that
// End (every kernel item's Head symbol gets a transition, sentinel or not).
// Accepting there, keyed at End, lets Extract's Accept entry claim that cell
// ahead of the shift instead of firing one dot later at NoHead, where no
// input token's symbol is ever the item's lookahead (Null) and the entry
// would go unreachable. A wrapper's own start rule (built for an embedded
// LLLR parse) carries no trailing End -- only the leading bootstrap
// one -- so it has nothing to pre-empt and accepts at ordinary full
// consumption instead.
func (it Item) CanAccept(startRule int, body []int) bool {
	if it.Rule != startRule || it.Dot == 0 {
		return false
	}
	if len(body) > 0 && body[len(body)-1] == grammar.EndID {
		return it.Head == grammar.EndID
	}
	return it.Head == NoHead
}

// AcceptSymbol returns the ACTION-table column an accept item claims: End
// itself when the dot stopped short of a trailing End (overriding that
// End's own shift, see CanAccept), else the item's lookahead.
func (it Item) AcceptSymbol() int {
	if it.Head == grammar.EndID {
		return it.Head
	}
	return it.Lookahead
}

func (it Item) String(g *grammar.Grammar) string {
	r := g.Rule(it.Rule)
	return fmt.Sprintf("[%s , dot=%d, la=%s, uniq=%v]", r.String(g), it.Dot, g.Symbol(it.Lookahead).String(), it.Unique)
}
