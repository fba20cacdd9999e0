package grammar

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// Rule is a single production head -> body. Equality and hashing consider
// only (Head, Body); ordering is by ID. Follow is attached only to the
// augmentation rule 0 ([Null]) and to rules synthesized by WrapSymbols (see
// wrap.go); it is nil for ordinary rules.
type Rule struct {
	ID     int
	Head   int
	Body   []int
	Follow []int
}

// IsEpsilon reports whether r's body is the sole Null sentinel.
func (r *Rule) IsEpsilon() bool {
	return len(r.Body) == 1 && r.Body[0] == NullID
}

// ruleShape is hashed (rather than Rule itself) so that ID and Follow --
// which are not part of rule identity -- never
// perturb the hash.
type ruleShape struct {
	Head int
	Body []int
}

// ruleKey returns a content hash of (Head, Body), used directly as the
// interning key for rules during wrapper synthesis and grammar construction
// (structhash gives a stable content hash for composite keys without
// hand-rolled encoding of the head/body pair). No separate equality check
// follows a key match.
func ruleKey(head int, body []int) string {
	h, err := structhash.Hash(ruleShape{Head: head, Body: append([]int(nil), body...)}, 1)
	if err != nil {
		// structhash only fails on unhashable types; ruleShape is always
		// hashable, so this path is unreachable in practice.
		panic(fmt.Sprintf("grammar: cannot hash rule shape: %v", err))
	}
	return h
}

func (r *Rule) key() string {
	return ruleKey(r.Head, r.Body)
}

// bodyKey hashes a body alone (no head), used to recognize that two wrapper
// attempts over the same symbol sequence are "an identical wrapper rule"
// regardless of which fresh nonterminal name they'd otherwise mint.
func bodyKey(body []int) string {
	h, err := structhash.Hash(append([]int(nil), body...), 1)
	if err != nil {
		panic(fmt.Sprintf("grammar: cannot hash rule body: %v", err))
	}
	return h
}

// String renders a rule as "(id) head → body", using g to
// resolve symbol names.
func (r *Rule) String(g *Grammar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%d) %s →", r.ID, g.symbolName(r.Head))
	for _, s := range r.Body {
		fmt.Fprintf(&b, " %s", g.symbolName(s))
	}
	return b.String()
}
