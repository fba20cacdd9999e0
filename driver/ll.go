package driver

import (
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
)

// LLTable is the LL(1) parse table: table[(head, lookahead)] is
// the rule to expand head with on seeing lookahead.
type LLTable struct {
	cells map[[2]int]int

	// Conflicted holds every nonterminal for which two distinct rules
	// claimed the same table cell. The LLLR build phase (lllr.go) reads
	// this directly; BuildLL itself reports only the first one found, as
	// an *lllrparse.Error.
	Conflicted map[int]bool
}

func newLLTable() *LLTable {
	return &LLTable{cells: map[[2]int]int{}, Conflicted: map[int]bool{}}
}

// Lookup returns the rule registered for (head, symbol), if any.
func (t *LLTable) Lookup(head, symbol int) (int, bool) {
	r, ok := t.cells[[2]int{head, symbol}]
	return r, ok
}

// BuildLL constructs the LL(1) table over every rule of g. For each rule r
// with head h, S := FIRSTFOLLOW(r.Body, h) (FIRST(body), with ε replaced by
// FOLLOW(h)); every s in S claims cell (h, s). A second claim on the same
// cell marks h conflicted; the first claim standing is kept. If any
// nonterminal ended up conflicted, BuildLL still returns the (partially
// built) table alongside an *lllrparse.Error naming the first one, so
// BuildLLLR can inspect Conflicted without re-deriving it.
func BuildLL(g *grammar.Grammar) (*LLTable, error) {
	return buildLLIgnoring(g, nil)
}

// buildLLIgnoring is BuildLL's general form: rules whose head is in ignore
// contribute no table entries at all, used by the LLLR build phase once a
// head has been handed off entirely to an embedded LR wrapper.
func buildLLIgnoring(g *grammar.Grammar, ignore map[int]bool) (*LLTable, error) {
	t := newLLTable()
	firstConflictHead := -1
	for _, r := range g.Rules() {
		if ignore[r.Head] {
			continue
		}
		h := r.Head
		for _, s := range g.FirstFollow(r.Body, h) {
			key := [2]int{h, s}
			if _, exists := t.cells[key]; exists {
				t.Conflicted[h] = true
				if firstConflictHead == -1 {
					firstConflictHead = h
				}
				continue
			}
			t.cells[key] = r.ID
		}
	}
	if firstConflictHead != -1 {
		return t, lllrparse.NewLLConflictError(g.Symbol(firstConflictHead).Name)
	}
	return t, nil
}

// DriveLL runs the LL(1) driving loop and returns the leftmost
// derivation: a sequence of rule IDs, starting with the augmentation rule.
func DriveLL(g *grammar.Grammar, table *LLTable, tokens []lllrparse.Token) ([]int, error) {
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

		if rid, ok := table.Lookup(top.Symbol, a.Symbol); ok {
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
