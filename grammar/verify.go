package grammar

import "github.com/halvorsen/lllrparse"

// Verify checks the four structural properties required of a grammar before
// automaton construction may proceed, in the fixed order NoStart,
// Unreachable, LeftRecursive, NotRealizable. It returns the first
// violation found, or nil if the grammar passes all four.
func (g *Grammar) Verify() error {
	tracer().Debugf("grammar: verifying %q (%d symbols, %d rules)", g.Name, g.NumSymbols(), g.NumRules())
	if err := g.verifyNoStart(); err != nil {
		return err
	}
	if err := g.verifyUnreachable(); err != nil {
		return err
	}
	if err := g.verifyLeftRecursive(); err != nil {
		return err
	}
	if err := g.verifyNotRealizable(); err != nil {
		return err
	}
	return nil
}

func (g *Grammar) verifyNoStart() error {
	if len(g.rulesByHead[g.startSymbol]) == 0 {
		return lllrparse.NewNoStartError(g.symbolName(g.startSymbol))
	}
	return nil
}

// verifyUnreachable flags any nonterminal, other than the start symbol,
// that appears in no rule body whatsoever. The start symbol is always
// reachable through the augmentation rule's body and is never checked.
func (g *Grammar) verifyUnreachable() error {
	used := map[int]bool{}
	for _, r := range g.rules {
		for _, s := range r.Body {
			used[s] = true
		}
	}
	var found error
	g.EachNonTerminal(func(s Symbol) {
		if found != nil || s.ID == g.startSymbol {
			return
		}
		if !used[s.ID] {
			found = lllrparse.NewUnreachableError(s.Name)
		}
	})
	return found
}

// verifyLeftRecursive flags a nonterminal whose every rule's body begins
// with that same nonterminal, i.e. one that can never make progress against
// a left-driving parse.
func (g *Grammar) verifyLeftRecursive() error {
	var found error
	g.EachNonTerminal(func(s Symbol) {
		if found != nil {
			return
		}
		rids := g.rulesByHead[s.ID]
		if len(rids) == 0 {
			return
		}
		allSelf := true
		for _, rid := range rids {
			r := g.rules[rid]
			if len(r.Body) == 0 || r.Body[0] != s.ID {
				allSelf = false
				break
			}
		}
		if allSelf {
			found = lllrparse.NewLeftRecursiveError(s.Name)
		}
	})
	return found
}

// verifyNotRealizable flags a nonterminal that can never derive any string
// of terminals, computed by repeatedly marking a nonterminal realizable
// once it has some rule all of whose body nonterminals are already
// realizable, until a fixed point is reached.
func (g *Grammar) verifyNotRealizable() error {
	realizable := map[int]bool{}
	for {
		changed := false
		g.EachNonTerminal(func(s Symbol) {
			if realizable[s.ID] {
				return
			}
			for _, rid := range g.rulesByHead[s.ID] {
				r := g.rules[rid]
				ok := true
				for _, sym := range r.Body {
					if g.symbols[sym].Kind == KindNonTerminal && !realizable[sym] {
						ok = false
						break
					}
				}
				if ok {
					realizable[s.ID] = true
					changed = true
					return
				}
			}
		})
		if !changed {
			break
		}
	}
	var found error
	g.EachNonTerminal(func(s Symbol) {
		if found != nil {
			return
		}
		if !realizable[s.ID] {
			found = lllrparse.NewNotRealizableError(s.Name)
		}
	})
	return found
}
