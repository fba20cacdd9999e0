package grammar

// First returns FIRST(symbol) as a sorted slice of terminal IDs. NullID is
// included to represent ε. Internal Start/End are never looked up through
// the nonterminal fixed point. End and declared terminals are their own
// singleton FIRST set; Start, which occurs in no rule body, gets no entry,
// so First(StartID) is empty.
func (g *Grammar) First(symbol int) []int {
	g.ensureFirstComputed()
	return sortedInts(g.firstCache[symbol])
}

// Follow returns FOLLOW(symbol) as a sorted slice of terminal IDs.
func (g *Grammar) Follow(symbol int) []int {
	g.ensureFollowComputed()
	return sortedInts(g.followCache[symbol])
}

// FirstSequence computes FIRST(Y1 Y2 … Yk): the union of FIRST(Y1) minus ε,
// then FIRST(Y2) minus ε if Y1 admits ε, and so on; ε is included in the
// result only if every Yi admits ε. An empty sequence trivially admits ε.
func (g *Grammar) FirstSequence(seq []int) []int {
	g.ensureFirstComputed()
	return sortedInts(g.firstSequenceCached(seq))
}

// FirstFollow computes FIRSTFOLLOW(α, A): FIRST(α), with ε replaced by
// FOLLOW(A) whenever FIRST(α) is empty or contains ε. Used to pick
// lookaheads for wrapper rules synthesized by WrapSymbols.
func (g *Grammar) FirstFollow(seq []int, head int) []int {
	g.ensureFirstComputed()
	fi := g.firstSequenceCached(seq)
	if len(fi) == 0 || containsInt(fi, NullID) {
		fi = removeInt(fi, NullID)
		fi = unionInts(fi, g.Follow(head))
	}
	return sortedInts(fi)
}

// ensureFirstComputed runs the FIRST fixed point over every nonterminal and
// memoizes the result. It runs exactly once per grammar: symbols added later
// by WrapSymbols get their cache entries seeded from the wrapped head rather
// than triggering a recomputation, so the sets observed before and after
// wrapper synthesis are identical (wrapper rules echo slices of existing
// bodies and would otherwise leak extra symbols into FOLLOW).
func (g *Grammar) ensureFirstComputed() {
	if g.firstDone {
		return
	}
	g.firstDone = true
	if g.firstCache == nil {
		g.firstCache = map[int][]int{}
	}
	for _, s := range g.symbols {
		switch s.Kind {
		case KindTerminal, KindEnd:
			g.firstCache[s.ID] = []int{s.ID}
		case KindNull:
			g.firstCache[s.ID] = []int{NullID}
		case KindNonTerminal:
			if g.firstCache[s.ID] == nil {
				g.firstCache[s.ID] = []int{}
			}
		}
	}
	for {
		changed := false
		g.EachNonTerminal(func(head Symbol) {
			for _, rid := range g.rulesByHead[head.ID] {
				r := g.rules[rid]
				seq := g.firstSequenceCached(r.Body)
				if unionInto(g.firstCache, head.ID, seq) {
					changed = true
				}
			}
		})
		if !changed {
			break
		}
	}
}

// ensureFollowComputed memoizes FOLLOW the same way ensureFirstComputed
// memoizes FIRST: one fixed point, then wrapper-synthesized nonterminals are
// cache-seeded instead of recomputed.
func (g *Grammar) ensureFollowComputed() {
	g.ensureFirstComputed()
	if g.followDone {
		return
	}
	g.followDone = true
	if g.followCache == nil {
		g.followCache = map[int][]int{}
	}
	g.EachNonTerminal(func(s Symbol) {
		if g.followCache[s.ID] == nil {
			g.followCache[s.ID] = []int{}
		}
	})
	for {
		changed := false
		for _, r := range g.rules {
			for i, sym := range r.Body {
				if g.symbols[sym].Kind != KindNonTerminal {
					continue
				}
				beta := r.Body[i+1:]
				betaFirst := g.firstSequenceCached(beta)
				if unionInto(g.followCache, sym, removeInt(betaFirst, NullID)) {
					changed = true
				}
				if len(beta) == 0 || containsInt(betaFirst, NullID) {
					if unionInto(g.followCache, sym, g.followCache[r.Head]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

// firstSequenceCached computes FIRST(seq) using whatever partial
// approximation is currently in firstCache, which is exactly right both
// mid-fixed-point (monotonic refinement) and once the fixed point is
// reached.
func (g *Grammar) firstSequenceCached(seq []int) []int {
	if len(seq) == 0 {
		return []int{NullID}
	}
	result := []int{}
	for _, sym := range seq {
		fi := g.firstCache[sym]
		result = unionInts(result, removeInt(fi, NullID))
		if !containsInt(fi, NullID) {
			return result
		}
	}
	result = unionInts(result, []int{NullID})
	return result
}

// --- tiny set helpers over []int, kept unsorted internally and sorted
// only at the public boundary. ---

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(xs []int, v int) []int {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func unionInts(a, b []int) []int {
	out := append([]int(nil), a...)
	for _, v := range b {
		if !containsInt(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// unionInto merges add into m[key], reporting whether m[key] grew.
func unionInto(m map[int][]int, key int, add []int) bool {
	before := len(m[key])
	m[key] = unionInts(m[key], add)
	return len(m[key]) != before
}
