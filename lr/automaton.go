package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lr/iteratable"
)

// StateTransition is an edge of the canonical LR(1) state graph.
type StateTransition struct {
	From, To, Symbol int
}

// ItemTransition is a "port"-addressed edge between items, either a kernel
// advance crossing two states on a real symbol (Eps == false), or a
// closure-derivation edge within a single state (Eps == true, Symbol == -1).
// BACKTRACK is built by inverting these (tables.go).
type ItemTransition struct {
	FromState, FromPort int
	ToState, ToPort     int
	Symbol              int
	Eps                 bool
}

// Automaton is the canonical LR(1) state graph built over one start rule:
// the augmentation rule for a top-level build, or a synthesized wrapper
// rule for an LLLR embedded parse.
type Automaton struct {
	Grammar   *grammar.Grammar
	StartRule int
	States    []*State
	Items     []Item

	// stateEdges and itemEdges hold StateTransition/ItemTransition values in
	// discovery order; the gods arraylist keeps append-and-replay cheap
	// without hand-rolled growth bookkeeping.
	stateEdges *arraylist.List
	itemEdges  *arraylist.List

	itemIndex map[ItemKey]int
}

// FindItem returns the interned item ID for key, if such an item was ever
// created during Build. The LLLR early-stop walk uses this to step from a
// kernel item back to its rule's dot-0 closure item in an earlier state.
func (a *Automaton) FindItem(key ItemKey) (int, bool) {
	id, ok := a.itemIndex[key]
	return id, ok
}

// StateTransitions returns every StateTransition discovered during Build,
// in discovery order.
func (a *Automaton) StateTransitions() []StateTransition {
	vs := a.stateEdges.Values()
	out := make([]StateTransition, len(vs))
	for i, v := range vs {
		out[i] = v.(StateTransition)
	}
	return out
}

// ItemTransitions returns every ItemTransition discovered during Build, in
// discovery order.
func (a *Automaton) ItemTransitions() []ItemTransition {
	vs := a.itemEdges.Values()
	out := make([]ItemTransition, len(vs))
	for i, v := range vs {
		out[i] = v.(ItemTransition)
	}
	return out
}

// localKey identifies an item during the construction of a single state,
// before its Unique flag has reached a fixed point and it can be interned
// into the automaton's global item table.
type localKey struct {
	Rule, Dot, Lookahead int
}

type task struct {
	state, symbol int
}

// kernelSeed is one kernel item handed to closeState: its content key plus
// the uniqueness it inherited from the item it was advanced from (or true
// for the dot-0 seeds of state 0).
type kernelSeed struct {
	key    localKey
	unique bool
}

// Build constructs the canonical LR(1) automaton for startRule's grammar,
// seeded with one item per lookahead in startRule's Follow set and driven
// by a worklist of (state, symbol) tasks until no new state appears.
// For the main grammar the start rule is the augmentation rule 0; for an
// LLLR wrapper trial this is the wrapper's own rule, with Follow set to the
// FIRSTFOLLOW lookahead set computed by the caller.
func Build(g *grammar.Grammar, startRule int) *Automaton {
	a := &Automaton{
		Grammar: g, StartRule: startRule,
		stateEdges: arraylist.New(), itemEdges: arraylist.New(),
		itemIndex: map[ItemKey]int{},
	}

	itemTable := a.itemIndex
	intern := func(k ItemKey) int {
		if id, ok := itemTable[k]; ok {
			return id
		}
		id := len(a.Items)
		body := g.Rule(k.Rule).Body
		a.Items = append(a.Items, Item{
			ID: id, Rule: k.Rule, Dot: k.Dot, Head: headAt(body, k.Dot),
			Lookahead: k.Lookahead, Unique: k.Unique,
		})
		itemTable[k] = id
		return id
	}

	stateByKey := map[string]int{}

	rule0 := g.Rule(startRule)
	seeds := make([]kernelSeed, 0, len(rule0.Follow))
	for _, la := range rule0.Follow {
		seeds = append(seeds, kernelSeed{key: localKey{Rule: startRule, Dot: 0, Lookahead: la}, unique: true})
	}

	itemIDs, eps, _ := closeState(g, seeds, intern)
	state0 := &State{ID: 0, Items: itemIDs}
	tracer().Debugf("lr: state 0 seeded with %d item(s) over rule %d", len(itemIDs), startRule)
	a.States = append(a.States, state0)
	stateByKey[stateKey(itemIDs)] = 0
	for i := range eps {
		eps[i].FromState, eps[i].ToState = 0, 0
	}
	for _, e := range eps {
		a.itemEdges.Add(e)
	}

	pending := iteratable.NewSet(func(v interface{}) string {
		t := v.(task)
		return fmt.Sprintf("%d|%d", t.state, t.symbol)
	})
	enqueueSymbolsOf := func(stateID int) {
		st := a.States[stateID]
		// Symbols crossed out of a state must be enqueued in a canonical
		// order for deterministic state numbering; a treeset keyed by the
		// plain int comparator gives us that sort for free.
		symSet := treeset.NewWith(godsutils.IntComparator)
		for _, id := range st.Items {
			h := a.Items[id].Head
			if h == NoHead || h == grammar.NullID {
				// An epsilon body is never shifted over; its item reduces in
				// place (CanReduce).
				continue
			}
			symSet.Add(h)
		}
		for _, s := range symSet.Values() {
			pending.Add(task{state: stateID, symbol: s.(int)})
		}
	}
	enqueueSymbolsOf(0)

	pending.IterateOnce()
	for pending.Next() {
		t := pending.Item().(task)
		st := a.States[t.state]

		type seedInfo struct {
			seed     kernelSeed
			fromPort int
		}
		var infos []seedInfo
		for port, id := range st.Items {
			it := a.Items[id]
			if it.Head != t.symbol {
				continue
			}
			body := g.Rule(it.Rule).Body
			adv := it.advance(body)
			infos = append(infos, seedInfo{
				seed:     kernelSeed{key: localKey{Rule: adv.Rule, Dot: adv.Dot, Lookahead: adv.Lookahead}, unique: adv.Unique},
				fromPort: port,
			})
		}
		seeds := make([]kernelSeed, len(infos))
		for i, inf := range infos {
			seeds[i] = inf.seed
		}

		itemIDs, eps, finalIDOf := closeState(g, seeds, intern)
		sk := stateKey(itemIDs)
		stateID, existed := stateByKey[sk]
		if !existed {
			stateID = len(a.States)
			a.States = append(a.States, &State{ID: stateID, Items: itemIDs})
			stateByKey[sk] = stateID
			for i := range eps {
				eps[i].FromState, eps[i].ToState = stateID, stateID
			}
			for _, e := range eps {
				a.itemEdges.Add(e)
			}
			tracer().Debugf("lr: new state %d via goto(%d, %s)", stateID, t.state, g.Symbol(t.symbol))
			enqueueSymbolsOf(stateID)
		}
		a.stateEdges.Add(StateTransition{From: t.state, To: stateID, Symbol: t.symbol})

		portOf := map[int]int{}
		for p, id := range a.States[stateID].Items {
			portOf[id] = p
		}
		for _, inf := range infos {
			finalID := finalIDOf[inf.seed.key]
			a.itemEdges.Add(ItemTransition{
				FromState: t.state, FromPort: inf.fromPort,
				ToState: stateID, ToPort: portOf[finalID],
				Symbol: t.symbol, Eps: false,
			})
		}
	}

	return a
}

// closeState runs the closure procedure over a set of kernel items
// (already at their post-advance dot position, or the dot=0 seeds of state
// 0), returning the resulting state's sorted item IDs, the closure-derived
// (ε) item transitions within that state, and a map from each kernel key to
// its final interned item ID so the caller can wire kernel edges.
func closeState(g *grammar.Grammar, kernels []kernelSeed, intern func(ItemKey) int) ([]int, []ItemTransition, map[localKey]int) {
	type entry struct {
		parents     []localKey
		selfDerived bool
		isKernel    bool
		unique      bool
	}
	entries := map[localKey]*entry{}
	var order []localKey

	addEntry := func(k localKey, isKernel bool) *entry {
		if e, ok := entries[k]; ok {
			return e
		}
		e := &entry{isKernel: isKernel, unique: true}
		entries[k] = e
		order = append(order, k)
		return e
	}

	// Kernel items keep the uniqueness they inherited across the advance;
	// the fixed point below never revisits them, because their derivation
	// chains live in earlier states, not this one.
	for _, s := range kernels {
		e := addEntry(s.key, true)
		e.unique = e.unique && s.unique
	}

	for i := 0; i < len(order); i++ {
		k := order[i]
		body := g.Rule(k.Rule).Body
		head := headAt(body, k.Dot)
		if head == NoHead || !g.Symbol(head).IsNonTerminal() {
			continue
		}
		e := entries[k]
		tailSeq := (Item{Rule: k.Rule, Dot: k.Dot, Lookahead: k.Lookahead}).tail(body)
		las := g.FirstSequence(tailSeq)
		for _, rid := range g.RulesForHead(head) {
			for _, la := range las {
				if la == grammar.NullID {
					continue
				}
				cand := localKey{Rule: rid, Dot: 0, Lookahead: la}
				if cand == k {
					e.selfDerived = true
					continue
				}
				ce := addEntry(cand, false)
				already := false
				for _, p := range ce.parents {
					if p == k {
						already = true
						break
					}
				}
				if !already {
					ce.parents = append(ce.parents, k)
				}
			}
		}
	}

	for {
		changed := false
		for _, k := range order {
			e := entries[k]
			if e.isKernel {
				continue
			}
			newUnique := !e.selfDerived && len(e.parents) > 0
			if newUnique {
				var rd [2]int
				first := true
				for _, p := range e.parents {
					pe := entries[p]
					if !pe.unique {
						newUnique = false
						break
					}
					this := [2]int{p.Rule, p.Dot}
					if first {
						rd = this
						first = false
					} else if this != rd {
						newUnique = false
						break
					}
				}
			}
			if newUnique != e.unique {
				e.unique = newUnique
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	finalIDOf := make(map[localKey]int, len(order))
	for _, k := range order {
		e := entries[k]
		finalIDOf[k] = intern(ItemKey{Rule: k.Rule, Dot: k.Dot, Lookahead: k.Lookahead, Unique: e.unique})
	}

	idSet := treeset.NewWith(godsutils.IntComparator)
	for _, id := range finalIDOf {
		idSet.Add(id)
	}
	itemIDs := make([]int, 0, idSet.Size())
	for _, id := range idSet.Values() {
		itemIDs = append(itemIDs, id.(int))
	}

	portOf := make(map[int]int, len(itemIDs))
	for p, id := range itemIDs {
		portOf[id] = p
	}

	var eps []ItemTransition
	for _, k := range order {
		e := entries[k]
		if e.isKernel {
			continue
		}
		toPort := portOf[finalIDOf[k]]
		for _, p := range e.parents {
			fromPort := portOf[finalIDOf[p]]
			eps = append(eps, ItemTransition{FromPort: fromPort, ToPort: toPort, Symbol: -1, Eps: true})
		}
	}

	return itemIDs, eps, finalIDOf
}
