package lr

import (
	"sort"
	"strconv"
	"strings"
)

// State is a canonical LR(1) state: a set of item IDs, deduplicated by item
// content and assigned a stable ID in discovery order. Items is always kept
// sorted so it doubles as the state's item-port list ("state-local item
// ports"): position i in Items is port i.
type State struct {
	ID    int
	Items []int
}

// stateKey returns a content key for a (not-yet-sorted) set of item IDs,
// used to recognize that a freshly derived state set is one the automaton
// has already discovered.
func stateKey(itemIDs []int) string {
	sorted := append([]int(nil), itemIDs...)
	sort.Ints(sorted)
	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// Port returns the state-local position of itemID within s.Items, the
// stable address ItemTransition and BACKTRACK entries use. Panics if itemID
// is not a member of s -- callers only ever look up items known to be
// present.
func (s *State) Port(itemID int) int {
	p, ok := s.PortOf(itemID)
	if !ok {
		panic("lr: item not present in state")
	}
	return p
}

// PortOf is the non-panicking form of Port, for callers probing whether an
// item is a member of s at all.
func (s *State) PortOf(itemID int) (int, bool) {
	for i, id := range s.Items {
		if id == itemID {
			return i, true
		}
	}
	return 0, false
}
