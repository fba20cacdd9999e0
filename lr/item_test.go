package lr

import "testing"

// TestItemKeyIgnoresID: two items that differ only in their interned ID are
// the same item. Anything keyed on ItemKey must treat them as one.
func TestItemKeyIgnoresID(t *testing.T) {
	a := Item{ID: 7, Rule: 1, Dot: 2, Lookahead: 3, Unique: true}
	b := Item{ID: 99, Rule: 1, Dot: 2, Lookahead: 3, Unique: true}
	set := map[ItemKey]bool{}
	set[a.Key()] = true
	set[b.Key()] = true
	if len(set) != 1 {
		t.Fatalf("items differing only in ID hashed to %d keys, want 1", len(set))
	}
}

// TestItemKeyDistinguishesUniqueness: the uniqueness flag is part of item
// identity, so both flavors of an otherwise-equal item can coexist.
func TestItemKeyDistinguishesUniqueness(t *testing.T) {
	a := Item{Rule: 1, Dot: 2, Lookahead: 3, Unique: true}
	b := Item{Rule: 1, Dot: 2, Lookahead: 3, Unique: false}
	if a.Key() == b.Key() {
		t.Fatalf("uniqueness should distinguish item identities")
	}
}
