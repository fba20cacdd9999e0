package driver

import (
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
)

// frame is one stack entry shared by all three drivers: a grammar symbol and
// the rule position it was pushed from. Position is (ruleID, bodyIndex); the
// LLLR driver uses it to look up a registered wrapper table for the symbol
// currently on top. LL and plain LR never consult Position.
type frame struct {
	Symbol   int
	Position [2]int
}

// noPosition marks a frame that was not pushed from any rule body (the
// initial Start symbol).
var noPosition = [2]int{-1, -1}

// buildInputQueue wraps tokens with a leading and trailing End token, so
// the queue becomes End :: tokens :: End. The leading End is what lets every
// driver's augmentation-rule item kick off uniformly: table[(Start,End)]
// always resolves to rule 0.
func buildInputQueue(tokens []lllrparse.Token) []lllrparse.Token {
	end := lllrparse.Token{Symbol: grammar.EndID}
	out := make([]lllrparse.Token, 0, len(tokens)+2)
	out = append(out, end)
	out = append(out, tokens...)
	out = append(out, end)
	return out
}
