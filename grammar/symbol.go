/*
Package grammar holds the symbol/rule model for a context-free grammar,
FIRST/FOLLOW fixed-point analysis, grammar verification, and the wrapper
synthesis the LLLR driver uses to carve LR-amenable islands out of a
grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lllrparse.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lllrparse.grammar")
}

// Kind tags a Symbol as one of the three internal sentinels or as an
// application-declared terminal/nonterminal.
type Kind int8

const (
	KindStart Kind = iota
	KindEnd
	KindNull
	KindNonTerminal
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindNull:
		return "Null"
	case KindNonTerminal:
		return "NonTerminal"
	case KindTerminal:
		return "Terminal"
	}
	return "?"
}

// The three internal sentinels occupy fixed, dense IDs 0, 1, 2.
const (
	StartID = 0
	EndID   = 1
	NullID  = 2
)

// Symbol is a tagged grammar symbol. IDs are dense and unique across a
// Grammar; the three sentinels always occupy StartID, EndID and NullID.
type Symbol struct {
	ID   int
	Name string
	Kind Kind
}

// IsTerminal reports whether s is a declared terminal (not counting End,
// which behaves like a terminal in lookahead positions but is tagged
// separately -- see IsTerminalLike).
func (s Symbol) IsTerminal() bool {
	return s.Kind == KindTerminal
}

// IsNonTerminal reports whether s is a declared nonterminal.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == KindNonTerminal
}

// IsInternal reports whether s is one of the three sentinel symbols.
func (s Symbol) IsInternal() bool {
	return s.Kind == KindStart || s.Kind == KindEnd || s.Kind == KindNull
}

// IsTerminalLike reports whether s behaves like a terminal for shifting
// purposes: a declared terminal, or the End sentinel.
func (s Symbol) IsTerminalLike() bool {
	return s.Kind == KindTerminal || s.Kind == KindEnd
}

func (s Symbol) String() string {
	if s.Kind == KindNull {
		return "ε"
	}
	if s.Kind == KindEnd {
		return "#end"
	}
	if s.Kind == KindStart {
		return "#start"
	}
	return s.Name
}
