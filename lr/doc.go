/*
Package lr implements canonical LR(1) item and automaton construction plus
ACTION/GOTO/LEFT/BACKTRACK table extraction.

Building the automaton

Given a verified grammar.Grammar and a start rule, Build constructs the
canonical LR(1) characteristic automaton: a worklist-driven closure/goto
derivation over Item and State, propagating the "unique item" property
that the LLLR driver later relies on to decide when an embedded LR parse
can terminate early.

    b := grammar.NewBuilder("G")
    // ... add rules to b ...
    g, err := b.Build()
    aut := lr.Build(g, g.StartRule().ID) // 0: the augmentation rule

Extracting tables

    tables, err := lr.Extract(aut)
    // tables.Action, tables.Goto, tables.Left, tables.Backtrack

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lllrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lllrparse.lr")
}
