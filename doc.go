/*
Package lllrparse is a parser generator and parser driver for context-free
grammars. Given a grammar description and a source file, it produces a
leftmost derivation: a sequence of rule IDs that reduces the source down to
the start symbol.

Three parsing strategies are supported:

■ ll: a top-down LL(1) driver.

■ lr: a bottom-up canonical LR(1) driver.

■ lllr: a hybrid driver that runs LL(1) and, on encountering a conflicted
nonterminal, spawns an embedded LR(1) parse over a wrapped sub-grammar
built at table-construction time to resolve the conflict, then resumes
LL(1) parsing.

Package structure is as follows:

■ grammar: symbol/rule model, FIRST/FOLLOW analysis, grammar verification,
wrapper synthesis for the LLLR hybrid.

■ lr: canonical LR(1) item/state/automaton construction and ACTION/GOTO/
LEFT/BACKTRACK table extraction.

■ driver: the LL(1), LR(1) and LLLR(1) driving algorithms.

■ lexer: a longest-match tokenizer built over the grammar's terminal
definitions.

■ gconfig: decodes a grammar description from YAML into the grammar
package's builder.

■ dot: renders an LR(1) automaton as a Graphviz DOT graph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lllrparse
