/*
Package dot renders an LR(1) automaton as a Graphviz DOT graph: one
record node per state with one port per item, state transitions as plain
edges, and item transitions colored by kind -- crimson for a closure
derivation landing on a later port, forestgreen for one landing on an
earlier port, royalblue for a real, symbol-crossing item transition.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package dot
