/*
Package lexer implements the lexing half of the module: given a
grammar and an input string, it produces the sequence of tokens a parser
driver consumes.

Resolution is longest-full-match with first-declared-wins on a tie; tokens
whose terminal was declared via the grammar's `ignore` map are lexed and
then dropped from the output. A terminal with no explicit `tokens` entry
matches its own name as literal text.

The scanner is built over github.com/timtadh/lexmachine's DFA engine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lllrparse.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("lllrparse.lexer")
}
