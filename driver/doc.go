/*
Package driver implements three parsing strategies: a plain
LL(1) driver, a plain LR(1) driver, and the hybrid LLLR(1) driver that
spawns an embedded LR(1) parse to resolve LL(1) conflicts on demand.

Every driver consumes a grammar.Grammar plus a token sequence and produces
a leftmost derivation: a sequence of rule IDs, starting with the
augmentation rule. Callers that print results normally skip that first
entry when printing a derivation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lllrparse.driver'.
func tracer() tracing.Trace {
	return tracing.Select("lllrparse.driver")
}
