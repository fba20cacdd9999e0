/*
Package gconfig decodes a grammar description from YAML into a
grammar.Grammar. It is the "grammar-file decoding from a configuration
format" layer kept outside the core: the core never
reads YAML directly, only grammar.Builder.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package gconfig

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lllrparse.gconfig'.
func tracer() tracing.Trace {
	return tracing.Select("lllrparse.gconfig")
}
