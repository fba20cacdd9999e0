/*
Command lllrparse parses a source file against a grammar description and
prints the leftmost derivation the parser found: one rule per line, in the
form "(id) head → body", skipping the synthetic augmentation rule.

Usage:

	lllrparse [flags] FILE

The flags are:

	-g, --grammar FILE
		Grammar description file (YAML). Required.

	-p, --parser {lllr,ll,lr}
		Parsing strategy to drive the input with. Defaults to lllr.

	-o, --output FILE
		Optional Graphviz DOT dump of the LR(1) automaton. Only produced
		for the lr and lllr strategies (ll never builds an automaton).

Exit codes: 0 on success, 1 on any error, with the error's description
printed to stderr.
*/
package main

import (
	"fmt"
	"os"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/dot"
	"github.com/halvorsen/lllrparse/driver"
	"github.com/halvorsen/lllrparse/gconfig"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lexer"
	"github.com/halvorsen/lllrparse/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a clean parse.
	ExitSuccess = iota
	// ExitError indicates any failure: a bad flag, a grammar error, a lex
	// error, or a parse error. The CLI does not distinguish these -- every
	// *lllrparse.Error formats its own operator-facing detail.
	ExitError
)

var (
	returnCode  = ExitSuccess
	grammarFile = pflag.StringP("grammar", "g", "", "grammar description file (required)")
	parserKind  = pflag.StringP("parser", "p", "lllr", "parsing strategy: lllr, ll, or lr")
	outputFile  = pflag.StringP("output", "o", "", "optional Graphviz DOT dump of the LR(1) automaton")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printfln("unrecoverable panic: %v", r)
			os.Exit(ExitError)
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()
	if err := run(pflag.Args()); err != nil {
		pterm.Error.Println(err.Error())
		returnCode = ExitError
	}
}

func run(args []string) error {
	if *grammarFile == "" {
		return fmt.Errorf("--grammar/-g is required")
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one positional input file, got %d", len(args))
	}
	switch *parserKind {
	case "lllr", "ll", "lr":
	default:
		return fmt.Errorf("--parser/-p must be one of lllr, ll, lr (got %q)", *parserKind)
	}

	gdata, err := os.ReadFile(*grammarFile)
	if err != nil {
		return lllrparse.NewGrammarFileError(*grammarFile, err)
	}
	spec, err := gconfig.Decode(gdata)
	if err != nil {
		return err
	}
	g, err := gconfig.Build(spec)
	if err != nil {
		return err
	}
	if err := g.Verify(); err != nil {
		return err
	}
	pterm.Info.Printfln("grammar %q verified: %d symbol(s), %d rule(s)", g.Name, g.NumSymbols(), g.NumRules())

	lx, err := lexer.New(g)
	if err != nil {
		return err
	}
	input, err := os.ReadFile(args[0])
	if err != nil {
		return lllrparse.NewLexFileError(err)
	}
	tokens, err := lx.Tokenize(string(input))
	if err != nil {
		return err
	}

	rules, err := parse(g, *parserKind, tokens)
	if err != nil {
		return err
	}

	printDerivation(g, rules)
	return nil
}

func parse(g *grammar.Grammar, kind string, tokens []lllrparse.Token) ([]int, error) {
	switch kind {
	case "ll":
		table, err := driver.BuildLL(g)
		if err != nil {
			return nil, err
		}
		return driver.DriveLL(g, table, tokens)
	case "lr":
		aut := lr.Build(g, g.StartRule().ID)
		data, err := lr.Extract(aut)
		if err != nil {
			return nil, err
		}
		if err := maybeWriteDOT(g, aut); err != nil {
			return nil, err
		}
		return driver.DriveLR(g, data, tokens)
	default: // lllr
		tables, err := driver.BuildLLLR(g)
		if err != nil {
			return nil, err
		}
		// The dump covers the automaton built from the augmentation rule over
		// the grammar as BuildLLLR left it, regardless of whether its tables
		// would be conflict-free; the conflicted regions are the interesting
		// part of the picture. Wrapper rules are not reachable from rule 0
		// and do not appear in it.
		if err := maybeWriteDOT(g, lr.Build(g, g.StartRule().ID)); err != nil {
			return nil, err
		}
		return driver.DriveLLLR(g, tables, tokens)
	}
}

func maybeWriteDOT(g *grammar.Grammar, aut *lr.Automaton) error {
	if *outputFile == "" {
		return nil
	}
	return dot.WriteFile(*outputFile, g.Name, aut)
}

// printDerivation prints one rule per line, skipping rule 0 (the
// augmentation rule, which never corresponds to user-visible input).
func printDerivation(g *grammar.Grammar, rules []int) {
	for _, rid := range rules {
		if rid == 0 {
			continue
		}
		fmt.Println(g.Rule(rid).String(g))
	}
}
