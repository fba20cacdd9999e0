/*
Command lllrparse-repl is an interactive companion to lllrparse: load a
grammar once, then parse one line of input at a time, re-driving the parser
on every Enter. It is a sandbox for exercising a grammar file while
developing it, not a batch tool.

Usage:

	lllrparse-repl -g FILE [-p {lllr,ll,lr}]

Meta-commands, typed at the prompt in place of input text:

	:parser lllr|ll|lr   switch parsing strategy without reloading the grammar
	:load FILE           load a different grammar file
	:quit                leave the REPL (same as <ctrl>D)

Anything else typed at the prompt is tokenized and parsed against the
current grammar and strategy; the resulting derivation, or the error, is
printed immediately below.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/driver"
	"github.com/halvorsen/lllrparse/gconfig"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lexer"
	"github.com/halvorsen/lllrparse/lr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

var (
	grammarFile = pflag.StringP("grammar", "g", "", "grammar description file (required)")
	parserKind  = pflag.StringP("parser", "p", "lllr", "parsing strategy: lllr, ll, or lr")
)

// session holds the REPL's mutable state: the loaded grammar, its lexer,
// and the currently selected parsing strategy.
type session struct {
	g    *grammar.Grammar
	lx   *lexer.Lexer
	kind string
	repl *readline.Instance
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	pflag.Parse()

	if *grammarFile == "" {
		pterm.Error.Println("--grammar/-g is required")
		os.Exit(1)
	}

	rl, err := readline.New("lllrparse> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	defer rl.Close()

	s := &session{kind: *parserKind, repl: rl}
	if err := s.load(*grammarFile); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	pterm.Info.Println("Quit with <ctrl>D or :quit")
	s.run()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: " INFO", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " ERROR", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func (s *session) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return lllrparse.NewGrammarFileError(path, err)
	}
	spec, err := gconfig.Decode(data)
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
	lx, err := lexer.New(g)
	if err != nil {
		return err
	}
	s.g, s.lx = g, lx
	pterm.Info.Printfln("loaded grammar %q: %d symbol(s), %d rule(s)", g.Name, g.NumSymbols(), g.NumRules())
	return nil
}

func (s *session) run() {
	for {
		line, err := s.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := s.dispatch(line); quit {
			break
		}
	}
	fmt.Println("Good bye!")
}

// dispatch handles one line of input: a meta-command if it starts with
// ':', otherwise source text to tokenize and parse. Returns true to quit.
func (s *session) dispatch(line string) bool {
	if strings.HasPrefix(line, ":") {
		return s.command(line[1:])
	}
	s.parseLine(line)
	return false
}

func (s *session) command(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit":
		return true
	case "load":
		if len(fields) != 2 {
			pterm.Error.Println("usage: :load FILE")
			return false
		}
		if err := s.load(fields[1]); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "parser":
		if len(fields) != 2 {
			pterm.Error.Println("usage: :parser lllr|ll|lr")
			return false
		}
		switch fields[1] {
		case "lllr", "ll", "lr":
			s.kind = fields[1]
			pterm.Info.Printfln("parser strategy set to %s", s.kind)
		default:
			pterm.Error.Printfln("unknown strategy %q", fields[1])
		}
	default:
		pterm.Error.Printfln("unknown command %q", cmd)
	}
	return false
}

func (s *session) parseLine(line string) {
	tokens, err := s.lx.Tokenize(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	var rules []int
	switch s.kind {
	case "ll":
		rules, err = driveLL(s.g, tokens)
	case "lr":
		rules, err = driveLR(s.g, tokens)
	default:
		var tables *driver.LLLRTables
		tables, err = driver.BuildLLLR(s.g)
		if err == nil {
			rules, err = driver.DriveLLLR(s.g, tables, tokens)
		}
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, rid := range rules {
		if rid == 0 {
			continue
		}
		fmt.Println(s.g.Rule(rid).String(s.g))
	}
}

func driveLL(g *grammar.Grammar, tokens []lllrparse.Token) ([]int, error) {
	table, err := driver.BuildLL(g)
	if err != nil {
		return nil, err
	}
	return driver.DriveLL(g, table, tokens)
}

func driveLR(g *grammar.Grammar, tokens []lllrparse.Token) ([]int, error) {
	aut := lr.Build(g, g.StartRule().ID)
	data, err := lr.Extract(aut)
	if err != nil {
		return nil, err
	}
	return driver.DriveLR(g, data, tokens)
}
