package lexer

import (
	"fmt"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"golang.org/x/exp/slices"
)

// Lexer tokenizes input over a single grammar's declared terminals, built
// once and reused across calls to Tokenize.
type Lexer struct {
	compiled *lexmachine.Lexer
}

// skipAction is the action registered for an ignored pattern: returning
// (nil, nil) tells lexmachine to drop the match from the token stream
// entirely.
func skipAction(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeTokenAction(symbolID int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(symbolID, string(m.Bytes), m), nil
	}
}

// New builds a Lexer over every terminal g declares. Terminals are visited
// in ascending symbol-ID order -- the order in which Grammar.Builder first
// saw them -- so that "first declared wins" tie-breaking among equal-length
// matches is deterministic.
func New(g *grammar.Grammar) (*Lexer, error) {
	lx := lexmachine.NewLexer()

	ignored := g.IgnoreMatchers()
	g.EachTerminal(func(s grammar.Symbol) {
		if _, skip := ignored[s.ID]; skip {
			// Registered below with skipAction only, so it never yields a token.
			return
		}
		pattern := literalPattern(s.Name)
		if m, ok := g.Matcher(s.ID); ok {
			pattern = m.Pattern()
		}
		lx.Add([]byte(pattern), makeTokenAction(s.ID))
	})
	ignoredIDs := make([]int, 0, len(ignored))
	for id := range ignored {
		ignoredIDs = append(ignoredIDs, id)
	}
	slices.Sort(ignoredIDs)
	for _, id := range ignoredIDs {
		lx.Add([]byte(ignored[id].Pattern()), skipAction)
	}

	if err := lx.Compile(); err != nil {
		return nil, lllrparse.NewGrammarFileError("cannot compile lexer", err)
	}
	return &Lexer{compiled: lx}, nil
}

// literalPattern renders name as a lexmachine pattern matching only its own
// literal text, escaping any character that would otherwise be read as a
// regex metacharacter (punctuation-heavy terminals like "(" or "*" are
// common in grammar files).
func literalPattern(name string) string {
	return escapeLiteral(name)
}

// Tokenize scans input into a token sequence using longest-full-match
// resolution. On a run of input that cannot be extended to any full match,
// Tokenize emits every token it already resolved as well as a
// CauseLexToken error for the offending position; there is no
// further error recovery beyond that.
func (lx *Lexer) Tokenize(input string) ([]lllrparse.Token, error) {
	scanner, err := lx.compiled.Scanner([]byte(input))
	if err != nil {
		return nil, lllrparse.NewLexFileError(err)
	}

	var toks []lllrparse.Token
	for {
		before := scanner.TC
		tok, err, eof := scanner.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				start := before
				end := ui.FailTC
				if end <= start {
					end = start + 1
				}
				lexeme := ""
				if end <= len(input) {
					lexeme = input[start:end]
				}
				badTok := lllrparse.Token{
					Symbol: -1,
					Lexeme: lexeme,
					Span:   lllrparse.Span{start, end},
				}
				tracer().Errorf("lexer: unrecognized input %q at %s", lexeme, badTok.Span)
				return toks, lllrparse.NewLexTokenError(badTok)
			}
			return toks, lllrparse.NewLexFileError(err)
		}
		if tok == nil {
			// An ignored pattern matched; skipAction already dropped it.
			continue
		}
		t, ok := tok.(*lexmachine.Token)
		if !ok {
			return toks, lllrparse.NewInternalError(fmt.Sprintf("lexer: unexpected token value %T", tok))
		}
		toks = append(toks, lllrparse.Token{
			Symbol: t.Type,
			Lexeme: string(t.Lexeme),
			Span:   lllrparse.Span{t.StartColumn, t.EndColumn},
		})
	}
	return toks, nil
}
