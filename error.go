package lllrparse

import "fmt"

// Cause identifies the kind of failure an *Error carries. The set is closed
// and spans the module: grammar loading/semantics, lexing, LR table
// construction, and the three parser drivers all report through the same
// small taxonomy so a CLI can treat every failure uniformly.
type Cause int

const (
	// CauseGrammarFile: the grammar description could not be read or decoded.
	CauseGrammarFile Cause = iota
	// CauseNoStart: the declared start symbol has no rule.
	CauseNoStart
	// CauseUnreachable: a nonterminal head appears in no rule body.
	CauseUnreachable
	// CauseLeftRecursive: every rule for a nonterminal starts with itself.
	CauseLeftRecursive
	// CauseNotRealizable: a nonterminal cannot derive any all-terminal string.
	CauseNotRealizable
	// CauseLexFile: the input source could not be read.
	CauseLexFile
	// CauseLexToken: the lexer found input it could not extend to a full match.
	CauseLexToken
	// CauseBuildConflict: an unresolved shift/reduce (or reduce/reduce) collision
	// in the ACTION table during LR(1) construction.
	CauseBuildConflict
	// CauseLLConflict: two rules claim the same LL(1) table cell.
	CauseLLConflict
	// CauseParseUnexpected: the driver found no applicable move for the current token.
	CauseParseUnexpected
	// CauseParseEOF: input was exhausted but the parse stack was not.
	CauseParseEOF
	// CauseWrapperFail: LLLR could not synthesize an LR wrapper for a conflicted symbol.
	CauseWrapperFail
	// CauseInternal: an invariant was violated; should not occur on valid grammars.
	CauseInternal
)

func (c Cause) String() string {
	switch c {
	case CauseGrammarFile:
		return "GrammarFile"
	case CauseNoStart:
		return "NoStart"
	case CauseUnreachable:
		return "Unreachable"
	case CauseLeftRecursive:
		return "LeftRecursive"
	case CauseNotRealizable:
		return "NotRealizable"
	case CauseLexFile:
		return "LexFile"
	case CauseLexToken:
		return "LexToken"
	case CauseBuildConflict:
		return "BuildConflict"
	case CauseLLConflict:
		return "LLConflict"
	case CauseParseUnexpected:
		return "ParseUnexpected"
	case CauseParseEOF:
		return "ParseEOF"
	case CauseWrapperFail:
		return "WrapperFail"
	case CauseInternal:
		return "Internal"
	}
	return "Unknown"
}

// Error is the single error type surfaced by every package in this module.
// Only the fields relevant to Cause are populated; the rest are zero.
type Error struct {
	Cause  Cause
	Symbol string // involved symbol or nonterminal name, where applicable
	State  int    // LR state ID, for BuildConflict
	Token  Token  // offending token, for ParseUnexpected / LexToken
	Detail string // free-form operator-facing context
	Err    error  // wrapped underlying error (I/O, decode), where applicable
}

func (e *Error) Error() string {
	switch e.Cause {
	case CauseGrammarFile:
		if e.Err != nil {
			return fmt.Sprintf("grammar file: %s: %v", e.Detail, e.Err)
		}
		return fmt.Sprintf("grammar file: %s", e.Detail)
	case CauseNoStart:
		return fmt.Sprintf("start symbol %q has no rule", e.Symbol)
	case CauseUnreachable:
		return fmt.Sprintf("nonterminal %q is unreachable", e.Symbol)
	case CauseLeftRecursive:
		return fmt.Sprintf("nonterminal %q is left-recursive", e.Symbol)
	case CauseNotRealizable:
		return fmt.Sprintf("nonterminal %q cannot derive any terminal string", e.Symbol)
	case CauseLexFile:
		return fmt.Sprintf("cannot read input: %v", e.Err)
	case CauseLexToken:
		return fmt.Sprintf("unrecognized input %q at %s", e.Token.Lexeme, e.Token.Span)
	case CauseBuildConflict:
		return fmt.Sprintf("unresolved conflict in state %d on symbol %q", e.State, e.Symbol)
	case CauseLLConflict:
		return fmt.Sprintf("ambiguous LL(1) cell for nonterminal %q", e.Symbol)
	case CauseParseUnexpected:
		return fmt.Sprintf("unexpected token %q at %s", e.Token.Lexeme, e.Token.Span)
	case CauseParseEOF:
		return "input exhausted with parse stack non-empty"
	case CauseWrapperFail:
		return fmt.Sprintf("cannot synthesize LR wrapper for %q", e.Symbol)
	case CauseInternal:
		return fmt.Sprintf("internal error: %s", e.Detail)
	}
	return "unknown parser error"
}

// Unwrap exposes the wrapped underlying error, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

func NewGrammarFileError(detail string, err error) *Error {
	return &Error{Cause: CauseGrammarFile, Detail: detail, Err: err}
}

func NewNoStartError(symbol string) *Error {
	return &Error{Cause: CauseNoStart, Symbol: symbol}
}

func NewUnreachableError(symbol string) *Error {
	return &Error{Cause: CauseUnreachable, Symbol: symbol}
}

func NewLeftRecursiveError(symbol string) *Error {
	return &Error{Cause: CauseLeftRecursive, Symbol: symbol}
}

func NewNotRealizableError(symbol string) *Error {
	return &Error{Cause: CauseNotRealizable, Symbol: symbol}
}

func NewLexFileError(err error) *Error {
	return &Error{Cause: CauseLexFile, Err: err}
}

func NewLexTokenError(tok Token) *Error {
	return &Error{Cause: CauseLexToken, Token: tok}
}

func NewBuildConflictError(state int, symbol string) *Error {
	return &Error{Cause: CauseBuildConflict, State: state, Symbol: symbol}
}

func NewLLConflictError(symbol string) *Error {
	return &Error{Cause: CauseLLConflict, Symbol: symbol}
}

func NewParseUnexpectedError(tok Token) *Error {
	return &Error{Cause: CauseParseUnexpected, Token: tok}
}

func NewParseEOFError() *Error {
	return &Error{Cause: CauseParseEOF}
}

func NewWrapperFailError(symbol string) *Error {
	return &Error{Cause: CauseWrapperFail, Symbol: symbol}
}

func NewInternalError(detail string) *Error {
	return &Error{Cause: CauseInternal, Detail: detail}
}

// IsConflict reports whether err is a *Error carrying CauseBuildConflict.
// The LLLR wrapper-trial loop uses this to catch only conflict failures
// while letting everything else propagate.
func IsConflict(err error) bool {
	pe, ok := err.(*Error)
	return ok && pe.Cause == CauseBuildConflict
}
