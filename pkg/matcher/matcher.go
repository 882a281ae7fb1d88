// Package matcher provides the sub-parsers the function parser delegates to:
// item queries, periods, numbers and macros.
//
// Every grammar is built from parsly tokens and runs on a shared
// parsly.Cursor positioned at the parameter being read, so a whole parameter
// list is matched over a single copy of the input. Each sub-parser is itself
// a parsly.Matcher wrapped in a parsly.Token, which lets an ordered Chain of
// them be tried with one cursor.MatchAny call. Sub-parsers never look behind
// the cursor and keep no state between calls, so one instance may be shared
// freely.
package matcher

import (
	"github.com/viant/parsly"
)

// MatchResult is the product of a successful sub-parser match.
type MatchResult struct {
	Length int    // bytes consumed from the match offset
	Text   string // matched text
	Value  any    // sub-parser specific result, e.g. *Query or *Period
}

// SubParser is the capability shared by all sub-parsers.
type SubParser interface {
	// Name returns a short human-readable name used in logs and errors.
	Name() string
	// Token returns the sub-parser as a parsly token.
	Token() *parsly.Token
	// TryMatch attempts a match at the cursor. On success the cursor is
	// advanced past the match, otherwise it is left where it was.
	TryMatch(cursor *parsly.Cursor) (MatchResult, bool)
}

// grammar runs a sub-parser grammar on the cursor. It returns the value of
// the match and whether the grammar matched; the cursor may be left anywhere
// on failure.
type grammar func(cursor *parsly.Cursor) (any, bool)

// scanner is the common base of all sub-parsers.
type scanner struct {
	name  string
	token *parsly.Token
	scan  grammar
}

func newScanner(code int, name string, scan grammar) *scanner {
	s := &scanner{name: name, scan: scan}
	s.token = parsly.NewToken(code, name, s)
	return s
}

// Name returns the sub-parser name.
func (s *scanner) Name() string {
	return s.name
}

// Token returns the sub-parser token.
func (s *scanner) Token() *parsly.Token {
	return s.token
}

// Match implements parsly.Matcher. It reports the match length and leaves
// the cursor in place.
func (s *scanner) Match(cursor *parsly.Cursor) int {
	start := cursor.Pos
	_, ok := s.scan(cursor)
	n := cursor.Pos - start
	cursor.Pos = start
	if !ok {
		return 0
	}
	return n
}

// TryMatch implements SubParser.
func (s *scanner) TryMatch(cursor *parsly.Cursor) (MatchResult, bool) {
	start := cursor.Pos
	if start < 0 || !cursor.HasMore() {
		return MatchResult{}, false
	}
	value, ok := s.scan(cursor)
	if !ok || cursor.Pos == start {
		cursor.Pos = start
		return MatchResult{}, false
	}
	return MatchResult{Length: cursor.Pos - start, Text: text(cursor, start), Value: value}, true
}

// MatchAt runs sp on a cursor over source positioned at pos. It copies
// source; callers matching many offsets of one input should share a cursor.
func MatchAt(sp SubParser, source string, pos int) (MatchResult, bool) {
	if pos < 0 || pos >= len(source) {
		return MatchResult{}, false
	}
	cursor := parsly.NewCursor("", []byte(source), 0)
	cursor.Pos = pos
	return sp.TryMatch(cursor)
}

// Options gates the macro sub-parsers.
type Options struct {
	UserMacros bool
	LLDMacros  bool
}

// Chain is an ordered list of sub-parsers; the first one to match wins.
type Chain struct {
	parsers []SubParser
	tokens  []*parsly.Token
}

// NewChain creates a chain of the given sub-parsers.
func NewChain(parsers ...SubParser) *Chain {
	c := &Chain{parsers: parsers}
	for _, sp := range parsers {
		c.tokens = append(c.tokens, sp.Token())
	}
	return c
}

// UnquotedChain returns the chain tried for unquoted parameters at index 2
// and above. The number parser always comes first.
func UnquotedChain(opts Options) *Chain {
	parsers := []SubParser{NewNumberParser()}
	return NewChain(append(parsers, macroParsers(opts)...)...)
}

func macroParsers(opts Options) []SubParser {
	var parsers []SubParser
	if opts.UserMacros {
		parsers = append(parsers, NewUserMacroParser())
	}
	if opts.LLDMacros {
		parsers = append(parsers, NewLLDMacroParser(), NewLLDMacroFunctionParser())
	}
	return parsers
}

// Parsers returns the sub-parsers in the order they are tried.
func (c *Chain) Parsers() []SubParser {
	return c.parsers
}

// Len returns the number of sub-parsers in the chain.
func (c *Chain) Len() int {
	return len(c.parsers)
}

// Match tries the chain at the cursor and returns the first match together
// with the sub-parser that produced it. On success the cursor is advanced.
func (c *Chain) Match(cursor *parsly.Cursor) (MatchResult, SubParser, bool) {
	if len(c.tokens) == 0 {
		return MatchResult{}, nil, false
	}
	start := cursor.Pos
	matched := cursor.MatchAny(c.tokens...)
	for _, sp := range c.parsers {
		if sp.Token().Code == matched.Code {
			return MatchResult{Length: matched.Size, Text: text(cursor, start)}, sp, true
		}
	}
	return MatchResult{}, nil, false
}
