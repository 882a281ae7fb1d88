// Package parser recognizes history function calls such as
// avg(/host/key,5m) inside monitoring expressions.
//
// # Usage
//
//	fp := parser.NewFunctionParser(parser.Options{UserMacros: true})
//	res, err := fp.Parse("last(/host/key,#3)>0", 0)
//	if err != nil {
//	    // no function call starts at offset 0
//	}
//	res.FunctionName() // "last"
//	res.Outcome        // SuccessContinuation: ">0" follows the call
//
// The parser is meant to be one alternative tried by a larger expression
// scanner, so it matches a prefix of the input starting at the given offset
// and reports whether input remains after the call.
//
// # Grammar Overview
//
//	function-call → name "(" param-list ")"
//	name          → [a-z]+
//	param-list    → query ["," [period] {"," [rest]}]
//	rest          → quoted | number | user-macro | lld-macro | lld-macro-function
//	quoted        → '"' {char | '\"'} '"'
//
// Item queries, periods, numbers and macros are matched by the sub-parsers in
// package matcher. Every parameter keeps its exact span in the source so the
// call can be highlighted, edited and rebuilt byte for byte.
package parser

import (
	"github.com/viant/parsly"

	"github.com/leapstack-labs/leapexpr/pkg/matcher"
)

// Options configures which macro kinds are accepted in parameters.
type Options struct {
	UserMacros bool `koanf:"user_macros" json:"user_macros" yaml:"user_macros"`
	LLDMacros  bool `koanf:"lld_macros" json:"lld_macros" yaml:"lld_macros"`
}

// FunctionParser parses history function calls. It holds only immutable
// configuration, so one instance may be shared between goroutines.
type FunctionParser struct {
	opts   Options
	query  matcher.SubParser
	period matcher.SubParser
	chain  *matcher.Chain // tried in order for parameters 2..N
}

// NewFunctionParser creates a function parser with the given options.
func NewFunctionParser(opts Options) *FunctionParser {
	mopts := matcher.Options{UserMacros: opts.UserMacros, LLDMacros: opts.LLDMacros}
	return &FunctionParser{
		opts:   opts,
		query:  matcher.NewQueryParser(),
		period: matcher.NewPeriodParser(mopts),
		chain:  matcher.UnquotedChain(mopts),
	}
}

// Options returns the parser configuration.
func (fp *FunctionParser) Options() Options {
	return fp.opts
}

// Source is an expression prepared for parsing at many offsets. It holds
// the byte copy the sub-parsers run on, so scanning an expression converts
// it once rather than once per candidate call.
type Source struct {
	text  string
	input []byte
}

// NewSource prepares text for parsing.
func NewSource(text string) *Source {
	return &Source{text: text, input: []byte(text)}
}

// Text returns the expression.
func (s *Source) Text() string {
	return s.text
}

// Parse matches a function call starting exactly at byte offset pos.
//
// On success the returned Result is owned by the caller and its Outcome is
// Success when the call runs to the end of source, or SuccessContinuation
// when more input follows. On failure Parse returns a *ParseError wrapping
// ErrNoMatch and no result.
func (fp *FunctionParser) Parse(source string, pos int) (*Result, error) {
	open, err := scanCall(source, pos)
	if err != nil {
		return nil, err
	}
	return fp.parse(NewSource(source), pos, open)
}

// ParseSource is Parse over a prepared source.
func (fp *FunctionParser) ParseSource(src *Source, pos int) (*Result, error) {
	open, err := scanCall(src.text, pos)
	if err != nil {
		return nil, err
	}
	return fp.parse(src, pos, open)
}

func (fp *FunctionParser) parse(src *Source, pos, open int) (*Result, error) {
	cursor := parsly.NewCursor("", src.input, 0)
	cursor.Pos = open + 1

	m := newMachine(fp, src.text, cursor)
	if err := m.run(); err != nil {
		return nil, err
	}
	end := cursor.Pos
	source := src.text

	res := &Result{
		Function: source[pos:open],
		Match:    source[pos:end],
		Length:   end - pos,
		Pos:      pos,
		Params: ParamList{
			Raw:    source[open:end],
			Pos:    open - pos,
			Params: m.params,
		},
		Outcome: Success,
	}
	if end < len(source) {
		res.Outcome = SuccessContinuation
	}
	return res, nil
}

// scanCall checks for a name followed by '(' at pos and returns the offset
// of the '('.
func scanCall(source string, pos int) (int, error) {
	if pos < 0 || pos >= len(source) {
		return 0, newError(pos, ErrExpectedName)
	}
	n := scanName(source, pos)
	if n == 0 || pos+n >= len(source) || source[pos+n] != '(' {
		return 0, newError(pos, ErrExpectedName)
	}
	return pos + n, nil
}

// scanName returns the length of the run of lowercase letters at pos.
func scanName(source string, pos int) int {
	n := 0
	for pos+n < len(source) && source[pos+n] >= 'a' && source[pos+n] <= 'z' {
		n++
	}
	return n
}
