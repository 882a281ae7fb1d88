package parser

import (
	"github.com/leapstack-labs/leapexpr/pkg/matcher"
	"github.com/leapstack-labs/leapexpr/pkg/token"
)

// Outcome is the result class of a Parse call.
type Outcome int

const (
	// Fail means no function call starts at the offset.
	Fail Outcome = iota
	// Success means the call runs to the end of the source.
	Success
	// SuccessContinuation means a call matched and more input follows it.
	SuccessContinuation
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case SuccessContinuation:
		return "success_continuation"
	default:
		return "fail"
	}
}

// MarshalText renders outcomes by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is a parsed function call.
type Result struct {
	Function string    `json:"function" yaml:"function"`
	Match    string    `json:"match" yaml:"match"`   // full matched text
	Length   int       `json:"length" yaml:"length"` // bytes consumed
	Pos      int       `json:"pos" yaml:"pos"`       // offset of the match in source
	Params   ParamList `json:"params" yaml:"params"`
	Outcome  Outcome   `json:"outcome" yaml:"outcome"`
}

// ParamList is the parenthesized parameter list of a call.
type ParamList struct {
	Raw    string  `json:"raw" yaml:"raw"` // "(" ... ")" inclusive
	Pos    int     `json:"pos" yaml:"pos"` // offset of "(" relative to the match
	Params []Param `json:"params" yaml:"params"`
}

// Param is a single parameter. Kind selects which of the optional fields is
// set: Query for token.Query, Period for token.Period.
type Param struct {
	Kind   token.ParamKind `json:"kind" yaml:"kind"`
	Span   token.Span      `json:"span" yaml:"span"`
	Text   string          `json:"text" yaml:"text"` // raw text; quoted params keep their quotes
	Query  *matcher.Query  `json:"query,omitempty" yaml:"query,omitempty"`
	Period *matcher.Period `json:"period,omitempty" yaml:"period,omitempty"`
}

// IsPlaceholder reports whether the parameter was omitted, as in f(/h/k,,1).
func (p Param) IsPlaceholder() bool {
	return p.Kind == token.Unquoted && p.Span.IsEmpty()
}

// Value returns the parameter text, unquoted for quoted parameters.
func (p Param) Value() string {
	if p.Kind == token.Quoted {
		return UnquoteParam(p.Text)
	}
	return p.Text
}

// FunctionName returns the function name, e.g. "avg".
func (r *Result) FunctionName() string {
	if r == nil {
		return ""
	}
	return r.Function
}

// RawParameters returns the text between the parentheses.
func (r *Result) RawParameters() string {
	if r == nil || len(r.Params.Raw) < 2 {
		return ""
	}
	return r.Params.Raw[1 : len(r.Params.Raw)-1]
}

// ParamList returns the parsed parameter list.
func (r *Result) ParamList() ParamList {
	if r == nil {
		return ParamList{}
	}
	return r.Params
}

// ParamCount returns the number of parameters, placeholders included.
func (r *Result) ParamCount() int {
	if r == nil {
		return 0
	}
	return len(r.Params.Params)
}

// Param returns the value of parameter n. Quoted parameters are unquoted,
// placeholders yield "". ok is false when n is out of range.
func (r *Result) Param(n int) (string, bool) {
	if n < 0 || n >= r.ParamCount() {
		return "", false
	}
	return r.Params.Params[n].Value(), true
}

// End returns the offset just past the match in the source.
func (r *Result) End() int {
	return r.Pos + r.Length
}

// Span returns the span of the whole match.
func (r *Result) Span() token.Span {
	return token.Span{Pos: r.Pos, Length: r.Length}
}

// NameSpan returns the span of the function name.
func (r *Result) NameSpan() token.Span {
	return token.Span{Pos: r.Pos, Length: len(r.Function)}
}
