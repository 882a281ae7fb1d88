package output

import (
	"errors"

	"github.com/leapstack-labs/leapexpr/pkg/matcher"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
)

// CallOutput is the structured form of one parsed function call.
type CallOutput struct {
	Expression string        `json:"expression" yaml:"expression"`
	Pos        int           `json:"pos" yaml:"pos"`
	Outcome    string        `json:"outcome" yaml:"outcome"`
	Function   string        `json:"function,omitempty" yaml:"function,omitempty"`
	Signature  string        `json:"signature,omitempty" yaml:"signature,omitempty"`
	Match      string        `json:"match,omitempty" yaml:"match,omitempty"`
	Length     int           `json:"length,omitempty" yaml:"length,omitempty"`
	Parameters string        `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Params     []ParamOutput `json:"params,omitempty" yaml:"params,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorPos   *int          `json:"error_pos,omitempty" yaml:"error_pos,omitempty"`
}

// ParamOutput is the structured form of one parameter.
type ParamOutput struct {
	Index  int             `json:"index" yaml:"index"`
	Kind   string          `json:"kind" yaml:"kind"`
	Pos    int             `json:"pos" yaml:"pos"`
	Length int             `json:"length" yaml:"length"`
	Text   string          `json:"text" yaml:"text"`
	Value  string          `json:"value" yaml:"value"`
	Query  *matcher.Query  `json:"query,omitempty" yaml:"query,omitempty"`
	Period *matcher.Period `json:"period,omitempty" yaml:"period,omitempty"`
}

// ScanOutput lists the calls found in one expression.
type ScanOutput struct {
	Expression string       `json:"expression" yaml:"expression"`
	Calls      []CallOutput `json:"calls" yaml:"calls"`
}

// NewCallOutput converts a parse outcome into its structured form.
func NewCallOutput(expr string, pos int, res *parser.Result, err error) CallOutput {
	out := CallOutput{
		Expression: expr,
		Pos:        pos,
		Outcome:    parser.OutcomeOf(res, err).String(),
	}
	if err != nil {
		out.Error = err.Error()
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			errPos := pe.Pos
			out.ErrorPos = &errPos
		}
		return out
	}

	out.Function = res.FunctionName()
	if fn, ok := parser.LookupFunction(out.Function); ok {
		out.Signature = fn.Signature
	}
	out.Match = res.Match
	out.Length = res.Length
	out.Parameters = res.RawParameters()
	for i, p := range res.Params.Params {
		out.Params = append(out.Params, ParamOutput{
			Index:  i,
			Kind:   p.Kind.String(),
			Pos:    p.Span.Pos,
			Length: p.Span.Length,
			Text:   p.Text,
			Value:  p.Value(),
			Query:  p.Query,
			Period: p.Period,
		})
	}
	return out
}
