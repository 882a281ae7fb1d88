package format

import (
	"fmt"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/token"
)

// ReplaceParam returns source with parameter n of res replaced by value.
// Quoted parameters are re-quoted; every other kind, placeholders included,
// receives value verbatim. res must come from parsing source.
func ReplaceParam(source string, res *parser.Result, n int, value string) (string, error) {
	if res == nil || n < 0 || n >= res.ParamCount() {
		return "", fmt.Errorf("parameter %d out of range", n)
	}
	if res.End() > len(source) || source[res.Pos:res.End()] != res.Match {
		return "", fmt.Errorf("result does not belong to source")
	}

	param := res.Params.Params[n]
	if param.Kind == token.Quoted {
		value = parser.QuoteParam(value)
	}
	return source[:param.Span.Pos] + value + source[param.Span.End():], nil
}
