package parser_test

import (
	"testing"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/stretchr/testify/assert"
)

func TestUnquoteParam(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  string
	}{
		{name: "simple", param: `"eq"`, want: "eq"},
		{name: "empty literal", param: `""`, want: ""},
		{name: "escaped quote", param: `"a\"b"`, want: `a"b`},
		{name: "other escapes kept", param: `"a\nb\\c"`, want: `a\nb\\c`},
		{name: "backslash before closing quote is dropped", param: `"a\"`, want: "a"},
		{name: "single byte", param: `"`, want: ""},
		{name: "empty", param: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.UnquoteParam(tt.param))
		})
	}
}

func TestQuoteParamInverse(t *testing.T) {
	values := []string{"", "eq", `a"b`, `""`, `x\y`, `say "hi" \ there`, "日本語"}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			assert.Equal(t, v, parser.UnquoteParam(parser.QuoteParam(v)))
		})
	}
}

func TestQuotedParamMatchesQuoteParam(t *testing.T) {
	fp := parser.NewFunctionParser(parser.Options{})
	value := `he said "no"`

	res, err := fp.Parse("find(/h/k,,"+parser.QuoteParam(value)+")", 0)
	if !assert.NoError(t, err) {
		return
	}
	got, ok := res.Param(2)
	assert.True(t, ok)
	assert.Equal(t, value, got)
}
