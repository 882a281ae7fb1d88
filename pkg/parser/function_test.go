package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/leapexpr/pkg/matcher"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Outcome Tests ----------

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name      string
		opts      parser.Options
		source    string
		outcome   parser.Outcome
		function  string
		length    int
		wantCount int
		wantParam map[int]string
	}{
		{
			name:      "avg with period",
			source:    "avg(/host/key,5m)",
			outcome:   parser.Success,
			function:  "avg",
			length:    17,
			wantCount: 2,
			wantParam: map[int]string{0: "/host/key", 1: "5m"},
		},
		{
			name:      "single parameter",
			source:    "last(/host/key)",
			outcome:   parser.Success,
			function:  "last",
			length:    15,
			wantCount: 1,
			wantParam: map[int]string{0: "/host/key"},
		},
		{
			name:      "quoted parameters",
			source:    `count(/host/key,#3,"eq","5")`,
			outcome:   parser.Success,
			function:  "count",
			length:    28,
			wantCount: 4,
			wantParam: map[int]string{1: "#3", 2: "eq", 3: "5"},
		},
		{
			name:      "omitted period and escaped quote",
			source:    `func(/host/key,,"a\"b")`,
			outcome:   parser.Success,
			function:  "func",
			length:    23,
			wantCount: 3,
			wantParam: map[int]string{1: "", 2: `a"b`},
		},
		{
			name:      "trailing input",
			source:    "avg(/host/key,5m)extra",
			outcome:   parser.SuccessContinuation,
			function:  "avg",
			length:    17,
			wantCount: 2,
		},
		{
			name:      "empty second parameter before close",
			source:    "last(/host/key,)",
			outcome:   parser.Success,
			function:  "last",
			length:    16,
			wantCount: 2,
			wantParam: map[int]string{1: ""},
		},
		{
			name:      "trailing empty parameter",
			source:    "find(/host/key,,)",
			outcome:   parser.Success,
			function:  "find",
			length:    17,
			wantCount: 3,
			wantParam: map[int]string{1: "", 2: ""},
		},
		{
			name:      "spaces around parameters",
			source:    `find( /host/key , 1h , "like" , "x" ) = 1`,
			outcome:   parser.SuccessContinuation,
			function:  "find",
			length:    37,
			wantCount: 4,
			wantParam: map[int]string{0: "/host/key", 1: "1h", 2: "like", 3: "x"},
		},
		{
			name:      "numbers",
			source:    "percentile(/h/k,1h,-99.5e1K)",
			outcome:   parser.Success,
			function:  "percentile",
			length:    28,
			wantCount: 3,
			wantParam: map[int]string{2: "-99.5e1K"},
		},
		{
			name:      "user macro parameter",
			opts:      parser.Options{UserMacros: true},
			source:    "count(/h/k,5m,,{$LIMIT})",
			outcome:   parser.Success,
			function:  "count",
			length:    24,
			wantCount: 4,
			wantParam: map[int]string{2: "", 3: "{$LIMIT}"},
		},
		{
			name:      "lld macro parameters",
			opts:      parser.Options{LLDMacros: true},
			source:    `count(/h/k[{#IF}],#1,{#OP},{{#V}.regsub("(\d+)", \1)})`,
			outcome:   parser.Success,
			function:  "count",
			length:    54,
			wantCount: 4,
			wantParam: map[int]string{0: "/h/k[{#IF}]", 2: "{#OP}", 3: `{{#V}.regsub("(\d+)", \1)}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := parser.NewFunctionParser(tt.opts)
			res, err := fp.Parse(tt.source, 0)
			require.NoError(t, err)
			require.NotNil(t, res)

			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.function, res.FunctionName())
			assert.Equal(t, tt.length, res.Length)
			assert.Equal(t, tt.source[:tt.length], res.Match)
			assert.Equal(t, tt.wantCount, res.ParamCount())
			for n, want := range tt.wantParam {
				got, ok := res.Param(n)
				assert.True(t, ok, "param %d should be present", n)
				assert.Equal(t, want, got, "param %d", n)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		opts    parser.Options
		source  string
		pos     int
		wantMsg string
	}{
		{name: "unterminated", source: "func(/host/key", wantMsg: parser.ErrUnexpectedEOF},
		{name: "uppercase name", source: "Func(/host/key)", wantMsg: "function name"},
		{name: "no parenthesis", source: "avg /host/key", wantMsg: "function name"},
		{name: "name only", source: "avg", wantMsg: "function name"},
		{name: "digit in name", source: "avg2(/h/k)", wantMsg: "function name"},
		{name: "empty list", source: "avg()", wantMsg: parser.ErrInvalidQuery},
		{name: "missing query", source: "avg(,5m)", wantMsg: parser.ErrInvalidQuery},
		{name: "bad period", source: "avg(/h/k,abc)", wantMsg: parser.ErrInvalidPeriod},
		{name: "quoted period", source: `avg(/h/k,"5m")`, wantMsg: parser.ErrInvalidPeriod},
		{name: "bad third parameter", source: "count(/h/k,5m,eq)", wantMsg: "invalid parameter 2"},
		{name: "macro disabled", source: "count(/h/k,5m,{$X})", wantMsg: "invalid parameter 2"},
		{name: "lld macro disabled", opts: parser.Options{UserMacros: true}, source: "count(/h/k,5m,{#X})", wantMsg: "invalid parameter 2"},
		{name: "unterminated quote", source: `count(/h/k,5m,"eq)`, wantMsg: parser.ErrUnterminatedQuote},
		{name: "escaped closing quote", source: `count(/h/k,5m,"eq\")`, wantMsg: parser.ErrUnterminatedQuote},
		{name: "garbage after parameter", source: "avg(/h/k,5m x)", wantMsg: "unexpected character 'x'"},
		{name: "garbage after quoted", source: `count(/h/k,,"a"b)`, wantMsg: "unexpected character 'b'"},
		{name: "space before parenthesis", source: "avg (/h/k)", wantMsg: "function name"},
		{name: "empty source", source: "", wantMsg: "function name"},
		{name: "offset past end", source: "avg(/h/k)", pos: 9, wantMsg: "function name"},
		{name: "negative offset", source: "avg(/h/k)", pos: -1, wantMsg: "function name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := parser.NewFunctionParser(tt.opts)
			res, err := fp.Parse(tt.source, tt.pos)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, parser.ErrNoMatch))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, parser.Fail, parser.OutcomeOf(res, err))

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	fp := parser.NewFunctionParser(parser.Options{})

	_, err := fp.Parse("avg(/h/k,5m x)", 0)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 12, perr.Pos)

	_, err = fp.Parse(`count(/h/k,5m,"eq`, 0)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 14, perr.Pos, "points at the opening quote")
}

// ---------- Span Tests ----------

func TestParseSpans(t *testing.T) {
	source := `x>count(/h/k,,"a\"b", -5)`
	fp := parser.NewFunctionParser(parser.Options{})

	res, err := fp.Parse(source, 2)
	require.NoError(t, err)

	assert.Equal(t, parser.Success, res.Outcome)
	assert.Equal(t, 2, res.Pos)
	assert.Equal(t, len(source)-2, res.Length)
	assert.Equal(t, 5, res.Params.Pos, "relative to the match start")
	assert.Equal(t, `(/h/k,,"a\"b", -5)`, res.Params.Raw)
	assert.Equal(t, `/h/k,,"a\"b", -5`, res.RawParameters())

	want := []parser.Param{
		{
			Kind:  token.Query,
			Span:  token.Span{Pos: 8, Length: 4},
			Text:  "/h/k",
			Query: &matcher.Query{Host: "h", Key: "k"},
		},
		{Kind: token.Unquoted, Span: token.Span{Pos: 13}},
		{Kind: token.Quoted, Span: token.Span{Pos: 14, Length: 6}, Text: `"a\"b"`},
		{Kind: token.Unquoted, Span: token.Span{Pos: 22, Length: 2}, Text: "-5"},
	}
	if diff := cmp.Diff(want, res.Params.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	for _, p := range res.Params.Params {
		assert.Equal(t, p.Text, p.Span.Text(source), "span and text agree for %s", p.Kind)
	}
}

func TestParsePeriodValue(t *testing.T) {
	fp := parser.NewFunctionParser(parser.Options{})

	res, err := fp.Parse("avg(/h/k,1h:now/d)", 0)
	require.NoError(t, err)

	p := res.Params.Params[1]
	assert.Equal(t, token.Period, p.Kind)
	require.NotNil(t, p.Period)
	assert.Equal(t, "1h", p.Period.SecNum)
	assert.Equal(t, "now/d", p.Period.TimeShift)
}

// ---------- Property Tests ----------

func TestParseRoundTrip(t *testing.T) {
	sources := []string{
		"avg(/host/key,5m)",
		"last(/host/key)",
		`count(/host/key,#3,"eq","5")`,
		`func(/host/key,,"a\"b")`,
		`find( /host/key , 1h , "like" , "x" )`,
		`nodata(/Zabbix server/agent.ping["a,b"],5m)`,
	}

	fp := parser.NewFunctionParser(parser.Options{UserMacros: true, LLDMacros: true})
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			res, err := fp.Parse(source, 0)
			require.NoError(t, err)

			assert.Equal(t, res.Match, source[res.Pos:res.End()])
			assert.Equal(t, res.Match, res.FunctionName()+"("+res.RawParameters()+")")
			assert.Equal(t, res.Match, res.FunctionName()+res.Params.Raw)
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	fp := parser.NewFunctionParser(parser.Options{UserMacros: true})
	source := `count(/h/k,5m,"a",{$X}) > 1`

	first, err := fp.Parse(source, 0)
	require.NoError(t, err)
	second, err := fp.Parse(source, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)

	// Results must not alias each other.
	first.Params.Params[2].Text = "changed"
	assert.Equal(t, `"a"`, second.Params.Params[2].Text)
}

func TestPlaceholderParams(t *testing.T) {
	fp := parser.NewFunctionParser(parser.Options{})

	res, err := fp.Parse("f(/h/k,,,,)", 0)
	require.NoError(t, err)
	require.Equal(t, 5, res.ParamCount())

	for n := 1; n < res.ParamCount(); n++ {
		got, ok := res.Param(n)
		assert.True(t, ok)
		assert.Empty(t, got)
		assert.True(t, res.Params.Params[n].IsPlaceholder())
	}

	_, ok := res.Param(5)
	assert.False(t, ok)
	_, ok = res.Param(-1)
	assert.False(t, ok)
}

func TestNilResultAccessors(t *testing.T) {
	var res *parser.Result

	assert.Equal(t, 0, res.ParamCount())
	assert.Equal(t, "", res.FunctionName())
	assert.Equal(t, "", res.RawParameters())
	assert.Empty(t, res.ParamList().Params)
	_, ok := res.Param(0)
	assert.False(t, ok)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "success", parser.Success.String())
	assert.Equal(t, "success_continuation", parser.SuccessContinuation.String())
	assert.Equal(t, "fail", parser.Fail.String())
}
