package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/internal/cli/output"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
)

func TestREPLSession_DotCommands(t *testing.T) {
	cc, out, errOut := newTestContext(t, output.ModeText, parser.Options{})
	s := newREPLSession(cc)

	assert.False(t, s.handle(""))
	assert.False(t, s.handle("   "))
	assert.True(t, s.handle(".quit"))
	assert.True(t, s.handle(" .exit "))

	assert.False(t, s.handle(".help"))
	assert.Contains(t, out.String(), "Commands:")

	assert.False(t, s.handle(".bogus"))
	assert.Contains(t, errOut.String(), "unknown command .bogus")

	assert.False(t, s.handle(".macros sideways"))
	assert.Contains(t, errOut.String(), "usage: .macros")
}

func TestREPLSession_Macros(t *testing.T) {
	cc, out, _ := newTestContext(t, output.ModeText, parser.Options{})
	s := newREPLSession(cc)

	s.handle("avg(/h/k,{$X})")
	assert.Contains(t, out.String(), "parse error at offset 9: invalid period")

	out.Reset()
	s.handle(".macros user")
	assert.Equal(t, "user macros: on, lld macros: off\n", out.String())

	out.Reset()
	s.handle("avg(/h/k,{$X})")
	assert.Contains(t, out.String(), `avg @0 query="/h/k" period="{$X}"`)

	out.Reset()
	s.handle(".macros on")
	assert.Equal(t, "user macros: on, lld macros: on\n", out.String())
	s.handle(".macros off")
	assert.False(t, s.opts.UserMacros)
	assert.False(t, s.opts.LLDMacros)
}

func TestREPLSession_NoCalls(t *testing.T) {
	cc, out, _ := newTestContext(t, output.ModeText, parser.Options{})
	s := newREPLSession(cc)

	s.handle("1 + 2")
	assert.Equal(t, "no function calls\n", out.String())
}

func TestREPLSession_LeadingBlanks(t *testing.T) {
	cc, out, _ := newTestContext(t, output.ModeText, parser.Options{})
	s := newREPLSession(cc)

	s.handle("  avg(/h/k,x)")
	assert.Equal(t, "parse error at offset 11: invalid period\n", out.String())

	out.Reset()
	s.handle("\t 1 + 2")
	assert.Equal(t, "no function calls\n", out.String())
}

func TestREPLSession_JSON(t *testing.T) {
	cc, out, _ := newTestContext(t, output.ModeJSON, parser.Options{})
	s := newREPLSession(cc)

	s.handle("last(/h/k)>0")

	var got output.ScanOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Calls, 1)
	assert.Equal(t, "last", got.Calls[0].Function)
	assert.Equal(t, "success_continuation", got.Calls[0].Outcome)
}

func TestREPLSession_Functions(t *testing.T) {
	cc, out, _ := newTestContext(t, output.ModeText, parser.Options{})
	s := newREPLSession(cc)

	s.handle(".functions trend")
	assert.Contains(t, out.String(), "trendavg")
	assert.NotContains(t, out.String(), "nodata")

	out.Reset()
	s.handle(".functions zzz")
	assert.Equal(t, "no functions match zzz\n", out.String())
}

func TestNewREPLCompleter(t *testing.T) {
	c := newREPLCompleter()
	line := []rune(".ma")
	candidates, length := c.Do(line, len(line))

	require.Len(t, candidates, 1)
	assert.Equal(t, 3, length)
	assert.Equal(t, "cros ", string(candidates[0]))

	line = []rune("nod")
	candidates, _ = c.Do(line, len(line))
	require.Len(t, candidates, 1)
	assert.Equal(t, "ata( ", string(candidates[0]))
}
