package parser

import (
	"github.com/viant/parsly"

	"github.com/leapstack-labs/leapexpr/pkg/matcher"
	"github.com/leapstack-labs/leapexpr/pkg/token"
)

type state int

const (
	stateNew         state = iota // about to read a parameter
	stateEnd                      // parameter finished, expecting ',' or ')'
	stateQuoted                   // inside a quoted literal
	stateEndOfParams              // closing ')' consumed
)

// machine is the parameter list state machine. It is created per Parse call
// and reads the parameters through a cursor over the whole source, so the
// sub-parsers never copy the input.
type machine struct {
	fp     *FunctionParser
	source string
	cursor *parsly.Cursor
	num    int // index of the parameter being read
	state  state
	params []Param
}

func newMachine(fp *FunctionParser, source string, cursor *parsly.Cursor) *machine {
	return &machine{fp: fp, source: source, cursor: cursor, state: stateNew}
}

// run drives the machine until the closing parenthesis or the end of input.
// Every step either consumes at least one byte or fails.
func (m *machine) run() error {
	for m.cursor.HasMore() && m.state != stateEndOfParams {
		var err error
		switch m.state {
		case stateNew:
			err = m.stepNew()
		case stateEnd:
			err = m.stepEnd()
		case stateQuoted:
			m.stepQuoted()
		}
		if err != nil {
			return err
		}
	}

	switch m.state {
	case stateEndOfParams:
		return nil
	case stateQuoted:
		return newError(m.params[len(m.params)-1].Span.Pos, ErrUnterminatedQuote)
	default:
		return newError(m.cursor.Pos, ErrUnexpectedEOF)
	}
}

func (m *machine) stepNew() error {
	pos := m.cursor.Pos
	c := m.source[pos]
	if c == ' ' {
		m.cursor.Pos++
		return nil
	}

	if m.num == 0 {
		res, ok := m.fp.query.TryMatch(m.cursor)
		if !ok {
			return newError(pos, ErrInvalidQuery)
		}
		q, _ := res.Value.(*matcher.Query)
		m.push(Param{Kind: token.Query, Span: token.Span{Pos: pos, Length: res.Length}, Text: m.source[pos : pos+res.Length], Query: q})
		m.state = stateEnd
		return nil
	}

	switch c {
	case ',':
		m.placeholder()
		m.num++
		m.cursor.Pos++
		return nil
	case ')':
		m.placeholder()
		m.state = stateEndOfParams
		m.cursor.Pos++
		return nil
	}

	if m.num == 1 {
		res, ok := m.fp.period.TryMatch(m.cursor)
		if !ok {
			return newError(pos, ErrInvalidPeriod)
		}
		period, _ := res.Value.(*matcher.Period)
		m.push(Param{Kind: token.Period, Span: token.Span{Pos: pos, Length: res.Length}, Text: m.source[pos : pos+res.Length], Period: period})
		m.state = stateEnd
		return nil
	}

	if c == '"' {
		m.push(Param{Kind: token.Quoted, Span: token.Span{Pos: pos, Length: 1}})
		m.state = stateQuoted
		m.cursor.Pos++
		return nil
	}

	res, _, ok := m.fp.chain.Match(m.cursor)
	if !ok {
		return newError(pos, ErrInvalidParam, m.num)
	}
	m.push(Param{Kind: token.Unquoted, Span: token.Span{Pos: pos, Length: res.Length}, Text: m.source[pos : pos+res.Length]})
	m.state = stateEnd
	return nil
}

func (m *machine) stepEnd() error {
	switch c := m.source[m.cursor.Pos]; c {
	case ' ':
	case ',':
		m.num++
		m.state = stateNew
	case ')':
		m.state = stateEndOfParams
	default:
		return newError(m.cursor.Pos, ErrUnexpectedChar, c)
	}
	m.cursor.Pos++
	return nil
}

// stepQuoted extends the open quoted parameter by one byte. A '"' closes it
// unless the byte before it is a backslash.
func (m *machine) stepQuoted() {
	p := m.cursor.Pos
	param := &m.params[len(m.params)-1]
	param.Span.Length++
	if m.source[p] == '"' && m.source[p-1] != '\\' {
		param.Text = param.Span.Text(m.source)
		m.state = stateEnd
	}
	m.cursor.Pos++
}

func (m *machine) push(p Param) {
	m.params = append(m.params, p)
}

// placeholder records an omitted parameter as a zero-length unquoted one.
func (m *machine) placeholder() {
	m.push(Param{Kind: token.Unquoted, Span: token.Span{Pos: m.cursor.Pos}})
}
