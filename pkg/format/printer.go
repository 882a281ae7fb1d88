// Package format renders parsed function calls: span highlighting for
// terminals and lossless parameter edits.
package format

import (
	"bytes"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/token"
)

// Styles holds the lipgloss styles applied to each part of a call.
type Styles struct {
	Name     lipgloss.Style
	Punct    lipgloss.Style // parentheses, commas and blanks inside a call
	Query    lipgloss.Style
	Period   lipgloss.Style
	Quoted   lipgloss.Style
	Unquoted lipgloss.Style
}

// NewStyles returns the terminal color scheme bound to r, so color output
// follows the profile detected for r's writer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Name:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Punct:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Query:    r.NewStyle().Foreground(lipgloss.Color("10")),
		Period:   r.NewStyle().Foreground(lipgloss.Color("11")),
		Quoted:   r.NewStyle().Foreground(lipgloss.Color("13")),
		Unquoted: r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Name: plain, Punct: plain, Query: plain, Period: plain, Quoted: plain, Unquoted: plain}
}

// For returns the style of a parameter kind.
func (s Styles) For(kind token.ParamKind) lipgloss.Style {
	switch kind {
	case token.Query:
		return s.Query
	case token.Period:
		return s.Period
	case token.Quoted:
		return s.Quoted
	default:
		return s.Unquoted
	}
}

// printer copies source to its output, styling the spans it is told about.
type printer struct {
	source string
	styles Styles
	output *bytes.Buffer
	pos    int // next source byte to copy
}

func newPrinter(source string, styles Styles) *printer {
	return &printer{source: source, styles: styles, output: &bytes.Buffer{}}
}

// String returns the output so far.
func (p *printer) String() string {
	return p.output.String()
}

// copyTo copies unstyled source up to end.
func (p *printer) copyTo(end int) {
	if end > p.pos {
		p.output.WriteString(p.source[p.pos:end])
		p.pos = end
	}
}

// styleTo writes source up to end with the given style.
func (p *printer) styleTo(end int, style lipgloss.Style) {
	if end > p.pos {
		p.output.WriteString(style.Render(p.source[p.pos:end]))
		p.pos = end
	}
}

func (p *printer) call(res *parser.Result) {
	p.copyTo(res.Pos)
	p.styleTo(res.NameSpan().End(), p.styles.Name)
	for _, param := range res.Params.Params {
		if param.IsPlaceholder() {
			continue
		}
		p.styleTo(param.Span.Pos, p.styles.Punct)
		p.styleTo(param.Span.End(), p.styles.For(param.Kind))
	}
	p.styleTo(res.End(), p.styles.Punct)
}
