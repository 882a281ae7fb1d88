package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapexpr/internal/cli/output"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Pos  int
	File string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [expression...]",
		Short: "Parse a history function call",
		Long: `Parse a history function call such as avg(/host/key,5m) starting at a
byte offset of each expression, and show its parameters.

Parameter 0 is an item query, parameter 1 a period, and the remaining
parameters quoted strings, numbers or macros. Enable macro forms with
--user-macros and --lld-macros.`,
		Example: `  # Parse a single call
  leapexpr parse 'avg(/host/key,5m)'

  # Parse the second call of a trigger expression
  leapexpr parse --user-macros --pos 16 'last(/h/k)>0 or min(/h/k,{$P})'

  # Parse every line of a file as JSON
  leapexpr parse --file calls.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Pos, "pos", 0, "Byte offset where the call starts")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read one expression per line from a file (- for stdin)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc := NewCommandContext(cmd)

	exprs, err := collectExpressions(cmd.InOrStdin(), args, opts.File)
	if err != nil {
		return err
	}
	if len(exprs) == 0 {
		return fmt.Errorf("no expression given: pass one as an argument or use --file")
	}

	calls, err := parseAll(cmd.Context(), cc, exprs, opts.Pos)
	if err != nil {
		return err
	}

	if err := renderCalls(cc.Renderer, calls); err != nil {
		return err
	}

	failed := 0
	for _, c := range calls {
		if c.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions did not parse", failed, len(calls))
	}
	return nil
}

// parseAll parses every expression at pos, cc.Cfg.Workers at a time.
// Results keep the order of exprs.
func parseAll(ctx context.Context, cc *CommandContext, exprs []string, pos int) ([]output.CallOutput, error) {
	calls := make([]output.CallOutput, len(exprs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cc.Cfg.Workers, 1))

	for i, expr := range exprs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := cc.Parser.Parse(expr, pos)
			if err != nil {
				cc.Logger.Debug("parse failed", "expr", expr, "pos", pos, "error", err)
			}
			calls[i] = output.NewCallOutput(expr, pos, res, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return calls, nil
}

func renderCalls(r *output.Renderer, calls []output.CallOutput) error {
	var v any = calls
	if len(calls) == 1 {
		v = calls[0]
	}
	if ok, err := r.Structured(v); ok {
		return err
	}

	for i, call := range calls {
		if i > 0 {
			r.Println("")
		}
		if r.EffectiveMode() == output.ModeMarkdown {
			renderCallMarkdown(r, call)
		} else {
			renderCallText(r, call)
		}
	}
	return nil
}

func renderCallText(r *output.Renderer, call output.CallOutput) {
	styles := r.Styles()

	if call.Error != "" {
		r.Println(call.Expression)
		if call.ErrorPos != nil && *call.ErrorPos <= len(call.Expression) {
			indent := lipgloss.Width(call.Expression[:*call.ErrorPos])
			r.Println(strings.Repeat(" ", indent) + styles.Error.Render("^ "+call.Error))
		} else {
			r.Println(styles.Error.Render(call.Error))
		}
		return
	}

	r.Printf("%s %s\n", styles.Bold.Render(call.Function), r.Muted("("+call.Outcome+")"))
	r.Println(r.Muted("match: ") + call.Match)
	if call.Signature != "" {
		r.Println(r.Muted("usage: ") + call.Signature)
	}
	if len(call.Params) > 0 {
		r.Table(paramHeader, paramRows(call.Params))
	}
}

func renderCallMarkdown(r *output.Renderer, call output.CallOutput) {
	r.Header(2, "`"+call.Expression+"`")
	r.Println("")
	r.Println(output.FormatKeyValue("Outcome", call.Outcome))
	if call.Error != "" {
		r.Println(output.FormatKeyValue("Error", call.Error))
		return
	}
	r.Println(output.FormatKeyValue("Function", call.Function))
	if call.Signature != "" {
		r.Println(output.FormatKeyValue("Signature", "`"+call.Signature+"`"))
	}
	r.Println(output.FormatKeyValue("Match", "`"+call.Match+"`"))
	r.Println(output.FormatKeyValue("Parameters", strconv.Itoa(len(call.Params))))
	if len(call.Params) > 0 {
		r.Println("")
		r.Table(paramHeader, paramRows(call.Params))
	}
}

var paramHeader = []string{"#", "Kind", "Pos", "Length", "Text", "Value"}

func paramRows(params []output.ParamOutput) [][]string {
	titleCaser := cases.Title(language.English)

	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			titleCaser.String(p.Kind),
			strconv.Itoa(p.Pos),
			strconv.Itoa(p.Length),
			p.Text,
			p.Value,
		})
	}
	return rows
}
