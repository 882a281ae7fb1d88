package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/cli/output"
	"github.com/leapstack-labs/leapexpr/pkg/format"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/scan"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "scan [expression...]",
		Short: "Find history function calls in expressions",
		Long: `Scan trigger expressions or calculated item formulas for history function
calls and list each call with its parameters.

In text mode the expression is printed with every call highlighted.`,
		Example: `  leapexpr scan 'last(/h/k)>0 or avg(/h/k,5m)<10'
  leapexpr scan --file triggers.txt -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read one expression per line from a file (- for stdin)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, file string) error {
	cc := NewCommandContext(cmd)

	exprs, err := collectExpressions(cmd.InOrStdin(), args, file)
	if err != nil {
		return err
	}
	if len(exprs) == 0 {
		return fmt.Errorf("no expression given: pass one as an argument or use --file")
	}

	scanner := scan.New(cc.Parser, cc.Logger)
	results, err := scanner.ScanAll(cmd.Context(), exprs, cc.Cfg.Workers)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := renderScans(cc.Renderer, exprs, results); err != nil {
		return err
	}

	total := 0
	for _, calls := range results {
		total += len(calls)
	}
	if total == 0 {
		cc.Renderer.Warning(fmt.Sprintf("no history function calls found in %d expressions", len(exprs)))
	}
	return nil
}

func newScanOutput(expr string, calls []*parser.Result) output.ScanOutput {
	out := output.ScanOutput{Expression: expr, Calls: []output.CallOutput{}}
	for _, c := range calls {
		out.Calls = append(out.Calls, output.NewCallOutput(expr, c.Pos, c, nil))
	}
	return out
}

func renderScans(r *output.Renderer, exprs []string, results [][]*parser.Result) error {
	scans := make([]output.ScanOutput, len(exprs))
	for i, expr := range exprs {
		scans[i] = newScanOutput(expr, results[i])
	}

	var v any = scans
	if len(scans) == 1 {
		v = scans[0]
	}
	if ok, err := r.Structured(v); ok {
		return err
	}

	for i, s := range scans {
		if i > 0 {
			r.Println("")
		}
		if r.EffectiveMode() == output.ModeMarkdown {
			renderScanMarkdown(r, s)
		} else {
			renderScanText(r, s, results[i])
		}
	}
	return nil
}

func renderScanText(r *output.Renderer, s output.ScanOutput, calls []*parser.Result) {
	r.Println(format.Highlight(s.Expression, calls, r.Styles().Expr))
	if len(s.Calls) == 0 {
		r.Println(r.Muted("no function calls"))
		return
	}
	r.Table(callHeader, callRows(s.Calls))
}

func renderScanMarkdown(r *output.Renderer, s output.ScanOutput) {
	r.Println(output.FormatCodeBlock("", s.Expression))
	r.Println("")
	if len(s.Calls) == 0 {
		r.Println("_No function calls._")
		return
	}
	r.Table(callHeader, callRows(s.Calls))
}

var callHeader = []string{"Pos", "Function", "Params", "Outcome", "Match"}

func callRows(calls []output.CallOutput) [][]string {
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			strconv.Itoa(c.Pos),
			c.Function,
			strconv.Itoa(len(c.Params)),
			c.Outcome,
			c.Match,
		})
	}
	return rows
}

// describeParams renders parameters as kind=value pairs for compact output.
func describeParams(params []output.ParamOutput) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Kind + "=" + strconv.Quote(p.Value)
	}
	return strings.Join(parts, " ")
}
