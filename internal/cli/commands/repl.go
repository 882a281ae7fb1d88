package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/cli/output"
	"github.com/leapstack-labs/leapexpr/pkg/format"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/scan"
)

const replPrompt = "leapexpr> "

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively scan expressions",
		Long: `Start an interactive session. Every line is scanned for history function
calls, echoed with the calls highlighted, and each call's parameters are
listed.

Type .help for commands, .quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newREPLSession(cc)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "leapexpr REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := session.handle(line); quit {
			return nil
		}
	}
}

// replSession evaluates REPL input. Macro options can change between lines,
// so the parser and scanner are rebuilt when they do.
type replSession struct {
	r       *output.Renderer
	logger  *slog.Logger
	opts    parser.Options
	parser  *parser.FunctionParser
	scanner *scan.Scanner
}

func newREPLSession(cc *CommandContext) *replSession {
	s := &replSession{r: cc.Renderer, logger: cc.Logger}
	s.setOptions(cc.Parser.Options())
	return s
}

func (s *replSession) setOptions(opts parser.Options) {
	s.opts = opts
	s.parser = parser.NewFunctionParser(opts)
	s.scanner = scan.New(s.parser, s.logger)
}

// handle evaluates one input line and reports whether the session ends.
func (s *replSession) handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ".") {
		return s.handleDotCommand(trimmed)
	}
	s.eval(line)
	return false
}

func (s *replSession) handleDotCommand(line string) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.r.Writer())
	case ".macros":
		s.handleMacros(fields[1:])
	case ".functions":
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
		}
		s.listFunctions(prefix)
	default:
		s.r.Error(fmt.Sprintf("unknown command %s (try .help)", fields[0]))
	}
	return false
}

func (s *replSession) handleMacros(args []string) {
	opts := s.opts
	if len(args) > 0 {
		switch args[0] {
		case "on":
			opts = parser.Options{UserMacros: true, LLDMacros: true}
		case "off":
			opts = parser.Options{}
		case "user":
			opts.UserMacros = !opts.UserMacros
		case "lld":
			opts.LLDMacros = !opts.LLDMacros
		default:
			s.r.Error("usage: .macros [on|off|user|lld]")
			return
		}
		s.setOptions(opts)
		s.r.Success(macroStatus(s.opts))
		return
	}
	s.r.Println(macroStatus(s.opts))
}

func macroStatus(opts parser.Options) string {
	return fmt.Sprintf("user macros: %s, lld macros: %s", onOff(opts.UserMacros), onOff(opts.LLDMacros))
}

func (s *replSession) listFunctions(prefix string) {
	fns := parser.SearchFunctions(prefix)
	if len(fns) == 0 {
		s.r.Println(s.r.Muted("no functions match " + prefix))
		return
	}
	rows := make([][]string, 0, len(fns))
	for _, fn := range fns {
		rows = append(rows, []string{fn.Name, string(fn.Category), fn.Description})
	}
	s.r.Table([]string{"Function", "Category", "Description"}, rows)
}

func (s *replSession) eval(line string) {
	calls := s.scanner.Scan(line)

	if ok, err := s.r.Structured(newScanOutput(line, calls)); ok {
		if err != nil {
			s.r.Error(err.Error())
		}
		return
	}

	if len(calls) == 0 {
		// A line that starts like a call but does not parse gets the parse
		// error instead of an empty result.
		i := len(line) - len(strings.TrimLeft(line, " \t"))
		if c := line[i]; c >= 'a' && c <= 'z' {
			if _, err := s.parser.Parse(line, i); err != nil {
				s.r.Println(s.r.Muted(err.Error()))
				return
			}
		}
		s.r.Println(s.r.Muted("no function calls"))
		return
	}

	styles := s.r.Styles()
	s.r.Println(format.Highlight(line, calls, styles.Expr))
	for _, c := range calls {
		out := output.NewCallOutput(line, c.Pos, c, nil)
		s.r.Printf("  %s %s %s\n", styles.Bold.Render(c.Function), s.r.Muted(fmt.Sprintf("@%d", c.Pos)), describeParams(out.Params))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printREPLHelp(w io.Writer) {
	help := `Commands:
  .help                   Show this help
  .macros [on|off|user|lld]
                          Show or change which macro forms are accepted
  .functions [prefix]     List known history functions
  .quit, .exit            Exit the REPL

Any other line is scanned for history function calls.
`
	_, _ = fmt.Fprint(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands and
// history function names.
func newREPLCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".macros",
			readline.PcItem("on"),
			readline.PcItem("off"),
			readline.PcItem("user"),
			readline.PcItem("lld"),
		),
		readline.PcItem(".functions"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, fn := range parser.HistoryCatalog {
		items = append(items, readline.PcItem(fn.Name+"("))
	}
	return readline.NewPrefixCompleter(items...)
}
