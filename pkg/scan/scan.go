// Package scan finds history function calls inside larger expressions such
// as trigger expressions and calculated item formulas.
package scan

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
)

// DefaultWorkers is the ScanAll concurrency used when none is given.
const DefaultWorkers = 4

// Scanner tries the function parser at every offset where a call may start.
type Scanner struct {
	parser *parser.FunctionParser
	logger *slog.Logger
}

// New creates a scanner. A nil logger discards log output.
func New(fp *parser.FunctionParser, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{parser: fp, logger: logger}
}

// Scan returns every function call in expr in source order. Calls nested in
// a matched call are not reported separately, and string literals of the
// outer expression are skipped.
func (s *Scanner) Scan(expr string) []*parser.Result {
	var calls []*parser.Result
	var src *parser.Source

	for p := 0; p < len(expr); {
		c := expr[p]
		switch {
		case c == '"':
			p = skipString(expr, p)
		case isLower(c) && (p == 0 || !isIdentChar(expr[p-1])):
			if src == nil {
				src = parser.NewSource(expr)
			}
			res, err := s.parser.ParseSource(src, p)
			if err != nil {
				s.logger.Debug("no function call", "pos", p, "error", err)
				p = skipIdent(expr, p)
				continue
			}
			s.logger.Debug("function call",
				"pos", res.Pos,
				"function", res.Function,
				"params", res.ParamCount(),
				"outcome", res.Outcome)
			calls = append(calls, res)
			p = res.End()
		default:
			p++
		}
	}

	return calls
}

// ScanAll scans a batch of expressions with at most workers goroutines.
// The result slice is index-aligned with exprs.
func (s *Scanner) ScanAll(ctx context.Context, exprs []string, workers int) ([][]*parser.Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([][]*parser.Result, len(exprs))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, expr := range exprs {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = s.Scan(expr)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// skipString returns the offset just past the string literal starting at p,
// or len(expr) if it is unterminated.
func skipString(expr string, p int) int {
	for i := p + 1; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			if i+1 < len(expr) && expr[i+1] == '"' {
				i++
			}
		case '"':
			return i + 1
		}
	}
	return len(expr)
}

func skipIdent(expr string, p int) int {
	for p < len(expr) && isIdentChar(expr[p]) {
		p++
	}
	return p
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isIdentChar(c byte) bool {
	return isLower(c) || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
