package scan

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/internal/testutil"
	"github.com/leapstack-labs/leapexpr/pkg/parser"
)

func newScanner(t *testing.T, opts parser.Options) *Scanner {
	t.Helper()
	return New(parser.NewFunctionParser(opts), testutil.NewTestLogger(t))
}

func TestScan(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		wantCalls []string
		wantPos   []int
	}{
		{
			name:      "single call",
			expr:      "last(/host/key)",
			wantCalls: []string{"last(/host/key)"},
			wantPos:   []int{0},
		},
		{
			name:      "trigger expression",
			expr:      `avg(/h/cpu,5m)>90 and last(/h/ping)=0 or find(/h/log,,"like","err")=1`,
			wantCalls: []string{"avg(/h/cpu,5m)", "last(/h/ping)", `find(/h/log,,"like","err")`},
			wantPos:   []int{0, 22, 41},
		},
		{
			name:      "operators between calls",
			expr:      "min(/h/k,1h)-max(/h/k,1h)",
			wantCalls: []string{"min(/h/k,1h)", "max(/h/k,1h)"},
			wantPos:   []int{0, 13},
		},
		{
			name:      "math function wrapping a call",
			expr:      "abs(last(/h/k))",
			wantCalls: []string{"last(/h/k)"},
			wantPos:   []int{4},
		},
		{
			name:      "string literal skipped",
			expr:      `"last(/h/k)"=last(/h/k2)`,
			wantCalls: []string{"last(/h/k2)"},
			wantPos:   []int{13},
		},
		{
			name:      "identifier suffix is not a call",
			expr:      "Xlast(/h/k)+my_avg(/h/k)",
			wantCalls: nil,
		},
		{
			name:      "no calls",
			expr:      "1+2",
			wantCalls: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := newScanner(t, parser.Options{}).Scan(tt.expr)

			var got []string
			var pos []int
			for _, c := range calls {
				got = append(got, c.Match)
				pos = append(pos, c.Pos)
			}
			assert.Equal(t, tt.wantCalls, got)
			if tt.wantPos != nil {
				assert.Equal(t, tt.wantPos, pos)
			}
		})
	}
}

func TestScanOutcome(t *testing.T) {
	calls := newScanner(t, parser.Options{}).Scan("last(/h/a)+last(/h/b)")
	require.Len(t, calls, 2)

	assert.Equal(t, parser.SuccessContinuation, calls[0].Outcome)
	assert.Equal(t, parser.Success, calls[1].Outcome)
}

func TestScanAll(t *testing.T) {
	s := newScanner(t, parser.Options{UserMacros: true})

	exprs := make([]string, 20)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("count(/h/k%d,5m,,{$T%d})>%d", i, i, i)
	}

	results, err := s.ScanAll(context.Background(), exprs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(exprs))

	for i, calls := range results {
		require.Len(t, calls, 1, exprs[i])
		v, ok := calls[0].Param(3)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("{$T%d}", i), v)
	}
}

func TestScanAllCanceled(t *testing.T) {
	s := newScanner(t, parser.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScanAll(ctx, []string{"last(/h/k)"}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_LongExpressionAllocatesLinearly(t *testing.T) {
	s := New(parser.NewFunctionParser(parser.Options{}), nil)
	allocated := func(expr string) uint64 {
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)
		calls := s.Scan(expr)
		runtime.ReadMemStats(&after)
		require.Len(t, calls, strings.Count(expr, "last("))
		return after.TotalAlloc - before.TotalAlloc
	}

	small := strings.Repeat("last(/h/k)+", 500) + "0"
	large := strings.Repeat("last(/h/k)+", 2000) + "0"
	smallBytes, largeBytes := allocated(small), allocated(large)

	assert.Less(t, largeBytes, uint64(200*len(large)), "allocations bounded by expression size")
	assert.Less(t, largeBytes, 8*smallBytes, "four times the calls must not cost sixteen times the allocations")
}
