package format

import (
	"sort"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
)

// Highlight renders source with every call in calls styled. Calls must come
// from parsing source; overlapping calls are skipped.
func Highlight(source string, calls []*parser.Result, styles Styles) string {
	sorted := make([]*parser.Result, 0, len(calls))
	for _, res := range calls {
		if res != nil {
			sorted = append(sorted, res)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	p := newPrinter(source, styles)
	for _, res := range sorted {
		if res.Pos < p.pos || res.End() > len(source) {
			continue
		}
		p.call(res)
	}
	p.copyTo(len(source))
	return p.String()
}

// Rebuild reassembles a call from its name and raw parameter list. The
// result always equals res.Match.
func Rebuild(res *parser.Result) string {
	return res.Function + res.Params.Raw
}
