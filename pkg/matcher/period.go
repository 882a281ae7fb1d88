package matcher

import "github.com/viant/parsly"

// Period is the result of a matched period such as 5m, #3 or 1h:now/d-1d.
type Period struct {
	SecNum    string `json:"sec_num" yaml:"sec_num"`
	TimeShift string `json:"time_shift,omitempty" yaml:"time_shift,omitempty"`
}

// PeriodParser matches the period parameter of history functions. The
// result value is a *Period.
type PeriodParser struct {
	*scanner
	macros *Chain
}

// NewPeriodParser creates a period parser. Enabled macros may stand in for
// either part of the period.
func NewPeriodParser(opts Options) *PeriodParser {
	p := &PeriodParser{macros: NewChain(macroParsers(opts)...)}
	p.scanner = newScanner(periodToken, "period", p.scan)
	return p
}

func (p *PeriodParser) scan(cursor *parsly.Cursor) (any, bool) {
	start := cursor.Pos
	if !p.scanSecNum(cursor) {
		return nil, false
	}
	period := &Period{SecNum: text(cursor, start)}

	if accept(cursor, colonMatcher) {
		start = cursor.Pos
		if !p.scanTimeShift(cursor) {
			return nil, false
		}
		period.TimeShift = text(cursor, start)
	}
	return period, true
}

func (p *PeriodParser) scanSecNum(cursor *parsly.Cursor) bool {
	if accept(cursor, hashMatcher) {
		return accept(cursor, digitsMatcher)
	}
	if p.scanMacro(cursor) {
		return true
	}
	return scanTimeUnit(cursor, timeUnitMatcher)
}

// scanTimeShift matches a legacy shift such as 1d, or now followed by any
// number of /unit truncations and +N/-N offsets.
func (p *PeriodParser) scanTimeShift(cursor *parsly.Cursor) bool {
	if p.scanMacro(cursor) {
		return true
	}
	if !accept(cursor, nowMatcher) {
		return scanTimeUnit(cursor, timeUnitMatcher)
	}
	for cursor.HasMore() {
		mark := cursor.Pos
		switch {
		case accept(cursor, slashMatcher):
			if !accept(cursor, truncUnitMatcher) {
				cursor.Pos = mark
				return true
			}
		case accept(cursor, signMatcher):
			if !scanTimeUnit(cursor, shiftUnitMatcher) {
				cursor.Pos = mark
				return true
			}
		default:
			return true
		}
	}
	return true
}

func (p *PeriodParser) scanMacro(cursor *parsly.Cursor) bool {
	_, _, ok := p.macros.Match(cursor)
	return ok
}

// scanTimeUnit matches digits followed by an optional unit.
func scanTimeUnit(cursor *parsly.Cursor, units *parsly.Token) bool {
	if !accept(cursor, digitsMatcher) {
		return false
	}
	accept(cursor, units)
	return true
}
