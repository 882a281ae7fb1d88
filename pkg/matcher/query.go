package matcher

import "github.com/viant/parsly"

// HostMacro may stand in for the host part of an item query.
const HostMacro = "{HOST.HOST}"

// Query is the result of a matched item query such as /host/key[p1,p2]?[tag="x"].
type Query struct {
	Host   string `json:"host" yaml:"host"`
	Key    string `json:"key" yaml:"key"`
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"` // content of ?[...], brackets excluded
}

// QueryParser matches item queries. The result value is a *Query.
type QueryParser struct {
	*scanner
}

// NewQueryParser creates an item query parser.
func NewQueryParser() *QueryParser {
	return &QueryParser{scanner: newScanner(queryToken, "item query", scanQuery)}
}

func scanQuery(cursor *parsly.Cursor) (any, bool) {
	if !accept(cursor, slashMatcher) {
		return nil, false
	}

	start := cursor.Pos
	if !scanHost(cursor) {
		return nil, false
	}
	query := &Query{Host: text(cursor, start)}
	if !accept(cursor, slashMatcher) {
		return nil, false
	}

	start = cursor.Pos
	if !scanKey(cursor) {
		return nil, false
	}
	query.Key = text(cursor, start)

	if peek(cursor, filterStartMatcher) {
		accept(cursor, questionMatcher)
		start = cursor.Pos
		if !accept(cursor, filterMatcher) {
			return nil, false
		}
		query.Filter = parsly.AsString(cursor.Input[start+1 : cursor.Pos-1])
	}
	return query, true
}

// scanHost matches the host part, which may be empty. A host name must not
// end with a space.
func scanHost(cursor *parsly.Cursor) bool {
	if accept(cursor, wildcardMatcher) || accept(cursor, hostMacroMatcher) {
		return true
	}
	start := cursor.Pos
	accept(cursor, hostNameMatcher)
	return cursor.Pos == start || cursor.Input[cursor.Pos-1] != ' '
}

func scanKey(cursor *parsly.Cursor) bool {
	if accept(cursor, wildcardMatcher) {
		return true
	}
	if !accept(cursor, keyNameMatcher) {
		return false
	}
	if peek(cursor, openBracketMatcher) {
		return scanKeyParams(cursor, 0)
	}
	return true
}

// scanKeyParams matches a bracketed item key parameter list starting at '['.
// One level of nested arrays is allowed.
func scanKeyParams(cursor *parsly.Cursor, level int) bool {
	accept(cursor, openBracketMatcher)
	for {
		skipSpaces(cursor)
		if !cursor.HasMore() {
			return false
		}
		switch {
		case peek(cursor, quoteMarkMatcher):
			if !accept(cursor, quotedMatcher) {
				return false
			}
		case peek(cursor, openBracketMatcher):
			if level > 0 || !scanKeyParams(cursor, level+1) {
				return false
			}
		default:
			accept(cursor, keyParamMatcher)
		}

		skipSpaces(cursor)
		switch {
		case accept(cursor, commaMatcher):
		case accept(cursor, closeBracketMatcher):
			return true
		default:
			return false
		}
	}
}
