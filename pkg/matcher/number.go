package matcher

import "github.com/viant/parsly"

// NumberParser matches numeric literals with an optional leading minus and an
// optional magnitude or time suffix, e.g. -1.5e3, 10K, 30s.
type NumberParser struct {
	*scanner
}

// NewNumberParser creates a number parser.
func NewNumberParser() *NumberParser {
	return &NumberParser{scanner: newScanner(numberToken, "number", scanNumber)}
}

// scanNumber accepts 1, 1., .5 and 1.5; an exponent needs at least one
// digit, otherwise the number ends before the 'e'.
func scanNumber(cursor *parsly.Cursor) (any, bool) {
	accept(cursor, minusMatcher)
	intDigits := accept(cursor, digitsMatcher)
	fracDigits := false
	if accept(cursor, dotMatcher) {
		fracDigits = accept(cursor, digitsMatcher)
	}
	if !intDigits && !fracDigits {
		return nil, false
	}

	mark := cursor.Pos
	if accept(cursor, exponentMatcher) {
		accept(cursor, signMatcher)
		if !accept(cursor, digitsMatcher) {
			cursor.Pos = mark
		}
	}
	accept(cursor, numberSuffixMatcher)
	return nil, true
}
