package matcher

import "github.com/viant/parsly"

// UserMacroParser matches user macros: {$NAME}, {$NAME:context} and
// {$NAME:"quoted context"}.
type UserMacroParser struct {
	*scanner
}

// NewUserMacroParser creates a user macro parser.
func NewUserMacroParser() *UserMacroParser {
	return &UserMacroParser{scanner: newScanner(userMacroToken, "user macro", scanUserMacro)}
}

func scanUserMacro(cursor *parsly.Cursor) (any, bool) {
	if !accept(cursor, userMacroOpenMatcher) || !accept(cursor, macroNameMatcher) {
		return nil, false
	}
	if accept(cursor, closeBraceMatcher) {
		return nil, true
	}
	if !accept(cursor, colonMatcher) {
		return nil, false
	}

	skipSpaces(cursor)
	if peek(cursor, quoteMarkMatcher) {
		if !accept(cursor, quotedMatcher) {
			return nil, false
		}
		skipSpaces(cursor)
		return nil, accept(cursor, closeBraceMatcher)
	}
	return nil, accept(cursor, macroContextMatcher)
}

// LLDMacroParser matches low-level discovery macros such as {#IFNAME}.
type LLDMacroParser struct {
	*scanner
}

// NewLLDMacroParser creates an LLD macro parser.
func NewLLDMacroParser() *LLDMacroParser {
	return &LLDMacroParser{scanner: newScanner(lldMacroToken, "lld macro", scanLLDMacro)}
}

func scanLLDMacro(cursor *parsly.Cursor) (any, bool) {
	ok := accept(cursor, lldMacroOpenMatcher) &&
		accept(cursor, macroNameMatcher) &&
		accept(cursor, closeBraceMatcher)
	return nil, ok
}

// LLDMacroFunctionParser matches LLD macros with a function applied, e.g.
// {{#IFNAME}.regsub("(.*)_", \1)}.
type LLDMacroFunctionParser struct {
	*scanner
}

// NewLLDMacroFunctionParser creates an LLD macro function parser.
func NewLLDMacroFunctionParser() *LLDMacroFunctionParser {
	return &LLDMacroFunctionParser{scanner: newScanner(lldMacroFunctionToken, "lld macro function", scanLLDMacroFunction)}
}

func scanLLDMacroFunction(cursor *parsly.Cursor) (any, bool) {
	if !accept(cursor, openBraceMatcher) {
		return nil, false
	}
	if _, ok := scanLLDMacro(cursor); !ok {
		return nil, false
	}
	if !accept(cursor, dotMatcher) || !accept(cursor, funcNameMatcher) || !peek(cursor, openParenMatcher) {
		return nil, false
	}
	if !scanMacroFunctionParams(cursor) {
		return nil, false
	}
	return nil, accept(cursor, closeBraceMatcher)
}

// scanMacroFunctionParams matches a parenthesized list of quoted or unquoted
// parameters starting at '('.
func scanMacroFunctionParams(cursor *parsly.Cursor) bool {
	accept(cursor, openParenMatcher)
	for {
		skipSpaces(cursor)
		if !cursor.HasMore() {
			return false
		}
		if peek(cursor, quoteMarkMatcher) {
			if !accept(cursor, quotedMatcher) {
				return false
			}
			skipSpaces(cursor)
		} else {
			accept(cursor, funcParamMatcher)
		}

		switch {
		case accept(cursor, commaMatcher):
		case accept(cursor, closeParenMatcher):
			return true
		default:
			return false
		}
	}
}
