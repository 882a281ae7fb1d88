package matcher

import (
	"github.com/viant/parsly"
	pmatcher "github.com/viant/parsly/matcher"
)

const (
	queryToken = iota + 1
	periodToken
	numberToken
	userMacroToken
	lldMacroToken
	lldMacroFunctionToken

	spaceToken
	digitsToken
	quoteMarkToken
	quotedToken
	minusToken
	signToken
	dotToken
	exponentToken
	numberSuffixToken
	timeUnitToken
	shiftUnitToken
	truncUnitToken
	hashToken
	colonToken
	commaToken
	slashToken
	wildcardToken
	nowToken
	hostMacroToken
	hostNameToken
	keyNameToken
	keyParamToken
	openBracketToken
	closeBracketToken
	filterStartToken
	questionToken
	filterToken
	userMacroOpenToken
	lldMacroOpenToken
	macroNameToken
	macroContextToken
	openBraceToken
	closeBraceToken
	openParenToken
	closeParenToken
	funcNameToken
	funcParamToken
)

var spaceMatcher = parsly.NewToken(spaceToken, "Space", pmatcher.NewByte(' '))
var digitsMatcher = parsly.NewToken(digitsToken, "Digits", pmatcher.NewDigits())

// A quote preceded by a backslash never closes a quoted string.
var quoteMarkMatcher = parsly.NewToken(quoteMarkToken, "Quote", pmatcher.NewByte('"'))
var quotedMatcher = parsly.NewToken(quotedToken, "Quoted", pmatcher.NewBlock('"', '"', '\\'))

var minusMatcher = parsly.NewToken(minusToken, "Minus", pmatcher.NewByte('-'))
var signMatcher = parsly.NewToken(signToken, "Sign", pmatcher.NewCharset("+-"))
var dotMatcher = parsly.NewToken(dotToken, "Dot", pmatcher.NewByte('.'))
var exponentMatcher = parsly.NewToken(exponentToken, "Exponent", pmatcher.NewCharset("eE"))
var numberSuffixMatcher = parsly.NewToken(numberSuffixToken, "Number suffix", pmatcher.NewCharset("KMGTsmhdw"))

var timeUnitMatcher = parsly.NewToken(timeUnitToken, "Time unit", pmatcher.NewCharset("smhdw"))
var shiftUnitMatcher = parsly.NewToken(shiftUnitToken, "Shift unit", pmatcher.NewCharset("smhdwMy"))
var truncUnitMatcher = parsly.NewToken(truncUnitToken, "Truncation unit", pmatcher.NewCharset("mhdwMy"))
var hashMatcher = parsly.NewToken(hashToken, "Hash", pmatcher.NewByte('#'))
var colonMatcher = parsly.NewToken(colonToken, "Colon", pmatcher.NewByte(':'))
var commaMatcher = parsly.NewToken(commaToken, "Comma", pmatcher.NewByte(','))
var nowMatcher = parsly.NewToken(nowToken, "Now", pmatcher.NewFragment("now"))

var slashMatcher = parsly.NewToken(slashToken, "Slash", pmatcher.NewByte('/'))
var wildcardMatcher = parsly.NewToken(wildcardToken, "Wildcard", pmatcher.NewByte('*'))
var hostMacroMatcher = parsly.NewToken(hostMacroToken, "Host macro", pmatcher.NewFragment(HostMacro))
var hostNameMatcher = parsly.NewToken(hostNameToken, "Host name", newRun(isHostChar))
var keyNameMatcher = parsly.NewToken(keyNameToken, "Key name", newRun(isKeyChar))
var keyParamMatcher = parsly.NewToken(keyParamToken, "Key parameter", newRun(func(b byte) bool { return b != ',' && b != ']' }))
var openBracketMatcher = parsly.NewToken(openBracketToken, "[", pmatcher.NewByte('['))
var closeBracketMatcher = parsly.NewToken(closeBracketToken, "]", pmatcher.NewByte(']'))
var filterStartMatcher = parsly.NewToken(filterStartToken, "Filter start", pmatcher.NewFragment("?["))
var questionMatcher = parsly.NewToken(questionToken, "?", pmatcher.NewByte('?'))
var filterMatcher = parsly.NewToken(filterToken, "Filter", pmatcher.NewBlock('[', ']', '\\'))

var userMacroOpenMatcher = parsly.NewToken(userMacroOpenToken, "{$", pmatcher.NewFragment("{$"))
var lldMacroOpenMatcher = parsly.NewToken(lldMacroOpenToken, "{#", pmatcher.NewFragment("{#"))
var macroNameMatcher = parsly.NewToken(macroNameToken, "Macro name", newRun(isMacroChar))
var macroContextMatcher = parsly.NewToken(macroContextToken, "Macro context", pmatcher.NewTerminator('}', true))
var openBraceMatcher = parsly.NewToken(openBraceToken, "{", pmatcher.NewByte('{'))
var closeBraceMatcher = parsly.NewToken(closeBraceToken, "}", pmatcher.NewByte('}'))
var openParenMatcher = parsly.NewToken(openParenToken, "(", pmatcher.NewByte('('))
var closeParenMatcher = parsly.NewToken(closeParenToken, ")", pmatcher.NewByte(')'))
var funcNameMatcher = parsly.NewToken(funcNameToken, "Function name", newRun(isLower))
var funcParamMatcher = parsly.NewToken(funcParamToken, "Function parameter", newRun(func(b byte) bool { return b != ',' && b != ')' }))

// accept matches token at the cursor and reports whether it did. The cursor
// only moves on a match.
func accept(cursor *parsly.Cursor, token *parsly.Token) bool {
	return cursor.MatchOne(token).Code == token.Code
}

// peek reports whether token matches at the cursor without moving it.
func peek(cursor *parsly.Cursor, token *parsly.Token) bool {
	return cursor.HasMore() && token.Match(cursor) > 0
}

func skipSpaces(cursor *parsly.Cursor) {
	for accept(cursor, spaceMatcher) {
	}
}

// text returns the input consumed since start.
func text(cursor *parsly.Cursor, start int) string {
	return parsly.AsString(cursor.Input[start:cursor.Pos])
}

// run matches the longest run of bytes accepted by a byte class.
type run struct {
	accept func(b byte) bool
}

func newRun(accept func(b byte) bool) *run {
	return &run{accept: accept}
}

// Match implements parsly.Matcher.
func (r *run) Match(cursor *parsly.Cursor) (matched int) {
	for i := cursor.Pos; i < cursor.InputSize && r.accept(cursor.Input[i]); i++ {
		matched++
	}
	return matched
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// isMacroChar matches the characters allowed in user and LLD macro names.
func isMacroChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') || pmatcher.IsDigit(b) || b == '_' || b == '.'
}

func isKeyChar(b byte) bool {
	return pmatcher.IsLetter(b) || pmatcher.IsDigit(b) || b == '_' || b == '.' || b == '-'
}

func isHostChar(b byte) bool {
	return isKeyChar(b) || b == ' '
}
