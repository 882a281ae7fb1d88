package parser

import "strings"

// UnquoteParam strips the surrounding quotes of a quoted parameter and
// resolves \" escapes. No other escape sequence is recognized, so a
// backslash before the closing quote cannot be expressed.
func UnquoteParam(param string) string {
	if len(param) < 2 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(param) - 2)
	last := len(param) - 1
	for p := 1; p < last; p++ {
		if param[p] == '\\' && param[p+1] == '"' {
			continue
		}
		b.WriteByte(param[p])
	}
	return b.String()
}

// QuoteParam wraps s in quotes, escaping embedded quotes. It is the inverse
// of UnquoteParam for any s that does not end with a backslash.
func QuoteParam(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
