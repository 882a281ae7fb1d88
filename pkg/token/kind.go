// Package token defines the span and parameter kind types shared by the
// function parser, the sub-parsers and the formatter.
package token

import "fmt"

// ParamKind identifies the variant of a parsed function parameter.
type ParamKind int

const (
	// Unquoted covers numbers, macros and the empty placeholder left by an
	// omitted parameter.
	Unquoted ParamKind = iota + 1
	// Quoted is a double-quoted literal; its text keeps both quotes.
	Quoted
	// Query is an item query, always the first parameter.
	Query
	// Period is a time period or sample count, only ever the second parameter.
	Period
)

// String returns a human-readable representation of the kind.
func (k ParamKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// MarshalText lets kinds render by name in JSON and YAML output.
func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var kindNames = map[ParamKind]string{
	Unquoted: "unquoted",
	Quoted:   "quoted",
	Query:    "query",
	Period:   "period",
}
