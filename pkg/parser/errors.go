package parser

import (
	"errors"
	"fmt"
)

// ErrNoMatch is wrapped by every parse failure.
var ErrNoMatch = errors.New("no function call")

// ParseError represents a parse failure with the offset where it was detected.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// Unwrap lets errors.Is(err, ErrNoMatch) hold for every ParseError.
func (e *ParseError) Unwrap() error {
	return ErrNoMatch
}

func newError(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Common error messages
const (
	ErrExpectedName      = "expected lowercase function name followed by '('"
	ErrInvalidQuery      = "invalid item query"
	ErrInvalidPeriod     = "invalid period"
	ErrInvalidParam      = "invalid parameter %d"
	ErrUnexpectedChar    = "unexpected character %q, expected ',' or ')'"
	ErrUnterminatedQuote = "unterminated quoted parameter"
	ErrUnexpectedEOF     = "unexpected end of input"
)

// OutcomeOf classifies the return values of Parse.
func OutcomeOf(res *Result, err error) Outcome {
	if err != nil || res == nil {
		return Fail
	}
	return res.Outcome
}
