package token

// Span is a byte range in the source string handed to the parser.
// Pos is always relative to the start of that string, never to the match.
type Span struct {
	Pos    int `json:"pos" yaml:"pos"`       // 0-based byte offset
	Length int `json:"length" yaml:"length"` // length in bytes
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Pos + s.Length
}

// IsEmpty reports whether the span covers no bytes (an omitted parameter).
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// IsValid returns true if the span lies within a source of the given size.
func (s Span) IsValid(size int) bool {
	return s.Pos >= 0 && s.Length >= 0 && s.End() <= size
}

// Text returns the slice of source covered by the span, or "" if the span
// does not fit the source.
func (s Span) Text(source string) string {
	if !s.IsValid(len(source)) {
		return ""
	}
	return source[s.Pos:s.End()]
}
