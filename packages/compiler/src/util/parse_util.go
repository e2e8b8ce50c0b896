package util

import (
	"fmt"
	"strings"
)

// ParseSourceFile is a component source (or its JSON form) that spans and
// errors point into
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseLocation is a position in a ParseSourceFile. Line and Col are zero
// based; an Offset of -1 means the position is unknown.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

func (p *ParseLocation) String() string {
	if p.Offset < 0 {
		return p.File.URL
	}
	return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
}

// LocationAt resolves a byte offset. Offsets past the end clamp to it.
func (f *ParseSourceFile) LocationAt(offset int) *ParseLocation {
	if offset < 0 {
		return &ParseLocation{File: f, Offset: -1, Line: -1, Col: -1}
	}
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	before := f.Content[:offset]
	loc := &ParseLocation{File: f, Offset: offset, Line: strings.Count(before, "\n"), Col: offset}
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		loc.Col = offset - nl - 1
	}
	return loc
}

// ParseSourceSpan is the half-open range [Start, End) of a file
type ParseSourceSpan struct {
	Start *ParseLocation
	End   *ParseLocation
}

// SpanOf builds a span covering [start, end) of the file
func (f *ParseSourceFile) SpanOf(start, end int) *ParseSourceSpan {
	return &ParseSourceSpan{Start: f.LocationAt(start), End: f.LocationAt(end)}
}

// String returns the source text the span covers
func (p *ParseSourceSpan) String() string {
	if p.Start.Offset < 0 || p.End.Offset < p.Start.Offset {
		return ""
	}
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseError reports a component that could not be read
type ParseError struct {
	Span *ParseSourceSpan
	Msg  string
	// RelatedError is the decoder error behind Msg, if any.
	RelatedError error
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg}
}

func (p *ParseError) Error() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	if line := p.sourceLine(); line != "" {
		return fmt.Sprintf("%s (%q): %s", p.Msg, line, p.Span.Start)
	}
	return fmt.Sprintf("%s: %s", p.Msg, p.Span.Start)
}

func (p *ParseError) Unwrap() error {
	return p.RelatedError
}

// sourceLine returns the line the error starts on, trimmed
func (p *ParseError) sourceLine() string {
	start := p.Span.Start
	if start.Offset < 0 || start.Line < 0 {
		return ""
	}
	lines := strings.Split(start.File.Content, "\n")
	if start.Line >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[start.Line])
}
