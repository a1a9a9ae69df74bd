// Package render turns normalized markup into colorized, re-indented
// document and writes it out in one of supported formats.
package render

import "strings"

// Token is a run of text of a single category.
type Token struct {
	Category Category
	Text     string
}

// Line is sequence of tokens followed by line break.
type Line []Token

func (l Line) String() string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Document is result of rendering. When nothing was found it holds only
// Plain text (placeholder or diagnostic) and no tokens.
type Document struct {
	// Name is used as title by formats which have one.
	Name  string
	Found bool
	Plain string
	Lines []Line
}

// Tokens returns all tokens of the document in order.
func (d *Document) Tokens() []Token {
	var out []Token
	for _, l := range d.Lines {
		out = append(out, l...)
	}
	return out
}

// String returns document text without any coloring.
func (d *Document) String() string {
	if !d.Found {
		return d.Plain
	}
	var sb strings.Builder
	for _, l := range d.Lines {
		for _, t := range l {
			sb.WriteString(t.Text)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
