// Package common keeps enums shared between configuration and processing
// code so config does not have to import rendering packages.
package common

//go:generate go tool go-enum --marshal --names --mustparse

// Specification of requested output type.
// ENUM(ansi, plain, html, tokens)
type OutputFmt int

// Ext returns file extension used when rendered document is exported.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtAnsi, OutputFmtPlain:
		return ".txt"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtTokens:
		return ".tokens"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Colorized reports whether output of this type carries terminal escape sequences.
func (o OutputFmt) Colorized() bool {
	return o == OutputFmtAnsi
}
