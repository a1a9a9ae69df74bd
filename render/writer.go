package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"

	"stylesnoop/common"
	"stylesnoop/config"
)

// Writer outputs rendered document in particular format.
type Writer interface {
	Write(w io.Writer, doc *Document) error
}

type writerOptions struct {
	profile *termenv.Profile
}

type WriterOption func(*writerOptions)

// WithColorProfile forces terminal color profile instead of detecting it
// from the destination, used when colored output is explicitly requested
// for a file or a pipe.
func WithColorProfile(p termenv.Profile) WriterOption {
	return func(o *writerOptions) {
		o.profile = &p
	}
}

// NewWriter returns writer for requested format. Theme is only used by
// formats which carry colors.
func NewWriter(format common.OutputFmt, theme *config.ThemeConfig, opts ...WriterOption) (Writer, error) {
	var o writerOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case common.OutputFmtPlain:
		return plainWriter{}, nil
	case common.OutputFmtTokens:
		return tokensWriter{}, nil
	case common.OutputFmtAnsi:
		if theme == nil {
			return nil, fmt.Errorf("format %s requires theme", format)
		}
		return &ansiWriter{theme: theme, profile: o.profile}, nil
	case common.OutputFmtHtml:
		if theme == nil {
			return nil, fmt.Errorf("format %s requires theme", format)
		}
		return &htmlWriter{theme: theme}, nil
	}
	return nil, fmt.Errorf("unsupported output format %s", format)
}

// colors maps token categories to theme colors.
func colors(theme *config.ThemeConfig) map[Category]string {
	return map[Category]string{
		CategoryBracket:       theme.Bracket,
		CategoryElementName:   theme.Element,
		CategoryAttributeName: theme.Attribute,
		CategoryQuote:         theme.Quote,
		CategoryText:          theme.Text,
	}
}

type plainWriter struct{}

func (plainWriter) Write(w io.Writer, doc *Document) error {
	return writeText(w, doc.String())
}

// tokensWriter dumps every token on its own line, empty line marks line
// break. Used for troubleshooting and tests.
type tokensWriter struct{}

func (tokensWriter) Write(w io.Writer, doc *Document) error {
	if !doc.Found {
		return writeText(w, doc.Plain)
	}

	bw := bufio.NewWriter(w)
	for _, l := range doc.Lines {
		for _, t := range l {
			fmt.Fprintf(bw, "%s\t%s\n", t.Category, strconv.Quote(t.Text))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// writeText makes sure output ends with line break.
func writeText(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	if len(text) > 0 && text[len(text)-1] == '\n' {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
