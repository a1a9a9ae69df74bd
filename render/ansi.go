package render

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"stylesnoop/config"
)

type ansiWriter struct {
	theme   *config.ThemeConfig
	profile *termenv.Profile
}

func (a *ansiWriter) Write(w io.Writer, doc *Document) error {
	if !doc.Found {
		return writeText(w, doc.Plain)
	}

	r := lipgloss.NewRenderer(w)
	if a.profile != nil {
		r.SetColorProfile(*a.profile)
	}

	styles := make(map[Category]lipgloss.Style)
	for c, color := range colors(a.theme) {
		styles[c] = r.NewStyle().Foreground(lipgloss.Color(color))
	}

	bw := bufio.NewWriter(w)
	for _, l := range doc.Lines {
		for _, t := range l {
			if t.Category == CategoryText && isBlank(t.Text) {
				// indentation
				bw.WriteString(t.Text)
				continue
			}
			bw.WriteString(styles[t.Category].Render(t.Text))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			return false
		}
	}
	return true
}
