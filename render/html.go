package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"stylesnoop/config"
	"stylesnoop/misc"
)

// htmlWriter produces standalone page with document in preformatted block,
// every token is a span classed by its category.
type htmlWriter struct {
	theme *config.ThemeConfig
}

func (h *htmlWriter) Write(w io.Writer, doc *Document) error {
	page := etree.NewDocument()
	page.CreateDirective("DOCTYPE html")

	html := page.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	meta := head.CreateElement("meta")
	meta.CreateAttr("name", "generator")
	meta.CreateAttr("content", misc.GetAppName()+" "+misc.GetVersion())

	title := doc.Name
	if title == "" {
		title = misc.GetAppName()
	}
	head.CreateElement("title").SetText(title)
	head.CreateElement("style").SetText(h.css())

	pre := html.CreateElement("body").CreateElement("pre")
	if !doc.Found {
		pre.CreateAttr("class", "placeholder")
		pre.SetText(doc.Plain)
	} else {
		for _, l := range doc.Lines {
			for _, t := range l {
				span := pre.CreateElement("span")
				span.CreateAttr("class", className(t.Category))
				span.SetText(t.Text)
			}
			pre.CreateText("\n")
		}
	}

	if _, err := page.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write html: %w", err)
	}
	return nil
}

func (h *htmlWriter) css() string {
	var sb strings.Builder
	for _, c := range []Category{CategoryBracket, CategoryElementName, CategoryAttributeName, CategoryQuote, CategoryText} {
		fmt.Fprintf(&sb, ".%s { color: %s; }\n", className(c), colors(h.theme)[c])
	}
	return sb.String()
}

func className(c Category) string {
	return strings.ToLower(c.String())
}
