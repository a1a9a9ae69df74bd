package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"

	"stylesnoop/markup"
	"stylesnoop/style"
)

const indentWidth = 4

// Render produces colorized document out of markup. When found is false
// markup is placeholder or diagnostic text and is kept as is.
func Render(text string, found bool) (*Document, error) {
	if !found {
		return &Document{Plain: text}, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("unable to parse markup: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("unable to parse markup: no root element")
	}

	b := &builder{doc: &Document{Found: true}}
	b.walk(root)
	return b.doc, nil
}

// frame is a pending step of the walk: either element to open or element to
// close.
type frame struct {
	el      *etree.Element
	closing bool
	// trailing text of element, emitted before its closing tag
	text string
}

type builder struct {
	doc    *Document
	line   Line
	indent int
}

func (b *builder) add(c Category, text string) {
	if text == "" {
		return
	}
	b.line = append(b.line, Token{Category: c, Text: text})
}

func (b *builder) lineBreak() {
	b.doc.Lines = append(b.doc.Lines, b.line)
	b.line = nil
}

func (b *builder) spaces(n int) {
	b.add(CategoryText, strings.Repeat(" ", n))
}

// walk visits tree with explicit stack, state is indent depth.
func (b *builder) walk(root *etree.Element) {
	stack := []frame{{el: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.closing {
			b.closeTag(f.el, f.text)
			continue
		}

		content, text := children(f.el)
		if len(content) == 0 && text == "" {
			b.openTag(f.el, true)
			continue
		}
		b.openTag(f.el, false)

		stack = append(stack, frame{el: f.el, closing: true, text: text})
		for i := len(content) - 1; i >= 0; i-- {
			if s, ok := content[i].(string); ok {
				// text in between child elements
				stack = append(stack, frame{text: s, closing: true})
				continue
			}
			stack = append(stack, frame{el: content[i].(*etree.Element)})
		}
	}
}

// children returns child elements and text runs except the trailing text,
// which is returned separately. Formatting whitespace is dropped.
func children(el *etree.Element) ([]any, string) {
	var (
		content []any
		text    strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(text.String()); s != "" {
			content = append(content, s)
		}
		text.Reset()
	}
	for _, t := range el.Child {
		switch t := t.(type) {
		case *etree.CharData:
			text.WriteString(t.Data)
		case *etree.Element:
			flush()
			content = append(content, t)
		}
	}
	return content, strings.TrimSpace(text.String())
}

func (b *builder) openTag(el *etree.Element, empty bool) {
	name := el.FullTag()

	b.spaces(b.indent * indentWidth)
	b.add(CategoryBracket, "<")
	b.add(CategoryElementName, name)

	// continuation lines are aligned under first attribute
	align := b.indent*indentWidth + utf8.RuneCountInString(name) + 1
	for i, a := range el.Attr {
		key := a.FullKey()
		b.add(CategoryAttributeName, " "+key)
		b.add(CategoryBracket, "=")
		b.add(CategoryQuote, `"`)
		b.add(CategoryText, attributeValue(key, a.Value))
		b.add(CategoryQuote, `"`)
		if i < len(el.Attr)-1 {
			b.lineBreak()
			b.spaces(align)
		}
	}

	if empty {
		b.add(CategoryBracket, " />")
		b.lineBreak()
		return
	}
	b.add(CategoryBracket, ">")
	b.lineBreak()
	b.indent++
}

func (b *builder) closeTag(el *etree.Element, text string) {
	if el == nil {
		// loose text between child elements
		b.spaces(b.indent * indentWidth)
		b.add(CategoryText, text)
		b.lineBreak()
		return
	}

	b.indent--
	b.spaces(b.indent * indentWidth)
	if text != "" {
		if el.FullTag() == "Thickness" {
			text = markup.SimplifyThickness(text)
		}
		b.add(CategoryText, text)
	}
	b.add(CategoryBracket, "</")
	b.add(CategoryElementName, el.FullTag())
	b.add(CategoryBracket, ">")
	b.lineBreak()
}

// attributeValue applies render time rewrites.
func attributeValue(name, value string) string {
	switch name {
	case "TargetType":
		return style.TypeKey(value).String()
	case "Margin", "Padding":
		return markup.SimplifyThickness(value)
	}
	return value
}
