package markup

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"stylesnoop/style"
)

// Normalize parses canonical markup, rewrites it into its shorthand form and
// returns re-indented text. Passes are applied in fixed order, later ones
// depend on earlier. Elements of unexpected shape are left as they are,
// only markup which could not be parsed results in error.
func Normalize(text string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return "", fmt.Errorf("unable to parse markup: %w", err)
	}
	if doc.Root() == nil {
		return "", fmt.Errorf("unable to parse markup: no root element")
	}

	RemoveEmptyResources(doc)
	CollapseValueElements(doc)
	SimplifyAttributes(doc)

	stripIndent(&doc.Element)
	doc.Indent(2)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to write markup: %w", err)
	}
	return out, nil
}

// RemoveEmptyResources drops "N.Resources" property elements of element N
// when the only thing they hold is empty ResourceDictionary.
func RemoveEmptyResources(doc *etree.Document) {
	for _, el := range elements(doc) {
		for _, res := range propertyElements(el, "Resources") {
			children := res.ChildElements()
			if len(children) != 1 {
				continue
			}
			dict := children[0]
			if dict.Tag != "ResourceDictionary" || namespaceURI(dict) != style.PresentationNS {
				continue
			}
			if !isEmpty(dict) {
				continue
			}
			el.RemoveChild(res)
		}
	}
}

// CollapseValueElements replaces "N.Value" property elements holding single
// value element with Value attribute of N.
func CollapseValueElements(doc *etree.Document) {
	for _, el := range elements(doc) {
		for _, prop := range propertyElements(el, "Value") {
			children := prop.ChildElements()
			if len(children) != 1 {
				continue
			}
			if val, ok := collapsedValue(children[0]); ok {
				el.CreateAttr("Value", val)
				el.RemoveChild(prop)
			}
		}
	}
}

// collapsedValue returns attribute form of value element v, if there is one.
func collapsedValue(v *etree.Element) (string, bool) {
	ns := namespaceURI(v)

	switch {
	case ns == style.SystemNS || ns == style.SystemCoreNS:
		return innerText(v), true
	case ns == style.XamlNS && v.Tag == "Static":
		member := v.SelectAttr("Member")
		if member == nil {
			return "", false
		}
		return member.Value[strings.LastIndex(member.Value, ".")+1:], true
	case ns != style.PresentationNS:
		return "", false
	}

	switch v.Tag {
	case "SolidColorBrush":
		return SimplifyHexColor(innerText(v)), true
	case "DynamicResource", "StaticResource":
		return "{" + v.Tag + " " + v.SelectAttrValue("ResourceKey", "") + "}", true
	case "Thickness":
		return SimplifyThickness(innerText(v)), true
	}
	return "", false
}

// SimplifyAttributes rewrites values of well known color and thickness
// attributes into shorthand.
func SimplifyAttributes(doc *etree.Document) {
	for _, el := range elements(doc) {
		for i := range el.Attr {
			a := &el.Attr[i]
			if a.Space == "xmlns" {
				continue
			}
			switch {
			case colorAttributes[a.Key]:
				a.Value = SimplifyHexColor(a.Value)
			case thicknessAttributes[a.Key]:
				a.Value = SimplifyThickness(a.Value)
			}
		}
	}
}

// elements returns all elements of the document in document order. Passes
// modify the tree, so it is collected up front.
func elements(doc *etree.Document) []*etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	var out []*etree.Element
	stack := []*etree.Element{root}
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, el)

		children := el.ChildElements()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// propertyElements returns children of el named "{el}.{prop}" in
// presentation namespace.
func propertyElements(el *etree.Element, prop string) []*etree.Element {
	name := el.Tag + "." + prop
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == name && namespaceURI(c) == style.PresentationNS {
			out = append(out, c)
		}
	}
	return out
}

// namespaceURI resolves element prefix against namespace declarations in
// scope.
func namespaceURI(el *etree.Element) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if el.Space == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if el.Space != "" && a.Space == "xmlns" && a.Key == el.Space {
				return a.Value
			}
		}
	}
	return ""
}

// innerText concatenates all character data of the element and its
// descendants.
func innerText(el *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, t := range e.Child {
			switch t := t.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return sb.String()
}

// isEmpty reports whether element has no content besides formatting
// whitespace.
func isEmpty(el *etree.Element) bool {
	for _, t := range el.Child {
		switch t := t.(type) {
		case *etree.Comment, *etree.ProcInst:
			continue
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// stripIndent removes formatting whitespace left after elements were
// removed, so output indentation is always rebuilt from scratch.
func stripIndent(el *etree.Element) {
	for i := 0; i < len(el.Child); {
		switch t := el.Child[i].(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" && strings.ContainsRune(t.Data, '\n') {
				el.RemoveChildAt(i)
				continue
			}
		case *etree.Element:
			stripIndent(t)
		}
		i++
	}
}
