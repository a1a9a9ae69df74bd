package markup

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"stylesnoop/style"
)

// Nesting deeper than this is treated as broken object graph.
const maxDepth = 64

var (
	errNilValue    = errors.New("nil value")
	errCycle       = errors.New("object graph contains reference cycle")
	errTooDeep     = errors.New("object graph is nested too deep")
	errUnsupported = errors.New("unsupported value")
)

// SerializeError describes failure to produce canonical markup for a style,
// Path points to the offending place in the object graph.
type SerializeError struct {
	Path string
	Err  error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("unable to serialize %s: %v", e.Path, e.Err)
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}

// Serialize produces canonical (verbose, schema faithful) indented markup of
// the style. Setters, triggers and resources are written in the order they
// appear in the object graph.
func Serialize(s *style.Style) (string, error) {
	doc, err := SerializeDocument(s)
	if err != nil {
		return "", err
	}
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", &SerializeError{Path: "Style", Err: err}
	}
	return out, nil
}

// SerializeDocument builds canonical markup tree of the style.
func SerializeDocument(s *style.Style) (*etree.Document, error) {
	if s == nil {
		return nil, &SerializeError{Path: "Style", Err: errNilValue}
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("Style")

	w := &serializer{seen: make(map[any]bool)}
	if err := w.style(root, s, "Style", 0); err != nil {
		return nil, err
	}
	return doc, nil
}

type serializer struct {
	// objects on the current walk path
	seen map[any]bool
}

func (w *serializer) enter(obj any, path string, depth int) error {
	if depth > maxDepth {
		return &SerializeError{Path: path, Err: errTooDeep}
	}
	if w.seen[obj] {
		return &SerializeError{Path: path, Err: errCycle}
	}
	w.seen[obj] = true
	return nil
}

func (w *serializer) leave(obj any) {
	delete(w.seen, obj)
}

// style fills el (already named Style) with attributes and content of s.
func (w *serializer) style(el *etree.Element, s *style.Style, path string, depth int) error {
	if s == nil {
		return &SerializeError{Path: path, Err: errNilValue}
	}
	if err := w.enter(s, path, depth); err != nil {
		return err
	}
	defer w.leave(s)

	if s.TargetType != "" {
		el.CreateAttr("TargetType", s.TargetType)
	}
	if depth == 0 {
		el.CreateAttr("xmlns", style.PresentationNS)
		el.CreateAttr("xmlns:x", style.XamlNS)
	}

	if s.BasedOn != nil {
		prop := el.CreateElement("Style.BasedOn")
		if err := w.element(prop, s.BasedOn, path+".BasedOn", depth+1); err != nil {
			return err
		}
	}

	// canonical writer always emits resources, even when there are none
	res := el.CreateElement("Style.Resources")
	if err := w.dictionary(res, s.Resources, path+".Resources", depth+1); err != nil {
		return err
	}

	for i, st := range s.Setters {
		if err := w.setter(el, st, fmt.Sprintf("%s.Setters[%d]", path, i), depth+1); err != nil {
			return err
		}
	}

	if len(s.Triggers) > 0 {
		triggers := el.CreateElement("Style.Triggers")
		for i, tr := range s.Triggers {
			if err := w.trigger(triggers, tr, fmt.Sprintf("%s.Triggers[%d]", path, i), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *serializer) dictionary(parent *etree.Element, rd *style.ResourceDictionary, path string, depth int) error {
	dict := parent.CreateElement("ResourceDictionary")
	if rd == nil {
		return nil
	}
	for i, r := range rd.Entries {
		p := fmt.Sprintf("%s[%q]", path, r.Key)
		if r.Key == "" {
			return &SerializeError{Path: fmt.Sprintf("%s[%d]", path, i), Err: errors.New("resource without key")}
		}
		if err := w.element(dict, r.Value, p, depth+1); err != nil {
			return err
		}
		// element just created is the last child
		entries := dict.ChildElements()
		entries[len(entries)-1].CreateAttr("x:Key", r.Key)
	}
	return nil
}

func (w *serializer) setter(parent *etree.Element, st style.Setter, path string, depth int) error {
	el := parent.CreateElement("Setter")
	el.CreateAttr("Property", st.Property)
	if st.TargetName != "" {
		el.CreateAttr("TargetName", st.TargetName)
	}
	return w.propertyValue(el, "Setter.Value", st.Value, path, depth)
}

func (w *serializer) trigger(parent *etree.Element, tr style.Trigger, path string, depth int) error {
	el := parent.CreateElement("Trigger")
	el.CreateAttr("Property", tr.Property)
	if err := w.propertyValue(el, "Trigger.Value", tr.Value, path+".Value", depth); err != nil {
		return err
	}
	for i, st := range tr.Setters {
		if err := w.setter(el, st, fmt.Sprintf("%s.Setters[%d]", path, i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// propertyValue writes inline values as Value attribute and everything else
// as property element holding value element.
func (w *serializer) propertyValue(el *etree.Element, propElement string, v style.Value, path string, depth int) error {
	switch v := v.(type) {
	case nil:
		return &SerializeError{Path: path, Err: errNilValue}
	case style.Inline:
		el.CreateAttr("Value", string(v))
		return nil
	}
	prop := el.CreateElement(propElement)
	return w.element(prop, v, path, depth+1)
}

// element appends element representing v to parent.
func (w *serializer) element(parent *etree.Element, v style.Value, path string, depth int) error {
	switch v := v.(type) {
	case nil:
		return &SerializeError{Path: path, Err: errNilValue}
	case style.Inline:
		// outside of attribute context inline text is boxed string
		w.primitive(parent, style.Primitive{Type: "String", Text: string(v)})
	case style.Primitive:
		if v.Type == "" {
			return &SerializeError{Path: path, Err: fmt.Errorf("%w: primitive without type", errUnsupported)}
		}
		w.primitive(parent, v)
	case style.Brush:
		parent.CreateElement("SolidColorBrush").SetText(v.Color)
	case style.Thickness:
		parent.CreateElement("Thickness").SetText(v.String())
	case style.DynamicResource:
		parent.CreateElement("DynamicResource").CreateAttr("ResourceKey", v.Key)
	case style.StaticResource:
		parent.CreateElement("StaticResource").CreateAttr("ResourceKey", v.Key)
	case style.StaticMember:
		parent.CreateElement("x:Static").CreateAttr("Member", v.Member)
	case *style.Object:
		return w.object(parent, v, path, depth)
	case *style.Style:
		return w.style(parent.CreateElement("Style"), v, path, depth)
	default:
		return &SerializeError{Path: path, Err: fmt.Errorf("%w: %T", errUnsupported, v)}
	}
	return nil
}

func (w *serializer) primitive(parent *etree.Element, v style.Primitive) {
	ns := style.SystemNS
	if v.Core {
		ns = style.SystemCoreNS
	}
	el := parent.CreateElement("s:" + v.Type)
	el.CreateAttr("xmlns:s", ns)
	el.SetText(v.Text)
}

func (w *serializer) object(parent *etree.Element, obj *style.Object, path string, depth int) error {
	if obj == nil {
		return &SerializeError{Path: path, Err: errNilValue}
	}
	if obj.Type == "" {
		return &SerializeError{Path: path, Err: fmt.Errorf("%w: object without type", errUnsupported)}
	}
	if err := w.enter(obj, path, depth); err != nil {
		return err
	}
	defer w.leave(obj)

	el := parent.CreateElement(obj.Type)
	path = path + "." + obj.Type

	// attributes first, so property elements never precede them
	for _, p := range obj.Props {
		if s, ok := p.Value.(style.Inline); ok {
			el.CreateAttr(p.Name, string(s))
		}
	}
	for _, p := range obj.Props {
		if _, ok := p.Value.(style.Inline); ok {
			continue
		}
		prop := el.CreateElement(obj.Type + "." + p.Name)
		if err := w.element(prop, p.Value, path+"."+p.Name, depth+1); err != nil {
			return err
		}
	}
	for i, c := range obj.Content {
		if s, ok := c.(style.Inline); ok {
			el.CreateText(string(s))
			continue
		}
		if err := w.element(el, c, fmt.Sprintf("%s.Content[%d]", path, i), depth+1); err != nil {
			return err
		}
	}
	return nil
}
