package module

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"stylesnoop/style"
)

// basedOnRef is BasedOn pointing to another registered style, resolved when
// all manifests of the module (and its references) are known.
type basedOnRef struct {
	style *style.Style
	key   any
	where string
}

// readManifest parses a single module manifest into m. Returned references
// have to be resolved by the caller.
func (m *Module) readManifest(r io.Reader, name string) ([]basedOnRef, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read manifest %s: %w", name, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Module" {
		return nil, fmt.Errorf("manifest %s: root element must be Module", name)
	}
	if m.Name == "" {
		m.Name = root.SelectAttrValue("Name", "")
	}

	p := &manifestParser{name: name}
	for _, el := range root.ChildElements() {
		var err error
		switch el.Tag {
		case "Types":
			err = p.types(m, el)
		case "Resources":
			err = p.resources(m, el)
		default:
			err = p.errorf(el, "unexpected element")
		}
		if err != nil {
			return nil, err
		}
	}
	return p.refs, nil
}

type manifestParser struct {
	name string
	refs []basedOnRef
}

func (p *manifestParser) errorf(el *etree.Element, format string, args ...any) error {
	return fmt.Errorf("manifest %s: %s: %s", p.name, el.GetPath(), fmt.Sprintf(format, args...))
}

func (p *manifestParser) types(m *Module, el *etree.Element) error {
	for _, te := range el.ChildElements() {
		if te.Tag != "Type" {
			return p.errorf(te, "unexpected element")
		}
		t, err := p.typ(te)
		if err != nil {
			return err
		}
		if err := m.AddType(t); err != nil {
			return p.errorf(te, "%v", err)
		}
	}
	return nil
}

func (p *manifestParser) typ(el *etree.Element) (*Type, error) {
	t := &Type{
		Name:  el.SelectAttrValue("Name", ""),
		Base:  el.SelectAttrValue("Base", ""),
		Fault: el.SelectAttrValue("Fault", ""),
	}
	if t.Name == "" {
		return nil, p.errorf(el, "type name is required")
	}

	var err error
	if t.Abstract, err = p.boolAttr(el, "Abstract"); err != nil {
		return nil, err
	}
	if t.Generic, err = p.boolAttr(el, "Generic"); err != nil {
		return nil, err
	}

	switch v := el.SelectAttrValue("Constructor", "public"); v {
	case "public":
		t.Constructor = Public
	case "nonpublic":
		t.Constructor = NonPublic
	case "none":
		t.Constructor = NoConstructor
	default:
		return nil, p.errorf(el, "unknown constructor visibility %q", v)
	}

	if k := el.SelectAttrValue("DefaultStyleKey", ""); k != "" {
		t.DefaultStyleKey = style.TypeKey(k)
	}

	for _, se := range el.ChildElements() {
		if se.Tag != "StaticMember" {
			return nil, p.errorf(se, "unexpected element")
		}
		sm := StaticMember{
			Name: se.SelectAttrValue("Name", ""),
			Type: se.SelectAttrValue("Type", ResourceKeyType),
		}
		if sm.Name == "" {
			return nil, p.errorf(se, "static member name is required")
		}
		if sm.Type == ResourceKeyType {
			sm.Value = style.ResourceKey{Owner: t.Name, ID: se.SelectAttrValue("Key", sm.Name)}
		} else {
			sm.Value = se.SelectAttrValue("Value", "")
		}
		t.Statics = append(t.Statics, sm)
	}
	return t, nil
}

func (p *manifestParser) boolAttr(el *etree.Element, name string) (bool, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return false, nil
	}
	v, err := strconv.ParseBool(a.Value)
	if err != nil {
		return false, p.errorf(el, "attribute %s: %v", name, err)
	}
	return v, nil
}

// styleKey reads key of registered style: type key or owner qualified
// resource key.
func (p *manifestParser) styleKey(el *etree.Element) (any, error) {
	owner, key := el.SelectAttrValue("Owner", ""), el.SelectAttrValue("Key", "")
	typ := el.SelectAttrValue("Type", "")
	switch {
	case owner != "" && key != "":
		return style.ResourceKey{Owner: owner, ID: key}, nil
	case typ != "":
		return style.TypeKey(typ), nil
	}
	return nil, p.errorf(el, "either Type or Owner and Key are required")
}

func (p *manifestParser) resources(m *Module, el *etree.Element) error {
	for _, se := range el.ChildElements() {
		if se.Tag != "Style" {
			return p.errorf(se, "unexpected element")
		}
		key, err := p.styleKey(se)
		if err != nil {
			return err
		}
		s, err := p.style(se)
		if err != nil {
			return err
		}
		m.AddStyle(key, s)
	}
	return nil
}

func (p *manifestParser) style(el *etree.Element) (*style.Style, error) {
	s := &style.Style{TargetType: el.SelectAttrValue("TargetType", "")}

	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "BasedOn":
			if err := p.basedOn(s, c); err != nil {
				return nil, err
			}
		case "Setter":
			st, err := p.setter(c)
			if err != nil {
				return nil, err
			}
			s.Setters = append(s.Setters, st)
		case "Trigger":
			tr, err := p.trigger(c)
			if err != nil {
				return nil, err
			}
			s.Triggers = append(s.Triggers, tr)
		case "Resources":
			rd, err := p.dictionary(c)
			if err != nil {
				return nil, err
			}
			s.Resources = rd
		default:
			return nil, p.errorf(c, "unexpected element")
		}
	}
	return s, nil
}

func (p *manifestParser) basedOn(s *style.Style, el *etree.Element) error {
	if children := el.ChildElements(); len(children) > 0 {
		if len(children) != 1 {
			return p.errorf(el, "single value expected")
		}
		v, err := p.value(children[0])
		if err != nil {
			return err
		}
		s.BasedOn = v
		return nil
	}
	key, err := p.styleKey(el)
	if err != nil {
		return err
	}
	p.refs = append(p.refs, basedOnRef{style: s, key: key, where: p.name + ": " + el.GetPath()})
	return nil
}

func (p *manifestParser) setter(el *etree.Element) (style.Setter, error) {
	st := style.Setter{
		Property:   el.SelectAttrValue("Property", ""),
		TargetName: el.SelectAttrValue("TargetName", ""),
	}
	if st.Property == "" {
		return st, p.errorf(el, "setter property is required")
	}
	v, err := p.propertyValue(el)
	if err != nil {
		return st, err
	}
	st.Value = v
	return st, nil
}

func (p *manifestParser) trigger(el *etree.Element) (style.Trigger, error) {
	tr := style.Trigger{Property: el.SelectAttrValue("Property", "")}
	if tr.Property == "" {
		return tr, p.errorf(el, "trigger property is required")
	}
	if a := el.SelectAttr("Value"); a != nil {
		tr.Value = style.Inline(a.Value)
	}
	for _, c := range el.ChildElements() {
		if c.Tag == "Setter" {
			st, err := p.setter(c)
			if err != nil {
				return tr, err
			}
			tr.Setters = append(tr.Setters, st)
			continue
		}
		if tr.Value != nil {
			return tr, p.errorf(c, "trigger value is already set")
		}
		v, err := p.value(c)
		if err != nil {
			return tr, err
		}
		tr.Value = v
	}
	if tr.Value == nil {
		return tr, p.errorf(el, "trigger value is required")
	}
	return tr, nil
}

// propertyValue reads value either from Value attribute or from single
// value element.
func (p *manifestParser) propertyValue(el *etree.Element) (style.Value, error) {
	children := el.ChildElements()
	if a := el.SelectAttr("Value"); a != nil {
		if len(children) != 0 {
			return nil, p.errorf(el, "both Value attribute and value element are present")
		}
		return style.Inline(a.Value), nil
	}
	if len(children) != 1 {
		return nil, p.errorf(el, "single value expected, got %d", len(children))
	}
	return p.value(children[0])
}

func (p *manifestParser) dictionary(el *etree.Element) (*style.ResourceDictionary, error) {
	rd := &style.ResourceDictionary{}
	for _, c := range el.ChildElements() {
		key := c.SelectAttrValue("Key", "")
		if key == "" {
			return nil, p.errorf(c, "resource key is required")
		}
		v, err := p.value(c)
		if err != nil {
			return nil, err
		}
		rd.Entries = append(rd.Entries, style.Resource{Key: key, Value: v})
	}
	return rd, nil
}

// value reads single value element.
func (p *manifestParser) value(el *etree.Element) (style.Value, error) {
	switch el.Tag {
	case "Brush":
		c := el.SelectAttrValue("Color", "")
		if c == "" {
			return nil, p.errorf(el, "brush color is required")
		}
		return style.Brush{Color: c}, nil
	case "Thickness":
		t, err := style.ParseThickness(el.SelectAttrValue("Value", ""))
		if err != nil {
			return nil, p.errorf(el, "%v", err)
		}
		return t, nil
	case "Primitive":
		pv := style.Primitive{
			Type: el.SelectAttrValue("Type", ""),
			Text: el.SelectAttrValue("Value", ""),
			Core: el.SelectAttrValue("Runtime", "") == "core",
		}
		if pv.Type == "" {
			return nil, p.errorf(el, "primitive type is required")
		}
		return pv, nil
	case "DynamicResource":
		return style.DynamicResource{Key: el.SelectAttrValue("Key", "")}, nil
	case "StaticResource":
		return style.StaticResource{Key: el.SelectAttrValue("Key", "")}, nil
	case "Static":
		return style.StaticMember{Member: el.SelectAttrValue("Member", "")}, nil
	case "Text":
		return style.Inline(el.Text()), nil
	case "Object":
		return p.object(el)
	case "Style":
		return p.style(el)
	}
	return nil, p.errorf(el, "unknown value element")
}

func (p *manifestParser) object(el *etree.Element) (*style.Object, error) {
	obj := &style.Object{Type: el.SelectAttrValue("Type", "")}
	if obj.Type == "" {
		return nil, p.errorf(el, "object type is required")
	}
	for _, c := range el.ChildElements() {
		if c.Tag != "Property" {
			v, err := p.value(c)
			if err != nil {
				return nil, err
			}
			obj.Content = append(obj.Content, v)
			continue
		}
		name := c.SelectAttrValue("Name", "")
		if name == "" || strings.Contains(name, ".") {
			return nil, p.errorf(c, "invalid property name %q", name)
		}
		v, err := p.propertyValue(c)
		if err != nil {
			return nil, err
		}
		obj.Props = append(obj.Props, style.Property{Name: name, Value: v})
	}
	return obj, nil
}
