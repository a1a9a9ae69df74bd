// Package module describes component modules: sets of visual element types
// together with their resource dictionaries, as declared by XML manifests.
// Built-in framework module is always available, other modules reference it.
package module

import (
	"errors"
	"fmt"

	"stylesnoop/style"
)

// ResourceKeyType is value type of static members which expose named style
// keys.
const ResourceKeyType = "ResourceKey"

// Visibility of a type's parameterless constructor.
type Visibility int

const (
	NoConstructor Visibility = iota
	Public
	NonPublic
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case NonPublic:
		return "nonpublic"
	default:
		return "none"
	}
}

var errConstruct = errors.New("unable to construct")

// StaticMember is static field or property declared by a type.
type StaticMember struct {
	Name string
	// Type is name of value type.
	Type  string
	Value any
}

// Type describes visual element type.
type Type struct {
	Name        string
	Base        string
	Abstract    bool
	Generic     bool
	Constructor Visibility
	Statics     []StaticMember

	// DefaultStyleKey set by the type itself, nil means it is inherited.
	DefaultStyleKey any
	// Fault is returned by construction, simulates throwing constructors.
	Fault string

	module *Module
}

func (t *Type) String() string {
	return t.Name
}

// Module returns module which declares the type.
func (t *Type) Module() *Module {
	return t.module
}

// Element is constructed instance of a type.
type Element struct {
	Type            *Type
	DefaultStyleKey any
}

// New constructs instance of the type through its public parameterless
// constructor. Construction fails for abstract types, types without such
// constructor and types with broken inheritance chain.
func (t *Type) New() (*Element, error) {
	switch {
	case t.Abstract:
		return nil, fmt.Errorf("%w %s: type is abstract", errConstruct, t.Name)
	case t.Generic:
		return nil, fmt.Errorf("%w %s: type has generic parameters", errConstruct, t.Name)
	case t.Constructor != Public:
		return nil, fmt.Errorf("%w %s: no public parameterless constructor", errConstruct, t.Name)
	case t.Fault != "":
		return nil, fmt.Errorf("%w %s: %s", errConstruct, t.Name, t.Fault)
	}

	// default style key is inherited unless type sets its own
	var key any
	seen := make(map[*Type]bool)
	for cur := t; ; {
		if seen[cur] {
			return nil, fmt.Errorf("%w %s: circular inheritance", errConstruct, t.Name)
		}
		seen[cur] = true
		if key == nil {
			key = cur.DefaultStyleKey
		}
		if cur.Base == "" {
			break
		}
		base, ok := t.lookup(cur.Base)
		if !ok {
			return nil, fmt.Errorf("%w %s: unable to resolve base type %s", errConstruct, t.Name, cur.Base)
		}
		if base.Fault != "" {
			return nil, fmt.Errorf("%w %s: base %s: %s", errConstruct, t.Name, base.Name, base.Fault)
		}
		cur = base
	}
	return &Element{Type: t, DefaultStyleKey: key}, nil
}

func (t *Type) lookup(name string) (*Type, bool) {
	if t.module == nil {
		return nil, false
	}
	return t.module.Lookup(name)
}

// Entry is style registered in module resources under Key.
type Entry struct {
	Key   any
	Style *style.Style
}

// Module is set of types and resources. Types and resources of referenced
// modules are visible to lookups.
type Module struct {
	Name      string
	Path      string
	Types     []*Type
	Resources []Entry

	refs  []*Module
	index map[string]*Type
}

// New creates empty module which references refs.
func New(name string, refs ...*Module) *Module {
	return &Module{
		Name:  name,
		refs:  refs,
		index: make(map[string]*Type),
	}
}

// References returns modules this one depends on.
func (m *Module) References() []*Module {
	return m.refs
}

// AddType registers type with the module, type names are unique within
// module.
func (m *Module) AddType(t *Type) error {
	if t.Name == "" {
		return errors.New("type without name")
	}
	if _, exists := m.index[t.Name]; exists {
		return fmt.Errorf("duplicate type %s", t.Name)
	}
	t.module = m
	m.index[t.Name] = t
	m.Types = append(m.Types, t)
	return nil
}

// AddStyle registers style in module resources. Later registration with
// the same key replaces earlier one.
func (m *Module) AddStyle(key any, s *style.Style) {
	for i := range m.Resources {
		if m.Resources[i].Key == key {
			m.Resources[i].Style = s
			return
		}
	}
	m.Resources = append(m.Resources, Entry{Key: key, Style: s})
}

// Lookup finds type by name in the module or modules it references.
func (m *Module) Lookup(name string) (*Type, bool) {
	return m.lookup(name, make(map[*Module]bool))
}

func (m *Module) lookup(name string, visited map[*Module]bool) (*Type, bool) {
	if visited[m] {
		return nil, false
	}
	visited[m] = true

	if t, ok := m.index[name]; ok {
		return t, true
	}
	for _, r := range m.refs {
		if t, ok := r.lookup(name, visited); ok {
			return t, true
		}
	}
	return nil, false
}

// FindStyle looks for style registered under key in the module or modules
// it references.
func (m *Module) FindStyle(key any) (*style.Style, bool) {
	return m.findStyle(key, make(map[*Module]bool))
}

func (m *Module) findStyle(key any, visited map[*Module]bool) (*style.Style, bool) {
	if visited[m] {
		return nil, false
	}
	visited[m] = true

	for _, e := range m.Resources {
		if e.Key == key {
			return e.Style, true
		}
	}
	for _, r := range m.refs {
		if s, ok := r.findStyle(key, visited); ok {
			return s, true
		}
	}
	return nil, false
}

// AssignableTo reports whether t is base or derives from type named base.
// Broken or circular inheritance chains are not assignable.
func (m *Module) AssignableTo(t *Type, base string) bool {
	seen := make(map[*Type]bool)
	for cur := t; cur != nil && !seen[cur]; {
		if cur.Name == base {
			return true
		}
		seen[cur] = true
		if cur.Base == "" {
			return false
		}
		next, ok := m.Lookup(cur.Base)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
