// Package style models style object graph of the presentation framework:
// a target type, ordered setters and triggers, nested values and resource
// dictionaries. It is what serializer walks to produce canonical markup.
package style

import (
	"strconv"
	"strings"
)

// Namespaces of canonical markup.
const (
	PresentationNS = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"
	XamlNS         = "http://schemas.microsoft.com/winfx/2006/xaml"
	// boxed primitives are written in one of two system namespaces depending
	// on runtime flavour which produced them
	SystemNS     = "clr-namespace:System;assembly=mscorlib"
	SystemCoreNS = "clr-namespace:System;assembly=System.Private.CoreLib"
)

// TypeKey is default style key of a type - styles registered for type
// itself.
type TypeKey string

func (k TypeKey) String() string {
	return "{x:Type " + string(k) + "}"
}

// ResourceKey is named key exposed by a type through static members.
type ResourceKey struct {
	Owner string
	ID    string
}

func (k ResourceKey) String() string {
	return k.Owner + "." + k.ID
}

// Value is anything which could be assigned to a setter, trigger, property
// or placed into resource dictionary.
type Value interface {
	isValue()
}

type (
	// Inline is value which has direct textual representation and is written
	// as attribute.
	Inline string

	// Brush is solid color brush, Color is in #AARRGGBB form.
	Brush struct {
		Color string
	}

	Thickness struct {
		Left, Top, Right, Bottom float64
	}

	// Primitive is boxed system value (Double, Boolean, Int32...).
	Primitive struct {
		Type string
		Text string
		// Core selects System.Private.CoreLib flavour of system namespace.
		Core bool
	}

	DynamicResource struct {
		Key string
	}

	StaticResource struct {
		Key string
	}

	// StaticMember references static field or property, Member is
	// "Type.Name".
	StaticMember struct {
		Member string
	}

	// Object is any other framework object (templates, visual tree
	// elements, geometry) - element with properties and content.
	Object struct {
		Type    string
		Props   []Property
		Content []Value
	}

	Property struct {
		Name  string
		Value Value
	}
)

func (Inline) isValue()          {}
func (Brush) isValue()           {}
func (Thickness) isValue()       {}
func (Primitive) isValue()       {}
func (DynamicResource) isValue() {}
func (StaticResource) isValue()  {}
func (StaticMember) isValue()    {}
func (*Object) isValue()         {}
func (*Style) isValue()          {}

// Uniform returns thickness with all sides equal.
func Uniform(v float64) Thickness {
	return Thickness{v, v, v, v}
}

// String returns thickness in canonical four component form.
func (t Thickness) String() string {
	parts := []string{
		strconv.FormatFloat(t.Left, 'g', -1, 64),
		strconv.FormatFloat(t.Top, 'g', -1, 64),
		strconv.FormatFloat(t.Right, 'g', -1, 64),
		strconv.FormatFloat(t.Bottom, 'g', -1, 64),
	}
	return strings.Join(parts, ",")
}

// ParseThickness accepts one, two or four comma separated components the
// same way markup does.
func ParseThickness(s string) (Thickness, error) {
	fields := strings.Split(s, ",")
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Thickness{}, err
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 1:
		return Uniform(vals[0]), nil
	case 2:
		return Thickness{vals[0], vals[1], vals[0], vals[1]}, nil
	case 4:
		return Thickness{vals[0], vals[1], vals[2], vals[3]}, nil
	}
	return Thickness{}, &strconv.NumError{Func: "ParseThickness", Num: s, Err: strconv.ErrSyntax}
}

type Setter struct {
	Property   string
	TargetName string
	Value      Value
}

type Trigger struct {
	Property string
	Value    Value
	Setters  []Setter
}

// Resource is single keyed entry of resource dictionary.
type Resource struct {
	Key   string
	Value Value
}

type ResourceDictionary struct {
	Entries []Resource
}

// Style is reusable bundle of setters applied to instances of TargetType.
type Style struct {
	TargetType string
	BasedOn    Value
	Setters    []Setter
	Triggers   []Trigger
	Resources  *ResourceDictionary
}
