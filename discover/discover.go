// Package discover enumerates styleable types of a component module and
// the style keys they expose.
package discover

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"stylesnoop/module"
)

const (
	DefaultBaseType = "FrameworkElement"
	DefaultSuffix   = "StyleKey"
)

// StyleEntry is single selectable style: either default style of a type or
// one of the named styles the type exposes through static members.
type StyleEntry struct {
	DisplayName string
	// Key is nil when type does not define default style key.
	Key   any
	Owner *module.Type
}

func (e StyleEntry) String() string {
	return e.DisplayName
}

type options struct {
	base   string
	suffix string
	log    *zap.Logger
}

type Option func(*options)

// WithBaseType sets name of the type every discovered type must derive
// from.
func WithBaseType(name string) Option {
	return func(o *options) {
		if name != "" {
			o.base = name
		}
	}
}

// WithSuffix sets suffix of static members offered as named styles.
func WithSuffix(suffix string) Option {
	return func(o *options) {
		if suffix != "" {
			o.suffix = suffix
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Styles returns lazy sequence of style entries for types declared by mod
// (types of referenced modules are only used to resolve inheritance).
// Entries are ordered by type name, default style first, followed by named
// styles in declaration order. Types which could not be constructed are
// skipped.
func Styles(mod *module.Module, opts ...Option) iter.Seq[StyleEntry] {
	o := options{base: DefaultBaseType, suffix: DefaultSuffix, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.Named("discover")

	return func(yield func(StyleEntry) bool) {
		if mod == nil {
			return
		}
		for _, t := range candidates(mod, o.base) {
			if t.Constructor != module.Public {
				log.Debug("Skipping type without public constructor", zap.Stringer("type", t))
				continue
			}
			el, err := construct(t)
			if err != nil {
				log.Debug("Skipping type", zap.Stringer("type", t), zap.Error(err))
				continue
			}
			if !yield(StyleEntry{DisplayName: t.Name, Key: el.DefaultStyleKey, Owner: t}) {
				return
			}
			for _, sm := range t.Statics {
				if sm.Type != module.ResourceKeyType || !strings.HasSuffix(sm.Name, o.suffix) {
					continue
				}
				if !yield(StyleEntry{DisplayName: t.Name + "." + sm.Name, Key: sm.Value, Owner: t}) {
					return
				}
			}
		}
	}
}

// candidates returns instantiable types assignable to base, ordered by name.
func candidates(mod *module.Module, base string) []*module.Type {
	var types []*module.Type
	for _, t := range mod.Types {
		if t.Abstract || t.Generic || t.Constructor == module.NoConstructor {
			continue
		}
		if !mod.AssignableTo(t, base) {
			continue
		}
		types = append(types, t)
	}
	slices.SortStableFunc(types, func(a, b *module.Type) int {
		return strings.Compare(a.Name, b.Name)
	})
	return types
}

// construct never lets misbehaving type abort discovery.
func construct(t *module.Type) (el *module.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			el, err = nil, fmt.Errorf("construction of %v panicked: %v", t, r)
		}
	}()
	return t.New()
}

// Collect returns all entries of mod.
func Collect(mod *module.Module, opts ...Option) []StyleEntry {
	return slices.Collect(Styles(mod, opts...))
}

// Find returns entry with given display name.
func Find(entries []StyleEntry, name string) (StyleEntry, bool) {
	for _, e := range entries {
		if e.DisplayName == name {
			return e, true
		}
	}
	return StyleEntry{}, false
}
