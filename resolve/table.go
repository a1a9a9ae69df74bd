package resolve

import (
	"fmt"
	"reflect"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"stylesnoop/module"
	"stylesnoop/style"
	"stylesnoop/utils/debug"
)

// Table maps lookup keys to registered styles.
type Table interface {
	Find(key any) (*style.Style, bool)
}

// ResourceTable is merged resource dictionary of several modules.
type ResourceTable struct {
	styles map[any]*style.Style
	// origin of every key, for dumps
	origin map[any]string
}

// NewTable merges resources declared by mods, for equal keys style of a
// later module wins. Resources of referenced modules are not included
// unless passed explicitly.
func NewTable(mods ...*module.Module) *ResourceTable {
	t := &ResourceTable{
		styles: make(map[any]*style.Style),
		origin: make(map[any]string),
	}
	for _, m := range mods {
		if m == nil {
			continue
		}
		for _, e := range m.Resources {
			if e.Style == nil || !usableKey(e.Key) {
				continue
			}
			t.styles[e.Key] = e.Style
			t.origin[e.Key] = m.Name
		}
	}
	return t
}

// Find returns style registered under key. Keys which cannot be used for
// lookup (nil, not comparable) are never found.
func (t *ResourceTable) Find(key any) (*style.Style, bool) {
	if t == nil || !usableKey(key) {
		return nil, false
	}
	s, ok := t.styles[key]
	return s, ok
}

// Len returns number of registered styles.
func (t *ResourceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.styles)
}

func usableKey(key any) bool {
	if key == nil {
		return false
	}
	return reflect.ValueOf(key).Comparable()
}

func keyName(key any) string {
	if s, ok := key.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(key)
}

// String returns a readable dump of the table. It exists solely for debug
// reports.
func (t *ResourceTable) String() string {
	if t == nil {
		return "<nil ResourceTable>"
	}

	byName := make(map[string]any, len(t.styles))
	for k := range t.styles {
		byName[keyName(k)] = k
	}
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Sort(natural.StringSlice(names))

	tw := debug.NewTreeWriter()
	tw.Line(0, "ResourceTable (%d styles)", len(t.styles))
	for _, n := range names {
		k := byName[n]
		s := t.styles[k]
		tw.Line(1, "Key=%s module=%q targetType=%q setters=%d", n, t.origin[k], s.TargetType, len(s.Setters))
	}
	return tw.String()
}

// Keys returns all lookup keys ordered naturally by their names.
func (t *ResourceTable) Keys() []any {
	if t == nil {
		return nil
	}
	keys := make([]any, 0, len(t.styles))
	for k := range t.styles {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b any) int {
		na, nb := keyName(a), keyName(b)
		switch {
		case na == nb:
			return 0
		case natural.Less(na, nb):
			return -1
		}
		return 1
	})
	return keys
}
