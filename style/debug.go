package style

import (
	"fmt"

	"stylesnoop/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the style object graph. It exists solely
// for manual inspection and debug reports.
func (s *Style) String() string {
	if s == nil {
		return "<nil Style>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.style(0, s, make(map[any]bool))
	return tw.String()
}

func (tw treeWriter) style(depth int, s *Style, seen map[any]bool) {
	if seen[s] {
		tw.Line(depth, "Style (cycle)")
		return
	}
	seen[s] = true
	defer delete(seen, s)

	tw.Line(depth, "Style targetType=%q setters=%d triggers=%d", s.TargetType, len(s.Setters), len(s.Triggers))
	if s.BasedOn != nil {
		tw.value(depth+1, "BasedOn", s.BasedOn, seen)
	}
	if s.Resources != nil {
		tw.Line(depth+1, "Resources: %d", len(s.Resources.Entries))
		for _, r := range s.Resources.Entries {
			tw.value(depth+2, fmt.Sprintf("[%q]", r.Key), r.Value, seen)
		}
	}
	for i, st := range s.Setters {
		tw.setter(depth+1, i, st, seen)
	}
	for i, tr := range s.Triggers {
		tw.Line(depth+1, "Trigger[%d] property=%q", i, tr.Property)
		tw.value(depth+2, "Value", tr.Value, seen)
		for j, st := range tr.Setters {
			tw.setter(depth+2, j, st, seen)
		}
	}
}

func (tw treeWriter) setter(depth, idx int, st Setter, seen map[any]bool) {
	if st.TargetName != "" {
		tw.Line(depth, "Setter[%d] property=%q targetName=%q", idx, st.Property, st.TargetName)
	} else {
		tw.Line(depth, "Setter[%d] property=%q", idx, st.Property)
	}
	tw.value(depth+1, "Value", st.Value, seen)
}

func (tw treeWriter) value(depth int, label string, v Value, seen map[any]bool) {
	switch v := v.(type) {
	case nil:
		tw.Line(depth, "%s: <nil>", label)
	case Inline:
		tw.TextBlock(depth, label, string(v))
	case Brush:
		tw.Line(depth, "%s: Brush color=%q", label, v.Color)
	case Thickness:
		tw.Line(depth, "%s: Thickness %s", label, v)
	case Primitive:
		tw.Line(depth, "%s: %s=%q core=%t", label, v.Type, v.Text, v.Core)
	case DynamicResource:
		tw.Line(depth, "%s: DynamicResource key=%q", label, v.Key)
	case StaticResource:
		tw.Line(depth, "%s: StaticResource key=%q", label, v.Key)
	case StaticMember:
		tw.Line(depth, "%s: Static member=%q", label, v.Member)
	case *Object:
		if seen[v] {
			tw.Line(depth, "%s: Object type=%q (cycle)", label, v.Type)
			return
		}
		seen[v] = true
		defer delete(seen, v)
		tw.Line(depth, "%s: Object type=%q props=%d content=%d", label, v.Type, len(v.Props), len(v.Content))
		for _, p := range v.Props {
			tw.value(depth+1, p.Name, p.Value, seen)
		}
		for i, c := range v.Content {
			tw.value(depth+1, fmt.Sprintf("Content[%d]", i), c, seen)
		}
	case *Style:
		tw.Line(depth, "%s:", label)
		tw.style(depth+1, v, seen)
	default:
		tw.Line(depth, "%s: %T", label, v)
	}
}
