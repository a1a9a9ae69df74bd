package discover

import (
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylesnoop/module"
	"stylesnoop/style"
)

func loadModules(t *testing.T) (*module.Module, *module.Module) {
	t.Helper()

	fw, err := module.Framework()
	if err != nil {
		t.Fatalf("Framework() error = %v", err)
	}
	m, err := module.Load(filepath.Join("..", "module", "testdata", "contoso.xml"), module.WithReferences(fw))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return fw, m
}

func names(entries []StyleEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.DisplayName)
	}
	return out
}

func TestStyles_Ordering(t *testing.T) {
	_, m := loadModules(t)

	got := names(Collect(m, WithLogger(zaptest.NewLogger(t))))
	want := []string{
		"Apple",
		"FancyButton",
		"Zebra",
		"apple2",
		"apple2.CompactStyleKey",
		"apple2.WideStyleKey",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestStyles_Keys(t *testing.T) {
	_, m := loadModules(t)
	entries := Collect(m)

	tests := []struct {
		name  string
		key   any
		owner string
	}{
		{"Apple", style.TypeKey("Apple"), "Apple"},
		{"FancyButton", style.TypeKey("Button"), "FancyButton"},
		{"apple2.CompactStyleKey", style.ResourceKey{Owner: "apple2", ID: "CompactStyleKey"}, "apple2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Find(entries, tt.name)
			if !ok {
				t.Fatalf("entry %s not found", tt.name)
			}
			if e.Key != tt.key {
				t.Errorf("Key = %v, want %v", e.Key, tt.key)
			}
			if e.Owner == nil || e.Owner.Name != tt.owner {
				t.Errorf("Owner = %v, want %s", e.Owner, tt.owner)
			}
		})
	}

	for _, skipped := range []string{"Broken", "Hidden", "Orphan", "Helper", "apple2.LegacyStyleKey", "apple2.CompactTemplateKey"} {
		if _, ok := Find(entries, skipped); ok {
			t.Errorf("%s must not be discovered", skipped)
		}
	}
}

func TestStyles_Framework(t *testing.T) {
	fw, _ := loadModules(t)
	entries := Collect(fw)

	for _, name := range []string{"Button", "FrameworkElement", "Border", "ToolBar.ButtonStyleKey", "ToolBar.MenuStyleKey", "MenuItem.SeparatorStyleKey"} {
		if _, ok := Find(entries, name); !ok {
			t.Errorf("%s must be discovered", name)
		}
	}
	for _, name := range []string{"ButtonBase", "PageFunctionBase", "PageFunction", "ActiveXHost", "WebBrowser", "SolidColorBrush", "ToolBar.OrientationProperty", "MenuItem.TopLevelHeaderTemplateKey"} {
		if _, ok := Find(entries, name); ok {
			t.Errorf("%s must not be discovered", name)
		}
	}

	// nil key is a valid entry
	if e, _ := Find(entries, "Border"); e.Key != nil {
		t.Errorf("Border key = %v, want nil", e.Key)
	}

	if !slices.IsSortedFunc(entries, func(a, b StyleEntry) int {
		if a.Owner.Name < b.Owner.Name {
			return -1
		}
		if a.Owner.Name > b.Owner.Name {
			return 1
		}
		return 0
	}) {
		t.Error("entries must be ordered by type name")
	}
}

func TestStyles_Options(t *testing.T) {
	_, m := loadModules(t)

	got := names(Collect(m, WithBaseType("Apple"), WithSuffix("TemplateKey")))
	want := []string{"Apple", "apple2", "apple2.CompactTemplateKey"}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}

	// empty values keep defaults
	if got := Collect(m, WithBaseType(""), WithSuffix(""), WithLogger(nil)); len(got) != 6 {
		t.Errorf("expected defaults to be kept, got %v", names(got))
	}
}

func TestStyles_EarlyStop(t *testing.T) {
	_, m := loadModules(t)

	var got []string
	for e := range Styles(m) {
		got = append(got, e.DisplayName)
		if e.DisplayName == "apple2" {
			break
		}
	}
	if len(got) != 4 {
		t.Errorf("iteration must stop on request, got %v", got)
	}
}

func TestStyles_Empty(t *testing.T) {
	if got := Collect(nil); len(got) != 0 {
		t.Errorf("nil module yields %v", got)
	}
	if got := Collect(module.New("empty")); len(got) != 0 {
		t.Errorf("empty module yields %v", got)
	}
}

func TestConstruct_Recovers(t *testing.T) {
	if _, err := construct(nil); err == nil {
		t.Error("expected error from panicking construction")
	}
}
