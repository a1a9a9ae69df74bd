package module

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"stylesnoop/style"
)

func framework(t *testing.T) *Module {
	t.Helper()

	fw, err := Framework()
	if err != nil {
		t.Fatalf("Framework() error = %v", err)
	}
	return fw
}

func mustLookup(t *testing.T, m *Module, name string) *Type {
	t.Helper()

	typ, ok := m.Lookup(name)
	if !ok {
		t.Fatalf("type %s not found", name)
	}
	return typ
}

func TestFramework(t *testing.T) {
	fw := framework(t)

	if fw.Name != FrameworkName {
		t.Errorf("Name = %q, want %q", fw.Name, FrameworkName)
	}

	button := mustLookup(t, fw, "Button")
	if !fw.AssignableTo(button, "FrameworkElement") {
		t.Error("Button must be assignable to FrameworkElement")
	}
	if fw.AssignableTo(mustLookup(t, fw, "SolidColorBrush"), "FrameworkElement") {
		t.Error("SolidColorBrush must not be assignable to FrameworkElement")
	}
	if !fw.AssignableTo(button, "Button") {
		t.Error("type is assignable to itself")
	}

	s, ok := fw.FindStyle(style.TypeKey("Button"))
	if !ok || s.TargetType != "Button" || len(s.Setters) == 0 || len(s.Triggers) == 0 {
		t.Fatalf("Button style is not registered properly: %v", s)
	}

	tbButton, ok := fw.FindStyle(style.ResourceKey{Owner: "ToolBar", ID: "ButtonStyleKey"})
	if !ok {
		t.Fatal("ToolBar.ButtonStyleKey style is not registered")
	}
	tbToggle, ok := fw.FindStyle(style.ResourceKey{Owner: "ToolBar", ID: "ToggleButtonStyleKey"})
	if !ok {
		t.Fatal("ToolBar.ToggleButtonStyleKey style is not registered")
	}
	if tbToggle.BasedOn != style.Value(tbButton) {
		t.Error("BasedOn must be linked to registered style")
	}

	grip, ok := fw.FindStyle(style.TypeKey("ResizeGrip"))
	if !ok || grip.BasedOn != style.Value(grip) {
		t.Error("ResizeGrip style must be based on itself")
	}

	toolbar := mustLookup(t, fw, "ToolBar")
	var keys int
	for _, sm := range toolbar.Statics {
		if sm.Type == ResourceKeyType {
			keys++
			if _, ok := sm.Value.(style.ResourceKey); !ok {
				t.Errorf("static member %s holds %T", sm.Name, sm.Value)
			}
		}
	}
	if keys != 7 {
		t.Errorf("ToolBar exposes %d resource keys, want 7", keys)
	}
}

func TestType_New(t *testing.T) {
	fw := framework(t)
	contoso, err := Load(filepath.Join("testdata", "contoso.xml"), WithReferences(fw))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		module  *Module
		name    string
		key     any
		wantErr bool
	}{
		{fw, "Button", style.TypeKey("Button"), false},
		{fw, "FrameworkElement", nil, false},
		{fw, "Border", nil, false},
		{fw, "HeaderedItemsControl", style.TypeKey("ItemsControl"), false},
		{fw, "ButtonBase", nil, true},
		{fw, "PageFunctionBase", nil, true},
		{fw, "PageFunction", nil, true},
		{fw, "WebBrowser", nil, true},
		{contoso, "FancyButton", style.TypeKey("Button"), false},
		{contoso, "apple2", style.TypeKey("apple2"), false},
		{contoso, "Broken", nil, true},
		{contoso, "Hidden", nil, true},
		{contoso, "Orphan", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := mustLookup(t, tt.module, tt.name).New()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected construction error")
				}
				if !errors.Is(err, errConstruct) {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if el.DefaultStyleKey != tt.key {
				t.Errorf("DefaultStyleKey = %v, want %v", el.DefaultStyleKey, tt.key)
			}
			if el.Type.Name != tt.name {
				t.Errorf("Type = %s", el.Type)
			}
		})
	}
}

func TestType_NewCircular(t *testing.T) {
	m := New("circular")
	for _, typ := range []*Type{
		{Name: "A", Base: "B", Constructor: Public},
		{Name: "B", Base: "A", Constructor: Public},
	} {
		if err := m.AddType(typ); err != nil {
			t.Fatalf("AddType() error = %v", err)
		}
	}
	a := mustLookup(t, m, "A")
	if _, err := a.New(); err == nil {
		t.Error("circular inheritance must fail construction")
	}
	if m.AssignableTo(a, "FrameworkElement") {
		t.Error("circular inheritance must not be assignable")
	}
}

func TestModule_AddType(t *testing.T) {
	m := New("m")
	if err := m.AddType(&Type{Name: "A"}); err != nil {
		t.Fatalf("AddType() error = %v", err)
	}
	if err := m.AddType(&Type{Name: "A"}); err == nil {
		t.Error("duplicate type must be rejected")
	}
	if err := m.AddType(&Type{}); err == nil {
		t.Error("unnamed type must be rejected")
	}
	if a := mustLookup(t, m, "A"); a.Module() != m {
		t.Error("type must know its module")
	}
}

func TestModule_AddStyleReplaces(t *testing.T) {
	m := New("m")
	first, second := &style.Style{TargetType: "A"}, &style.Style{TargetType: "B"}
	m.AddStyle(style.TypeKey("A"), first)
	m.AddStyle(style.TypeKey("A"), second)

	if len(m.Resources) != 1 {
		t.Fatalf("expected single entry, got %d", len(m.Resources))
	}
	if s, _ := m.FindStyle(style.TypeKey("A")); s != second {
		t.Error("later registration must win")
	}
}

func TestLoad_Manifest(t *testing.T) {
	fw := framework(t)
	m, err := Load(filepath.Join("testdata", "contoso.xml"), WithReferences(fw), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Name != "Contoso.Controls" {
		t.Errorf("Name = %q", m.Name)
	}
	if len(m.Types) != 8 {
		t.Errorf("got %d types, want 8", len(m.Types))
	}
	if len(m.References()) != 1 || m.References()[0] != fw {
		t.Error("framework must be referenced")
	}

	// BasedOn across modules
	compact, ok := m.FindStyle(style.ResourceKey{Owner: "apple2", ID: "CompactStyleKey"})
	if !ok {
		t.Fatal("apple2.CompactStyleKey style not found")
	}
	button, _ := fw.FindStyle(style.TypeKey("Button"))
	if compact.BasedOn != style.Value(button) {
		t.Error("BasedOn must resolve to framework style")
	}
	// referenced module styles are visible
	if _, ok := m.FindStyle(style.TypeKey("Label")); !ok {
		t.Error("framework styles must be visible through module")
	}
}

type manifestFile struct {
	name    string
	content string
}

func createPackage(t *testing.T, files ...manifestFile) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "package.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, mf := range files {
		fw, err := w.Create(mf.name)
		if err != nil {
			t.Fatalf("create %s: %v", mf.name, err)
		}
		if _, err := fw.Write([]byte(mf.content)); err != nil {
			t.Fatalf("write %s: %v", mf.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close package: %v", err)
	}
	return p
}

func TestLoad_Package(t *testing.T) {
	fw := framework(t)
	p := createPackage(t,
		manifestFile{"types.xml", `<Module Name="Packed"><Types><Type Name="Gauge" Base="Control" DefaultStyleKey="Gauge" /></Types></Module>`},
		manifestFile{"README.md", `not a manifest`},
		manifestFile{"themes/generic.xml", `<Module><Resources><Style Type="Gauge" TargetType="Gauge"><BasedOn Type="Control2" /></Style><Style Type="Control2" TargetType="Control" /></Resources></Module>`},
	)

	m, err := Load(p, WithReferences(fw), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "Packed" {
		t.Errorf("Name = %q, want Packed", m.Name)
	}
	gauge := mustLookup(t, m, "Gauge")
	if !m.AssignableTo(gauge, "FrameworkElement") {
		t.Error("Gauge must derive from framework element")
	}
	s, ok := m.FindStyle(style.TypeKey("Gauge"))
	if !ok {
		t.Fatal("Gauge style not found")
	}
	if b, ok := s.BasedOn.(*style.Style); !ok || b.TargetType != "Control" {
		t.Error("BasedOn must be linked across manifests of the package")
	}
}

func TestLoad_PackageErrors(t *testing.T) {
	p := createPackage(t,
		manifestFile{"a.xml", `<Module><Types><Type /></Types></Module>`},
		manifestFile{"b.xml", `<Library />`},
		manifestFile{"c.xml", `<Module Name="fine" />`},
	)

	_, err := Load(p)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("expected 2 accumulated errors, got %d: %v", n, err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{"empty", ``, "manifest"},
		{"not xml", `{"Module": 1}`, "manifest"},
		{"wrong root", `<Assembly />`, "root element"},
		{"unexpected section", `<Module><Assets /></Module>`, "unexpected element"},
		{"duplicate type", `<Module><Types><Type Name="A" /><Type Name="A" /></Types></Module>`, "duplicate type"},
		{"bad bool", `<Module><Types><Type Name="A" Abstract="maybe" /></Types></Module>`, "Abstract"},
		{"bad constructor", `<Module><Types><Type Name="A" Constructor="internal" /></Types></Module>`, "constructor visibility"},
		{"style without key", `<Module><Resources><Style TargetType="A" /></Resources></Module>`, "Owner and Key"},
		{"unresolved based on", `<Module><Resources><Style Type="A"><BasedOn Type="B" /></Style></Resources></Module>`, "unable to resolve BasedOn"},
		{"bad thickness", `<Module><Resources><Style Type="A"><Setter Property="Margin"><Thickness Value="1,2,3" /></Setter></Style></Resources></Module>`, "ParseThickness"},
		{"unknown value", `<Module><Resources><Style Type="A"><Setter Property="P"><Gradient /></Setter></Style></Resources></Module>`, "unknown value element"},
		{"ambiguous value", `<Module><Resources><Style Type="A"><Setter Property="P" Value="1"><Brush Color="#FF000000" /></Setter></Style></Resources></Module>`, "both Value"},
		{"trigger without value", `<Module><Resources><Style Type="A"><Trigger Property="P" /></Style></Resources></Module>`, "trigger value"},
		{"unkeyed resource", `<Module><Resources><Style Type="A"><Resources><Brush Color="#FF000000" /></Resources></Style></Resources></Module>`, "resource key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "module.xml")
			if err := os.WriteFile(p, []byte(tt.manifest), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Load(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.xml")); err == nil {
		t.Error("expected error for absent module")
	}
}

func TestParse_Encoding(t *testing.T) {
	body, err := charmap.Windows1251.NewEncoder().String(`<?xml version="1.0" encoding="windows-1251"?>
<Module Name="Элементы"><Types><Type Name="Кнопка" Base="Button" /></Types></Module>`)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	m, err := Parse([]byte(body), "cp1251.xml", framework(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Name != "Элементы" {
		t.Errorf("Name = %q", m.Name)
	}
	mustLookup(t, m, "Кнопка")
}

func TestEntryName(t *testing.T) {
	cp, err := ianaindex.IANA.Encoding("cp866")
	if err != nil || cp == nil {
		t.Fatalf("cp866 encoding: %v", err)
	}

	f := &zip.File{FileHeader: zip.FileHeader{Name: "\x8f\xe0\xa8.xml", NonUTF8: true}}
	if got := entryName(f, cp); got != "При.xml" {
		t.Errorf("entryName() = %q, want При.xml", got)
	}
	if got := entryName(f, nil); got != f.Name {
		t.Errorf("without code page name must be kept, got %q", got)
	}

	utf := &zip.File{FileHeader: zip.FileHeader{Name: "generic.xml"}}
	if got := entryName(utf, cp); got != "generic.xml" {
		t.Errorf("utf-8 names must be kept, got %q", got)
	}
}
