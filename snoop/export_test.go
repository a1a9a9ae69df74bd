package snoop

import (
	"path/filepath"
	"testing"

	"stylesnoop/common"
	"stylesnoop/discover"
	"stylesnoop/module"
)

func TestBuildOutputPath(t *testing.T) {
	fw, err := module.Framework()
	if err != nil {
		t.Fatalf("Framework() error = %v", err)
	}
	entry, ok := discover.Find(discover.Collect(fw), "ToolBar.ButtonStyleKey")
	if !ok {
		t.Fatal("ToolBar.ButtonStyleKey entry not found")
	}

	dst := t.TempDir()
	tests := []struct {
		name          string
		template      string
		transliterate bool
		format        common.OutputFmt
		want          string
	}{
		{"default", `{{ .Name | replace "." "-" }}`, true, common.OutputFmtPlain, "toolbar-buttonstylekey.txt"},
		{"no template", ``, false, common.OutputFmtHtml, "ToolBar.ButtonStyleKey.html"},
		{"subdirectories", `{{ .Module }}/{{ .Type }}/{{ .Name }}`, false, common.OutputFmtTokens,
			filepath.Join("PresentationFramework", "ToolBar", "ToolBar.ButtonStyleKey.tokens")},
		{"format value", `{{ .Type }}-{{ .Format }}`, false, common.OutputFmtAnsi, "ToolBar-ansi.txt"},
		{"broken template", `{{ .Name `, false, common.OutputFmtPlain, "ToolBar.ButtonStyleKey.txt"},
		{"empty expansion", `{{ if false }}x{{ end }}`, false, common.OutputFmtPlain, "ToolBar.ButtonStyleKey.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := testContext(t)
			env.Cfg.Export.OutputNameTemplate = tt.template
			env.Cfg.Export.FileNameTransliterate = tt.transliterate

			got := buildOutputPath(entry, tt.format, dst, env)
			if want := filepath.Join(dst, tt.want); got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{filepath.Join("a", "b", "c"), 3},
		{filepath.Join("a", "b") + string(filepath.Separator), 2},
	}
	for _, tt := range tests {
		if got := splitPath(tt.in); len(got) != tt.want {
			t.Errorf("splitPath(%q) = %v, want %d segments", tt.in, got, tt.want)
		}
	}
}
