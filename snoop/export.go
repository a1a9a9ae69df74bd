package snoop

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"stylesnoop/common"
	"stylesnoop/config"
	"stylesnoop/discover"
	"stylesnoop/state"
)

// Values is a struct that holds variables we make available for template
// expansion
type Values struct {
	Context string
	Name    string
	Type    string
	Format  string
	Module  string
}

func entryValues(name config.TemplateFieldName, entry discover.StyleEntry, format common.OutputFmt) Values {
	v := Values{
		Context: string(name),
		Name:    entry.DisplayName,
		Format:  format.String(),
	}
	if entry.Owner != nil {
		v.Type = entry.Owner.Name
		if m := entry.Owner.Module(); m != nil {
			v.Module = m.Name
		}
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildOutputPath returns path of exported document. Name comes from user
// template if configured and expands, otherwise from entry display name.
// Every path segment is cleaned and, if requested, transliterated.
func buildOutputPath(entry discover.StyleEntry, format common.OutputFmt, dst string, env *state.LocalEnv) string {
	name := entry.DisplayName
	if field := env.Cfg.Export.OutputNameTemplate; field != "" {
		expanded, err := expandTemplate(config.OutputNameTemplateFieldName, field, entryValues(config.OutputNameTemplateFieldName, entry, format))
		switch {
		case err != nil:
			env.Log.Warn("Unable to prepare output filename", zap.String("entry", entry.DisplayName), zap.Error(err))
		case strings.TrimSpace(expanded) == "":
			env.Log.Warn("Output filename template expanded to nothing", zap.String("entry", entry.DisplayName))
		default:
			name = filepath.FromSlash(expanded)
		}
	}

	segments := splitPath(name)
	if len(segments) == 0 {
		segments = []string{entry.DisplayName}
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dst)
	for _, s := range segments {
		parts = append(parts, cleanPathSegment(s, env))
	}
	parts[len(parts)-1] += format.Ext()
	return filepath.Join(parts...)
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Export.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
