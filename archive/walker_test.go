package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type zipEntry struct {
	name    string
	content string
	dir     bool
}

func createZip(t *testing.T, entries ...zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		if e.dir {
			hdr := &zip.FileHeader{Name: e.name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t,
		zipEntry{name: "themes/", dir: true},
		zipEntry{name: "themes/generic.xml", content: "<Module/>"},
		zipEntry{name: "themes/Aero.XML", content: "<Module/>"},
		zipEntry{name: "README.txt", content: "readme"},
		zipEntry{name: "controls.xml", content: "<Module/>"},
	)

	tests := []struct {
		name  string
		match MatchFunc
		want  []string
	}{
		{"all files", nil, []string{"themes/generic.xml", "themes/Aero.XML", "README.txt", "controls.xml"}},
		{"by extension", WithExt(".xml"), []string{"themes/generic.xml", "themes/Aero.XML", "controls.xml"}},
		{"by prefix", WithPrefix("themes/"), []string{"themes/generic.xml", "themes/Aero.XML"}},
		{"case sensitive prefix", WithPrefix("Themes/"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.match, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if len(visited) != len(tt.want) {
				t.Fatalf("visited %v, want %v", visited, tt.want)
			}
			for i := range visited {
				if visited[i] != tt.want[i] {
					t.Errorf("visited[%d] = %s, want %s", i, visited[i], tt.want[i])
				}
			}
		})
	}
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := createZip(t, zipEntry{name: "module.xml", content: "<Module Name=\"x\"/>"})

	err := Walk(zipPath, WithExt(".xml"), func(archive string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != "<Module Name=\"x\"/>" {
			t.Errorf("content = %s", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := createZip(t,
		zipEntry{name: "a.xml"}, zipEntry{name: "b.xml"}, zipEntry{name: "c.xml"},
	)

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, nil, func(archive string, file *zip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_Errors(t *testing.T) {
	t.Run("non existent archive", func(t *testing.T) {
		err := Walk(filepath.Join(t.TempDir(), "absent.zip"), nil, func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("expected error for non existent archive")
		}
	})

	t.Run("not an archive", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(p, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := Walk(p, nil, func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for invalid zip file")
		}
	})

	t.Run("unsafe entry", func(t *testing.T) {
		zipPath := createZip(t, zipEntry{name: "../evil.xml", content: "x"})
		called := false
		err := Walk(zipPath, nil, func(string, *zip.File) error {
			called = true
			return nil
		})
		if err == nil {
			t.Error("expected error for unsafe entry")
		}
		if called {
			t.Error("walkFn must not be called for unsafe entry")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"module.xml", true},
		{"themes/generic.xml", true},
		{"a..b/c.xml", true},
		{"/etc/passwd", false},
		{`\windows\system.ini`, false},
		{"../x.xml", false},
		{"themes/../../x.xml", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
