package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report archive: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_ArchivesDataAndFiles(t *testing.T) {
	dir := t.TempDir()

	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	logFile := filepath.Join(dir, "snoop.log")
	if err := os.WriteFile(logFile, []byte("log line"), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	rpt.Store("final.log", logFile)
	rpt.Store("absent.log", filepath.Join(dir, "missing.log"))
	rpt.StoreData("markup/canonical.xml", []byte("<Style />"))

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, rpt.Name())
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["markup/canonical.xml"] != "<Style />" {
		t.Errorf("canonical.xml = %q", files["markup/canonical.xml"])
	}
	if _, ok := files["absent.log"]; ok {
		t.Error("absent file must not be archived")
	}
	if !strings.Contains(files["MANIFEST"], "markup/canonical.xml") {
		t.Errorf("MANIFEST does not list stored data:\n%s", files["MANIFEST"])
	}
}

func TestReportStoreData_VersionsRepeatedNames(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}

	r.StoreData("markup/normalized.xml", []byte("a"))
	r.StoreData("markup/normalized.xml", []byte("b"))

	if len(r.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(r.entries))
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report = %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	if r.Name() != "" {
		t.Error("nil report must have empty name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without file = %v", err)
	}
}
