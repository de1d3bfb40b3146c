package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryRead_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryRead("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
	if !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "coco.names")
	if err := os.WriteFile(f, []byte("person\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if r := CheckFile("names", f); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckFile("names", dir); r.Passed || !strings.Contains(r.Detail, "not a regular file") {
		t.Fatalf("expected directory to fail, got %+v", r)
	}
	if r := CheckFile("names", filepath.Join(dir, "missing")); r.Passed {
		t.Fatal("expected missing file to fail")
	}
}

func TestRunAllAndFailures(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "a.names")
	if err := os.WriteFile(names, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok := RunAll(Inputs{ImageDir: dir, LabelDir: dir, SourceNames: names, TargetNames: names, OutputDir: dir})
	if err := Failures(ok); err != nil {
		t.Fatalf("expected no failures, got %v", err)
	}

	bad := RunAll(Inputs{ImageDir: dir, LabelDir: filepath.Join(dir, "missing"), SourceNames: names, TargetNames: dir, OutputDir: dir})
	err := Failures(bad)
	if err == nil {
		t.Fatal("expected failures")
	}
	for _, want := range []string{"Label directory", "Target names file"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "Image directory") {
		t.Fatalf("passing checks should not be reported: %v", err)
	}
}
