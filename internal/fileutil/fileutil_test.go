package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLines(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	if err := WriteLines(dst, []string{"0 0.5 0.5 0.1 0.1", "2 0.25 0.25 0.2 0.2"}); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	want := "0 0.5 0.5 0.1 0.1\n2 0.25 0.25 0.2 0.2\n"
	if string(got) != want {
		t.Fatalf("content mismatch: got %q, want %q", got, want)
	}
}

func TestWriteLinesReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(dst, []byte("stale\nstale\nstale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteLines(dst, []string{"fresh"}); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fresh\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteLinesLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WriteLines(filepath.Join(dir, "a.txt"), []string{"x"}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestWriteLinesEmpty(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "empty.txt")
	if err := WriteLines(dst, nil); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty file, got %d bytes", info.Size())
	}
}

func TestWriteLinesMissingDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.txt")
	if err := WriteLines(dst, []string{"x"}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewLineScannerLongLines(t *testing.T) {
	long := strings.Repeat("x", 200_000)
	scanner := NewLineScanner(strings.NewReader("a\n" + long + "\nb"))

	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 3 || got[1] != long || got[2] != "b" {
		t.Fatalf("unexpected lines: %d", len(got))
	}
}
