package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/sys/unix"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFilesMatchesExtensionsRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "b.PNG"))
	writeFile(t, filepath.Join(root, "nested", "deeper", "c.JpEg"))
	writeFile(t, filepath.Join(root, "nested", "d.txt"))
	writeFile(t, filepath.Join(root, "noext"))
	writeFile(t, filepath.Join(root, "archive.jpg.bak"))

	got, err := Files(context.Background(), root, []string{".jpg", ".PNG", ".jpeg"}, nil)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	sort.Strings(got)

	want := []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "b.PNG"),
		filepath.Join(root, "nested", "deeper", "c.JpEg"),
	}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFilesEmptyFilterMatchesAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "sub", "noext"))

	got, err := Files(context.Background(), root, nil, nil)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %v", got)
	}
}

func TestFilesReturnsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "labels", "x.txt"))
	chdir(t, root)

	got, err := Files(context.Background(), "labels", []string{".txt"}, nil)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one file, got %v", got)
	}
	if !filepath.IsAbs(got[0]) {
		t.Fatalf("expected absolute path, got %q", got[0])
	}
	if filepath.Base(got[0]) != "x.txt" {
		t.Fatalf("unexpected file %q", got[0])
	}
}

func TestFilesMissingRoot(t *testing.T) {
	if _, err := Files(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestFilesHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Files(ctx, root, nil, nil); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestStemAndExt(t *testing.T) {
	cases := []struct {
		path string
		stem string
		ext  string
	}{
		{"/data/img/foo.jpg", "foo", ".jpg"},
		{"foo.JPG", "foo", ".JPG"},
		{"/a/b/frame.0001.png", "frame.0001", ".png"},
		{"/a/b/noext", "noext", ""},
		{"/a/b.dir/noext", "noext", ""},
		{"trailing.", "trailing", "."},
	}
	for _, tc := range cases {
		if got := Stem(tc.path); got != tc.stem {
			t.Errorf("Stem(%q) = %q, want %q", tc.path, got, tc.stem)
		}
		if got := Ext(tc.path); got != tc.ext {
			t.Errorf("Ext(%q) = %q, want %q", tc.path, got, tc.ext)
		}
	}
}

func TestExtensionSetMatch(t *testing.T) {
	set := NewExtensionSet([]string{".TXT", ".txt"})
	if got := set.List(); len(got) != 1 || got[0] != ".txt" {
		t.Fatalf("List = %v", got)
	}
	if !set.Match("LABEL.Txt") {
		t.Fatal("expected case-insensitive match")
	}
	if set.Match("label.txt.bak") {
		t.Fatal("only the last segment should be compared")
	}
}

func TestFilesSkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	if err := unix.Mkfifo(filepath.Join(root, "pipe.txt"), 0o644); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "pipe.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "alias.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	got, err := Files(context.Background(), root, []string{".txt"}, nil)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	sort.Strings(got)
	want := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "alias.txt")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Files = %v, want %v", got, want)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
