package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func scanRel(t *testing.T, s *Scanner, root string) []string {
	t.Helper()
	files, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel failed: %v", err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestScanExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.zig", "x")
	writeFile(t, root, "src/notes.md", "x")
	writeFile(t, root, "pkg/util.zig", "x")

	s := New(Options{Extensions: []string{".zig"}})
	got := scanRel(t, s, root)

	want := []string{"pkg/util.zig", "src/main.zig"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestScanIgnoreDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.zig", "x")
	writeFile(t, root, "vendor/dep/lib.zig", "x")

	s := New(Options{Extensions: []string{".zig"}, IgnoreDirs: []string{"vendor"}})
	got := scanRel(t, s, root)

	if len(got) != 1 || got[0] != "src/main.zig" {
		t.Errorf("Expected only src/main.zig, got %v", got)
	}
}

func TestScanRegularFilesOnly(t *testing.T) {
	root := t.TempDir()
	target := writeFile(t, root, "src/real.zig", "x")

	link := filepath.Join(root, "src", "link.zig")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	s := New(Options{Extensions: []string{".zig"}})
	got := scanRel(t, s, root)

	if len(got) != 1 || got[0] != "src/real.zig" {
		t.Errorf("Expected symlink excluded, got %v", got)
	}
}

func TestScanGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\nsrc/skipme.zig\n")
	writeFile(t, root, "src/main.zig", "x")
	writeFile(t, root, "src/skipme.zig", "x")
	writeFile(t, root, "generated/out.zig", "x")

	s := New(Options{Extensions: []string{".zig"}, UseGitignore: true})
	got := scanRel(t, s, root)

	if len(got) != 1 || got[0] != "src/main.zig" {
		t.Errorf("Expected gitignored files excluded, got %v", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	s := New(Options{Extensions: []string{".zig"}})
	if _, err := s.Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing root")
	}
}

func TestScanRootIsFile(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "file.zig", "x")

	s := New(Options{Extensions: []string{".zig"}})
	if _, err := s.Scan(path); err == nil {
		t.Error("Expected error for non-directory root")
	}
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.zig", "x")
	writeFile(t, root, "b.zig", "x")

	s := New(Options{Extensions: []string{".zig"}})
	seen := 0
	err := s.Walk(root, func(path string) error {
		seen++
		return os.ErrClosed
	})
	if err == nil {
		t.Fatal("Expected callback error to propagate")
	}
	if seen != 1 {
		t.Errorf("Expected walk to stop after first callback error, saw %d files", seen)
	}
}
