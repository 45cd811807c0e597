package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// TestLoadSearchDirs tests loading Go files from search directories
func TestLoadSearchDirs(t *testing.T) {
	tree := map[string]string{
		"a.go":                "package a\n\nfunc A() {}\n",
		"a_test.go":           "package a\n\nfunc helper() {}\n",
		"notes.txt":           "not go",
		"sub/b.go":            "package sub\n\nvar B = 1\n",
		"vendor/v/v.go":       "package v\n",
		"testdata/t.go":       "package broken {",
		".hidden/h.go":        "package h\n",
		"gen/zz_generated.go": "// Code generated by tool. DO NOT EDIT.\n\npackage gen\n",
		"excluded/skipped.go": "package excluded\n",
	}

	t.Run("loads go files including tests", func(t *testing.T) {
		// Arrange
		root := writeTree(t, tree)
		service := NewService(WithExcludes(ParseExcludes([]string{filepath.Join(root, "excluded")})))

		// Act
		result, err := service.LoadSearchDirs([]string{root})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"a.go", "a_test.go", "sub/b.go"}
		if len(result.Files) != len(want) {
			t.Fatalf("expected %d files, got %d: %v", len(want), len(result.Files), result.Files)
		}
		for _, name := range want {
			info, ok := result.Files[filepath.Join(root, filepath.FromSlash(name))]
			if !ok {
				t.Errorf("expected %s to be loaded", name)
				continue
			}
			if len(info.Source) == 0 || info.File == nil || info.FileSet == nil {
				t.Errorf("expected %s to carry source and syntax", name)
			}
		}
	})

	t.Run("walks vendor when asked", func(t *testing.T) {
		root := writeTree(t, tree)
		service := NewService(WithParseVendor(true))

		result, err := service.LoadSearchDirs([]string{root})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := result.Files[filepath.Join(root, "vendor", "v", "v.go")]; !ok {
			t.Error("expected vendor file to be loaded")
		}
	})

	t.Run("keeps generated files when asked", func(t *testing.T) {
		root := writeTree(t, tree)
		service := NewService(WithSkipGenerated(false))

		result, err := service.LoadSearchDirs([]string{root})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := result.Files[filepath.Join(root, "gen", "zz_generated.go")]; !ok {
			t.Error("expected generated file to be loaded")
		}
	})

	t.Run("reports unparsable files", func(t *testing.T) {
		root := writeTree(t, map[string]string{"bad.go": "package bad\nfunc {"})

		_, err := NewService().LoadSearchDirs([]string{root})

		if err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("handles non-existent directory", func(t *testing.T) {
		_, err := NewService().LoadSearchDirs([]string{"/non/existent/path"})

		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("deduplicates overlapping search directories", func(t *testing.T) {
		root := writeTree(t, tree)

		result, err := NewService().LoadSearchDirs([]string{root, filepath.Join(root, "sub")})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(result.Files) != 4 {
			t.Errorf("expected 4 files, got %d", len(result.Files))
		}
	})
}

// TestLoadWithGoPackages tests resolving package patterns through the go command
func TestLoadWithGoPackages(t *testing.T) {
	root := writeTree(t, map[string]string{
		"go.mod":              "module example.com/m\n\ngo 1.21\n",
		"a.go":                "package m\n\nfunc A() {}\n",
		"a_test.go":           "package m\n\nimport \"testing\"\n\nfunc TestA(t *testing.T) { A() }\n",
		"excluded/e.go":       "package excluded\n",
		"testdata/t.go":       "package broken {",
		"gen/zz_generated.go": "// Code generated by tool. DO NOT EDIT.\n\npackage gen\n",
	})
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("loads package and test files once", func(t *testing.T) {
		// Arrange
		service := NewService(WithExcludes(ParseExcludes([]string{filepath.Join(resolved, "excluded")})))

		// Act
		result, err := service.LoadWithGoPackages(root, []string{"./..."})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"a.go", "a_test.go"}
		if len(result.Files) != len(want) {
			t.Fatalf("expected %d files, got %d: %v", len(want), len(result.Files), result.Files)
		}
		for _, name := range want {
			if _, ok := result.Files[filepath.Join(resolved, name)]; !ok {
				t.Errorf("expected %s to be loaded", name)
			}
		}
		for path := range result.Files {
			if rel, err := filepath.Rel(resolved, path); err != nil || strings.HasPrefix(rel, "..") {
				t.Errorf("expected %s to be inside the root", path)
			}
		}
	})

	t.Run("reports unknown patterns", func(t *testing.T) {
		_, err := NewService().LoadWithGoPackages(root, []string{"./missing"})

		if err == nil {
			t.Error("expected error for a pattern matching no directory")
		}
	})
}

func TestSkipByDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"ok/a.go":       "package ok\n",
		"vendor/x/x.go": "package x\n",
	})
	service := NewService()

	if service.skipByDirectory(root, filepath.Join(root, "ok")) {
		t.Error("expected ok to be walked")
	}
	if !service.skipByDirectory(root, filepath.Join(root, "vendor", "x")) {
		t.Error("expected vendor to be skipped")
	}
	if !service.skipByDirectory(root, filepath.Dir(root)) {
		t.Error("expected directories outside root to be skipped")
	}
}
