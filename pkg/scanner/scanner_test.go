package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestDirScanner_List(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []string{
		"file1.txt",
		"Photo.JPG",
		".hidden_file",
		"subdir/file3.txt",
	}

	for _, file := range testFiles {
		fullPath := filepath.Join(tempDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("test content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	s := NewDirScanner(afero.NewOsFs())
	entries, err := s.List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	expected := map[string]struct {
		kind Kind
		ext  string
	}{
		".hidden_file": {KindFile, ""},
		"Photo.JPG":    {KindFile, ".jpg"},
		"file1.txt":    {KindFile, ".txt"},
		"subdir":       {KindDir, ""},
	}

	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}

	for _, entry := range entries {
		want, ok := expected[entry.Name]
		if !ok {
			t.Errorf("Unexpected entry %s", entry.Name)
			continue
		}
		if entry.Kind != want.kind {
			t.Errorf("%s: kind = %s, want %s", entry.Name, entry.Kind, want.kind)
		}
		if entry.Extension != want.ext {
			t.Errorf("%s: extension = %q, want %q", entry.Name, entry.Extension, want.ext)
		}
		if entry.Path != filepath.Join(tempDir, entry.Name) {
			t.Errorf("%s: unexpected path %s", entry.Name, entry.Path)
		}
	}
}

func TestDirScanner_List_NonRecursive(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/root/deep/nested", 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := afero.WriteFile(fs, "/root/deep/nested/a.jpg", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	entries, err := NewDirScanner(fs).List("/root")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(entries) != 1 || entries[0].Name != "deep" || entries[0].Kind != KindDir {
		t.Errorf("Expected only the deep directory, got %+v", entries)
	}
}

func TestDirScanner_List_NonExistentDir(t *testing.T) {
	s := NewDirScanner(afero.NewMemMapFs())
	if _, err := s.List("/non/existent/directory"); err == nil {
		t.Error("Expected error for non-existent directory")
	}
}

func TestDirScanner_IsDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/data", 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := afero.WriteFile(fs, "/data/file.txt", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	s := NewDirScanner(fs)

	testCases := []struct {
		path     string
		expected bool
	}{
		{"/data", true},
		{"/data/file.txt", false},
		{"/missing", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			ok, err := s.IsDir(tc.path)
			if err != nil {
				t.Fatalf("IsDir() error = %v", err)
			}
			if ok != tc.expected {
				t.Errorf("IsDir(%s) = %v, want %v", tc.path, ok, tc.expected)
			}
		})
	}
}

func TestDirScanner_List_WithSymlinks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping symlink test in short mode")
	}

	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	dirPath := filepath.Join(tempDir, "dir")
	if err := os.Mkdir(dirPath, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.Symlink(filePath, filepath.Join(tempDir, "link.txt")); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}
	if err := os.Symlink(dirPath, filepath.Join(tempDir, "linkdir")); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "gone"), filepath.Join(tempDir, "dangling")); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	entries, err := NewDirScanner(afero.NewOsFs()).List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	kinds := make(map[string]Kind)
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}

	if kinds["link.txt"] != KindFile {
		t.Errorf("Expected link.txt to be a file, got %s", kinds["link.txt"])
	}
	if kinds["linkdir"] != KindDir {
		t.Errorf("Expected linkdir to be a dir, got %s", kinds["linkdir"])
	}
	if kinds["dangling"] != KindOther {
		t.Errorf("Expected dangling to be other, got %s", kinds["dangling"])
	}
}
