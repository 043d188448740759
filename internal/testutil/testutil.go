// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// CopyDir recursively copies the directory tree at src into dst,
// preserving file permission bits.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode().Perm())
	})
}

// CopyWiki copies testdata/<name> from the module root into a fresh temp
// directory and returns its path.
func CopyWiki(t *testing.T, testdataDir, name string) string {
	t.Helper()
	dst := t.TempDir()
	if err := CopyDir(filepath.Join(testdataDir, name), dst); err != nil {
		t.Fatalf("copy wiki %s: %v", name, err)
	}
	return dst
}

// WriteTree creates files under root. Keys are slash-separated relative paths.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// ReadFile returns the content of root/rel, failing the test on error.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}
