package core

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath cleans a wiki-relative path: forward slashes, no leading "./".
func NormalizePath(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	return strings.TrimPrefix(clean, "./")
}

func isURL(target string) bool {
	return strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:")
}

// isBinary reports whether content has a NUL byte in its first 8000 bytes.
func isBinary(content []byte) bool {
	n := min(len(content), 8000)
	for i := 0; i < n; i++ {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// collectFiles returns the wiki-relative paths of every regular file under
// root, skipping the data directory and paths matching an exclude pattern.
func collectFiles(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = NormalizePath(rel)
		if d.IsDir() {
			if d.Name() == dataDirName && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matchesAny(excludes, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if globMatch(p, path) {
			return true
		}
	}
	return false
}

// withinRoot reports whether loc lies strictly inside root.
func withinRoot(root, loc Location) bool {
	rel, err := filepath.Rel(root.Path(), loc.Path())
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, "../")
}

// CleanupEmptyDirs removes empty directories left after a file moved away.
// It walks from each path's parent directory upward, removing empty directories
// until it reaches root or encounters a non-empty directory.
func CleanupEmptyDirs(root string, paths []string) {
	cleaned := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(filepath.Join(root, p))
		for {
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				break
			}
			rel = filepath.ToSlash(rel)
			if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
				break // reached wiki root
			}
			if cleaned[dir] {
				break
			}
			if err := os.Remove(dir); err != nil {
				break // non-empty or permission error
			}
			cleaned[dir] = true
			dir = filepath.Dir(dir)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
