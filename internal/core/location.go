package core

import (
	"path/filepath"
	"strings"
)

// diaryDirName is the reserved directory holding diary pages.
const diaryDirName = "diary"

// Location is a cleaned absolute path inside the wiki tree.
// The zero value is not a valid Location; use NewLocation.
type Location struct {
	path string
}

// NewLocation cleans path: separators canonicalized, "." and ".." resolved,
// no trailing slash.
func NewLocation(path string) Location {
	return Location{path: filepath.Clean(path)}
}

// Path returns the cleaned path.
func (l Location) Path() string { return l.path }

func (l Location) String() string { return l.path }

// Ext returns the extension including the dot, or "" when there is none.
// A dotfile such as ".hidden" has no extension.
func (l Location) Ext() string {
	base := filepath.Base(l.path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// WithoutExt returns the path with its extension stripped.
func (l Location) WithoutExt() string {
	return strings.TrimSuffix(l.path, l.Ext())
}

// Stem returns the base name without extension.
func (l Location) Stem() string {
	return filepath.Base(l.WithoutExt())
}

// Dir returns the directory containing l.
func (l Location) Dir() Location {
	return Location{path: filepath.Dir(l.path)}
}

// InDiary reports whether some directory segment of l below root is the
// diary directory. Directories above root are not considered.
func (l Location) InDiary(root Location) bool {
	rel, err := filepath.Rel(root.Path(), l.Dir().Path())
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == diaryDirName {
			return true
		}
	}
	return false
}

// Equal reports whether l and other denote the same file. When both carry an
// extension the paths must match exactly; otherwise they are compared with
// extensions stripped, so a link written without an extension matches the
// file whatever its extension.
func (l Location) Equal(other Location) bool {
	if l.Ext() != "" && other.Ext() != "" {
		return l.path == other.path
	}
	return l.WithoutExt() == other.WithoutExt()
}
