package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformedContext reports a content path that has no containing directory
// inside the wiki, such as the wiki root itself.
var ErrMalformedContext = errors.New("malformed wiki context")

// WikiContext is the frame of reference for resolving the links of one
// document: the wiki root and the document's own location.
type WikiContext struct {
	root    Location
	content Location
}

// NewWikiContext pairs root with the document at content.
func NewWikiContext(root, content Location) (WikiContext, error) {
	if content.Path() == root.Path() || content.Dir().Path() == content.Path() {
		return WikiContext{}, fmt.Errorf("%w: %s has no parent directory", ErrMalformedContext, content)
	}
	return WikiContext{root: root, content: content}, nil
}

// Root returns the wiki root.
func (wc WikiContext) Root() Location { return wc.root }

// Content returns the location of the current document.
func (wc WikiContext) Content() Location { return wc.content }

// Resolve turns a link's prefix and path into a Location. A leading "/"
// anchors the path at the wiki root; otherwise it is relative to the
// document's directory. The diary prefix always resolves into the diary
// directory, with or without a leading "/". The extension is kept as written.
func (wc WikiContext) Resolve(prefix, path string) Location {
	rest := strings.TrimPrefix(path, "/")
	var base string
	switch {
	case prefix == prefixDiary:
		base = filepath.Join(wc.root.Path(), diaryDirName)
	case strings.HasPrefix(path, "/"):
		base = wc.root.Path()
	default:
		base = wc.content.Dir().Path()
	}
	return NewLocation(filepath.Join(base, filepath.FromSlash(rest)))
}

// ResolveMatch resolves the target of m.
func (wc WikiContext) ResolveMatch(m LinkMatch) Location {
	return wc.Resolve(m.Prefix, m.Path)
}

// RelativeTo returns the slash-separated path of loc, extension stripped,
// relative to the document's directory. ok is false when no relative path
// exists. When the stripped path names the document's own directory, as for
// books.md seen from inside books/, the path goes through the parent.
func (wc WikiContext) RelativeTo(loc Location) (rel string, ok bool) {
	docDir := wc.content.Dir().Path()
	r, err := filepath.Rel(docDir, loc.WithoutExt())
	if err != nil {
		return "", false
	}
	if r == "." {
		up, err := filepath.Rel(docDir, loc.Dir().Path())
		if err != nil {
			return "", false
		}
		r = filepath.Join(up, loc.Stem())
	}
	return filepath.ToSlash(r), true
}

// InDiary reports whether loc lies in the diary area of the wiki.
func (wc WikiContext) InDiary(loc Location) bool {
	return loc.InDiary(wc.root)
}

// ResolvedLink is a link found in a document together with its target.
type ResolvedLink struct {
	Notation Notation
	Raw      string
	Prefix   string
	Path     string
	Display  string // prefix:path as it reads in the link
	Line     int
	Target   string // absolute target location
}

// ResolveLinks finds the links in text and resolves each one as if text were
// written in document. A relative document is taken from the wiki root.
func ResolveLinks(wikiRoot, document, text string) ([]ResolvedLink, error) {
	root, err := absLocation(wikiRoot)
	if err != nil {
		return nil, err
	}
	wc, err := NewWikiContext(root, wikiLocation(root, document))
	if err != nil {
		return nil, err
	}
	matches := ParseLinks(text)
	if len(matches) == 0 {
		return nil, fmt.Errorf("could not parse link: %s", text)
	}
	out := make([]ResolvedLink, 0, len(matches))
	for _, m := range matches {
		out = append(out, ResolvedLink{
			Notation: m.Notation,
			Raw:      m.Raw(),
			Prefix:   m.Prefix,
			Path:     m.Path,
			Display:  m.Display(),
			Line:     lineOf(text, m.Start),
			Target:   wc.ResolveMatch(m).Path(),
		})
	}
	return out, nil
}

func absLocation(path string) (Location, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Location{}, err
	}
	return NewLocation(abs), nil
}
