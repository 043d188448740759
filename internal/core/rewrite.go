package core

import (
	"os"
	"path/filepath"
	"strings"
)

// RenameOperation is the file being renamed and its new location.
type RenameOperation struct {
	From Location
	To   Location
}

// NewRenameOperation cleans from and to.
func NewRenameOperation(from, to string) RenameOperation {
	return RenameOperation{From: NewLocation(from), To: NewLocation(to)}
}

// RewrittenLink records a single link rewrite.
type RewrittenLink struct {
	File     string
	Line     int
	Notation Notation
	OldLink  string
	NewLink  string
}

// RewriteDocument returns content with every link that resolves to op.From
// pointed at op.To. All other text, including links to other targets, is
// returned byte for byte.
func RewriteDocument(content string, wc WikiContext, op RenameOperation) string {
	out, _ := rewriteDocument(content, wc, op)
	return out
}

// rewriteDocument runs the markdown, wiki-link and transclusion passes in
// order, each over the output of the previous one.
func rewriteDocument(content string, wc WikiContext, op RenameOperation) (string, []RewrittenLink) {
	var edits []RewrittenLink
	for _, n := range Notations {
		var pass []RewrittenLink
		content, pass = rewritePass(n, content, func(m LinkMatch) (string, bool) {
			return replacementFor(wc, op, m)
		})
		edits = append(edits, pass...)
	}
	return content, edits
}

// rewritePass folds the matches of notation n into a new string, substituting
// the matches for which replace returns ok.
func rewritePass(n Notation, text string, replace func(LinkMatch) (string, bool)) (string, []RewrittenLink) {
	var b strings.Builder
	var edits []RewrittenLink
	last := 0
	for m := range ScanLinks(n, text) {
		repl, ok := replace(m)
		if !ok || repl == m.Raw() {
			continue
		}
		b.WriteString(text[last:m.Start])
		b.WriteString(repl)
		last = m.End
		edits = append(edits, RewrittenLink{
			Line:     lineOf(text, m.Start),
			Notation: n,
			OldLink:  m.Raw(),
			NewLink:  repl,
		})
	}
	if len(edits) == 0 {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), edits
}

// replacementFor builds the new link text for m, or reports false when m does
// not refer to op.From or cannot be rewritten safely.
func replacementFor(wc WikiContext, op RenameOperation, m LinkMatch) (string, bool) {
	if m.Path == "" {
		return "", false
	}
	if !wc.ResolveMatch(m).Equal(op.From) {
		return "", false
	}

	var target string
	if wc.InDiary(op.To) {
		// Diary pages are always referenced as diary:<name>.
		stem := op.To.Stem()
		if stem == "" {
			return "", false
		}
		target = prefixDiary + ":" + stem
	} else {
		rel, ok := wc.RelativeTo(op.To)
		if !ok || rel == "" {
			return "", false
		}
		target = rel
		if m.Prefix != "" && m.Prefix != prefixDiary {
			target = m.Prefix + ":" + rel
		}
	}
	return m.Left + target + spacedRight(m.Right), true
}

// spacedRight puts a space in front of a right side that starts with the
// description separator. The path in front of it is written trimmed.
func spacedRight(right string) string {
	if strings.HasPrefix(right, "|") {
		return " " + right
	}
	return right
}

// RebaseDocument rewrites the relative links of a document moved from the
// location of src to the location of dst, so they keep pointing at the same
// files. Root-anchored links, diary links and URLs are left alone, as is the
// extension written in each link.
func RebaseDocument(content string, src, dst WikiContext) (string, []RewrittenLink) {
	if src.Content().Dir().Path() == dst.Content().Dir().Path() {
		return content, nil
	}
	var edits []RewrittenLink
	for _, n := range Notations {
		var pass []RewrittenLink
		content, pass = rewritePass(n, content, func(m LinkMatch) (string, bool) {
			if m.Path == "" || m.Prefix == prefixDiary || strings.HasPrefix(m.Path, "/") || isURL(m.Path) {
				return "", false
			}
			target := src.ResolveMatch(m)
			rel, err := filepath.Rel(dst.Content().Dir().Path(), target.Path())
			if err != nil {
				return "", false
			}
			return m.Left + m.prefixText() + filepath.ToSlash(rel) + spacedRight(m.Right), true
		})
		edits = append(edits, pass...)
	}
	return content, edits
}

// rewriteBackup holds original file content for rollback on failure.
type rewriteBackup struct {
	path    string
	content []byte
	perm    os.FileMode
}

// writeFilePreservePerm writes data to path with the given permission bits.
// os.WriteFile applies umask on file creation, so os.Chmod is called to
// ensure the exact permission bits are set.
func writeFilePreservePerm(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// restoreBackups restores files to their original content (best-effort).
func restoreBackups(backups []rewriteBackup) {
	for _, fb := range backups {
		_ = writeFilePreservePerm(fb.path, fb.content, fb.perm)
	}
}
