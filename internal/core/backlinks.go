package core

import (
	"fmt"
)

// Backlink is an indexed link pointing at a queried file.
type Backlink struct {
	File     string // wiki-relative path of the linking document
	Line     int
	Notation Notation
	RawLink  string
}

// Backlinks returns the indexed links whose target is target, using the same
// extension-tolerant equality as rename. Relative targets are taken from the
// wiki root.
func Backlinks(wikiRoot, target string) ([]Backlink, error) {
	root, err := absLocation(wikiRoot)
	if err != nil {
		return nil, err
	}
	db, err := openIndex(root.Path())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	t := newIndexedTarget(root, wikiLocation(root, target))
	query := `SELECT d.path, l.line, l.notation, l.raw_link
		FROM links l JOIN documents d ON d.id = l.source_id`
	var args []any
	if t.hasExt {
		query += ` WHERE (l.target_has_ext = 1 AND l.target = ?) OR (l.target_has_ext = 0 AND l.target_stem = ?)`
		args = append(args, t.path, t.stem)
	} else {
		query += ` WHERE l.target_stem = ?`
		args = append(args, t.stem)
	}
	query += ` ORDER BY d.path, l.line, l.id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query backlinks: %w", err)
	}
	defer rows.Close()

	var out []Backlink
	for rows.Next() {
		var b Backlink
		var notation string
		if err := rows.Scan(&b.File, &b.Line, &notation, &b.RawLink); err != nil {
			return nil, err
		}
		n, ok := ParseNotation(notation)
		if !ok {
			return nil, fmt.Errorf("index has unknown notation %q: rebuild with 'wikimv index'", notation)
		}
		b.Notation = n
		out = append(out, b)
	}
	return out, rows.Err()
}
