package core

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ryotapoi/wikimv/internal/logging"
)

// Build parses every document of the wiki and creates the link index.
// The index is written to a temporary file and renamed into place, so a
// failed build leaves the previous index untouched.
func Build(ctx context.Context, wikiRoot string) error {
	lg := logging.FromContext(ctx)

	root, err := absLocation(wikiRoot)
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(root.Path())
	if err != nil {
		return err
	}
	if _, err := ensureDataDir(root.Path()); err != nil {
		return err
	}
	files, err := collectFiles(root.Path(), cfg.Rename.ExcludePaths)
	if err != nil {
		return err
	}

	tmpPath := dbPath(root.Path()) + ".tmp"
	_ = os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	db, err := openDBAt(tmpPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	docs, links := 0, 0
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(root.Path(), rel)
		info, err := os.Stat(full)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return err
		}
		if isBinary(data) {
			continue
		}
		sourceID, err := insertDocument(tx, rel, info.ModTime().Unix())
		if err != nil {
			return err
		}
		docs++

		wc, err := NewWikiContext(root, NewLocation(full))
		if err != nil {
			return err
		}
		text := string(data)
		for _, m := range ParseLinks(text) {
			if m.Path == "" {
				continue
			}
			target := newIndexedTarget(root, wc.ResolveMatch(m))
			if err := insertLink(tx, sourceID, m, target, lineOf(text, m.Start)); err != nil {
				return err
			}
			links++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	if err := db.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dbPath(root.Path())); err != nil {
		return err
	}
	lg.Info("index built", "documents", docs, "links", links)
	return nil
}
