package core

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	dataDirName = ".wikimv"
	dbFileName  = "index.sqlite"
)

// ErrIndexNotFound is returned by index queries before the index is built.
var ErrIndexNotFound = errors.New("index not found: run 'wikimv index' first")

// dbExecer is satisfied by *sql.DB and *sql.Tx.
type dbExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func dbPath(wikiRoot string) string {
	return filepath.Join(wikiRoot, dataDirName, dbFileName)
}

func ensureDataDir(wikiRoot string) (string, error) {
	dir := filepath.Join(wikiRoot, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

// openIndex opens the index of wikiRoot, failing with ErrIndexNotFound when
// it has not been built.
func openIndex(wikiRoot string) (*sql.DB, error) {
	dbp := dbPath(wikiRoot)
	if _, err := os.Stat(dbp); os.IsNotExist(err) {
		return nil, ErrIndexNotFound
	}
	return openDBAt(dbp)
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id    INTEGER PRIMARY KEY,
			path  TEXT NOT NULL UNIQUE,
			mtime INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id             INTEGER PRIMARY KEY,
			source_id      INTEGER NOT NULL,
			notation       TEXT NOT NULL,
			raw_link       TEXT NOT NULL,
			prefix         TEXT,
			path           TEXT NOT NULL,
			target         TEXT NOT NULL,
			target_stem    TEXT NOT NULL,
			target_has_ext INTEGER NOT NULL,
			line           INTEGER,
			FOREIGN KEY(source_id) REFERENCES documents(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON links(source_id);`,
		`CREATE INDEX IF NOT EXISTS idx_links_target ON links(target);`,
		`CREATE INDEX IF NOT EXISTS idx_links_target_stem ON links(target_stem);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertDocument(db dbExecer, path string, mtime int64) (int64, error) {
	res, err := db.Exec(`INSERT INTO documents (path, mtime) VALUES (?, ?)`, path, mtime)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// indexedTarget is a resolved link target stored relative to the wiki root.
type indexedTarget struct {
	path   string
	stem   string
	hasExt bool
}

func newIndexedTarget(root, loc Location) indexedTarget {
	return indexedTarget{
		path:   relToRoot(root, loc),
		stem:   relToRoot(root, NewLocation(loc.WithoutExt())),
		hasExt: loc.Ext() != "",
	}
}

func insertLink(db dbExecer, sourceID int64, m LinkMatch, t indexedTarget, line int) error {
	hasExt := 0
	if t.hasExt {
		hasExt = 1
	}
	_, err := db.Exec(
		`INSERT INTO links (source_id, notation, raw_link, prefix, path, target, target_stem, target_has_ext, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sourceID, m.Notation.String(), m.Raw(), m.Prefix, m.Path, t.path, t.stem, hasExt, line,
	)
	return err
}
