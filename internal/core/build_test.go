package core

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/wikimv/internal/logging"
)

func TestBuild_CreatesIndex(t *testing.T) {
	wiki := copyWiki(t)
	lg, th := logging.NewTestLogger()
	require.NoError(t, Build(logging.WithLogger(context.Background(), lg), wiki))

	assert.FileExists(t, filepath.Join(wiki, dataDirName, dbFileName))
	assert.NoFileExists(t, filepath.Join(wiki, dataDirName, dbFileName+".tmp"))

	built := th.Find("index built")
	require.Len(t, built, 1)
	assert.Equal(t, int64(5), built[0].Attrs["documents"])
	assert.Equal(t, int64(12), built[0].Attrs["links"])
}

func TestBuild_StoresResolvedTargets(t *testing.T) {
	wiki := copyWiki(t)
	require.NoError(t, Build(context.Background(), wiki))

	db, err := openIndex(wiki)
	require.NoError(t, err)
	defer db.Close()

	var target, stem string
	var hasExt, line int
	err = db.QueryRow(`SELECT l.target, l.target_stem, l.target_has_ext, l.line
		FROM links l JOIN documents d ON d.id = l.source_id
		WHERE d.path = ? AND l.notation = ?`, "index.md", NotationTransclusion.String()).
		Scan(&target, &stem, &hasExt, &line)
	require.NoError(t, err)
	assert.Equal(t, "books/note.md", target)
	assert.Equal(t, "books/note", stem)
	assert.Equal(t, 1, hasExt)
	assert.Equal(t, 5, line)
}

func TestBuild_SkipsBinaryAndExcluded(t *testing.T) {
	wiki := copyWiki(t)
	require.NoError(t, os.WriteFile(filepath.Join(wiki, "img.png"), []byte{0x89, 'P', 'N', 'G', 0}, 0o644))
	writeConfig(t, wiki, "rename:\n  exclude_paths: [\"diary/*\"]\n")
	require.NoError(t, Build(context.Background(), wiki))

	db, err := openIndex(wiki)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM documents WHERE path IN (?, ?)`,
		"img.png", "diary/2020-02-02.md").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestBuild_Rebuild(t *testing.T) {
	wiki := copyWiki(t)
	require.NoError(t, Build(context.Background(), wiki))
	require.NoError(t, os.WriteFile(filepath.Join(wiki, "extra.md"), []byte("[[index]]\n"), 0o644))
	require.NoError(t, Build(context.Background(), wiki))

	links, err := Backlinks(wiki, "index.md")
	require.NoError(t, err)
	var files []string
	for _, b := range links {
		files = append(files, b.File)
	}
	assert.Equal(t, []string{"books/note.md", "books/note.md", "extra.md"}, files)
}

func TestOpenIndex_NotBuilt(t *testing.T) {
	_, err := openIndex(t.TempDir())
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestInitSchema_Idempotent(t *testing.T) {
	db, err := openDBAt(filepath.Join(t.TempDir(), "x.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, initSchema(db))
	require.NoError(t, initSchema(db))
	assert.Equal(t, 0, countRows(t, db, "documents"))
	assert.Equal(t, 0, countRows(t, db, "links"))
}
