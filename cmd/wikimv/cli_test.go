package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/wikimv/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func copyWiki(t *testing.T) string {
	t.Helper()
	return testutil.CopyWiki(t, "../../testdata", "wiki_rename")
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "wikimv version "))
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: unknown command")
}

func TestRename_WrongArgCount(t *testing.T) {
	code, _, errOut := runCLI(t, "rename", "only-one")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 2 arg(s)")
}

func TestRename_InvalidFormat(t *testing.T) {
	code, _, errOut := runCLI(t, "rename", "a.md", "b.md", "--format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid format")
}

func TestRename_InvalidColor(t *testing.T) {
	code, _, errOut := runCLI(t, "rename", "a.md", "b.md", "--color", "sometimes")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid color mode")
}

func TestRename_DryRunText(t *testing.T) {
	wiki := copyWiki(t)
	before := testutil.ReadFile(t, wiki, "index.md")

	code, out, errOut := runCLI(t, "--wiki", wiki, "rename", "books/note.md", "archive/renamed.md", "--dry-run", "--color", "never")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "would rewrite 6 links in 3 files (books/note.md -> archive/renamed.md)\n")
	assert.Contains(t, out, "index.md:3: [Note](books/note) -> [Note](archive/renamed)\n")
	assert.Contains(t, out, "--- a/index.md\n")
	assert.Contains(t, out, "+- [Note](archive/renamed)\n")
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, before, testutil.ReadFile(t, wiki, "index.md"))
}

func TestRename_MoveJSON(t *testing.T) {
	wiki := copyWiki(t)
	code, out, errOut := runCLI(t, "--wiki", wiki, "rename", "books/note.md", "archive/renamed.md", "--move", "--format", "json")
	require.Equal(t, 0, code, errOut)

	var got struct {
		From   string `json:"from"`
		To     string `json:"to"`
		DryRun bool   `json:"dry_run"`
		Moved  bool   `json:"moved"`
		Files  []struct {
			File  string `json:"file"`
			Links []struct {
				Line     int    `json:"line"`
				Notation string `json:"notation"`
				Old      string `json:"old"`
				New      string `json:"new"`
			} `json:"links"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "books/note.md", got.From)
	assert.True(t, got.Moved)
	assert.False(t, got.DryRun)
	require.Len(t, got.Files, 4)
	assert.Equal(t, "books/note.md", got.Files[0].File)
	assert.Equal(t, "[sibling](other)", got.Files[0].Links[0].Old)
	assert.Equal(t, "[sibling](../books/other)", got.Files[0].Links[0].New)
	assert.FileExists(t, wiki+"/archive/renamed.md")
}

func TestRename_LogLevelDebug(t *testing.T) {
	wiki := copyWiki(t)
	code, _, errOut := runCLI(t, "--wiki", wiki, "--log-level", "debug", "rename", "books/note.md", "x.md", "--dry-run")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "msg=\"walking wiki\"")
	assert.Contains(t, errOut, "msg=\"rename complete\"")
}

func TestIndexBacklinksStats(t *testing.T) {
	wiki := copyWiki(t)

	code, _, errOut := runCLI(t, "--wiki", wiki, "backlinks", "books/note.md")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "index not found")

	code, _, errOut = runCLI(t, "--wiki", wiki, "index")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := runCLI(t, "--wiki", wiki, "backlinks", "books/notebook")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "books/other.md:2: [[notebook]]\n", out)

	code, out, errOut = runCLI(t, "--wiki", wiki, "backlinks", "books/note.md", "--format", "json")
	require.Equal(t, 0, code, errOut)
	var links []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	assert.Len(t, links, 6)

	code, out, errOut = runCLI(t, "--wiki", wiki, "stats", "--fields", "documents_total,transclusions")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "documents_total: 5\ntransclusions: 1\n", out)

	code, _, errOut = runCLI(t, "--wiki", wiki, "stats", "--fields", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown stats field: nope")
}

func TestResolve(t *testing.T) {
	code, _, errOut := runCLI(t, "resolve", "[[x]]")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "--from is required")

	code, out, errOut := runCLI(t, "--wiki", "/dropbox/vimwiki", "resolve", "--from", "books/note.md", "[[diary:2020-02-02|day]]")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "link: [[diary:2020-02-02|day]]\nnotation: wikilink\npath: diary:2020-02-02\ntarget: /dropbox/vimwiki/diary/2020-02-02\n", out)

	code, _, errOut = runCLI(t, "--wiki", "/dropbox/vimwiki", "resolve", "--from", "books/note.md", "no links here")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "could not parse link")
}
