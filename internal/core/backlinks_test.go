package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacklinks(t *testing.T) {
	wiki := copyWiki(t)
	require.NoError(t, Build(context.Background(), wiki))

	links, err := Backlinks(wiki, "books/note.md")
	require.NoError(t, err)
	require.Len(t, links, 6)

	assert.Equal(t, Backlink{File: "books/other.md", Line: 1, Notation: NotationWiki, RawLink: "[[note]]"}, links[0])
	assert.Equal(t, Backlink{File: "books/other.md", Line: 1, Notation: NotationWiki, RawLink: "[[ note | spaced ]]"}, links[1])
	assert.Equal(t, "diary/2020-02-02.md", links[2].File)
	assert.Equal(t, "[[../books/note#chapter-1]]", links[2].RawLink)
	assert.Equal(t, "index.md", links[3].File)
	assert.Equal(t, NotationMarkdown, links[3].Notation)
	assert.Equal(t, 3, links[3].Line)
}

func TestBacklinks_ExtensionTolerance(t *testing.T) {
	wiki := copyWiki(t)
	require.NoError(t, Build(context.Background(), wiki))

	withExt, err := Backlinks(wiki, "books/note.md")
	require.NoError(t, err)
	withoutExt, err := Backlinks(wiki, "books/note")
	require.NoError(t, err)
	assert.Equal(t, withExt, withoutExt)

	other, err := Backlinks(wiki, "books/note.wiki")
	require.NoError(t, err)
	assert.Len(t, other, 5, "only links written without an extension match a different one")

	nb, err := Backlinks(wiki, "books/notebook.md")
	require.NoError(t, err)
	require.Len(t, nb, 1)
	assert.Equal(t, "[[notebook]]", nb[0].RawLink)
}

func TestBacklinks_NoIndex(t *testing.T) {
	_, err := Backlinks(t.TempDir(), "a.md")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}
