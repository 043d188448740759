package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLocation_Cleans(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/wiki/books/../note.md", "/wiki/note.md"},
		{"/wiki/./books/note.md", "/wiki/books/note.md"},
		{"/wiki/books/", "/wiki/books"},
		{"/wiki//books//note", "/wiki/books/note"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewLocation(tt.in).Path(), "NewLocation(%q)", tt.in)
	}
}

func TestLocation_Ext(t *testing.T) {
	assert.Equal(t, ".md", NewLocation("/wiki/note.md").Ext())
	assert.Equal(t, "", NewLocation("/wiki/note").Ext())
	assert.Equal(t, "", NewLocation("/wiki/.hidden").Ext())
	assert.Equal(t, ".gz", NewLocation("/wiki/archive.tar.gz").Ext())
}

func TestLocation_StemAndDir(t *testing.T) {
	loc := NewLocation("/wiki/books/note.md")
	assert.Equal(t, "note", loc.Stem())
	assert.Equal(t, "/wiki/books/note", loc.WithoutExt())
	assert.Equal(t, "/wiki/books", loc.Dir().Path())
}

func TestLocation_InDiary(t *testing.T) {
	root := NewLocation("/wiki")
	assert.True(t, NewLocation("/wiki/diary/2020-01-01.md").InDiary(root))
	assert.True(t, NewLocation("/wiki/diary/sub/entry.md").InDiary(root))
	assert.False(t, NewLocation("/wiki/diary.md").InDiary(root))
	assert.False(t, NewLocation("/wiki/diaryish/entry.md").InDiary(root))
	assert.False(t, NewLocation("/elsewhere/diary/x.md").InDiary(root))
}

func TestLocation_InDiary_IgnoresDirsAboveRoot(t *testing.T) {
	root := NewLocation("/home/u/diary/wiki")
	assert.False(t, NewLocation("/home/u/diary/wiki/notes/x.md").InDiary(root))
	assert.False(t, NewLocation("/home/u/diary/wiki/x.md").InDiary(root))
	assert.True(t, NewLocation("/home/u/diary/wiki/diary/x.md").InDiary(root))
}

func TestLocation_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same path", "/wiki/note.md", "/wiki/note.md", true},
		{"one side without extension", "/wiki/note", "/wiki/note.md", true},
		{"other side without extension", "/wiki/note.md", "/wiki/note", true},
		{"neither has extension", "/wiki/note", "/wiki/note", true},
		{"different extensions", "/wiki/note.md", "/wiki/note.wiki", false},
		{"stem prefix is not a match", "/wiki/note", "/wiki/notebook.md", false},
		{"different directory", "/wiki/a/note.md", "/wiki/b/note.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLocation(tt.a).Equal(NewLocation(tt.b)))
			assert.Equal(t, tt.want, NewLocation(tt.b).Equal(NewLocation(tt.a)), "symmetric")
		})
	}
}
