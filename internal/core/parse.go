package core

import (
	"iter"
	"regexp"
	"sort"
	"strings"
)

// Notation identifies one of the supported link syntaxes.
type Notation int

const (
	NotationMarkdown     Notation = iota // [description](path)
	NotationWiki                         // [[path|description]]
	NotationTransclusion                 // {{path|description|attrs}}
)

// Notations lists the notations in the order rewrite passes are applied.
var Notations = []Notation{NotationMarkdown, NotationWiki, NotationTransclusion}

func (n Notation) String() string {
	switch n {
	case NotationMarkdown:
		return "markdown"
	case NotationWiki:
		return "wikilink"
	case NotationTransclusion:
		return "transclusion"
	}
	return "unknown"
}

// ParseNotation is the inverse of Notation.String.
func ParseNotation(s string) (Notation, bool) {
	for _, n := range Notations {
		if n.String() == s {
			return n, true
		}
	}
	return 0, false
}

// Link prefixes. A diary prefix resolves into the diary directory; file and
// local behave like an unprefixed path.
const (
	prefixDiary = "diary"
	prefixFile  = "file"
	prefixLocal = "local"
)

// Each pattern captures left, prefix, path and right. No part may span a
// line, and the right side stops at the first closing delimiter so one match
// never swallows the next link on the same line.
var linkPatterns = map[Notation]*regexp.Regexp{
	NotationMarkdown: regexp.MustCompile(
		`(?P<left>\[[^\]\n]*\]\()(?:(?P<prefix>diary|file|local):)?(?P<path>[^#)\n]+)(?P<right>(?:#[^)\n]*)?\))`),
	NotationWiki: regexp.MustCompile(
		`(?P<left>\[\[[ \t]*)(?:(?P<prefix>diary|file|local):)?(?P<path>[^#|\n]+?)(?P<right>(?:[#|][^\n]*?)?\]\])`),
	NotationTransclusion: regexp.MustCompile(
		`(?P<left>\{\{[ \t]*)(?:(?P<prefix>diary|file|local):)?(?P<path>[^#|\n]+?)(?P<right>(?:[#|][^\n]*?)?\}\})`),
}

// LinkMatch is one link occurrence found in a text.
type LinkMatch struct {
	Notation Notation
	Start    int    // byte offset of the match in the scanned text
	End      int    // byte offset just past the match
	Left     string // opening delimiter, including any whitespace after it
	Prefix   string // "diary", "file", "local" or ""
	RawPath  string // path as written
	Path     string // RawPath trimmed of surrounding whitespace
	Right    string // anchor, description and attributes plus the closing delimiter
}

// Raw returns the whole matched link text.
func (m LinkMatch) Raw() string {
	return m.Left + m.prefixText() + m.RawPath + m.Right
}

func (m LinkMatch) prefixText() string {
	if m.Prefix == "" {
		return ""
	}
	return m.Prefix + ":"
}

// Display returns the link target as prefix:path.
func (m LinkMatch) Display() string {
	return m.prefixText() + m.Path
}

// ScanLinks yields the links of notation n in text, left to right and
// non-overlapping. A match whose path is blank after trimming is still yielded.
func ScanLinks(n Notation, text string) iter.Seq[LinkMatch] {
	re := linkPatterns[n]
	return func(yield func(LinkMatch) bool) {
		pos := 0
		for pos < len(text) {
			loc := re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			m := buildMatch(n, re, text[pos:], loc)
			m.Start += pos
			m.End += pos
			if !yield(m) {
				return
			}
			pos = m.End
		}
	}
}

func buildMatch(n Notation, re *regexp.Regexp, text string, loc []int) LinkMatch {
	group := func(name string) string {
		i := re.SubexpIndex(name)
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}
	raw := group("path")
	return LinkMatch{
		Notation: n,
		Start:    loc[0],
		End:      loc[1],
		Left:     group("left"),
		Prefix:   group("prefix"),
		RawPath:  raw,
		Path:     strings.TrimSpace(raw),
		Right:    group("right"),
	}
}

// ParseLinks collects the links of every notation in text, ordered by offset.
func ParseLinks(text string) []LinkMatch {
	var out []LinkMatch
	for _, n := range Notations {
		for m := range ScanLinks(n, text) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// lineOf returns the 1-based line number of byte offset off in text.
func lineOf(text string, off int) int {
	return strings.Count(text[:off], "\n") + 1
}
