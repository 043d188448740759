package core

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff returns a line diff of oldContent and newContent showing only
// changed lines, each group headed by the old line number. Returns "" when the
// contents are identical.
func renderDiff(oldContent, newContent, name string, colored bool) string {
	if oldContent == newContent {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	out.WriteString(paint("--- a/"+name+"\n", color.FgRed, colored))
	out.WriteString(paint("+++ b/"+name+"\n", color.FgGreen, colored))

	line := 1
	inHunk := false
	for _, d := range diffs {
		ls := splitLines(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			line += len(ls)
			inHunk = false
			continue
		}
		if !inHunk {
			out.WriteString(paint(fmt.Sprintf("@@ line %d @@\n", line), color.FgCyan, colored))
			inHunk = true
		}
		for _, l := range ls {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				out.WriteString(paint("-"+l+"\n", color.FgRed, colored))
			case diffmatchpatch.DiffInsert:
				out.WriteString(paint("+"+l+"\n", color.FgGreen, colored))
			}
		}
		if d.Type == diffmatchpatch.DiffDelete {
			line += len(ls)
		}
	}
	return out.String()
}

// splitLines splits text into lines without their terminating newlines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	ls := strings.Split(text, "\n")
	if ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

func paint(text string, attr color.Attribute, colored bool) string {
	if !colored {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}
