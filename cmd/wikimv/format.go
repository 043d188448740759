package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ryotapoi/wikimv/internal/core"
)

// parseFields splits a comma-separated field string into a slice.
// Returns nil for empty input.
func parseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

// validateFields checks that all fields are in the valid set.
// name is used in the error message (e.g. "stats").
func validateFields(fields []string, valid map[string]bool, name string) error {
	for _, f := range fields {
		if !valid[f] {
			return fmt.Errorf("unknown %s field: %s", name, f)
		}
	}
	return nil
}

// fieldSet returns a set of fields to show. If fields is nil/empty, all valid fields are shown.
func fieldSet(fields []string, valid map[string]bool) map[string]bool {
	if len(fields) == 0 {
		all := make(map[string]bool)
		for k := range valid {
			all[k] = true
		}
		return all
	}
	m := make(map[string]bool, len(fields))
	for _, f := range fields {
		m[f] = true
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- Rename output ---

type renameJSONLink struct {
	Line     int    `json:"line"`
	Notation string `json:"notation"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

type renameJSONFile struct {
	File  string           `json:"file"`
	Links []renameJSONLink `json:"links"`
	Diff  string           `json:"diff,omitempty"`
}

type renameJSONError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type renameJSON struct {
	From   string            `json:"from"`
	To     string            `json:"to"`
	DryRun bool              `json:"dry_run"`
	Moved  bool              `json:"moved"`
	Files  []renameJSONFile  `json:"files"`
	Errors []renameJSONError `json:"errors,omitempty"`
}

func printRenameJSON(w io.Writer, r *core.RenameResult, dryRun bool) error {
	out := renameJSON{
		From:   r.From,
		To:     r.To,
		DryRun: dryRun,
		Moved:  r.Moved,
		Files:  make([]renameJSONFile, 0, len(r.Files)),
	}
	for _, f := range r.Files {
		jf := renameJSONFile{File: f.File, Diff: f.Diff}
		for _, l := range f.Links {
			jf.Links = append(jf.Links, renameJSONLink{
				Line:     l.Line,
				Notation: l.Notation.String(),
				Old:      l.OldLink,
				New:      l.NewLink,
			})
		}
		out.Files = append(out.Files, jf)
	}
	for _, fe := range r.Errors {
		out.Errors = append(out.Errors, renameJSONError{File: fe.File, Error: fe.Err.Error()})
	}
	return writeJSON(w, out)
}

func printRenameText(w io.Writer, r *core.RenameResult, dryRun bool) {
	verb := "rewrote"
	if dryRun {
		verb = "would rewrite"
	}
	fmt.Fprintf(w, "%s %d links in %d files (%s -> %s)\n", verb, r.LinkCount(), len(r.Files), r.From, r.To)
	for _, f := range r.Files {
		for _, l := range f.Links {
			fmt.Fprintf(w, "%s:%d: %s -> %s\n", f.File, l.Line, l.OldLink, l.NewLink)
		}
	}
	if dryRun {
		for _, f := range r.Files {
			if f.Diff != "" {
				fmt.Fprint(w, f.Diff)
			}
		}
	}
	if r.Moved {
		fmt.Fprintf(w, "moved %s -> %s\n", r.From, r.To)
	}
	for _, fe := range r.Errors {
		fmt.Fprintf(w, "failed %s: %v\n", fe.File, fe.Err)
	}
}

// --- Backlinks output ---

type backlinkJSON struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Notation string `json:"notation"`
	Link     string `json:"link"`
}

func printBacklinksJSON(w io.Writer, links []core.Backlink) error {
	out := make([]backlinkJSON, 0, len(links))
	for _, b := range links {
		out = append(out, backlinkJSON{File: b.File, Line: b.Line, Notation: b.Notation.String(), Link: b.RawLink})
	}
	return writeJSON(w, out)
}

func printBacklinksText(w io.Writer, links []core.Backlink) {
	for _, b := range links {
		fmt.Fprintf(w, "%s:%d: %s\n", b.File, b.Line, b.RawLink)
	}
}

// --- Resolve output ---

type resolveJSON struct {
	Link     string `json:"link"`
	Notation string `json:"notation"`
	Prefix   string `json:"prefix,omitempty"`
	Path     string `json:"path"`
	Target   string `json:"target"`
}

func printResolveJSON(w io.Writer, links []core.ResolvedLink) error {
	out := make([]resolveJSON, 0, len(links))
	for _, l := range links {
		out = append(out, resolveJSON{
			Link:     l.Raw,
			Notation: l.Notation.String(),
			Prefix:   l.Prefix,
			Path:     l.Path,
			Target:   l.Target,
		})
	}
	return writeJSON(w, out)
}

func printResolveText(w io.Writer, links []core.ResolvedLink) {
	for i, l := range links {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "link: %s\n", l.Raw)
		fmt.Fprintf(w, "notation: %s\n", l.Notation)
		fmt.Fprintf(w, "path: %s\n", l.Display)
		fmt.Fprintf(w, "target: %s\n", l.Target)
	}
}

// --- Stats output ---

// statsFieldOrder fixes the text output order.
var statsFieldOrder = []string{"documents_total", "links_total", "markdown_links", "wiki_links", "transclusions"}

func statsValues(r *core.StatsResult) map[string]int {
	return map[string]int{
		"documents_total": r.DocumentsTotal,
		"links_total":     r.LinksTotal,
		"markdown_links":  r.MarkdownLinks,
		"wiki_links":      r.WikiLinks,
		"transclusions":   r.Transclusions,
	}
}

func printStatsJSON(w io.Writer, r *core.StatsResult, fields []string) error {
	show := fieldSet(fields, core.ValidStatsFields)
	values := statsValues(r)
	m := make(map[string]int)
	for _, f := range statsFieldOrder {
		if show[f] {
			m[f] = values[f]
		}
	}
	return writeJSON(w, m)
}

func printStatsText(w io.Writer, r *core.StatsResult, fields []string) {
	show := fieldSet(fields, core.ValidStatsFields)
	values := statsValues(r)
	for _, f := range statsFieldOrder {
		if show[f] {
			fmt.Fprintf(w, "%s: %d\n", f, values[f])
		}
	}
}
