package core

import (
	"fmt"
)

// StatsOptions controls which fields to return.
type StatsOptions struct {
	Fields []string // nil/empty = all
}

// StatsResult contains wiki statistics from the index.
type StatsResult struct {
	DocumentsTotal int
	LinksTotal     int
	MarkdownLinks  int
	WikiLinks      int
	Transclusions  int
}

// ValidStatsFields lists the field names accepted by Stats.
var ValidStatsFields = map[string]bool{
	"documents_total": true,
	"links_total":     true,
	"markdown_links":  true,
	"wiki_links":      true,
	"transclusions":   true,
}

func validateStatsFields(fields []string) error {
	for _, f := range fields {
		if !ValidStatsFields[f] {
			return fmt.Errorf("unknown stats field: %s", f)
		}
	}
	return nil
}

// Stats returns aggregate statistics for the indexed wiki.
func Stats(wikiRoot string, opts StatsOptions) (*StatsResult, error) {
	if err := validateStatsFields(opts.Fields); err != nil {
		return nil, err
	}
	root, err := absLocation(wikiRoot)
	if err != nil {
		return nil, err
	}
	db, err := openIndex(root.Path())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result := &StatsResult{}
	counts := []struct {
		field string
		query string
		args  []any
		dst   *int
	}{
		{"documents_total", `SELECT COUNT(*) FROM documents`, nil, &result.DocumentsTotal},
		{"links_total", `SELECT COUNT(*) FROM links`, nil, &result.LinksTotal},
		{"markdown_links", `SELECT COUNT(*) FROM links WHERE notation = ?`, []any{NotationMarkdown.String()}, &result.MarkdownLinks},
		{"wiki_links", `SELECT COUNT(*) FROM links WHERE notation = ?`, []any{NotationWiki.String()}, &result.WikiLinks},
		{"transclusions", `SELECT COUNT(*) FROM links WHERE notation = ?`, []any{NotationTransclusion.String()}, &result.Transclusions},
	}
	for _, c := range counts {
		if !isFieldActive(c.field, opts.Fields) {
			continue
		}
		if err := db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// isFieldActive returns true if the field is requested (or if fields is empty, meaning all).
func isFieldActive(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
