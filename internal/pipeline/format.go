// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes a run result as a human-readable table to w.
func FormatTable(result *Result, w io.Writer) {
	if len(result.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Score", "Label")
	fmt.Fprintln(w, strings.Repeat("-", 115))

	for i, p := range result.Papers {
		title := truncate(p.Title, 60)
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6.3f  %s\n",
			i+1, title, formatAuthors(p.Authors), year, p.FinalScore, p.Label)
	}

	m := result.Metadata
	fmt.Fprintf(w, "\n%d results from %d unique papers (%d hits retrieved)\n",
		len(result.Papers), m.UniquePapers, m.TotalRetrieved)
	fmt.Fprintf(w, "labels: %d highly relevant, %d relevant, %d somewhat relevant, %d not relevant\n",
		m.Labels.HighlyRelevant, m.Labels.Relevant, m.Labels.SomewhatRelevant, m.Labels.NotRelevant)
}

// FormatJSON writes a run result as indented JSON to w.
func FormatJSON(result *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
