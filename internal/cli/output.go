// Package cli renders pipeline results for the command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text.
	OutputText OutputFormat = "text"
	// OutputJSON is the same JSON the HTTP API returns.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat accepts "text" or "json", case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

// WriteSuggestions writes a collaborator suggestion response to w.
func WriteSuggestions(w io.Writer, response *models.SuggestResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\nFound %d candidates for terms: %s\n", len(response.Candidates), strings.Join(response.Meta.QueryTerms, ", "))
	if response.Meta.Location != nil {
		fmt.Fprintf(w, "Location: %s\n", *response.Meta.Location)
	}
	fmt.Fprintln(w)
	for i, c := range response.Candidates {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. [%s] %s | Score: %.2f\n", i+1, c.Source, deref(c.Name, "(unnamed)"), c.Score)
		if c.ProfileURL != nil {
			fmt.Fprintf(w, "   %s\n", *c.ProfileURL)
		}
		if c.Location != nil {
			fmt.Fprintf(w, "   Location: %s\n", *c.Location)
		}
		if c.Company != nil {
			fmt.Fprintf(w, "   Company: %s\n", *c.Company)
		}
	}
	fmt.Fprintln(w)
	return nil
}

// WritePapers writes a paper search response to w.
func WritePapers(w io.Writer, response *models.PaperSearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	total := "unknown"
	if response.Total != nil {
		total = fmt.Sprint(*response.Total)
	}
	fmt.Fprintf(w, "\n%d papers from %s (total %s) for %q\n\n", response.Count, response.Source, total, response.Query)
	for _, p := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		year := ""
		if p.Year != nil {
			year = fmt.Sprintf(" (%d)", *p.Year)
		}
		fmt.Fprintf(w, "[%s] %s%s\n", p.Source, p.Title, year)
		if len(p.Authors) > 0 {
			fmt.Fprintf(w, "%s\n", utils.Truncate(strings.Join(p.Authors, ", "), 120))
		}
		if p.URL != nil {
			fmt.Fprintf(w, "%s\n", *p.URL)
		}
		if p.Abstract != nil {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(*p.Abstract, 200))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
