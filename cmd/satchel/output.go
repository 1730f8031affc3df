package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/ingestion"
	"github.com/poiesic/satchel/search"
)

type intentOutput struct {
	Type        core.IntentType  `json:"type"`
	Urgency     core.Urgency     `json:"urgency,omitempty"`
	Subject     string           `json:"subject,omitempty"`
	ContentType core.ContentType `json:"content_type,omitempty"`
	Status      core.Status      `json:"status,omitempty"`
	Keywords    []string         `json:"keywords,omitempty"`
	Filter      string           `json:"filter"`
}

type resultOutput struct {
	ID          core.ID          `json:"id,string"`
	Title       string           `json:"title"`
	ContentType core.ContentType `json:"content_type"`
	DueDate     string           `json:"due_date,omitempty"`
	Score       int              `json:"score"`
	Badges      []string         `json:"badges,omitempty"`
}

type searchOutput struct {
	Query    string         `json:"query"`
	Intent   intentOutput   `json:"intent"`
	Degraded bool           `json:"degraded,omitempty"`
	Error    string         `json:"error,omitempty"`
	Attempts int            `json:"attempts"`
	Results  []resultOutput `json:"results"`
}

func newIntentOutput(qi core.QueryIntent, criteria filter.Criteria) intentOutput {
	return intentOutput{
		Type:        qi.Type,
		Urgency:     qi.Urgency,
		Subject:     qi.Subject,
		ContentType: qi.ContentType,
		Status:      qi.Status,
		Keywords:    qi.Keywords,
		Filter:      criteria.Expression(),
	}
}

func newSearchOutput(resp *search.Response) searchOutput {
	out := searchOutput{
		Query:    resp.Intent.OriginalQuery,
		Intent:   newIntentOutput(resp.Intent, resp.Criteria),
		Degraded: resp.Degraded,
		Attempts: resp.Attempts,
		Results:  make([]resultOutput, 0, len(resp.Results)),
	}
	if resp.Err != nil {
		out.Error = resp.Err.Error()
	}
	for _, r := range resp.Results {
		m := r.Material
		out.Results = append(out.Results, resultOutput{
			ID:          m.ID,
			Title:       m.Title,
			ContentType: m.ContentType,
			DueDate:     formatDue(m),
			Score:       r.RelevanceScore,
			Badges:      badges(m, resp.At),
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// badges labels the states a reader cares about at a glance.
func badges(m *core.Material, now time.Time) []string {
	var out []string
	switch {
	case core.IsCompleted(m):
		out = append(out, "done")
	case core.IsOverdue(m, now):
		out = append(out, "overdue")
	case core.IsDueToday(m, now):
		out = append(out, "due today")
	case core.IsDueSoon(m, now):
		out = append(out, "due soon")
	}
	if core.IsLowScore(m) {
		out = append(out, "low score")
	}
	if m.PrimaryLesson() {
		out = append(out, "primary")
	}
	return out
}

func formatDue(m *core.Material) string {
	if m.DueDate == nil {
		return ""
	}
	return m.DueDate.Format(time.DateOnly)
}

func printIntent(w io.Writer, qi core.QueryIntent, criteria filter.Criteria) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "type:\t%s\n", qi.Type)
	fmt.Fprintf(tw, "urgency:\t%s\n", orDash(string(qi.Urgency)))
	fmt.Fprintf(tw, "subject:\t%s\n", orDash(qi.Subject))
	fmt.Fprintf(tw, "content type:\t%s\n", orDash(string(qi.ContentType)))
	fmt.Fprintf(tw, "status:\t%s\n", orDash(string(qi.Status)))
	fmt.Fprintf(tw, "keywords:\t%s\n", orDash(strings.Join(qi.Keywords, ", ")))
	fmt.Fprintf(tw, "filter:\t%s\n", criteria.Expression())
	tw.Flush()
}

func printResults(w io.Writer, resp *search.Response) {
	fmt.Fprintf(w, "Intent: %s", resp.Intent.Type)
	if resp.Intent.Subject != "" {
		fmt.Fprintf(w, " (%s)", resp.Intent.Subject)
	}
	fmt.Fprintf(w, "\nFound %d hits\n", len(resp.Results))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range resp.Results {
		m := r.Material
		line := fmt.Sprintf("%d:\t%s\t%s\t%s\t[%d]", i+1, m.Title, m.ContentType, orDash(formatDue(m)), r.RelevanceScore)
		if b := badges(m, resp.At); len(b) > 0 {
			line += "\t" + strings.Join(b, ", ")
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

func printReport(w io.Writer, report *ingestion.ImportReport) {
	fmt.Fprintf(w, "Imported %d of %d materials (%d invalid, %d failed) in %s\n",
		report.Imported, report.Total, report.Invalid, report.Failed, report.Elapsed.Round(time.Millisecond))
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
