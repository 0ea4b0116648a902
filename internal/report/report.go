// Package report renders command output for terminals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/error402-ai/intellitest/internal/adaptive"
	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/quality"
	"github.com/error402-ai/intellitest/internal/ui/theme"
)

const (
	ruleWidth    = 72
	textPreview  = 60
	timeLayout   = "2006-01-02 15:04"
	shortIDWidth = 8
)

// Printer writes reports to w. Without color, output is plain text.
type Printer struct {
	w     io.Writer
	color bool
}

// New creates a Printer.
func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) heading(title string) {
	p.printf("%s\n%s\n", p.paint(theme.Title, title), p.paint(theme.Label, strings.Repeat("─", ruleWidth)))
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Pool prints one block per candidate followed by the approval count.
func (p *Printer) Pool(r quality.PoolReport) {
	p.heading("Quality Check")
	for _, o := range r.Outcomes {
		mark, style := "✓", theme.Correct
		if !o.Approved() {
			mark, style = "✗", theme.Incorrect
		}
		p.printf("%s %-*s  %s  %s\n",
			p.paint(style, mark),
			shortIDWidth, shortID(o.Question.ID),
			p.paint(theme.ScoreStyle(o.Result.Score), fmt.Sprintf("%.2f", o.Result.Score)),
			truncate(o.Question.Text, textPreview))
		if o.Duplicate {
			p.printf("    %s\n", p.paint(theme.Caution, "duplicate of an existing question"))
		}
		for _, issue := range o.Result.Issues {
			p.printf("    %s %s\n", p.paint(theme.Incorrect, "issue:"), issue)
		}
		for _, s := range o.Result.Suggestions {
			p.printf("    %s %s\n", p.paint(theme.Label, "suggestion:"), s)
		}
	}
	approved := len(r.Approved())
	p.printf("\nApproved %d of %d (%d rejected)\n", approved, len(r.Outcomes), len(r.Outcomes)-approved)
}

// Adjustment prints a difficulty decision.
func (p *Printer) Adjustment(adj assessment.Adjustment) {
	p.heading("Difficulty Adjustment")
	p.field("New difficulty", fmt.Sprintf("%.1f", adj.NewDifficulty))
	p.field("Reason", adj.Reason)
	p.field("Confidence", fmt.Sprintf("%.2f", adj.Confidence))
	p.field("Trend", fmt.Sprintf("%.2f", adj.Trend))
	p.field("Time efficiency", fmt.Sprintf("%.2f", adj.TimeEfficiency))
}

// Question prints a selected question, or a notice when there is none.
func (p *Printer) Question(q *assessment.Question) {
	p.heading("Next Question")
	if q == nil {
		p.printf("%s\n", p.paint(theme.Caution, "No question near the target difficulty; the pool is exhausted."))
		return
	}
	p.field("ID", q.ID)
	p.field("Difficulty", fmt.Sprintf("%.1f", q.Difficulty))
	p.field("Level", string(q.BloomsLevel))
	p.field("Type", string(q.Type))
	lines := []string{q.Text}
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, opt))
	}
	p.printf("\n%s\n", p.paint(theme.Card, strings.Join(lines, "\n")))
}

// Analysis prints learning-pattern findings.
func (p *Printer) Analysis(a adaptive.Analysis) {
	p.heading("Learning Patterns")
	p.field("Average score", fmt.Sprintf("%.1f%%", a.AverageScore))
	p.field("Optimal difficulty", fmt.Sprintf("%.1f", a.OptimalDifficulty))

	p.list("Strengths", a.Strengths, theme.Correct)
	p.list("Weaknesses", a.Weaknesses, theme.Incorrect)
	p.list("Recommendations", a.Recommendations, theme.Body)

	if len(a.DifficultyPerformance) > 0 {
		p.printf("\n%s\n", p.paint(theme.Label, "By difficulty"))
		for _, bucket := range adaptive.Buckets {
			if v, ok := a.DifficultyPerformance[bucket]; ok {
				p.printf("  %-10s %s\n", bucket, p.percent(v))
			}
		}
	}
	if len(a.BloomsPerformance) > 0 {
		p.printf("\n%s\n", p.paint(theme.Label, "By level"))
		for _, level := range assessment.BloomsLevels {
			if v, ok := a.BloomsPerformance[level]; ok {
				p.printf("  %-10s %s\n", level, p.percent(v))
			}
		}
	}
}

// History prints stored results, oldest first.
func (p *Printer) History(results []assessment.TestResult) {
	if len(results) == 0 {
		p.printf("No assessments recorded yet.\n")
		return
	}
	p.printf("%-8s  %-16s  %6s  %10s  %-10s  %9s\n",
		"ID", "Completed", "Score", "Difficulty", "Level", "Questions")
	p.printf("%s\n", strings.Repeat("─", ruleWidth))
	for _, r := range results {
		p.printf("%-8s  %-16s  %s  %10.1f  %-10s  %9d\n",
			shortID(r.ID),
			r.CompletedAt.Local().Format(timeLayout),
			p.percent(r.Score),
			r.Difficulty,
			r.BloomsLevel,
			len(r.Questions))
	}
}

func (p *Printer) field(label, value string) {
	p.printf("%s %s\n", p.paint(theme.Label, fmt.Sprintf("%-19s", label+":")), value)
}

func (p *Printer) list(title string, items []string, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	p.printf("\n%s\n", p.paint(theme.Label, title))
	for _, it := range items {
		p.printf("  • %s\n", p.paint(style, it))
	}
}

// percent renders a 0-100 value padded to six columns.
func (p *Printer) percent(v float64) string {
	return p.paint(theme.ScoreStyle(v/100), fmt.Sprintf("%5.1f%%", v))
}

func shortID(id string) string {
	if len(id) <= shortIDWidth {
		return id
	}
	return id[:shortIDWidth]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
