package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lysyi3m/gh-task-viewer/app/match"
)

var headers = []string{"DATE", "END", "FIELD", "ASSIGNEES", "TITLE", "REPO", "URL"}

type Table struct {
	widths Widths
	cutoff string

	bold    *color.Color
	today   *color.Color
	overdue *color.Color
}

// NewTable renders records into terminalWidth columns. Dates equal to cutoff
// and earlier dates are highlighted when colors is true.
func NewTable(terminalWidth int, cutoff string, colors bool) *Table {
	t := &Table{
		widths:  Layout(terminalWidth),
		cutoff:  cutoff,
		bold:    color.New(color.Bold),
		today:   color.New(color.FgRed, color.Bold),
		overdue: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{t.bold, t.today, t.overdue} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Run writes one block per project, in the order records are given.
func (t *Table) Run(w io.Writer, records []match.Record) error {
	var b strings.Builder
	project := ""
	for i, r := range records {
		if i == 0 || r.Project != project {
			if i > 0 {
				b.WriteString("\n")
			}
			project = r.Project
			t.writeGroupHeader(&b, project)
		}
		t.writeRow(&b, r)
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func (t *Table) writeGroupHeader(b *strings.Builder, project string) {
	b.WriteString(t.bold.Sprint(Truncate(project, t.widths.Total())))
	b.WriteString("\n")

	cols := t.widths.columns()
	t.writeCells(b, headers, nil)

	dashes := make([]string, len(cols))
	for i, c := range cols {
		dashes[i] = strings.Repeat("-", c)
	}
	b.WriteString(strings.Join(dashes, strings.Repeat(" ", Padding)))
	b.WriteString("\n")
}

func (t *Table) writeRow(b *strings.Builder, r match.Record) {
	cells := []string{
		r.StartDate,
		orDash(r.EndDate),
		r.StartField,
		orDashString(r.AssigneesText),
		r.Title,
		orDash(r.Repo),
		r.URL,
	}
	t.writeCells(b, cells, t.dateColor(r.StartDate))
}

// writeCells pads every cell but the last so rows carry no trailing blanks.
// Color is applied to the first cell after padding so it never shifts columns.
func (t *Table) writeCells(b *strings.Builder, cells []string, first *color.Color) {
	cols := t.widths.columns()
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", Padding))
		}
		text := Truncate(cell, cols[i])
		if i < len(cells)-1 {
			text = pad(text, cols[i])
		}
		if i == 0 && first != nil {
			text = first.Sprint(text)
		}
		b.WriteString(text)
	}
	b.WriteString("\n")
}

func (t *Table) dateColor(date string) *color.Color {
	switch {
	case date == t.cutoff:
		return t.today
	case date < t.cutoff:
		return t.overdue
	default:
		return nil
	}
}

// WriteNoMatches explains an empty result, which is not an error.
func WriteNoMatches(w io.Writer, pattern, cutoff string) error {
	_, err := fmt.Fprintf(w, "No matches: no items assigned to you with a date field matching /%s/ on or before %s.\n"+
		"Adjust --field-regex (or --date) if your boards name the start field differently.\n", pattern, cutoff)
	return err
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return orDashString(*s)
}

func orDashString(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
