package report

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	DefaultWidth = 120
	Padding      = 2
	TitleFloor   = 18
	ellipsis     = "…"
)

// Widths holds the final width of every table column.
type Widths struct {
	Date      int
	End       int
	Field     int
	Assignees int
	Title     int
	Repo      int
	URL       int
}

func (w Widths) columns() []int {
	return []int{w.Date, w.End, w.Field, w.Assignees, w.Title, w.Repo, w.URL}
}

// Total is the row width including padding.
func (w Widths) Total() int {
	total := Padding * 6
	for _, c := range w.columns() {
		total += c
	}
	return total
}

func (w Widths) others() int {
	return w.Total() - w.Title
}

// Layout fits the columns into total. Title takes whatever the fixed columns
// leave; when that is below TitleFloor the URL, Repo, Field and Assignees
// columns give up width, in that order, down to their own floors. On very
// narrow terminals Title ends up below its floor but never below one cell.
func Layout(total int) Widths {
	w := Widths{Date: 10, End: 10, Field: 22, Assignees: 20, Repo: 28, URL: 40}
	w.Title = total - w.others()

	donors := []struct {
		width *int
		floor int
	}{
		{&w.URL, 20},
		{&w.Repo, 14},
		{&w.Field, 14},
		{&w.Assignees, 12},
	}
	for _, d := range donors {
		if w.Title >= TitleFloor {
			break
		}
		give := min(TitleFloor-w.Title, *d.width-d.floor)
		*d.width -= give
		w.Title = total - w.others()
	}

	w.Title = max(w.Title, 1)
	return w
}

// FloorTotal is the narrowest terminal that fits every column at its floor.
func FloorTotal() int {
	return Widths{Date: 10, End: 10, Field: 14, Assignees: 12, Title: TitleFloor, Repo: 14, URL: 20}.Total()
}

var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Truncate cuts s to at most width cells, replacing the last kept cell with
// an ellipsis. Widths of one or less are cut without an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if cells.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return cells.Truncate(s, 1, "")
	}
	return cells.Truncate(s, width, ellipsis)
}

func cellWidth(s string) int {
	return cells.StringWidth(s)
}

func pad(s string, width int) string {
	return cells.FillRight(s, width)
}

// ResolveWidth prefers an explicit override, then the terminal size of f,
// then DefaultWidth.
func ResolveWidth(override int, f *os.File) int {
	if override > 0 {
		return override
	}
	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

// ColorEnabled reports whether f is an interactive terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
