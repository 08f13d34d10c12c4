package match

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

const DraftTitle = "(Draft item)"

var endLabels = []string{"end date", "due date", "target date", "finish date"}

type Record struct {
	Project       string   `json:"project"`
	ProjectURL    string   `json:"project_url"`
	StartField    string   `json:"start_field"`
	StartDate     string   `json:"start_date"`
	EndField      *string  `json:"end_field"`
	EndDate       *string  `json:"end_date"`
	Assignees     []string `json:"assignees"`
	AssigneesText string   `json:"assignees_text"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Repo          *string  `json:"repo"`
}

type Matcher struct {
	login   string
	pattern *regexp.Regexp
	cutoff  string
}

// NewMatcher builds a matcher for items assigned to login whose start field
// matches pattern (compiled case-insensitive by the caller) on or before cutoff.
func NewMatcher(login string, pattern *regexp.Regexp, cutoff string) *Matcher {
	return &Matcher{login: login, pattern: pattern, cutoff: cutoff}
}

// Match returns the record for an item, or false when the item is not
// assigned to the user or has no qualifying start date.
func (m *Matcher) Match(item board.Item) (Record, bool) {
	if !m.assigned(item) {
		return Record{}, false
	}

	start, ok := m.startField(item.Fields)
	if !ok {
		return Record{}, false
	}

	record := Record{
		Project:    item.BoardTitle,
		ProjectURL: item.BoardURL,
		StartField: start.Name,
		StartDate:  start.Date,
		Assignees:  Assignees(item),
	}
	record.AssigneesText = strings.Join(record.Assignees, ", ")

	if end, ok := endField(item.Fields); ok {
		record.EndField = &end.Name
		record.EndDate = &end.Date
	}

	switch c := item.Content.(type) {
	case board.Draft:
		record.Title = DraftTitle
		if c.Title != "" {
			record.Title = c.Title
		}
	case board.Issue:
		record.Title = c.Title
		record.URL = c.URL
		record.Repo = optional(c.Repo)
	case board.PullRequest:
		record.Title = c.Title
		record.URL = c.URL
		record.Repo = optional(c.Repo)
	}
	if record.URL == "" {
		record.URL = item.BoardURL
	}

	return record, true
}

func (m *Matcher) assigned(item board.Item) bool {
	if slices.Contains(contentAssignees(item.Content), m.login) {
		return true
	}
	for _, f := range item.Fields {
		if uf, ok := f.(board.UserField); ok && slices.Contains(uf.Users, m.login) {
			return true
		}
	}
	return false
}

// startField picks the first date field, in the order the board reports them,
// whose name matches the pattern and whose date is not after the cutoff.
func (m *Matcher) startField(fields []board.FieldValue) (board.DateField, bool) {
	for _, f := range fields {
		df, ok := f.(board.DateField)
		if !ok || !isDate(df.Date) {
			continue
		}
		if m.pattern.MatchString(df.Name) && df.Date <= m.cutoff {
			return df, true
		}
	}
	return board.DateField{}, false
}

func endField(fields []board.FieldValue) (board.DateField, bool) {
	lower := cases.Lower(language.Und)
	for _, f := range fields {
		df, ok := f.(board.DateField)
		if !ok || df.Date == "" {
			continue
		}
		if slices.Contains(endLabels, lower.String(df.Name)) {
			return df, true
		}
	}
	return board.DateField{}, false
}

// Assignees is the sorted, de-duplicated union of content assignees and every
// people field on the item.
func Assignees(item board.Item) []string {
	all := append([]string{}, contentAssignees(item.Content)...)
	for _, f := range item.Fields {
		if uf, ok := f.(board.UserField); ok {
			all = append(all, uf.Users...)
		}
	}
	all = slices.DeleteFunc(all, func(s string) bool { return s == "" })
	slices.Sort(all)
	return slices.Compact(all)
}

func contentAssignees(c board.Content) []string {
	switch c := c.(type) {
	case board.Issue:
		return c.Assignees
	case board.PullRequest:
		return c.Assignees
	default:
		return nil
	}
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
