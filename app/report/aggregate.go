package report

import (
	"cmp"
	"slices"

	"github.com/lysyi3m/gh-task-viewer/app/match"
)

// Aggregate returns a stably sorted copy of records ordered by project,
// start date, repo (missing sorts as empty) and title.
func Aggregate(records []match.Record) []match.Record {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []match.Record{}
	}
	slices.SortStableFunc(sorted, compareRecords)
	return sorted
}

func compareRecords(a, b match.Record) int {
	return cmp.Or(
		cmp.Compare(a.Project, b.Project),
		cmp.Compare(a.StartDate, b.StartDate),
		cmp.Compare(deref(a.Repo), deref(b.Repo)),
		cmp.Compare(a.Title, b.Title),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
