package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/gh-task-viewer/app/board"
	"github.com/lysyi3m/gh-task-viewer/app/match"
)

type Summary struct {
	Records  []match.Record
	Owners   int
	Boards   int
	Items    int
	Warnings int
}

// Pipeline drives listing, scanning and matching for every owner in order.
type Pipeline struct {
	lister  *Lister
	scanner *Scanner
	matcher *match.Matcher
}

func NewPipeline(lister *Lister, scanner *Scanner, matcher *match.Matcher) *Pipeline {
	return &Pipeline{lister: lister, scanner: scanner, matcher: matcher}
}

// Run never fails as a whole: owner and board failures are logged and skipped.
// Records come back in enumeration order, unsorted.
func (p *Pipeline) Run(ctx context.Context, owners []board.Owner) *Summary {
	summary := &Summary{Records: []match.Record{}}
	started := time.Now()

	for _, owner := range owners {
		summary.Owners++

		listed := p.lister.Run(ctx, owner)
		if listed.Status != StatusOK {
			listed.Report("owner", owner.String())
			summary.Warnings++
			continue
		}
		slog.Debug("Boards listed", "owner", owner.String(), "count", len(listed.Value))

		for _, b := range listed.Value {
			summary.Boards++
			matched := 0

			pages := p.scanner.Scan(ctx, owner, b)
			for item := range pages.All() {
				summary.Items++
				if record, ok := p.matcher.Match(item); ok {
					summary.Records = append(summary.Records, record)
					matched++
				}
			}

			scanned := pages.Result()
			if scanned.Status != StatusOK {
				scanned.Report("owner", owner.String(), "board", b.Number)
				summary.Warnings++
			}
			slog.Debug("Board scanned",
				"owner", owner.String(),
				"board", b.Number,
				"title", pages.Board().Title,
				"items", scanned.Value,
				"matched", matched)
		}
	}

	slog.Debug("Scan completed",
		"owners", summary.Owners,
		"boards", summary.Boards,
		"items", summary.Items,
		"matched", len(summary.Records),
		"warnings", summary.Warnings,
		"duration", time.Since(started))

	return summary
}
