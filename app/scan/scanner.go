package scan

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/lysyi3m/gh-task-viewer/app/board"
	"github.com/lysyi3m/gh-task-viewer/app/github"
)

var errBadCursor = errors.New("pagination cursor missing or repeated")

type Scanner struct {
	source Source
}

func NewScanner(source Source) *Scanner {
	return &Scanner{source: source}
}

// Scan returns the lazy item sequence of one board.
func (s *Scanner) Scan(ctx context.Context, owner board.Owner, b board.Board) *Pages {
	return &Pages{ctx: ctx, source: s.source, owner: owner, board: b}
}

// Pages walks a board's items page by page. It is single-use: All yields the
// items once, later calls yield nothing.
type Pages struct {
	ctx    context.Context
	source Source
	owner  board.Owner
	board  board.Board

	consumed bool
	pages    int
	yielded  int
	err      error
}

func (p *Pages) All() iter.Seq[board.Item] {
	return func(yield func(board.Item) bool) {
		if p.consumed {
			return
		}
		p.consumed = true

		cursor := ""
		for {
			page, err := p.source.ItemsPage(p.ctx, p.owner, p.board.Number, cursor)
			if err != nil {
				p.err = err
				return
			}
			p.pages++
			if p.board.Title == "" {
				p.board.Title = page.BoardTitle
			}
			if p.board.URL == "" {
				p.board.URL = page.BoardURL
			}

			for _, item := range page.Items {
				p.yielded++
				if !yield(item) {
					return
				}
			}

			if !page.HasNextPage {
				return
			}
			if page.EndCursor == "" || page.EndCursor == cursor {
				p.err = errBadCursor
				return
			}
			cursor = page.EndCursor
		}
	}
}

// Board returns the scanned board, with title and url filled in from the first page.
func (p *Pages) Board() board.Board {
	return p.board
}

// Result reports how many items were yielded and whether pagination stopped early.
func (p *Pages) Result() Result[int] {
	if p.err == nil {
		return OK(p.yielded)
	}

	switch {
	case errors.Is(p.err, github.ErrNotFound) && p.pages == 0:
		return Degraded(p.yielded, "Board not found or not accessible, skipping", p.err)
	case errors.Is(p.err, github.ErrRateLimited):
		return Degraded(p.yielded, fmt.Sprintf("Rate limited, keeping %d items already fetched", p.yielded), p.err)
	case errors.Is(p.err, errBadCursor):
		return Degraded(p.yielded, fmt.Sprintf("Pagination stopped, keeping %d items already fetched", p.yielded), p.err)
	default:
		return Degraded(p.yielded, fmt.Sprintf("Page fetch failed, keeping %d items already fetched", p.yielded), p.err)
	}
}
