package scan

import (
	"context"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

type Lister struct {
	source Source
}

func NewLister(source Source) *Lister {
	return &Lister{source: source}
}

// Run returns the owner's open boards. Only the first page of boards is ever
// looked at; owners with more open boards than that are scanned partially.
// Pinned board numbers bypass the listing entirely.
func (l *Lister) Run(ctx context.Context, owner board.Owner) Result[[]board.Board] {
	if len(owner.Numbers) > 0 {
		boards := make([]board.Board, 0, len(owner.Numbers))
		for _, n := range owner.Numbers {
			boards = append(boards, board.Board{Number: n})
		}
		return OK(boards)
	}

	boards, err := l.source.Boards(ctx, owner)
	if err != nil {
		return Degraded[[]board.Board](nil, "Failed to list boards, skipping owner", err)
	}
	if len(boards) == 0 {
		return Degraded[[]board.Board](nil, "No open boards for this owner", nil)
	}
	return OK(boards)
}
