package scan

import (
	"context"

	"github.com/lysyi3m/gh-task-viewer/app/board"
	"github.com/lysyi3m/gh-task-viewer/app/github"
)

// Source is the remote side of the pipeline; *github.Client implements it.
type Source interface {
	Viewer(ctx context.Context) (string, error)
	Organizations(ctx context.Context) ([]string, error)
	Boards(ctx context.Context, owner board.Owner) ([]board.Board, error)
	ItemsPage(ctx context.Context, owner board.Owner, number int, cursor string) (*github.ItemsPage, error)
}
