package github

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

type gqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

// atRoot reports whether the error points at one of roots rather than at a
// node nested below them. An error without a path covers the whole query.
func (e gqlError) atRoot(roots []string) bool {
	if len(e.Path) == 0 {
		return true
	}
	last, ok := e.Path[len(e.Path)-1].(string)
	return ok && slices.Contains(roots, last)
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type loginNode struct {
	Login string `json:"login"`
}

type loginConnection struct {
	Nodes []*loginNode `json:"nodes"`
}

func (c loginConnection) logins() []string {
	logins := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		if n != nil && n.Login != "" {
			logins = append(logins, n.Login)
		}
	}
	return logins
}

type viewerData struct {
	Viewer *struct {
		Login         string          `json:"login"`
		Organizations loginConnection `json:"organizations"`
	} `json:"viewer"`
}

type boardNode struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Closed bool   `json:"closed"`
}

type boardsOwner struct {
	ProjectsV2 *struct {
		Nodes []*boardNode `json:"nodes"`
	} `json:"projectsV2"`
}

type boardsData struct {
	Organization *boardsOwner `json:"organization"`
	User         *boardsOwner `json:"user"`
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type projectNode struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Items *struct {
		PageInfo pageInfo          `json:"pageInfo"`
		Nodes    []json.RawMessage `json:"nodes"`
	} `json:"items"`
}

type itemsOwner struct {
	ProjectV2 *projectNode `json:"projectV2"`
}

type itemsData struct {
	Organization *itemsOwner `json:"organization"`
	User         *itemsOwner `json:"user"`
}

type contentNode struct {
	Typename   string `json:"__typename"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Repository *struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`
	Assignees loginConnection `json:"assignees"`
}

type fieldValueNode struct {
	Typename string  `json:"__typename"`
	Date     *string `json:"date"`
	Field    *struct {
		Name *string `json:"name"`
	} `json:"field"`
	Users loginConnection `json:"users"`
}

type itemNode struct {
	Content     *contentNode `json:"content"`
	FieldValues *struct {
		Nodes []*fieldValueNode `json:"nodes"`
	} `json:"fieldValues"`
}

// ItemsPage is one page of board items, identical in shape for both owner kinds.
type ItemsPage struct {
	BoardTitle  string
	BoardURL    string
	Items       []board.Item
	HasNextPage bool
	EndCursor   string
}

func pickBoardsOwner(kind board.OwnerKind, d boardsData) *boardsOwner {
	if kind == board.OwnerOrganization {
		return d.Organization
	}
	return d.User
}

func pickItemsOwner(kind board.OwnerKind, d itemsData) *itemsOwner {
	if kind == board.OwnerOrganization {
		return d.Organization
	}
	return d.User
}

func decodeBoards(nodes []*boardNode) []board.Board {
	boards := make([]board.Board, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.Closed {
			continue
		}
		boards = append(boards, board.Board{Number: n.Number, Title: n.Title, URL: n.URL})
	}
	return boards
}

func decodePage(p *projectNode) *ItemsPage {
	page := &ItemsPage{
		BoardTitle: p.Title,
		BoardURL:   p.URL,
	}
	if p.Items == nil {
		return page
	}

	page.HasNextPage = p.Items.PageInfo.HasNextPage
	if p.Items.PageInfo.EndCursor != nil {
		page.EndCursor = *p.Items.PageInfo.EndCursor
	}

	page.Items = make([]board.Item, 0, len(p.Items.Nodes))
	for i, raw := range p.Items.Nodes {
		item, ok := decodeItem(raw)
		if !ok {
			slog.Debug("Skipping undecodable item", "board", p.Title, "index", i)
			continue
		}
		item.BoardTitle = p.Title
		item.BoardURL = p.URL
		page.Items = append(page.Items, item)
	}
	return page
}

func decodeItem(raw json.RawMessage) (board.Item, bool) {
	var node itemNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return board.Item{}, false
	}

	content, ok := decodeContent(node.Content)
	if !ok {
		return board.Item{}, false
	}

	item := board.Item{Content: content}
	if node.FieldValues != nil {
		for _, fv := range node.FieldValues.Nodes {
			if value := decodeFieldValue(fv); value != nil {
				item.Fields = append(item.Fields, value)
			}
		}
	}
	return item, true
}

func decodeContent(c *contentNode) (board.Content, bool) {
	if c == nil {
		return nil, false
	}

	var repo string
	if c.Repository != nil {
		repo = c.Repository.NameWithOwner
	}

	switch c.Typename {
	case "DraftIssue":
		return board.Draft{Title: c.Title}, true
	case "Issue":
		return board.Issue{Title: c.Title, URL: c.URL, Repo: repo, Assignees: c.Assignees.logins()}, true
	case "PullRequest":
		return board.PullRequest{Title: c.Title, URL: c.URL, Repo: repo, Assignees: c.Assignees.logins()}, true
	default:
		return nil, false
	}
}

func decodeFieldValue(fv *fieldValueNode) board.FieldValue {
	if fv == nil {
		return nil
	}

	var name string
	if fv.Field != nil && fv.Field.Name != nil {
		name = *fv.Field.Name
	}

	switch fv.Typename {
	case "ProjectV2ItemFieldDateValue":
		var date string
		if fv.Date != nil {
			date = *fv.Date
		}
		return board.DateField{Name: name, Date: date}
	case "ProjectV2ItemFieldUserValue":
		return board.UserField{Name: name, Users: fv.Users.logins()}
	default:
		return nil
	}
}
