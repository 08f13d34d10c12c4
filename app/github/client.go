package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

// Client issues the typed queries the scan pipeline needs over a Transport.
type Client struct {
	transport Transport
}

func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

func (c *Client) Viewer(ctx context.Context) (string, error) {
	var data viewerData
	if err := c.query(ctx, viewerQuery, nil, &data, "viewer"); err != nil {
		return "", fmt.Errorf("failed to resolve viewer: %w", err)
	}
	if data.Viewer == nil || data.Viewer.Login == "" {
		return "", errors.New("failed to resolve viewer: empty login")
	}
	return data.Viewer.Login, nil
}

func (c *Client) Organizations(ctx context.Context) ([]string, error) {
	var data viewerData
	if err := c.query(ctx, orgsQuery, nil, &data, "viewer"); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	if data.Viewer == nil {
		return nil, errors.New("failed to list organizations: no viewer in response")
	}
	return data.Viewer.Organizations.logins(), nil
}

// Boards returns the owner's open boards from a single bounded page,
// most recently updated first.
func (c *Client) Boards(ctx context.Context, owner board.Owner) ([]board.Board, error) {
	var data boardsData
	vars := map[string]any{"login": owner.Login}
	if err := c.query(ctx, boardsQuery(owner.Kind), vars, &data, ownerField(owner.Kind)); err != nil {
		return nil, fmt.Errorf("failed to list boards for %s: %w", owner, err)
	}

	node := pickBoardsOwner(owner.Kind, data)
	if node == nil {
		return nil, fmt.Errorf("failed to list boards for %s: %w", owner, ErrNotFound)
	}
	if node.ProjectsV2 == nil {
		return nil, nil
	}
	return decodeBoards(node.ProjectsV2.Nodes), nil
}

// ItemsPage fetches one page of a board's items. An empty cursor requests the first page.
func (c *Client) ItemsPage(ctx context.Context, owner board.Owner, number int, cursor string) (*ItemsPage, error) {
	vars := map[string]any{
		"login":  owner.Login,
		"number": number,
		"after":  nil,
	}
	if cursor != "" {
		vars["after"] = cursor
	}

	started := time.Now()
	var data itemsData
	if err := c.query(ctx, itemsQuery(owner.Kind), vars, &data, ownerField(owner.Kind), "projectV2"); err != nil {
		return nil, fmt.Errorf("failed to fetch items of %s #%d: %w", owner, number, err)
	}

	node := pickItemsOwner(owner.Kind, data)
	if node == nil || node.ProjectV2 == nil {
		return nil, fmt.Errorf("failed to fetch items of %s #%d: %w", owner, number, ErrNotFound)
	}

	page := decodePage(node.ProjectV2)
	slog.Debug("Fetched item page",
		"owner", owner.String(),
		"board", number,
		"items", len(page.Items),
		"has_next", page.HasNextPage,
		"duration", time.Since(started))
	return page, nil
}

// query runs one document and decodes its data into out. A NOT_FOUND error
// only fails the query when its path ends at one of roots; errors deeper in
// the tree leave the remaining data usable.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any, roots ...string) error {
	raw, err := c.transport.Do(ctx, query, variables)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(env.Errors) > 0 {
		if err := classifyErrors(env.Errors, roots); err != nil {
			return err
		}
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		if len(env.Errors) > 0 {
			return fmt.Errorf("graphql: %s", joinMessages(env.Errors))
		}
		return errors.New("graphql: empty response")
	}
	if len(env.Errors) > 0 {
		slog.Debug("Partial GraphQL response", "errors", joinMessages(env.Errors))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

func classifyErrors(errs []gqlError, roots []string) error {
	for _, e := range errs {
		switch e.Type {
		case "RATE_LIMITED":
			return fmt.Errorf("%w: %s", ErrRateLimited, e.Message)
		case "NOT_FOUND":
			if e.atRoot(roots) {
				return fmt.Errorf("%w: %s", ErrNotFound, e.Message)
			}
		}
	}
	return nil
}

func joinMessages(errs []gqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
