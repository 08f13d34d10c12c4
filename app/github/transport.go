package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

const DefaultGraphQLURL = "https://api.github.com/graphql"

var (
	ErrToolMissing = errors.New("gh CLI not found in PATH")
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
)

// Transport executes one GraphQL document and returns the raw response body.
type Transport interface {
	Do(ctx context.Context, query string, variables map[string]any) ([]byte, error)
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GhCLI runs queries through `gh api graphql`, reusing the gh login session.
type GhCLI struct {
	Path string
}

func NewGhCLI() (*GhCLI, error) {
	path, err := exec.LookPath("gh")
	if err != nil {
		return nil, fmt.Errorf("%w: install it from https://cli.github.com", ErrToolMissing)
	}
	return &GhCLI{Path: path}, nil
}

func (g *GhCLI) CheckAuth(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, g.Path, "auth", "status")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gh is not authenticated (run `gh auth login`): %s", firstLine(stderr.String(), err))
	}
	return nil
}

func (g *GhCLI) Do(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	cmd := exec.CommandContext(ctx, g.Path, "api", "graphql", "--input", "-")
	cmd.Stdin = bytes.NewReader(body)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// gh exits non-zero on GraphQL errors but still prints the response body.
		if out := bytes.TrimSpace(stdout.Bytes()); isGraphQLBody(out) {
			return out, nil
		}
		msg := stderr.String()
		if isRateLimit(msg) || isRateLimit(stdout.String()) {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, firstLine(msg, err))
		}
		return nil, fmt.Errorf("gh api graphql failed: %s", firstLine(msg, err))
	}

	return stdout.Bytes(), nil
}

// HTTPTransport posts queries straight to the GraphQL endpoint with a token.
type HTTPTransport struct {
	client    *http.Client
	url       string
	token     string
	userAgent string
	timeout   time.Duration
}

func NewHTTPTransport(client *http.Client, url, token, userAgent string, timeout time.Duration) *HTTPTransport {
	if url == "" {
		url = DefaultGraphQLURL
	}
	return &HTTPTransport{
		client:    client,
		url:       url,
		token:     token,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (h *HTTPTransport) Do(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0") {
			return nil, fmt.Errorf("%w: HTTP %d", ErrRateLimited, resp.StatusCode)
		}
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return data, nil
}

// isGraphQLBody reports whether out is a GraphQL response carrying data or
// errors, as opposed to a REST error document like {"message": "..."}.
func isGraphQLBody(out []byte) bool {
	if len(out) == 0 || out[0] != '{' {
		return false
	}
	var body struct {
		Data   json.RawMessage `json:"data"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(out, &body); err != nil {
		return false
	}
	return len(body.Data) > 0 || len(body.Errors) > 0
}

func isRateLimit(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "rate limit")
}

func firstLine(msg string, err error) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return err.Error()
	}
	line, _, _ := strings.Cut(msg, "\n")
	return line
}
