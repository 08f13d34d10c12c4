package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestHTTPTransportPostsQuery(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Expected bearer token, got '%s'", auth)
		}
		if ua := r.Header.Get("User-Agent"); ua != "gh-task-viewer/test" {
			t.Errorf("Expected user agent 'gh-task-viewer/test', got '%s'", ua)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("Request body is not JSON: %v", err)
		}
		w.Write([]byte(`{"data":{"viewer":{"login":"tester"}}}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.Client(), server.URL, "secret", "gh-task-viewer/test", 5*time.Second)
	login, err := NewClient(transport).Viewer(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if login != "tester" {
		t.Errorf("Expected login 'tester', got '%s'", login)
	}
	if got.Query != viewerQuery {
		t.Errorf("Expected viewer query, got '%s'", got.Query)
	}
}

func TestHTTPTransportRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.Client(), server.URL, "secret", "test", time.Second)
	_, err := transport.Do(context.Background(), viewerQuery, nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestHTTPTransportServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.Client(), server.URL, "secret", "test", time.Second)
	_, err := transport.Do(context.Background(), viewerQuery, nil)
	if err == nil || errors.Is(err, ErrRateLimited) {
		t.Fatalf("Expected plain HTTP error, got %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("Expected status code in error, got %v", err)
	}
}

func TestHTTPTransportDefaultURL(t *testing.T) {
	transport := NewHTTPTransport(http.DefaultClient, "", "secret", "test", time.Second)
	if transport.url != DefaultGraphQLURL {
		t.Errorf("Expected default URL, got '%s'", transport.url)
	}
}

// fakeGh writes an executable shell script standing in for the gh binary.
func fakeGh(t *testing.T, script string) *GhCLI {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "gh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return &GhCLI{Path: path}
}

func TestGhCLIPassesRequestOnStdin(t *testing.T) {
	dir := t.TempDir()
	captured := filepath.Join(dir, "request.json")
	args := filepath.Join(dir, "args")
	gh := fakeGh(t, `echo "$@" > `+args+`
cat > `+captured+`
echo '{"data":{"viewer":{"login":"tester"}}}'
`)

	login, err := NewClient(gh).Viewer(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if login != "tester" {
		t.Errorf("Expected login 'tester', got '%s'", login)
	}

	gotArgs, err := os.ReadFile(args)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(gotArgs)) != "api graphql --input -" {
		t.Errorf("Unexpected gh arguments '%s'", gotArgs)
	}

	body, err := os.ReadFile(captured)
	if err != nil {
		t.Fatal(err)
	}
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("Request body is not JSON: %v", err)
	}
	if req.Query != viewerQuery {
		t.Errorf("Expected viewer query, got '%s'", req.Query)
	}
}

func TestGhCLIKeepsGraphQLErrorBody(t *testing.T) {
	gh := fakeGh(t, `cat > /dev/null
echo '{"data":{"user":{"projectV2":null}},"errors":[{"type":"NOT_FOUND","message":"missing"}]}'
echo 'gh: Could not resolve to a ProjectV2' >&2
exit 1
`)

	out, err := gh.Do(context.Background(), "query", nil)
	if err != nil {
		t.Fatalf("Expected response body despite exit status, got %v", err)
	}
	if !strings.Contains(string(out), "NOT_FOUND") {
		t.Errorf("Expected error body, got '%s'", out)
	}
}

func TestGhCLIFailure(t *testing.T) {
	gh := fakeGh(t, `cat > /dev/null
echo 'HTTP 401: Bad credentials' >&2
exit 1
`)

	_, err := gh.Do(context.Background(), "query", nil)
	if err == nil || !strings.Contains(err.Error(), "Bad credentials") {
		t.Errorf("Expected stderr in error, got %v", err)
	}
}

func TestGhCLIRateLimit(t *testing.T) {
	gh := fakeGh(t, `cat > /dev/null
echo 'GraphQL: API rate limit exceeded for user' >&2
exit 1
`)

	_, err := gh.Do(context.Background(), "query", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestGhCLIRateLimitWithRESTBody(t *testing.T) {
	gh := fakeGh(t, `cat > /dev/null
echo '{"message":"API rate limit exceeded for user ID 1.","documentation_url":"https://docs.github.com/rest"}'
echo 'gh: API rate limit exceeded for user ID 1. (HTTP 403)' >&2
exit 1
`)

	_, err := gh.Do(context.Background(), "query", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestGhCLIRESTErrorBody(t *testing.T) {
	gh := fakeGh(t, `cat > /dev/null
echo '{"message":"Bad credentials"}'
echo 'gh: Bad credentials (HTTP 401)' >&2
exit 1
`)

	out, err := gh.Do(context.Background(), "query", nil)
	if err == nil || !strings.Contains(err.Error(), "Bad credentials") {
		t.Errorf("Expected stderr in error, got %v (body %q)", err, out)
	}
}

func TestGhCLICheckAuth(t *testing.T) {
	ok := fakeGh(t, "exit 0\n")
	if err := ok.CheckAuth(context.Background()); err != nil {
		t.Errorf("Expected authenticated gh, got %v", err)
	}

	bad := fakeGh(t, "echo 'You are not logged into any GitHub hosts.' >&2\nexit 1\n")
	err := bad.CheckAuth(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not logged") {
		t.Errorf("Expected auth error, got %v", err)
	}
}
