package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/gh-task-viewer/app/board"
	"github.com/lysyi3m/gh-task-viewer/app/cfg"
	"github.com/lysyi3m/gh-task-viewer/app/github"
	"github.com/lysyi3m/gh-task-viewer/app/match"
	"github.com/lysyi3m/gh-task-viewer/app/report"
	"github.com/lysyi3m/gh-task-viewer/app/scan"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout *os.File) int {
	appCfg, err := cfg.Load(args)
	if err != nil {
		// go-flags already printed its own parse errors.
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if errors.Is(err, cfg.ErrUsage) {
			return exitUsage
		}
		return exitFatal
	}
	if appCfg == nil {
		return exitOK
	}

	setupLogging(appCfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport, err := newTransport(ctx, appCfg)
	if err != nil {
		slog.Error("Cannot reach GitHub", "error", err)
		return exitFatal
	}
	client := github.NewClient(transport)

	identity := scan.ResolveIdentity(ctx, client, appCfg.Me)
	if identity.Status == scan.StatusFatal {
		slog.Error("Failed to resolve identity, pass --me to override", "error", identity.Err)
		return exitFatal
	}
	login := identity.Value
	slog.Debug("Scanning as", "login", login, "cutoff", appCfg.Cutoff, "field_regex", appCfg.FieldRegex)

	owners := scan.NewEnumerator(client, appCfg.IncludeOrgs).Run(ctx, login, appCfg.Owners)
	owners.Report()

	if appCfg.Mode == cfg.ModeDiscover {
		return discover(ctx, stdout, client, owners.Value)
	}

	matcher := match.NewMatcher(login, appCfg.Pattern, appCfg.Cutoff)
	pipeline := scan.NewPipeline(scan.NewLister(client), scan.NewScanner(client), matcher)
	summary := pipeline.Run(ctx, owners.Value)

	if ctx.Err() != nil {
		slog.Error("Interrupted")
		return exitFatal
	}

	records := report.Aggregate(summary.Records)

	if err := render(stdout, appCfg, records); err != nil {
		slog.Error("Failed to write output", "error", err)
		return exitFatal
	}
	return exitOK
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newTransport uses the token when one is configured and the gh CLI otherwise.
func newTransport(ctx context.Context, appCfg *cfg.Cfg) (github.Transport, error) {
	if appCfg.Token != "" {
		slog.Debug("Using direct API access", "url", appCfg.APIURL)
		userAgent := fmt.Sprintf("gh-task-viewer/%s", appCfg.Version)
		return github.NewHTTPTransport(http.DefaultClient, appCfg.APIURL, appCfg.Token, userAgent, appCfg.Timeout), nil
	}

	gh, err := github.NewGhCLI()
	if err != nil {
		return nil, err
	}
	if err := gh.CheckAuth(ctx); err != nil {
		return nil, err
	}
	slog.Debug("Using gh CLI", "path", gh.Path)
	return gh, nil
}

func discover(ctx context.Context, stdout *os.File, client *github.Client, owners []board.Owner) int {
	for _, owner := range owners {
		boards, err := client.Boards(ctx, owner)
		if err != nil {
			slog.Warn("Failed to list boards", "owner", owner.String(), "error", err)
		}
		if err := report.Boards(stdout, owner, boards); err != nil {
			slog.Error("Failed to write output", "error", err)
			return exitFatal
		}
	}
	return exitOK
}

func render(stdout *os.File, appCfg *cfg.Cfg, records []match.Record) error {
	switch appCfg.Mode {
	case cfg.ModeJSON:
		return report.JSON(stdout, records)
	case cfg.ModeListFields:
		if len(records) == 0 {
			slog.Warn("No items to infer fields from")
			return nil
		}
		_, err := report.Fields(stdout, records)
		return err
	default:
		if len(records) == 0 {
			return report.WriteNoMatches(stdout, appCfg.FieldRegex, appCfg.Cutoff)
		}
		width := report.ResolveWidth(appCfg.Width, stdout)
		table := report.NewTable(width, appCfg.Cutoff, report.ColorEnabled(stdout))
		return table.Run(stdout, records)
	}
}
