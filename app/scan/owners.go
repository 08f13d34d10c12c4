package scan

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

// ResolveIdentity returns the login items are matched against. An explicit
// override skips the remote lookup.
func ResolveIdentity(ctx context.Context, source Source, override string) Result[string] {
	if override != "" {
		return OK(override)
	}
	login, err := source.Viewer(ctx)
	if err != nil {
		return Fatal[string](err)
	}
	return OK(login)
}

type Enumerator struct {
	source      Source
	includeOrgs bool
}

func NewEnumerator(source Source, includeOrgs bool) *Enumerator {
	return &Enumerator{source: source, includeOrgs: includeOrgs}
}

// Run lists the user first, then every organization the remote side reports,
// then any extra owners not already present. An extra owner equal to an
// enumerated one lends it its pinned board numbers.
func (e *Enumerator) Run(ctx context.Context, login string, extra []board.Owner) Result[[]board.Owner] {
	owners := []board.Owner{{Kind: board.OwnerUser, Login: login}}

	var result Result[[]board.Owner]
	if e.includeOrgs {
		orgs, err := e.source.Organizations(ctx)
		if err != nil {
			result = Degraded[[]board.Owner](nil, "Organization lookup failed, scanning only your own boards", err)
		}
		for _, org := range orgs {
			owners = append(owners, board.Owner{Kind: board.OwnerOrganization, Login: org})
		}
	}

	owners = mergeOwners(owners, extra)
	slog.Debug("Owners enumerated", "count", len(owners))

	if result.Status == StatusDegraded {
		result.Value = owners
		return result
	}
	return OK(owners)
}

func mergeOwners(owners, extra []board.Owner) []board.Owner {
	for _, x := range extra {
		merged := false
		for i := range owners {
			if owners[i].Kind == x.Kind && strings.EqualFold(owners[i].Login, x.Login) {
				if len(x.Numbers) > 0 {
					owners[i].Numbers = x.Numbers
				}
				merged = true
				break
			}
		}
		if !merged {
			owners = append(owners, x)
		}
	}
	return owners
}
