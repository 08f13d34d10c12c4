package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

// Loader handles loading and validation of the owners file
type Loader struct {
	path string
}

// NewLoader creates a new owners file loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, defaults and validates the owners file
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&file)

	if err := l.validate(&file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	slog.Debug("Configuration loaded", "path", l.path, "owners", len(file.Owners))
	return &file, nil
}

// setDefaults applies default values to the owners file
func (l *Loader) setDefaults(file *File) {
	if file.IncludeOrgs == nil {
		include := true
		file.IncludeOrgs = &include
	}
	file.User = strings.TrimSpace(file.User)
	file.DateFieldRegex = strings.TrimSpace(file.DateFieldRegex)
}

// validate validates the owners file
func (l *Loader) validate(file *File) error {
	for i, o := range file.Owners {
		org := strings.TrimSpace(o.Org)
		user := strings.TrimSpace(o.User)
		if (org == "") == (user == "") {
			return fmt.Errorf("owner at index %d must set exactly one of 'org' or 'user'", i)
		}
		for _, n := range o.Numbers.List {
			if n <= 0 {
				return fmt.Errorf("owner at index %d has invalid board number %d", i, n)
			}
		}
	}
	return nil
}

// BoardOwners converts the owner entries into scan targets
func (f *File) BoardOwners() []board.Owner {
	owners := make([]board.Owner, 0, len(f.Owners))
	for _, o := range f.Owners {
		owner := board.Owner{Kind: board.OwnerUser, Login: strings.TrimSpace(o.User)}
		if org := strings.TrimSpace(o.Org); org != "" {
			owner = board.Owner{Kind: board.OwnerOrganization, Login: org}
		}
		if !o.Numbers.All {
			owner.Numbers = o.Numbers.List
		}
		owners = append(owners, owner)
	}
	return owners
}

// UnmarshalYAML accepts "all", null or a sequence of integers
func (n *Numbers) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*n = Numbers{All: true}
			return nil
		}
		if strings.EqualFold(strings.TrimSpace(value.Value), "all") {
			*n = Numbers{All: true}
			return nil
		}
		return fmt.Errorf("line %d: numbers must be 'all' or a list of integers, got %q", value.Line, value.Value)
	case yaml.SequenceNode:
		var list []int
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("line %d: numbers must be integers: %w", value.Line, err)
		}
		*n = Numbers{List: list}
		return nil
	default:
		return fmt.Errorf("line %d: numbers must be 'all' or a list of integers", value.Line)
	}
}
