package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/gh-task-viewer/app/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

const DefaultFieldRegex = "start"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Matching
	Date       string `long:"date" value-name:"YYYY-MM-DD" description:"Cutoff date for the start field (default: today)"`
	FieldRegex string `long:"field-regex" value-name:"REGEX" description:"Case-insensitive pattern for the start date field name (default: start)"`
	Me         string `long:"me" value-name:"LOGIN" description:"Override the auto-detected GitHub login"`

	// Output
	JSON       bool `long:"json" description:"Emit matched items as JSON instead of a table"`
	ListFields bool `long:"list-fields" description:"Emit the distinct start field names instead of a table"`
	Discover   bool `long:"discover" description:"List open boards for every owner and exit"`
	Width      int  `long:"width" env:"GH_TASKS_WIDTH" description:"Terminal width override"`
	Debug      bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	// Owners
	ConfigPath string `long:"config" env:"GH_TASKS_CONFIG" description:"YAML file with extra owners and pinned board numbers"`
	NoOrgs     bool   `long:"no-orgs" description:"Do not scan the boards of your organizations"`

	// Transport
	Token   string `long:"token" env:"GITHUB_TOKEN" description:"Token for direct API access; gh CLI is used when unset"`
	APIURL  string `long:"api-url" env:"GITHUB_GRAPHQL_URL" default:"https://api.github.com/graphql" description:"GraphQL endpoint for direct API access"`
	Timeout int    `long:"timeout" default:"60" description:"Request timeout in seconds for direct API access"`

	// Application metadata
	Timezone    string `long:"timezone" description:"Timezone used to compute today (e.g., UTC, Europe/Berlin)"`
	ShowVersion bool   `long:"version" description:"Print version and exit"`
}

// ErrUsage marks invalid command line input.
var ErrUsage = errors.New("usage error")

// Load parses args. It returns nil, nil when help or the version was printed.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[0])
	}

	if raw.ShowVersion {
		fmt.Println(GetVersion())
		return nil, nil
	}

	cfg := &Cfg{
		Cutoff:      raw.Date,
		Me:          raw.Me,
		Width:       raw.Width,
		Debug:       raw.Debug,
		ConfigPath:  raw.ConfigPath,
		IncludeOrgs: !raw.NoOrgs,
		Token:       raw.Token,
		APIURL:      raw.APIURL,
		Timeout:     time.Duration(raw.Timeout) * time.Second,
		Timezone:    raw.Timezone,
		Version:     GetVersion(),
	}

	switch {
	case raw.JSON && raw.ListFields:
		return nil, fmt.Errorf("%w: --json and --list-fields are mutually exclusive", ErrUsage)
	case raw.Discover && (raw.JSON || raw.ListFields):
		return nil, fmt.Errorf("%w: --discover cannot be combined with --json or --list-fields", ErrUsage)
	case raw.JSON:
		cfg.Mode = ModeJSON
	case raw.ListFields:
		cfg.Mode = ModeListFields
	case raw.Discover:
		cfg.Mode = ModeDiscover
	}

	var fileRegex string
	if cfg.ConfigPath != "" {
		file, err := config.NewLoader(cfg.ConfigPath).Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.Me = cmp.Or(cfg.Me, file.User)
		fileRegex = file.DateFieldRegex
		if !*file.IncludeOrgs {
			cfg.IncludeOrgs = false
		}
		cfg.Owners = file.BoardOwners()
	}

	cfg.FieldRegex = cmp.Or(raw.FieldRegex, fileRegex, DefaultFieldRegex)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	pattern, err := regexp.Compile("(?i)" + c.FieldRegex)
	if err != nil {
		return fmt.Errorf("%w: invalid --field-regex: %v", ErrUsage, err)
	}
	c.Pattern = pattern

	loc, err := location(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: invalid timezone %q: %v", ErrUsage, c.Timezone, err)
	}

	if c.Cutoff == "" {
		c.Cutoff = time.Now().In(loc).Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, c.Cutoff); err != nil {
		return fmt.Errorf("%w: --date must be YYYY-MM-DD, got %q", ErrUsage, c.Cutoff)
	}

	if c.Width < 0 {
		return fmt.Errorf("%w: --width must not be negative", ErrUsage)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: --timeout must be positive", ErrUsage)
	}

	return nil
}

func location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}
