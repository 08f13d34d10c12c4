package cfg

import (
	"regexp"
	"time"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

type Mode int

const (
	ModeTable Mode = iota
	ModeJSON
	ModeListFields
	ModeDiscover
)

type Cfg struct {
	// Matching
	Cutoff     string
	FieldRegex string
	Pattern    *regexp.Regexp
	Me         string

	// Output
	Mode  Mode
	Width int
	Debug bool

	// Owners
	ConfigPath  string
	IncludeOrgs bool
	Owners      []board.Owner

	// Transport
	Token   string
	APIURL  string
	Timeout time.Duration

	// Application metadata
	Timezone string
	Version  string
}
