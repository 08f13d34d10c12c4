package config

// File is the optional owners file
type File struct {
	User           string       `yaml:"user"`
	DateFieldRegex string       `yaml:"date_field_regex"`
	IncludeOrgs    *bool        `yaml:"include_orgs"`
	Owners         []OwnerEntry `yaml:"owners"`
}

// OwnerEntry names one extra owner to scan, either an org or a user
type OwnerEntry struct {
	Org     string  `yaml:"org"`
	User    string  `yaml:"user"`
	Numbers Numbers `yaml:"numbers"`
}

// Numbers is either "all" (or omitted) or an explicit list of board numbers
type Numbers struct {
	All  bool
	List []int
}
