// Package board defines the normalized types for GitHub Projects (v2) boards,
// independent of the GraphQL response shapes they are decoded from.
package board

import "fmt"

type OwnerKind string

const (
	OwnerUser         OwnerKind = "user"
	OwnerOrganization OwnerKind = "organization"
)

type Owner struct {
	Kind  OwnerKind
	Login string
	// Pinned board numbers skip the board listing step. Empty means "list open boards".
	Numbers []int
}

func (o Owner) String() string {
	return fmt.Sprintf("%s:%s", o.Kind, o.Login)
}

type Board struct {
	Number int
	Title  string
	URL    string
}

// Content is one of Draft, Issue or PullRequest.
type Content interface {
	content()
}

type Draft struct {
	Title string
}

type Issue struct {
	Title     string
	URL       string
	Repo      string
	Assignees []string
}

type PullRequest struct {
	Title     string
	URL       string
	Repo      string
	Assignees []string
}

func (Draft) content()       {}
func (Issue) content()       {}
func (PullRequest) content() {}

// FieldValue is one of DateField or UserField.
type FieldValue interface {
	FieldName() string
	fieldValue()
}

type DateField struct {
	Name string
	Date string // YYYY-MM-DD
}

type UserField struct {
	Name  string
	Users []string
}

func (f DateField) FieldName() string { return f.Name }
func (f UserField) FieldName() string { return f.Name }

func (DateField) fieldValue() {}
func (UserField) fieldValue() {}

type Item struct {
	Content    Content
	Fields     []FieldValue
	BoardTitle string
	BoardURL   string
}
