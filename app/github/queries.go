package github

import (
	"fmt"

	"github.com/lysyi3m/gh-task-viewer/app/board"
)

const (
	BoardPageSize = 50
	ItemPageSize  = 100
	OrgPageSize   = 100
)

const viewerQuery = `query { viewer { login } }`

var orgsQuery = fmt.Sprintf(`query {
  viewer {
    organizations(first:%d) { nodes { login } }
  }
}`, OrgPageSize)

const boardsQueryTemplate = `query($login:String!) {
  %s(login:$login) {
    projectsV2(first:%d, orderBy:{field:UPDATED_AT,direction:DESC}) {
      nodes { number title url closed }
    }
  }
}`

const itemsQueryTemplate = `query($login:String!, $number:Int!, $after:String) {
  %s(login:$login) {
    projectV2(number:$number) {
      title
      url
      items(first:%d, after:$after) {
        pageInfo { hasNextPage endCursor }
        nodes {
          content {
            __typename
            ... on DraftIssue { title }
            ... on Issue {
              title url repository { nameWithOwner }
              assignees(first:50) { nodes { login } }
            }
            ... on PullRequest {
              title url repository { nameWithOwner }
              assignees(first:50) { nodes { login } }
            }
          }
          fieldValues(first:50) {
            nodes {
              __typename
              ... on ProjectV2ItemFieldDateValue {
                date
                field { ... on ProjectV2FieldCommon { name } }
              }
              ... on ProjectV2ItemFieldUserValue {
                users(first:50) { nodes { login } }
                field { ... on ProjectV2FieldCommon { name } }
              }
            }
          }
        }
      }
    }
  }
}`

// ownerField is the root query field holding boards for the owner kind.
func ownerField(kind board.OwnerKind) string {
	if kind == board.OwnerOrganization {
		return "organization"
	}
	return "user"
}

func boardsQuery(kind board.OwnerKind) string {
	return fmt.Sprintf(boardsQueryTemplate, ownerField(kind), BoardPageSize)
}

func itemsQuery(kind board.OwnerKind) string {
	return fmt.Sprintf(itemsQueryTemplate, ownerField(kind), ItemPageSize)
}
