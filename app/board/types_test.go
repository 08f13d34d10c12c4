package board

import "testing"

func TestFieldValueVariants(t *testing.T) {
	fields := []FieldValue{
		DateField{Name: "Start", Date: "2024-01-01"},
		UserField{Name: "Reviewers", Users: []string{"tester"}},
	}

	var dates, users int
	for _, f := range fields {
		switch f.(type) {
		case DateField:
			dates++
		case UserField:
			users++
		default:
			t.Errorf("Unexpected field variant %T", f)
		}
	}
	if dates != 1 || users != 1 {
		t.Errorf("Expected one date and one user field, got %d and %d", dates, users)
	}
	if fields[1].FieldName() != "Reviewers" {
		t.Errorf("Expected field name 'Reviewers', got '%s'", fields[1].FieldName())
	}
}

func TestOwnerString(t *testing.T) {
	owner := Owner{Kind: OwnerOrganization, Login: "acme"}
	if owner.String() != "organization:acme" {
		t.Errorf("Expected 'organization:acme', got '%s'", owner.String())
	}
}
