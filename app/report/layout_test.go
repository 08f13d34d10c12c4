package report

import (
	"testing"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		total int
		want  Widths
	}{
		{200, Widths{Date: 10, End: 10, Field: 22, Assignees: 20, Title: 58, Repo: 28, URL: 40}},
		{160, Widths{Date: 10, End: 10, Field: 22, Assignees: 20, Title: 18, Repo: 28, URL: 40}},
		{140, Widths{Date: 10, End: 10, Field: 22, Assignees: 20, Title: 18, Repo: 28, URL: 20}},
		{120, Widths{Date: 10, End: 10, Field: 16, Assignees: 20, Title: 18, Repo: 14, URL: 20}},
		{110, Widths{Date: 10, End: 10, Field: 14, Assignees: 12, Title: 18, Repo: 14, URL: 20}},
		{100, Widths{Date: 10, End: 10, Field: 14, Assignees: 12, Title: 8, Repo: 14, URL: 20}},
		{60, Widths{Date: 10, End: 10, Field: 14, Assignees: 12, Title: 1, Repo: 14, URL: 20}},
	}

	for _, tt := range tests {
		got := Layout(tt.total)
		if got != tt.want {
			t.Errorf("Layout(%d): expected %+v, got %+v", tt.total, tt.want, got)
		}
	}
}

func TestLayoutFitsAboveFloor(t *testing.T) {
	for total := FloorTotal(); total <= 300; total++ {
		w := Layout(total)
		if w.Total() != total {
			t.Errorf("Layout(%d): expected total %d, got %d", total, total, w.Total())
		}
		if w.Title < TitleFloor {
			t.Errorf("Layout(%d): title %d below floor", total, w.Title)
		}
	}
}

func TestLayoutShrinksDonorsBeforeTitle(t *testing.T) {
	w := Layout(60)
	if w.URL != 20 || w.Repo != 14 {
		t.Errorf("Expected URL and Repo at their floors, got %d and %d", w.URL, w.Repo)
	}
	if w.Title >= TitleFloor {
		t.Errorf("Expected title below floor at width 60, got %d", w.Title)
	}

	narrow := Layout(40)
	if narrow.Title < 1 {
		t.Errorf("Expected title of at least one cell, got %d", narrow.Title)
	}
}

func TestFloorTotal(t *testing.T) {
	if FloorTotal() != 110 {
		t.Errorf("Expected floor total 110, got %d", FloorTotal())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 8, "truncat…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
		{"abc", -3, ""},
		{"", 5, ""},
		{"日本語のタイトル", 5, "日本…"},
	}

	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d): expected %q, got %q", tt.in, tt.width, tt.want, got)
		}
		if cellWidth(got) > max(tt.width, 0) {
			t.Errorf("Truncate(%q, %d): result %q exceeds width", tt.in, tt.width, got)
		}
	}
}

func TestResolveWidth(t *testing.T) {
	if got := ResolveWidth(88, nil); got != 88 {
		t.Errorf("Expected override 88, got %d", got)
	}
	if got := ResolveWidth(0, nil); got != DefaultWidth {
		t.Errorf("Expected default width %d, got %d", DefaultWidth, got)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(nil) {
		t.Error("Expected colors disabled with NO_COLOR")
	}

	t.Setenv("NO_COLOR", "")
	if ColorEnabled(nil) {
		t.Error("Expected colors disabled without a terminal")
	}
}
