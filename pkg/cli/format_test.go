package cli

import (
	"strings"
	"testing"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"abc", 9, "---abc---"},
		{"ab", 9, "---ab----"},
		{"abcdefghij", 5, "abcdefghij"},
		{"", 4, "----"},
	}
	for _, tt := range tests {
		if got := Center(tt.s, tt.width, '-'); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestDotPad(t *testing.T) {
	got := DotPad("reading report", 20)
	if !strings.HasPrefix(got, "reading report ") {
		t.Errorf("missing space separator: %q", got)
	}
	if len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
	if got := DotPad("long-name-already", 5); got != "long-name-already" {
		t.Errorf("names wider than the field must pass through: %q", got)
	}
}

func TestColorsRespectNoColor(t *testing.T) {
	old := colorEnabled
	defer func() { colorEnabled = old }()

	colorEnabled = false
	if got := Green("ok"); got != "ok" {
		t.Errorf("NO_COLOR Green = %q", got)
	}
	colorEnabled = true
	if got := Red("bad"); !strings.Contains(got, "bad") || got == "bad" {
		t.Errorf("colored Red = %q", got)
	}
}
