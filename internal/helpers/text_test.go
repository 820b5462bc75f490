package helpers

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "newlines and tabs", in: "a\n\n b\t\tc", want: "a b c"},
		{name: "leading and trailing", in: "  hello world \n", want: "hello world"},
		{name: "already clean", in: "plain text", want: "plain text"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.in); got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleFromURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "slug segment", in: "https://example.com/news/big-market-move", want: "Big market move"},
		{name: "trailing slash has empty segment", in: "https://example.com/big-story/", want: "Untitled"},
		{name: "uppercase source", in: "https://example.com/BREAKING-News", want: "Breaking news"},
		{name: "no path", in: "https://example.com/", want: "Untitled"},
		{name: "empty", in: "", want: "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromURL(tt.in); got != tt.want {
				t.Errorf("TitleFromURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClip(t *testing.T) {
	if got := Clip("hello", 10); got != "hello" {
		t.Errorf("Clip short = %q", got)
	}
	if got := Clip("hello", 3); got != "hel" {
		t.Errorf("Clip = %q, want hel", got)
	}
	// multibyte rune must not be split
	if got := Clip("héllo", 2); got != "h" {
		t.Errorf("Clip multibyte = %q, want h", got)
	}
}
