package agrisite

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"Simple Title", "simple-title"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Already-Hyphenated--Title", "already-hyphenated-title"},
		{"trailing punctuation!!!", "trailing-punctuation"},
		{"UPPER case", "upper-case"},
		{"100% Organic", "100-organic"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com/", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com", nil, "https://example.com"},
	}

	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestParseOptionalInt(t *testing.T) {
	if got, err := parseOptionalInt(""); err != nil || got != nil {
		t.Errorf("blank = (%v, %v), want (nil, nil)", got, err)
	}
	if got, err := parseOptionalInt("  "); err != nil || got != nil {
		t.Errorf("whitespace = (%v, %v), want (nil, nil)", got, err)
	}
	got, err := parseOptionalInt(" 42 ")
	if err != nil || got == nil || *got != 42 {
		t.Errorf("parse = (%v, %v), want 42", got, err)
	}
	if _, err := parseOptionalInt("abc"); err == nil {
		t.Error("malformed input should error")
	}
}

func TestParseOptionalFloat(t *testing.T) {
	if got, err := parseOptionalFloat(""); err != nil || got != nil {
		t.Errorf("blank = (%v, %v), want (nil, nil)", got, err)
	}
	got, err := parseOptionalFloat("19.99")
	if err != nil || got == nil || *got != 19.99 {
		t.Errorf("parse = (%v, %v), want 19.99", got, err)
	}
	if _, err := parseOptionalFloat("1.2.3"); err == nil {
		t.Error("malformed input should error")
	}
}

func TestExcerptOf(t *testing.T) {
	p := BlogPost{Excerpt: "hand-written excerpt", Content: "long content body"}
	if got := excerptOf(p, 5); got != "hand-written excerpt" {
		t.Errorf("excerptOf = %q, want the explicit excerpt", got)
	}

	p = BlogPost{Content: "short"}
	if got := excerptOf(p, 100); got != "short" {
		t.Errorf("excerptOf = %q, want full content", got)
	}

	p = BlogPost{Content: "abcdefghij"}
	if got := excerptOf(p, 4); got != "abcd..." {
		t.Errorf("excerptOf = %q, want truncated with ellipsis", got)
	}
}
