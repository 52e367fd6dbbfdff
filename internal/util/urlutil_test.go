package util

import "testing"

func TestCleanURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://example.com/page", "https://example.com/page"},
		{"https://example.com/page?", "https://example.com/page"},
		{"https://example.com/page?ref=nav", "https://example.com/page?nav"},
	}

	for _, tt := range tests {
		if got := CleanURL(tt.in); got != tt.want {
			t.Errorf("CleanURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/path", "example.com"},
		{"https://EN.Wikipedia.org/wiki/Go", "en.wikipedia.org"},
		{"not-a-url", ""},
	}

	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidURL(t *testing.T) {
	if !ValidURL("https://example.com/x") {
		t.Error("Expected https URL to be valid")
	}
	if ValidURL("example.com/x") {
		t.Error("Expected scheme-less URL to be invalid")
	}
	if ValidURL("") {
		t.Error("Expected empty URL to be invalid")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
	if got := Truncate("0123456789abc", 10); got != "0123456789..." {
		t.Errorf("Expected truncated text with ellipsis, got %q", got)
	}
}

func TestSafeFilename(t *testing.T) {
	got := SafeFilename("What is the EU AI Act?")
	want := "What-is-the-EU-AI-Act"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
