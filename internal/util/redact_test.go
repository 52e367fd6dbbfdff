package util

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email", "Contact john.doe@example.com for details", "[EMAIL_REDACTED]"},
		{"phone", "Call 555-123-4567 today", "[PHONE_REDACTED]"},
		{"ip", "Server at 192.168.1.1 is down", "[IP_REDACTED]"},
		{"card", "Card 4111-1111-1111-1111 charged", "[CARD_REDACTED]"},
		{"ssn", "SSN 123-45-6789 on file", "[SSN_REDACTED]"},
	}

	for _, tt := range tests {
		got := Redact(tt.in)
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: expected %q in output, got %q", tt.name, tt.want, got)
		}
	}
}

func TestRedact_LeavesCleanTextAlone(t *testing.T) {
	in := "The regulation entered into force in August 2024."
	if got := Redact(in); got != in {
		t.Errorf("Expected clean text unchanged, got %q", got)
	}
}

func TestRedact_Empty(t *testing.T) {
	if got := Redact(""); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}
