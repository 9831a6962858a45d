package format

import (
	"testing"
	"time"
)

func TestParseDateTime_RoundTrip(t *testing.T) {
	in := "2025-01-01T00:00:00Z"
	got, err := ParseDateTime(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := FormatDateTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestParseDateTime_FractionalSeconds(t *testing.T) {
	if _, err := ParseDateTime("2025-01-01T00:00:00.123456789Z"); err != nil {
		t.Fatalf("nano precision rejected: %v", err)
	}
	if _, err := ParseDateTime("2025-01-01 00:00:00"); err == nil {
		t.Fatalf("expected error for space-separated timestamp")
	}
}

func TestCheckers(t *testing.T) {
	cases := []struct {
		format string
		value  string
		ok     bool
	}{
		{"date-time", "2025-06-15T12:30:00+09:00", true},
		{"date-time", "2025-06-15", false},
		{"date", "2025-06-15", true},
		{"date", "15/06/2025", false},
		{"time", "12:30:00Z", true},
		{"time", "noon", false},
		{"duration", "1h30m", true},
		{"duration", "P1Y", false},
		{"email", "ada@example.com", true},
		{"email", "Ada <ada@example.com>", false},
		{"email", "not-an-email", false},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", true},
		{"uuid", "123e4567e89b12d3a456426614174000", false},
		{"uuid", "123e4567-e89b-12d3-a456-42661417400z", false},
		{"uri", "https://example.com/a?b=c", true},
		{"uri", "/relative/path", false},
		{"hostname", "api.example.com", true},
		{"hostname", "-bad.example.com", false},
		{"hostname", "double..dot", false},
		{"ipv4", "192.168.0.1", true},
		{"ipv4", "::1", false},
		{"ipv6", "::1", true},
		{"ipv6", "192.168.0.1", false},
	}
	for _, tc := range cases {
		check, known := Lookup(tc.format)
		if !known {
			t.Fatalf("no checker for %q", tc.format)
		}
		err := check(tc.value)
		if tc.ok && err != nil {
			t.Fatalf("%s(%q): unexpected error: %v", tc.format, tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s(%q): expected error", tc.format, tc.value)
		}
	}
}

func TestLookup_UnknownFormatIsAnnotation(t *testing.T) {
	if _, known := Lookup("isbn"); known {
		t.Fatalf("unexpected checker for unregistered format")
	}
}
