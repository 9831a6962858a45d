package typeforge

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := Issues{
		{Path: "/a", Code: CodeRequired},
		{Path: "/b", Code: CodeInvalidType},
	}
	got := iss.Error()
	want := "required at /a; invalid_type at /b"
	if got != want {
		t.Fatalf("summary mismatch: %q != %q", got, want)
	}
}

func TestIssues_ErrorSummaryTruncates(t *testing.T) {
	var iss Issues
	for i := 0; i < 5; i++ {
		iss = AppendIssues(iss, Issue{Path: fmt.Sprintf("/f%d", i), Code: CodeInvalidType})
	}
	got := iss.Error()
	if !strings.Contains(got, "(total 5)") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if strings.Contains(got, "/f3") {
		t.Fatalf("expected only the first three issues, got %q", got)
	}
}

func TestAsIssues(t *testing.T) {
	iss := Issues{{Path: "/", Code: CodeParseError}}
	wrapped := fmt.Errorf("decode: %w", iss)

	got, ok := AsIssues(wrapped)
	if !ok || len(got) != 1 {
		t.Fatalf("expected issues through wrapping, got %v ok=%v", got, ok)
	}
	if _, ok := AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors must not convert")
	}
	if _, ok := AsIssues(nil); ok {
		t.Fatalf("nil must not convert")
	}
}

func TestChildPath_EscapesPointerCharacters(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"/", "name", "/name"},
		{"", "name", "/name"},
		{"/user", "name", "/user/name"},
		{"/", "a/b", "/a~1b"},
		{"/", "a~b", "/a~0b"},
	}
	for _, tc := range cases {
		if got := ChildPath(tc.base, tc.key); got != tc.want {
			t.Fatalf("ChildPath(%q, %q) = %q, want %q", tc.base, tc.key, got, tc.want)
		}
	}
}

func TestIndexPath(t *testing.T) {
	if got := IndexPath("/", 2); got != "/2" {
		t.Fatalf("got %q", got)
	}
	if got := IndexPath("/items", 0); got != "/items/0" {
		t.Fatalf("got %q", got)
	}
}
