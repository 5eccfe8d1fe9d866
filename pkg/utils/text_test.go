package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "octocat", "other"); got != "octocat" {
		t.Errorf("got %q, want octocat", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Errorf("no values: got %q", got)
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("empty string should map to nil")
	}
	p := StringPtr("Sofia")
	if p == nil || *p != "Sofia" {
		t.Errorf("got %v", p)
	}
	if Deref(nil) != "" || Deref(p) != "Sofia" {
		t.Error("Deref mismatch")
	}
}

func TestHead(t *testing.T) {
	if got := Head("héllo", 2); got != "hé" {
		t.Errorf("got %q", got)
	}
	if got := Head("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := Head("abc", -1); got != "abc" {
		t.Errorf("got %q", got)
	}
}
