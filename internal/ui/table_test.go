package ui

import "testing"

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Fatalf("pad(%q, 5) = %q", "ab", got)
	}
	if got := pad("abcdef", 3); got != "abcdef" {
		t.Fatalf("pad must not truncate, got %q", got)
	}
	// double-width runes count as two cells
	if got := pad("日本", 6); got != "日本  " {
		t.Fatalf("pad(%q, 6) = %q", "日本", got)
	}
}
