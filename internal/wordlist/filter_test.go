package wordlist

import "testing"

func TestIsCandidate(t *testing.T) {
	for _, word := range []string{"hello", "p@ss w0rd", "résumé", "don’t"} {
		if !IsCandidate(word) {
			t.Fatalf("expected %q to be accepted", word)
		}
	}
	for _, word := range []string{"", "two\nlines", "tab\there", "bad\x00byte", "\xff"} {
		if IsCandidate(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	got := Filter([]string{"b", "", "a", "c\r"}, IsCandidate)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected filter result: %q", got)
	}
}
