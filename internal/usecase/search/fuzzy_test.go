package search

import "testing"

func TestFuzzyScore_EmptyInputs(t *testing.T) {
	if got := fuzzyScore("", "anything"); got != 0 {
		t.Errorf("empty query: got %v, want 0", got)
	}
	if got := fuzzyScore("query", ""); got != 0 {
		t.Errorf("empty text: got %v, want 0", got)
	}
	if got := fuzzyScore("", ""); got != 0 {
		t.Errorf("both empty: got %v, want 0", got)
	}
}

func TestFuzzyScore_SubstringShortcut(t *testing.T) {
	if got := fuzzyScore("pump", "industrial pump a"); got != 1 {
		t.Errorf("substring hit: got %v, want 1", got)
	}
	// Case-insensitive.
	if got := fuzzyScore("PUMP", "Industrial pump A"); got != 1 {
		t.Errorf("case-insensitive substring: got %v, want 1", got)
	}
}

func TestFuzzyScore_LevenshteinSimilarity(t *testing.T) {
	// "pimp" vs "pump": distance 1, max len 4 -> 0.75.
	got := fuzzyScore("pimp", "pump")
	if got != 0.75 {
		t.Errorf("got %v, want 0.75", got)
	}
}

func TestFuzzyScore_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzz"},
		{"pressure", "steel"},
		{"abc", "abc"},
		{"Ünïcode", "unicode"},
		{"completely different", "x"},
	}
	for _, p := range pairs {
		got := fuzzyScore(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("fuzzyScore(%q,%q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestFuzzyScore_Symmetric_OnEqualLengths(t *testing.T) {
	a, b := "valve", "vales"
	if fuzzyScore(a, b) != fuzzyScore(b, a) {
		t.Errorf("expected symmetric score for equal-length inputs")
	}
}
