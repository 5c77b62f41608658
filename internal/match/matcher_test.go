package match

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Alpha", b: "Alpha", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "Alpha", b: "", want: 0},
		{name: "single char edit", a: "Alphaa", b: "Alpha", want: 2 * 5.0 / 11.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Ratio([]rune(tc.a), []rune(tc.b))
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestRatioCountsAllMatchingBlocks(t *testing.T) {
	t.Parallel()

	// "abcd" vs "bcda": longest block "bcd" plus no further matches on
	// the flanks = 3 matched runes.
	got := Ratio([]rune("abcd"), []rune("bcda"))
	want := 2 * 3.0 / 8.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Ratio = %v, want %v", got, want)
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	titles := []string{"Alpha", "Beta", "Gamma", "Alpha Returns"}
	m := NewRatioMatcher()

	idx, ok := m.BestMatch("Alphaa", titles, 0.3)
	if !ok || idx != 0 {
		t.Fatalf("BestMatch misspelled = (%d, %v), want (0, true)", idx, ok)
	}

	idx, ok = m.BestMatch("Gamma", titles, 0.3)
	if !ok || idx != 2 {
		t.Fatalf("BestMatch exact = (%d, %v), want (2, true)", idx, ok)
	}

	if _, ok := m.BestMatch("Zzzznotamovie", titles, 0.3); ok {
		t.Fatal("BestMatch should reject queries below the cutoff")
	}
}

func TestBestMatchTieBreaksByLowestIndex(t *testing.T) {
	t.Parallel()

	titles := []string{"Twin", "Twin"}
	m := NewRatioMatcher()

	idx, ok := m.BestMatch("Twin", titles, 0.3)
	if !ok || idx != 0 {
		t.Fatalf("BestMatch tie = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	t.Parallel()

	if _, ok := NewRatioMatcher().BestMatch("anything", nil, 0.3); ok {
		t.Fatal("BestMatch over no candidates must not match")
	}
}
