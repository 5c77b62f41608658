package vectorspace

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func TestFitRejectsEmptyCorpus(t *testing.T) {
	t.Parallel()

	if _, err := Fit(nil, Options{}); err == nil {
		t.Fatal("Fit(nil) should fail")
	}
	if _, err := Fit([]string{"", "   "}, Options{}); err == nil {
		t.Fatal("Fit over blank documents should fail with an empty vocabulary")
	}
	if _, err := Fit([]string{"the and of"}, Options{}); err == nil {
		t.Fatal("Fit over stop words only should fail with an empty vocabulary")
	}
}

func TestFitVectors(t *testing.T) {
	t.Parallel()

	space, err := Fit([]string{
		"action adventure space",
		"action drama",
		"drama romance",
	}, Options{})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if space.Len() != 3 {
		t.Fatalf("Len = %d, want 3", space.Len())
	}
	if space.VocabularySize() != 5 {
		t.Fatalf("VocabularySize = %d, want 5", space.VocabularySize())
	}

	for i := 0; i < space.Len(); i++ {
		var norm float64
		for _, w := range space.Vector(i) {
			norm += w.Value * w.Value
		}
		if math.Abs(norm-1) > 1e-12 {
			t.Fatalf("vector %d is not L2-normalized: |v|^2 = %v", i, norm)
		}
	}

	// Documents sharing a term must score higher than disjoint ones.
	shared := Dot(space.Vector(0), space.Vector(1))
	disjoint := Dot(space.Vector(0), space.Vector(2))
	if shared <= disjoint {
		t.Fatalf("shared-term similarity %v should exceed disjoint similarity %v", shared, disjoint)
	}

	if self := Dot(space.Vector(0), space.Vector(0)); math.Abs(self-1) > 1e-12 {
		t.Fatalf("self similarity = %v, want 1", self)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	t.Parallel()

	docs := []string{
		"zeta yankee xray whiskey victor",
		"zeta zeta yankee uniform tango",
		"sierra romeo quebec papa oscar",
	}

	first, err := Fit(docs, Options{MaxFeatures: 6})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := Fit(docs, Options{MaxFeatures: 6})
		if err != nil {
			t.Fatalf("Fit failed on rerun: %v", err)
		}
		if !reflect.DeepEqual(first.terms, again.terms) {
			t.Fatalf("vocabulary differs between runs: %v vs %v", first.terms, again.terms)
		}
		if !reflect.DeepEqual(first.vectors, again.vectors) {
			t.Fatal("vectors differ between runs")
		}
	}
}

func TestVocabularyCapRanksByFrequency(t *testing.T) {
	t.Parallel()

	// "common" appears in every document, the rest once each.
	docs := []string{
		"common unique1",
		"common unique2",
		"common unique3",
	}
	space, err := Fit(docs, Options{MaxFeatures: 2})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if space.VocabularySize() != 2 {
		t.Fatalf("VocabularySize = %d, want 2", space.VocabularySize())
	}
	if _, ok := space.vocabulary["common"]; !ok {
		t.Fatalf("most frequent term missing from capped vocabulary: %v", space.terms)
	}
	// The frequency tie among unique1..3 breaks alphabetically.
	if _, ok := space.vocabulary["unique1"]; !ok {
		t.Fatalf("tie-break should keep the alphabetically first term: %v", space.terms)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := tokenize("The Quick-Brown Fox, a 7B droid!")
	want := []string{"quick", "brown", "fox", "7b", "droid"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
}

func TestDotDisjointVectors(t *testing.T) {
	t.Parallel()

	a := Vector{{Term: 0, Value: 1}}
	b := Vector{{Term: 1, Value: 1}}
	if got := Dot(a, b); got != 0 {
		t.Fatalf("Dot disjoint = %v, want 0", got)
	}
	if got := Dot(nil, a); got != 0 {
		t.Fatalf("Dot nil = %v, want 0", got)
	}
}
