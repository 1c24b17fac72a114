package duplicate

import (
	"math"
	"testing"
)

func TestSimilarityKnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"a", "a", 1},
		{"a", "b", 0},
		{"a", "ab", 0},
		{"night", "nacht", 0.25},
		{"catan", "catan", 1},
		{"catan", "catanjunior", 8.0 / 14.0},
		{"ticket to ride", "tickettoride", 1},
		{"aaaa", "aa", 2.0 / 4.0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	words := []string{"", "x", "catan", "pandemic", "ticket to ride", "ticket to ride europe", "aaaa", "aa", "café", "wingspan"}
	for _, a := range words {
		if got := Similarity(a, a); got != 1 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", a, a, got)
		}
		for _, b := range words {
			ab, ba := Similarity(a, b), Similarity(b, a)
			if ab != ba {
				t.Errorf("Similarity(%q, %q) = %v but reverse = %v", a, b, ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("Similarity(%q, %q) = %v out of range", a, b, ab)
			}
		}
	}
}
