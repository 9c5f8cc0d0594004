package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{MinTokenLength: 2}
	got := a.WordFrequency("The Widget Pro is a widget, for pros. Shipping: free! 4k OK widget")

	want := map[string]int{
		"widget": 3,
		"pro":    1,
		"pros":   1,
		"free":   1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WordFrequency() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopN_TieBreakIsAlphabetical(t *testing.T) {
	freq := map[string]int{"zeta": 2, "alpha": 2, "beta": 5, "gamma": 1}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "top two", n: 2, want: []string{"beta", "alpha"}},
		{name: "all", n: 10, want: []string{"beta", "alpha", "zeta", "gamma"}},
		{name: "none", n: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, TopN(freq, tt.n)); diff != "" {
				t.Errorf("TopN() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"The", "and", "shipping"} {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}
	if IsStopword("widget") {
		t.Error("IsStopword(widget) = true, want false")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  Hello, World!  (new) -- ")
	want := []string{"hello", "world", "new"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}
