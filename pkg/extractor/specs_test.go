package extractor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeSpecs_LastWriterWins(t *testing.T) {
	got := mergeSpecs(
		map[string]string{"Brand": "Sony", "Color": "Black"},
		map[string]string{"Color": "Silver"},
		nil,
		map[string]string{"Model": "X1"},
	)
	want := map[string]string{"Brand": "Sony", "Color": "Silver", "Model": "X1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeSpecs() mismatch (-want +got):\n%s", diff)
	}
}

func TestSpecPair_Caps(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		value  string
		wantOK bool
	}{
		{name: "normal", label: "Brand:", value: "Sony", wantOK: true},
		{name: "empty value", label: "Brand", value: "  ", wantOK: false},
		{name: "long label", label: strings.Repeat("l", 51), value: "v", wantOK: false},
		{name: "long value", label: "Notes", value: strings.Repeat("v", 201), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := specPair(tt.label, tt.value); ok != tt.wantOK {
				t.Errorf("specPair() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestAcceptLocation(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Located in: Berlin, Germany", "Berlin, Germany", true},
		{"Item located in Leeds", "Leeds", true},
		{"90210", "", false},
		{"Free shipping to your door", "", false},
		{"X", "", false},
	}
	for _, tt := range tests {
		got, ok := AcceptLocation(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("AcceptLocation(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStripBoilerplate(t *testing.T) {
	prefixes := []string{"Details about", "New Listing", "Détails"}
	tests := []struct {
		in, want string
	}{
		{"Details about   Widget Pro", "Widget Pro"},
		{"New Listing Details about Widget", "Widget"},
		{"details ABOUT: Lamp", "Lamp"},
		{"Widget", "Widget"},
		{"DÉTAILS: Lampe", "Lampe"},
		{"ȺȺȺ Widget", "ȺȺȺ Widget"},
		{"Ⱥ", "Ⱥ"},
	}
	for _, tt := range tests {
		if got := StripBoilerplate(tt.in, prefixes); got != tt.want {
			t.Errorf("StripBoilerplate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
