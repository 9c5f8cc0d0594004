package parser

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapses lines", input: "  Hello\n\n   world  \n", want: "Hello world"},
		{name: "collapses inner spaces", input: "a \t  b", want: "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_ArticleText(t *testing.T) {
	html := `<html><head><title>Vintage Camera Lens</title></head><body>
<nav>Home | Cart</nav>
<article>
<h1>Vintage Camera Lens</h1>
<p>This vintage camera lens was stored in a dry cabinet for the last ten years and shows almost no wear on the barrel.</p>
<p>The aperture ring clicks cleanly through every stop and the focus throw is smooth from close focus to infinity.</p>
<p>Glass is clear with no haze, fungus or scratches, and both caps are included with the lens in the original box.</p>
</article></body></html>`

	mc, err := New("https://www.ebay.com/itm/1").Parse(html)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(mc.Text, "aperture ring") {
		t.Errorf("Text missing article body: %q", mc.Text)
	}
	if mc.Title == "" {
		t.Error("Title is empty")
	}
}
