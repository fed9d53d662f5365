package textshape

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestFixedConversionRoundTrip(t *testing.T) {
	cases := []float32{0, 1, 12, 16.5, 64, 128.25}
	for _, v := range cases {
		got := fixedToFloat(floatToFixed(v))
		if got != v {
			t.Errorf("round trip %v: got %v", v, got)
		}
	}
}

func TestFixedToFloat(t *testing.T) {
	if got := fixedToFloat(fixed.Int26_6(64)); got != 1 {
		t.Errorf("64/64 = %v, want 1", got)
	}
	if got := fixedToFloat(fixed.Int26_6(96)); got != 1.5 {
		t.Errorf("96/64 = %v, want 1.5", got)
	}
}

func TestWrapGreedy(t *testing.T) {
	// Every word 10 wide, spaces 5 wide.
	measure := func(string) float32 { return 10 }

	tests := []struct {
		name     string
		words    []string
		maxWidth float32
		lines    int
		maxLine  float32
	}{
		{"empty", nil, 100, 1, 0},
		{"single word", []string{"a"}, 100, 1, 10},
		{"all fit", []string{"a", "b"}, 100, 1, 25},
		{"wrap at limit", []string{"a", "b", "c"}, 25, 2, 25},
		{"one per line", []string{"a", "b", "c"}, 12, 3, 10},
		{"word wider than limit", []string{"a"}, 5, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, maxLine := wrapGreedy(tt.words, 5, tt.maxWidth, measure)
			if lines != tt.lines || maxLine != tt.maxLine {
				t.Errorf("got (%d, %v), want (%d, %v)", lines, maxLine, tt.lines, tt.maxLine)
			}
		})
	}
}

func TestDetectScriptSkipsWhitespace(t *testing.T) {
	latin := detectScript([]rune("  hello"))
	if latin != detectScript([]rune("hello")) {
		t.Error("leading whitespace changed script detection")
	}
}
