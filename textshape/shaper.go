// Package textshape provides a TextBackend backed by go-text/typesetting's
// HarfBuzz shaper. It measures through real font metrics — kerning, ligatures
// and complex scripts included — where the core's FixedMetrics only
// approximates.
//
// The backend caches measurements keyed by (text, size, max width), which
// both satisfies the determinism the layout pass requires and keeps repeated
// measures of the same label cheap.
package textshape

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/inkwell-ui/ink"
)

// cacheLimit bounds the measurement cache; past it the cache is dropped
// wholesale rather than evicted entry by entry.
const cacheLimit = 4096

type measureKey struct {
	text     string
	fontSize float32
	maxWidth float32
}

// Backend shapes and measures text with one parsed font. Safe for concurrent
// use: the parsed font.Font is read-only, font.Face instances are created per
// call, and HarfbuzzShaper instances are pooled since they carry mutable
// buffer state.
type Backend struct {
	fnt *font.Font

	// shapers pools HarfbuzzShaper instances; they are cheap to reuse but
	// not safe for concurrent use.
	shapers sync.Pool

	mu    sync.Mutex
	cache map[measureKey]ink.Size
}

// New parses TTF/OTF font data and returns a backend measuring with it.
func New(ttf []byte) (*Backend, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Backend{
		fnt: face.Font,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		cache: make(map[measureKey]ink.Size, 256),
	}, nil
}

// NewFromFile reads and parses a font file.
func NewFromFile(path string) (*Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return New(data)
}

// Measure implements ink.TextBackend. Wrapping is greedy on spaces; a single
// word never breaks mid-word even when it exceeds maxWidth.
func (b *Backend) Measure(text string, fontSize, maxWidth float32) ink.Size {
	key := measureKey{text: text, fontSize: fontSize, maxWidth: maxWidth}
	b.mu.Lock()
	if sz, ok := b.cache[key]; ok {
		b.mu.Unlock()
		return sz
	}
	b.mu.Unlock()

	sz := b.measure(text, fontSize, maxWidth)

	b.mu.Lock()
	if len(b.cache) >= cacheLimit {
		b.cache = make(map[measureKey]ink.Size, 256)
	}
	b.cache[key] = sz
	b.mu.Unlock()
	return sz
}

func (b *Backend) measure(text string, fontSize, maxWidth float32) ink.Size {
	lineHeight := b.lineHeight(fontSize)
	if text == "" {
		return ink.Size{Width: 0, Height: lineHeight}
	}

	width := b.advance(text, fontSize)
	if maxWidth <= 0 || maxWidth >= ink.Unbounded || width <= maxWidth {
		return ink.Size{Width: width, Height: lineHeight}
	}

	words := strings.Fields(text)
	spaceW := b.advance(" ", fontSize)
	lines, maxLine := wrapGreedy(words, spaceW, maxWidth, func(w string) float32 {
		return b.advance(w, fontSize)
	})
	return ink.Size{Width: maxLine, Height: float32(lines) * lineHeight}
}

// wrapGreedy packs words into lines of at most maxWidth, returning the line
// count and the widest line. A word wider than maxWidth occupies a line by
// itself.
func wrapGreedy(words []string, spaceW, maxWidth float32, measure func(string) float32) (lines int, maxLine float32) {
	if len(words) == 0 {
		return 1, 0
	}
	var cur float32
	lines = 1
	for _, w := range words {
		ww := measure(w)
		switch {
		case cur == 0:
			cur = ww
		case cur+spaceW+ww <= maxWidth:
			cur += spaceW + ww
		default:
			if cur > maxLine {
				maxLine = cur
			}
			lines++
			cur = ww
		}
	}
	if cur > maxLine {
		maxLine = cur
	}
	return lines, maxLine
}

// advance shapes a run and returns its total x advance in pixels.
func (b *Backend) advance(text string, fontSize float32) float32 {
	out := b.shape(text, fontSize)
	return fixedToFloat(out.Advance)
}

// lineHeight derives the line height from the font's shaped line bounds.
func (b *Backend) lineHeight(fontSize float32) float32 {
	out := b.shape("Mg", fontSize)
	lb := out.LineBounds
	// Descent is negative below the baseline.
	return fixedToFloat(lb.Ascent - lb.Descent + lb.Gap)
}

// shape runs one LTR run through a pooled HarfBuzz shaper. font.Face is not
// safe for concurrent use, so each call gets its own cheap wrapper around
// the shared read-only font.
func (b *Backend) shape(text string, fontSize float32) shaping.Output {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(b.fnt),
		Size:      floatToFixed(fontSize),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	shaper := b.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	b.shapers.Put(shaper)
	return out
}

// detectScript returns the script of the first non-space rune, defaulting to
// Latin. Mixed-script labels measure under the first script's rules, which is
// adequate for UI strings.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed-point value to pixels.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
