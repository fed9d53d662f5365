package ink

// TextBackend measures text for the layout pass. Shaping, editing state and
// rasterization live behind this boundary; the core only ever needs a size.
//
// Measure must be deterministic for the same inputs within a frame — layout
// may measure the same string several times and expects identical answers.
// Caching is the backend's responsibility. maxWidth bounds wrapping and may
// be Unbounded.
type TextBackend interface {
	Measure(text string, fontSize, maxWidth float32) Size
}

// FixedMetrics is a deterministic TextBackend for tests and headless use:
// every rune advances by AdvanceScale×fontSize and lines are
// LineHeightScale×fontSize tall, with greedy wrapping at maxWidth.
type FixedMetrics struct {
	// AdvanceScale is the per-rune advance as a fraction of the font size.
	// Zero defaults to 0.6, a typical monospace aspect.
	AdvanceScale float32

	// LineHeightScale is the line height as a fraction of the font size.
	// Zero defaults to 1.4.
	LineHeightScale float32
}

// Measure implements TextBackend.
func (m FixedMetrics) Measure(text string, fontSize, maxWidth float32) Size {
	advance := m.AdvanceScale
	if advance == 0 {
		advance = 0.6
	}
	lineScale := m.LineHeightScale
	if lineScale == 0 {
		lineScale = 1.4
	}
	perRune := advance * fontSize
	lineHeight := lineScale * fontSize

	if text == "" {
		return Size{Width: 0, Height: lineHeight}
	}

	runes := 0
	for range text {
		runes++
	}
	width := float32(runes) * perRune

	lines := float32(1)
	if maxWidth > 0 && maxWidth < Unbounded && width > maxWidth {
		perLine := int(maxWidth / perRune)
		if perLine < 1 {
			perLine = 1
		}
		lines = float32((runes + perLine - 1) / perLine)
		width = float32(perLine) * perRune
	}

	return Size{Width: width, Height: lines * lineHeight}
}
