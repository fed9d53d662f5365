package ink

// Point is a position in root coordinates.
type Point struct {
	X float32
	Y float32
}

// Size is a non-negative width/height pair.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned box. Produced by layout, consumed by hit testing
// and rendering. Width and Height are always >= 0.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether the point (px, py) lies inside the rect.
// The right and bottom edges are exclusive so that adjacent rects do not
// both claim a shared boundary pixel.
func (r Rect) Contains(px, py float32) bool {
	return px >= r.X && px < r.X+r.Width && py >= r.Y && py < r.Y+r.Height
}

// ContainsPoint reports whether p lies inside the rect.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Offset returns the rect translated by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersect returns the overlap of r and o, or the zero Rect when they are
// disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x1 := maxf(r.X, o.X)
	y1 := maxf(r.Y, o.Y)
	x2 := minf(r.Right(), o.Right())
	y2 := minf(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Unbounded marks an unconstrained max extent in BoxConstraints.
const Unbounded float32 = 3.4e38

// BoxConstraints is the allowed size range passed down a container during
// layout. Max extents may be Unbounded. Arena-scoped; created per pass.
type BoxConstraints struct {
	MinWidth  float32
	MaxWidth  float32
	MinHeight float32
	MaxHeight float32
}

// Tight returns constraints that force exactly the given size.
func Tight(w, h float32) BoxConstraints {
	return BoxConstraints{MinWidth: w, MaxWidth: w, MinHeight: h, MaxHeight: h}
}

// Loose returns constraints from zero up to the given size.
func Loose(w, h float32) BoxConstraints {
	return BoxConstraints{MaxWidth: w, MaxHeight: h}
}

// HasBoundedWidth reports whether the max width is finite.
func (c BoxConstraints) HasBoundedWidth() bool { return c.MaxWidth < Unbounded }

// HasBoundedHeight reports whether the max height is finite.
func (c BoxConstraints) HasBoundedHeight() bool { return c.MaxHeight < Unbounded }

// ClampSize clamps a size into the constraint range.
func (c BoxConstraints) ClampSize(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// abs returns the absolute value of a float32.
func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
