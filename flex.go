package ink

import "fmt"

// ============================================================================
// Flex Layout Solver
// ============================================================================
//
// A single-axis flexbox-style solver, recursive over nested containers.
// Widgets build the tree during declaration; Solve runs a two-phase
// measure/arrange pass and writes a final rect into every node. The tree is
// index-addressed and rebuilt from recycled storage each frame — no per-node
// heap allocation, and the "everything is invalid after reset" rule is
// trivially true because the indices themselves expire with the frame.

// Axis selects a container's main layout direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Align is a container's cross-axis alignment policy, and also the main-axis
// packing used when no child carries a flex weight.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch // cross axis only: children take the full inner cross size
)

// Insets is per-edge padding.
type Insets struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// UniformInsets returns equal padding on all four edges.
func UniformInsets(v float32) Insets { return Insets{v, v, v, v} }

// SymmetricInsets returns horizontal/vertical padding pairs.
func SymmetricInsets(h, v float32) Insets { return Insets{h, v, h, v} }

func (p Insets) horizontal() float32 { return p.Left + p.Right }
func (p Insets) vertical() float32   { return p.Top + p.Bottom }

// MeasureFunc resolves a custom leaf's intrinsic size under the given
// constraints. Part of the custom-widget surface together with RenderFunc.
type MeasureFunc func(c BoxConstraints) Size

// nodeIndex addresses a FlexNode within the frame's tree. Indices expire at
// the next BeginFrame along with the nodes they point at.
type nodeIndex = int32

const noNode nodeIndex = -1

// ContainerStyle configures a container node.
type ContainerStyle struct {
	Axis       Axis
	Gap        float32
	Padding    Insets
	MainAlign  Align // packing when no flex children consume the slack
	CrossAlign Align

	// Fixed pins the container's outer size on either axis; zero means
	// "derive from content or constraints".
	Fixed Size

	// MustFill makes the container take the parent's tight size instead of
	// its intrinsic content sum.
	MustFill bool

	// Flex is the container's own weight when nested in another container.
	Flex float32

	// LooseMainChildren measures children with an unbounded main axis, so
	// content may exceed this container's own extent. Scroll viewports set
	// this; the overflow is what the scroll offset pans across.
	LooseMainChildren bool

	// Name appears in configuration-error messages.
	Name string
}

// LeafStyle configures a leaf node: a fixed/intrinsic size request with an
// optional flex weight.
type LeafStyle struct {
	// Fixed is the requested size; zero components resolve from Text or
	// Measure, or collapse to 0.
	Fixed Size

	// Flex is the main-axis weight; 0 means fixed/intrinsic size.
	Flex float32

	// Text and FontSize request measurement through the text backend.
	Text     string
	FontSize float32

	// Measure overrides intrinsic sizing for custom widgets.
	Measure MeasureFunc

	Name string
}

// FlexNode is one entry in the layout tree: a leaf request or a nested
// container. Built during declaration, consumed once during Solve, discarded
// at frame end.
type FlexNode struct {
	parent      nodeIndex
	firstChild  nodeIndex
	lastChild   nodeIndex
	nextSibling nodeIndex

	container bool
	style     ContainerStyle
	leaf      LeafStyle

	// measure phase output
	size Size

	// arrange phase output
	rect Rect
}

// FlexSolver owns the per-frame layout tree. Node storage is recycled across
// frames with a length reset, the same reclamation discipline as the arena;
// nodes hold strings and closures, which Go's collector must be able to
// trace, so they cannot live in raw arena bytes.
type FlexSolver struct {
	nodes   []FlexNode
	backend TextBackend
}

// NewFlexSolver creates a solver measuring text leaves through backend.
func NewFlexSolver(backend TextBackend) *FlexSolver {
	return &FlexSolver{
		nodes:   make([]FlexNode, 0, 128),
		backend: backend,
	}
}

// beginFrame discards the previous frame's tree.
func (s *FlexSolver) beginFrame() {
	s.nodes = s.nodes[:0]
}

// AddContainer appends a container node under parent (noNode for a root) and
// returns its index.
func (s *FlexSolver) AddContainer(parent nodeIndex, style ContainerStyle) nodeIndex {
	idx := nodeIndex(len(s.nodes))
	s.nodes = append(s.nodes, FlexNode{
		parent:      parent,
		firstChild:  noNode,
		lastChild:   noNode,
		nextSibling: noNode,
		container:   true,
		style:       style,
	})
	s.link(parent, idx)
	return idx
}

// AddLeaf appends a leaf node under parent and returns its index.
func (s *FlexSolver) AddLeaf(parent nodeIndex, style LeafStyle) nodeIndex {
	idx := nodeIndex(len(s.nodes))
	s.nodes = append(s.nodes, FlexNode{
		parent:      parent,
		firstChild:  noNode,
		lastChild:   noNode,
		nextSibling: noNode,
		leaf:        style,
	})
	s.link(parent, idx)
	return idx
}

// link appends child to parent's sibling list in O(1).
func (s *FlexSolver) link(parent, child nodeIndex) {
	if parent == noNode {
		return
	}
	p := &s.nodes[parent]
	if !p.container {
		panic("ink: layout leaf cannot have children (node " + s.nodeName(parent) + ")")
	}
	if p.firstChild == noNode {
		p.firstChild = child
		p.lastChild = child
	} else {
		s.nodes[p.lastChild].nextSibling = child
		p.lastChild = child
	}
}

// Rect returns the solved rect for a node. Valid after Solve, until the next
// BeginFrame.
func (s *FlexSolver) Rect(idx nodeIndex) Rect { return s.nodes[idx].rect }

// Solve measures and arranges the tree rooted at root into the available
// size, with the root placed at origin. It returns a configuration error
// when a flex child sits on an unbounded main axis.
func (s *FlexSolver) Solve(root nodeIndex, origin Point, avail Size) error {
	if _, err := s.measure(root, Loose(avail.Width, avail.Height)); err != nil {
		return err
	}
	s.arrange(root, origin)
	return nil
}

// ============================================================================
// Measure phase
// ============================================================================

// measure resolves node sizes bottom-up. Leaves resolve fixed or intrinsic
// sizes; containers recursively measure children and sum fixed main-axis
// sizes plus gaps and padding.
func (s *FlexSolver) measure(idx nodeIndex, c BoxConstraints) (Size, error) {
	n := &s.nodes[idx]
	if !n.container {
		n.size = c.ClampSize(s.leafIntrinsic(&n.leaf, c))
		return n.size, nil
	}

	st := n.style
	pad := st.Padding

	// Whether the children have a bounded main axis to share. Unbounded plus
	// a flex child is a configuration error, surfaced before any NaN can be
	// produced.
	boundedMain := s.hasBoundedMain(n, c)

	innerMaxW := c.MaxWidth
	if st.Fixed.Width > 0 {
		innerMaxW = st.Fixed.Width
	}
	innerMaxH := c.MaxHeight
	if st.Fixed.Height > 0 {
		innerMaxH = st.Fixed.Height
	}
	if innerMaxW < Unbounded {
		innerMaxW = maxf(0, innerMaxW-pad.horizontal())
	}
	if innerMaxH < Unbounded {
		innerMaxH = maxf(0, innerMaxH-pad.vertical())
	}

	var usedMain, maxCross, flexTotal float32
	children := 0

	for child := n.firstChild; child != noNode; child = s.nodes[child].nextSibling {
		cc := s.childConstraints(n, innerMaxW, innerMaxH, &s.nodes[child])
		sz, err := s.measure(child, cc)
		if err != nil {
			return Size{}, err
		}
		weight := s.flexWeight(child)
		if weight > 0 {
			flexTotal += weight
		} else {
			usedMain += s.mainOf(st.Axis, sz)
		}
		maxCross = maxf(maxCross, s.crossOf(st.Axis, sz))
		children++
	}
	if children > 1 {
		usedMain += st.Gap * float32(children-1)
	}

	if flexTotal > 0 && !boundedMain {
		return Size{}, fmt.Errorf(
			"ink: container %q has flex children on an unbounded %s axis; give it a fixed size, a flex weight, or a bounded parent",
			s.nodeName(idx), axisName(st.Axis))
	}

	intrinsicMain := usedMain + s.mainPad(st.Axis, pad)
	intrinsicCross := maxCross + s.crossPad(st.Axis, pad)

	n = &s.nodes[idx] // re-take: child measures may have grown s.nodes
	n.size = s.resolveContainerSize(n, c, intrinsicMain, intrinsicCross)
	return n.size, nil
}

// leafIntrinsic resolves a leaf's requested size: explicit fixed components
// win, text measures through the backend, custom widgets measure through
// their MeasureFunc, and anything unresolved collapses to zero.
func (s *FlexSolver) leafIntrinsic(leaf *LeafStyle, c BoxConstraints) Size {
	sz := leaf.Fixed
	if leaf.Measure != nil {
		m := leaf.Measure(c)
		if sz.Width == 0 {
			sz.Width = m.Width
		}
		if sz.Height == 0 {
			sz.Height = m.Height
		}
		return sz
	}
	if leaf.Text != "" && (sz.Width == 0 || sz.Height == 0) {
		maxW := c.MaxWidth
		if sz.Width > 0 {
			maxW = sz.Width
		}
		m := s.backend.Measure(leaf.Text, leaf.FontSize, maxW)
		if sz.Width == 0 {
			sz.Width = m.Width
		}
		if sz.Height == 0 {
			sz.Height = m.Height
		}
	}
	return sz
}

// childConstraints derives the constraints a child is measured against:
// loose inner bounds, except tight on the cross axis for child containers
// when this container stretches its children.
func (s *FlexSolver) childConstraints(n *FlexNode, innerMaxW, innerMaxH float32, child *FlexNode) BoxConstraints {
	cc := BoxConstraints{MaxWidth: innerMaxW, MaxHeight: innerMaxH}
	if n.style.LooseMainChildren {
		switch n.style.Axis {
		case Horizontal:
			cc.MaxWidth = Unbounded
		case Vertical:
			cc.MaxHeight = Unbounded
		}
	}
	if child.container && n.style.CrossAlign == AlignStretch {
		switch n.style.Axis {
		case Horizontal:
			if innerMaxH < Unbounded {
				cc.MinHeight = innerMaxH
			}
		case Vertical:
			if innerMaxW < Unbounded {
				cc.MinWidth = innerMaxW
			}
		}
	}
	return cc
}

// resolveContainerSize picks the container's outer size: fixed dimensions
// win, MustFill takes the parent's tight bounds, otherwise the intrinsic
// content sum clamped into the constraints.
func (s *FlexSolver) resolveContainerSize(n *FlexNode, c BoxConstraints, intrinsicMain, intrinsicCross float32) Size {
	st := n.style
	var w, h float32
	switch st.Axis {
	case Horizontal:
		w, h = intrinsicMain, intrinsicCross
	case Vertical:
		w, h = intrinsicCross, intrinsicMain
	}
	if st.MustFill {
		if c.HasBoundedWidth() {
			w = c.MaxWidth
		}
		if c.HasBoundedHeight() {
			h = c.MaxHeight
		}
	}
	if st.Fixed.Width > 0 {
		w = st.Fixed.Width
	}
	if st.Fixed.Height > 0 {
		h = st.Fixed.Height
	}
	return c.ClampSize(Size{Width: w, Height: h})
}

// hasBoundedMain reports whether the container can give its children a
// finite main-axis extent: a fixed main size always can, otherwise the
// parent constraint must be bounded.
func (s *FlexSolver) hasBoundedMain(n *FlexNode, c BoxConstraints) bool {
	st := n.style
	if s.mainOf(st.Axis, st.Fixed) > 0 {
		return true
	}
	if st.Axis == Horizontal {
		return c.HasBoundedWidth()
	}
	return c.HasBoundedHeight()
}

// ============================================================================
// Arrange phase
// ============================================================================

// arrange walks the tree top-down, distributing leftover main-axis space to
// flex children and assigning every node its final rect.
func (s *FlexSolver) arrange(idx nodeIndex, origin Point) {
	n := &s.nodes[idx]
	n.rect = Rect{X: origin.X, Y: origin.Y, Width: n.size.Width, Height: n.size.Height}
	if !n.container {
		return
	}

	st := n.style
	pad := st.Padding
	innerX := origin.X + pad.Left
	innerY := origin.Y + pad.Top
	innerMain := maxf(0, s.mainOf(st.Axis, n.size)-s.mainPad(st.Axis, pad))
	innerCross := maxf(0, s.crossOf(st.Axis, n.size)-s.crossPad(st.Axis, pad))

	// Recompute fixed usage and total weight from the measured children.
	var usedMain, flexTotal float32
	children := 0
	for child := n.firstChild; child != noNode; child = s.nodes[child].nextSibling {
		weight := s.flexWeight(child)
		if weight > 0 {
			flexTotal += weight
		} else {
			usedMain += s.mainOf(st.Axis, s.nodes[child].size)
		}
		children++
	}
	if children > 1 {
		usedMain += st.Gap * float32(children-1)
	}

	remaining := maxf(0, innerMain-usedMain)
	var unit float32
	if flexTotal > 0 {
		unit = remaining / flexTotal
	}

	// With no flex children the slack is packed by MainAlign instead.
	cursor := float32(0)
	if flexTotal == 0 {
		switch st.MainAlign {
		case AlignCenter:
			cursor = remaining * 0.5
		case AlignEnd:
			cursor = remaining
		}
	}

	for child := n.firstChild; child != noNode; child = s.nodes[child].nextSibling {
		cn := &s.nodes[child]
		weight := s.flexWeight(child)

		mainSz := s.mainOf(st.Axis, cn.size)
		if weight > 0 {
			mainSz = weight * unit
		}
		crossSz := s.crossOf(st.Axis, cn.size)
		if st.CrossAlign == AlignStretch {
			crossSz = innerCross
		} else {
			crossSz = clamp(crossSz, 0, innerCross)
		}

		var crossPos float32
		switch st.CrossAlign {
		case AlignCenter:
			crossPos = (innerCross - crossSz) * 0.5
		case AlignEnd:
			crossPos = innerCross - crossSz
		}

		switch st.Axis {
		case Horizontal:
			cn.size = Size{Width: mainSz, Height: crossSz}
			s.arrange(child, Point{X: innerX + cursor, Y: innerY + crossPos})
		case Vertical:
			cn.size = Size{Width: crossSz, Height: mainSz}
			s.arrange(child, Point{X: innerX + crossPos, Y: innerY + cursor})
		}
		cursor += mainSz + st.Gap
	}
}

// ============================================================================
// Axis helpers
// ============================================================================

func (s *FlexSolver) flexWeight(idx nodeIndex) float32 {
	n := &s.nodes[idx]
	if n.container {
		return n.style.Flex
	}
	return n.leaf.Flex
}

func (s *FlexSolver) mainOf(a Axis, sz Size) float32 {
	if a == Horizontal {
		return sz.Width
	}
	return sz.Height
}

func (s *FlexSolver) crossOf(a Axis, sz Size) float32 {
	if a == Horizontal {
		return sz.Height
	}
	return sz.Width
}

func (s *FlexSolver) mainPad(a Axis, p Insets) float32 {
	if a == Horizontal {
		return p.horizontal()
	}
	return p.vertical()
}

func (s *FlexSolver) crossPad(a Axis, p Insets) float32 {
	if a == Horizontal {
		return p.vertical()
	}
	return p.horizontal()
}

func (s *FlexSolver) nodeName(idx nodeIndex) string {
	n := &s.nodes[idx]
	name := n.leaf.Name
	if n.container {
		name = n.style.Name
	}
	if name == "" {
		name = fmt.Sprintf("#%d", idx)
	}
	return name
}

func axisName(a Axis) string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
