package ink

// ============================================================================
// Widget declarations
// ============================================================================
//
// The built-in widget set. Each call derives a stable identity from the
// identity stack, attaches a node to the layout tree, answers interaction
// queries from last frame's snapshot, and appends a render record that
// EndFrame resolves against the solved bounds. Widgets hold no retained
// objects: calling the function each frame IS the widget.

// Stock palette. Applications wanting a full theme pass colors per widget.
var (
	colorButton        = Color{R: 0.23, G: 0.51, B: 0.96, A: 1}
	colorButtonHover   = Color{R: 0.17, G: 0.42, B: 0.92, A: 1}
	colorButtonPressed = Color{R: 0.12, G: 0.32, B: 0.85, A: 1}
	colorText          = Color{R: 0.90, G: 0.90, B: 0.92, A: 1}
	colorFocusRing     = Color{R: 0.56, G: 0.75, B: 1.00, A: 0.9}
	colorCheckboxBox   = Color{R: 0.35, G: 0.38, B: 0.45, A: 1}
	colorCheckboxMark  = Color{R: 0.23, G: 0.51, B: 0.96, A: 1}
)

const (
	defaultFontSize  = 16
	checkboxBoxSize  = 18
	checkboxGap      = 8
	focusRingPadding = 2
)

// ============================================================================
// Containers
// ============================================================================

// ContainerOptions configures Begin.
type ContainerOptions struct {
	Axis       Axis
	Gap        float32
	Padding    Insets
	MainAlign  Align
	CrossAlign Align
	Fixed      Size
	MustFill   bool
	Flex       float32

	// Background paints the container's solved bounds when alpha > 0.
	Background   Color
	CornerRadius float32
}

// Begin opens a flex container. Every Begin needs a matching End in the same
// frame; label feeds the identity hash and must be unique among siblings.
func (c *Context) Begin(label string, opts ContainerOptions) WidgetID {
	c.checkDeclaring("Begin")
	id := c.ids.PushLabel(label)
	node := c.solver.AddContainer(c.currentContainer(), ContainerStyle{
		Axis:       opts.Axis,
		Gap:        opts.Gap,
		Padding:    opts.Padding,
		MainAlign:  opts.MainAlign,
		CrossAlign: opts.CrossAlign,
		Fixed:      opts.Fixed,
		MustFill:   opts.MustFill,
		Flex:       opts.Flex,
		Name:       label,
	})
	c.addRecord(renderRecord{
		kind:   recContainer,
		node:   node,
		id:     id,
		bg:     opts.Background,
		radius: opts.CornerRadius,
	})
	c.pushContainer(node)
	return id
}

// BeginColumn opens a vertical container with default styling.
func (c *Context) BeginColumn(label string) WidgetID {
	return c.Begin(label, ContainerOptions{Axis: Vertical})
}

// BeginRow opens a horizontal container with default styling.
func (c *Context) BeginRow(label string) WidgetID {
	return c.Begin(label, ContainerOptions{Axis: Horizontal})
}

// End closes the innermost Begin.
func (c *Context) End() {
	c.checkDeclaring("End")
	c.popContainer()
	c.ids.Pop()
}

// ============================================================================
// Leaves
// ============================================================================

// ButtonOptions configures Button. The zero value gives the stock look.
type ButtonOptions struct {
	FontSize float32 // zero: 16
	Padding  Insets  // zero: 16 horizontal, 8 vertical
	Fixed    Size
	Flex     float32

	Bg           Color // zero: stock palette
	HoverBg      Color
	PressedBg    Color
	Fg           Color
	CornerRadius float32 // zero: 6
}

// Button declares a push button and reports whether it was activated: the
// pointer released over it (per last frame's bounds) or Space/Enter pressed
// while it holds focus.
func (c *Context) Button(label string, opts ButtonOptions) bool {
	c.checkDeclaring("Button")
	id := c.ids.PushLabel(label)

	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = defaultFontSize
	}
	pad := opts.Padding
	if pad == (Insets{}) {
		pad = SymmetricInsets(16, 8)
	}
	radius := opts.CornerRadius
	if radius == 0 {
		radius = 6
	}

	backend := c.text
	node := c.solver.AddLeaf(c.currentContainer(), LeafStyle{
		Fixed: opts.Fixed,
		Flex:  opts.Flex,
		Name:  label,
		Measure: func(bc BoxConstraints) Size {
			maxW := bc.MaxWidth
			if maxW < Unbounded {
				maxW = maxf(0, maxW-pad.horizontal())
			}
			t := backend.Measure(label, fontSize, maxW)
			return Size{
				Width:  t.Width + pad.horizontal(),
				Height: t.Height + pad.vertical(),
			}
		},
	})

	clicked := c.WasClicked(id)
	if clicked {
		c.focus.SetFocus(id)
	}
	activated := clicked || (c.activateKey && c.IsFocused(id))

	bg := pick(opts.Bg, colorButton)
	switch {
	case c.IsPressed(id):
		bg = pick(opts.PressedBg, colorButtonPressed)
	case c.IsHovered(id):
		bg = pick(opts.HoverBg, colorButtonHover)
	}

	c.addRecord(renderRecord{
		kind:      recButton,
		node:      node,
		id:        id,
		text:      label,
		fontSize:  fontSize,
		bg:        bg,
		fg:        pick(opts.Fg, colorText),
		radius:    radius,
		clickable: true,
		clickKind: KindButton,
		focusable: true,
		role:      RoleButton,
	})
	c.ids.Pop()
	return activated
}

// LabelOptions configures Label.
type LabelOptions struct {
	FontSize   float32 // zero: 16
	Color      Color   // zero: stock text color
	Fixed      Size
	Flex       float32
	Background Color
}

// Label declares static text.
func (c *Context) Label(text string, opts LabelOptions) {
	c.checkDeclaring("Label")
	id := c.ids.PushLabel(text)
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = defaultFontSize
	}
	node := c.solver.AddLeaf(c.currentContainer(), LeafStyle{
		Fixed:    opts.Fixed,
		Flex:     opts.Flex,
		Text:     text,
		FontSize: fontSize,
		Name:     text,
	})
	c.addRecord(renderRecord{
		kind:     recLabel,
		node:     node,
		id:       id,
		text:     text,
		fontSize: fontSize,
		fg:       pick(opts.Color, colorText),
		bg:       opts.Background,
		role:     RoleText,
	})
	c.ids.Pop()
}

// Checkbox declares a labelled checkbox bound to *checked and reports whether
// the value changed this frame. Activation follows the button rules.
func (c *Context) Checkbox(label string, checked *bool) bool {
	c.checkDeclaring("Checkbox")
	id := c.ids.PushLabel(label)

	backend := c.text
	node := c.solver.AddLeaf(c.currentContainer(), LeafStyle{
		Name: label,
		Measure: func(bc BoxConstraints) Size {
			maxW := bc.MaxWidth
			if maxW < Unbounded {
				maxW = maxf(0, maxW-(checkboxBoxSize+checkboxGap))
			}
			t := backend.Measure(label, defaultFontSize, maxW)
			return Size{
				Width:  checkboxBoxSize + checkboxGap + t.Width,
				Height: maxf(checkboxBoxSize, t.Height),
			}
		},
	})

	clicked := c.WasClicked(id)
	if clicked {
		c.focus.SetFocus(id)
	}
	changed := clicked || (c.activateKey && c.IsFocused(id))
	if changed && checked != nil {
		*checked = !*checked
	}

	isChecked := checked != nil && *checked
	c.addRecord(renderRecord{
		kind:      recCheckbox,
		node:      node,
		id:        id,
		text:      label,
		fontSize:  defaultFontSize,
		fg:        colorText,
		checked:   isChecked,
		clickable: true,
		clickKind: KindCheckbox,
		focusable: true,
		role:      RoleCheckbox,
	})
	c.ids.Pop()
	return changed
}

// Spacer declares an invisible flex leaf that soaks up main-axis slack.
// Weights <= 0 are treated as 1.
func (c *Context) Spacer(weight float32) {
	c.checkDeclaring("Spacer")
	if weight <= 0 {
		weight = 1
	}
	c.solver.AddLeaf(c.currentContainer(), LeafStyle{Flex: weight, Name: "spacer"})
}

// ============================================================================
// Scroll regions
// ============================================================================

// ScrollOptions configures BeginScrollRegion. The zero value scrolls
// vertically and sizes itself like any other container.
type ScrollOptions struct {
	// Horizontal scrolls along the x axis instead of the y axis.
	Horizontal bool

	Fixed    Size
	Flex     float32
	MustFill bool

	// Gap and Padding apply to the inner content container.
	Gap        float32
	Padding    Insets
	CrossAlign Align

	Background Color
}

// BeginScrollRegion opens a clipped scrollable viewport. Children declare
// into an inner content container that is measured with an unbounded main
// axis; whatever overflows the viewport is what wheel, drag and momentum
// input pans across. Every BeginScrollRegion needs a matching
// EndScrollRegion.
func (c *Context) BeginScrollRegion(label string, opts ScrollOptions) WidgetID {
	c.checkDeclaring("BeginScrollRegion")
	id := c.ids.PushLabel(label)

	axis := Vertical
	if opts.Horizontal {
		axis = Horizontal
	}
	viewport := c.solver.AddContainer(c.currentContainer(), ContainerStyle{
		Axis:              axis,
		Fixed:             opts.Fixed,
		Flex:              opts.Flex,
		MustFill:          opts.MustFill,
		CrossAlign:        AlignStretch,
		LooseMainChildren: true,
		Name:              label,
	})
	content := c.solver.AddContainer(viewport, ContainerStyle{
		Axis:       axis,
		Gap:        opts.Gap,
		Padding:    opts.Padding,
		CrossAlign: opts.CrossAlign,
		Name:       label + "/content",
	})

	// The clip record carries the outer shift; children additionally shift
	// by this region's offset, read from the persistent state declared last
	// frame (one-frame-stale like every other cross-frame read).
	c.addRecord(renderRecord{
		kind:        recClipPush,
		node:        viewport,
		id:          id,
		bg:          opts.Background,
		contentNode: content,
		role:        RoleScrollRegion,
		text:        label,
	})
	st := c.scroll.State(id)
	c.shiftStack = append(c.shiftStack, c.shift)
	c.shift.X -= st.Offset.X
	c.shift.Y -= st.Offset.Y

	c.pushContainer(content)
	return id
}

// EndScrollRegion closes the innermost BeginScrollRegion.
func (c *Context) EndScrollRegion() {
	c.checkDeclaring("EndScrollRegion")
	content := c.popContainer()
	if len(c.shiftStack) == 0 {
		panic("ink: EndScrollRegion without matching BeginScrollRegion")
	}
	c.shift = c.shiftStack[len(c.shiftStack)-1]
	c.shiftStack = c.shiftStack[:len(c.shiftStack)-1]
	c.addRecord(renderRecord{kind: recClipPop, node: content})
	c.ids.Pop()
}

// ============================================================================
// Custom widgets
// ============================================================================

// CustomWidget is the escape hatch for application-defined leaves: Measure is
// called during layout with the parent's constraints, Render at EndFrame with
// the solved bounds. Implementations must not retain the draw list or any
// arena-backed value past the frame.
type CustomWidget interface {
	Measure(c BoxConstraints) Size
	Render(d *DrawList, bounds Rect)
}

// CustomOptions configures Custom.
type CustomOptions struct {
	Fixed     Size
	Flex      float32
	Clickable bool
	Focusable bool
	Role      AccessibilityRole
}

// Custom declares an application-defined widget and returns its identity for
// interaction queries.
func (c *Context) Custom(label string, w CustomWidget, opts CustomOptions) WidgetID {
	c.checkDeclaring("Custom")
	id := c.ids.PushLabel(label)
	node := c.solver.AddLeaf(c.currentContainer(), LeafStyle{
		Fixed:   opts.Fixed,
		Flex:    opts.Flex,
		Measure: w.Measure,
		Name:    label,
	})
	c.addRecord(renderRecord{
		kind:      recCustom,
		node:      node,
		id:        id,
		custom:    w,
		text:      label,
		clickable: opts.Clickable,
		clickKind: KindCustom,
		focusable: opts.Focusable,
		role:      opts.Role,
	})
	c.ids.Pop()
	return id
}

// ============================================================================
// Record resolution helpers (EndFrame side)
// ============================================================================

func (c *Context) resolveButton(r *renderRecord, rect Rect) {
	if c.focus.IsFocused(r.id) {
		ring := Rect{
			X:      rect.X - focusRingPadding,
			Y:      rect.Y - focusRingPadding,
			Width:  rect.Width + 2*focusRingPadding,
			Height: rect.Height + 2*focusRingPadding,
		}
		c.draw.RoundedRect(ring, colorFocusRing, r.radius+focusRingPadding)
	}
	c.draw.RoundedRect(rect, r.bg, r.radius)

	t := c.text.Measure(r.text, r.fontSize, rect.Width)
	c.draw.Text(Rect{
		X:      rect.X + (rect.Width-t.Width)*0.5,
		Y:      rect.Y + (rect.Height-t.Height)*0.5,
		Width:  t.Width,
		Height: t.Height,
	}, r.text, r.fontSize, r.fg)
}

func (c *Context) resolveCheckbox(r *renderRecord, rect Rect) {
	box := Rect{
		X:      rect.X,
		Y:      rect.Y + (rect.Height-checkboxBoxSize)*0.5,
		Width:  checkboxBoxSize,
		Height: checkboxBoxSize,
	}
	if c.focus.IsFocused(r.id) {
		ring := Rect{
			X:      box.X - focusRingPadding,
			Y:      box.Y - focusRingPadding,
			Width:  box.Width + 2*focusRingPadding,
			Height: box.Height + 2*focusRingPadding,
		}
		c.draw.RoundedRect(ring, colorFocusRing, 5)
	}
	c.draw.RoundedRect(box, colorCheckboxBox, 3)
	if r.checked {
		mark := Rect{X: box.X + 4, Y: box.Y + 4, Width: box.Width - 8, Height: box.Height - 8}
		c.draw.RoundedRect(mark, colorCheckboxMark, 2)
	}

	t := c.text.Measure(r.text, r.fontSize, rect.Width-(checkboxBoxSize+checkboxGap))
	c.draw.Text(Rect{
		X:      rect.X + checkboxBoxSize + checkboxGap,
		Y:      rect.Y + (rect.Height-t.Height)*0.5,
		Width:  t.Width,
		Height: t.Height,
	}, r.text, r.fontSize, r.fg)
}

// pick returns override when it is non-zero, fallback otherwise.
func pick(override, fallback Color) Color {
	if override == (Color{}) {
		return fallback
	}
	return override
}
