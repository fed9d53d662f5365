package ink

import (
	"fmt"
	"strings"
	"testing"
)

func buttonID(labels ...string) WidgetID {
	id := RootID
	for _, l := range labels {
		id = hashString(id, l)
	}
	return id
}

func TestButtonClickAcrossFrames(t *testing.T) {
	ctx := New(Config{})

	ctx.BeginFrame(FrameInput{})
	if ctx.Button("ok", ButtonOptions{Fixed: Size{Width: 100, Height: 40}}) {
		t.Error("button clicked before any bounds existed")
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}

	// The button occupied (0,0,100,40) last frame; release over it.
	ctx.BeginFrame(FrameInput{PointerX: 50, PointerY: 20, PointerReleased: true})
	if !ctx.Button("ok", ButtonOptions{Fixed: Size{Width: 100, Height: 40}}) {
		t.Error("release over the button did not click")
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}

	// Clicking moved focus to the button.
	if !ctx.IsFocused(buttonID("ok")) {
		t.Error("click did not focus the button")
	}
}

func TestButtonKeyboardActivation(t *testing.T) {
	ctx := New(Config{})
	declare := func(in FrameInput) bool {
		ctx.BeginFrame(in)
		clicked := ctx.Button("go", ButtonOptions{})
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
		return clicked
	}

	declare(FrameInput{})
	ctx.SetFocus(buttonID("go"))
	if !declare(FrameInput{Keys: []KeyEvent{{Key: KeyEnter}}}) {
		t.Error("Enter on a focused button did not activate it")
	}
	if declare(FrameInput{Keys: []KeyEvent{{Key: KeyEscape}}}) {
		t.Error("unrelated key activated the button")
	}
}

func TestTabTraversal(t *testing.T) {
	ctx := New(Config{})
	declare := func(in FrameInput) {
		ctx.BeginFrame(in)
		ctx.Button("a", ButtonOptions{})
		ctx.Button("b", ButtonOptions{})
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	tab := FrameInput{Keys: []KeyEvent{{Key: KeyTab}}}
	backTab := FrameInput{Keys: []KeyEvent{{Key: KeyTab, Mods: ModShift}}}

	declare(FrameInput{}) // builds the first ring
	declare(tab)
	if !ctx.IsFocused(buttonID("a")) {
		t.Error("first Tab did not focus the first button")
	}
	declare(tab)
	if !ctx.IsFocused(buttonID("b")) {
		t.Error("second Tab did not advance focus")
	}
	declare(tab)
	if !ctx.IsFocused(buttonID("a")) {
		t.Error("Tab did not wrap to the first button")
	}
	declare(backTab)
	if !ctx.IsFocused(buttonID("b")) {
		t.Error("Shift+Tab did not wrap backwards")
	}
}

func TestCheckboxToggles(t *testing.T) {
	ctx := New(Config{})
	checked := false
	declare := func(in FrameInput) bool {
		ctx.BeginFrame(in)
		changed := ctx.Checkbox("agree", &checked)
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
		return changed
	}

	if declare(FrameInput{}) {
		t.Error("checkbox changed without input")
	}
	if !declare(FrameInput{PointerX: 10, PointerY: 10, PointerReleased: true}) {
		t.Error("click did not toggle the checkbox")
	}
	if !checked {
		t.Error("bound value not flipped")
	}
}

func TestDrawCommandOrder(t *testing.T) {
	ctx := New(Config{})
	ctx.BeginFrame(FrameInput{})
	ctx.Begin("panel", ContainerOptions{
		Axis:       Vertical,
		Background: Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	})
	ctx.Label("hi", LabelOptions{})
	ctx.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}

	cmds := ctx.Commands()
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].Kind != CmdRect {
		t.Errorf("first command = %v, want rect (background under text)", cmds[0].Kind)
	}
	if cmds[1].Kind != CmdText || cmds[1].Text != "hi" {
		t.Errorf("second command = %+v, want the label text", cmds[1])
	}
}

func TestSpacerPushesTrailing(t *testing.T) {
	ctx := New(Config{})
	ctx.BeginFrame(FrameInput{})
	ctx.Begin("row", ContainerOptions{Axis: Horizontal, Fixed: Size{Width: 300, Height: 40}})
	ctx.Spacer(1)
	ctx.Button("b", ButtonOptions{Fixed: Size{Width: 100, Height: 40}})
	ctx.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}

	got, ok := ctx.BoundingBox(buttonID("row", "b"))
	if !ok {
		t.Fatal("button bounds not recorded")
	}
	want := Rect{X: 200, Y: 0, Width: 100, Height: 40}
	if got != want {
		t.Errorf("button bounds = %+v, want %+v", got, want)
	}
}

func declareList(t *testing.T, ctx *Context, in FrameInput) WidgetID {
	t.Helper()
	ctx.BeginFrame(in)
	id := ctx.BeginScrollRegion("list", ScrollOptions{Fixed: Size{Width: 200, Height: 100}})
	for i := 0; i < 10; i++ {
		ctx.Label(fmt.Sprintf("item %d", i), LabelOptions{Fixed: Size{Width: 180, Height: 30}})
	}
	ctx.EndScrollRegion()
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestScrollWheelRouting(t *testing.T) {
	ctx := New(Config{})
	id := declareList(t, ctx, FrameInput{})

	// 300px of content in a 100px viewport; wheel over the region.
	declareList(t, ctx, FrameInput{PointerX: 50, PointerY: 50, WheelDeltaY: 40})
	if got := ctx.Scroll().State(id).Offset.Y; got != 40 {
		t.Fatalf("offset = %v, want 40", got)
	}

	// Content shifted up: the first item renders above the viewport.
	var found bool
	for _, cmd := range ctx.Commands() {
		if cmd.Kind == CmdText && cmd.Text == "item 0" {
			found = true
			if cmd.Bounds.Y != -40 {
				t.Errorf("item 0 y = %v, want -40", cmd.Bounds.Y)
			}
		}
	}
	if !found {
		t.Error("item 0 not in the draw list")
	}

	// Wheel outside the region routes nowhere.
	declareList(t, ctx, FrameInput{PointerX: 500, PointerY: 500, WheelDeltaY: 40})
	if got := ctx.Scroll().State(id).Offset.Y; got != 40 {
		t.Errorf("offset moved to %v with the pointer elsewhere", got)
	}
}

func TestScrollClipCommands(t *testing.T) {
	ctx := New(Config{})
	declareList(t, ctx, FrameInput{})

	cmds := ctx.Commands()
	if cmds[0].Kind != CmdPushClip {
		t.Errorf("first command = %v, want clip push", cmds[0].Kind)
	}
	if cmds[len(cmds)-1].Kind != CmdPopClip {
		t.Errorf("last command = %v, want clip pop", cmds[len(cmds)-1].Kind)
	}
	want := Rect{X: 0, Y: 0, Width: 200, Height: 100}
	if cmds[0].Bounds != want {
		t.Errorf("clip bounds = %+v, want %+v", cmds[0].Bounds, want)
	}
}

func TestScrollDragAndFling(t *testing.T) {
	ctx := New(Config{})
	id := declareList(t, ctx, FrameInput{})

	declareList(t, ctx, FrameInput{PointerX: 50, PointerY: 50, PointerDown: true})
	declareList(t, ctx, FrameInput{PointerX: 50, PointerY: 30, PointerDown: true, DeltaTime: 0.016})

	st := ctx.Scroll().State(id)
	if st.Offset.Y != 20 {
		t.Fatalf("drag offset = %v, want 20", st.Offset.Y)
	}

	// Release: 20px in 0.016s exceeds the minimum drag, so momentum seeds
	// (~50 px/frame) and the same frame's tick already advances it.
	declareList(t, ctx, FrameInput{PointerX: 50, PointerY: 30, PointerReleased: true})
	if st.Velocity().Y <= 0 {
		t.Errorf("velocity = %v, want momentum after fling", st.Velocity().Y)
	}
	if st.Offset.Y <= 20 {
		t.Errorf("offset = %v, want movement past the drag end", st.Offset.Y)
	}

	// Momentum dies out over idle frames.
	for i := 0; i < 300 && st.Velocity().Y != 0; i++ {
		declareList(t, ctx, FrameInput{})
	}
	if st.Velocity().Y != 0 {
		t.Error("momentum never terminated")
	}
	if max := float32(200); st.Offset.Y > max {
		t.Errorf("offset = %v beyond the clamp limit %v", st.Offset.Y, max)
	}
}

func TestFlexErrorSurfacesFromEndFrame(t *testing.T) {
	ctx := New(Config{})
	ctx.BeginFrame(FrameInput{})
	ctx.BeginScrollRegion("s", ScrollOptions{Fixed: Size{Width: 100, Height: 100}})
	ctx.Begin("inner", ContainerOptions{Axis: Vertical})
	ctx.Spacer(1)
	ctx.End()
	ctx.EndScrollRegion()
	err := ctx.EndFrame()
	if err == nil {
		t.Fatal("flex child on an unbounded axis did not error")
	}
	if !strings.Contains(err.Error(), `"inner"`) {
		t.Errorf("error does not name the container: %v", err)
	}

	// The context stays usable after a configuration error.
	ctx.BeginFrame(FrameInput{})
	ctx.Label("ok", LabelOptions{})
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("frame after error: %v", err)
	}
}

func TestUnbalancedBeginPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unbalanced Begin")
		}
	}()
	ctx := New(Config{})
	ctx.BeginFrame(FrameInput{})
	ctx.BeginColumn("dangling")
	_ = ctx.EndFrame()
}

func TestDoubleBeginFramePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for BeginFrame twice")
		}
	}()
	ctx := New(Config{})
	ctx.BeginFrame(FrameInput{})
	ctx.BeginFrame(FrameInput{})
}

// paintWidget is a minimal CustomWidget for tests.
type paintWidget struct{ fill Color }

func (p *paintWidget) Measure(c BoxConstraints) Size {
	return c.ClampSize(Size{Width: 50, Height: 50})
}

func (p *paintWidget) Render(d *DrawList, bounds Rect) {
	d.Rect(bounds, p.fill)
}

func TestCustomWidget(t *testing.T) {
	ctx := New(Config{})
	w := &paintWidget{fill: Color{R: 1, A: 1}}

	ctx.BeginFrame(FrameInput{})
	id := ctx.Custom("paint", w, CustomOptions{Clickable: true})
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Commands()) != 1 || ctx.Commands()[0].Fill != w.fill {
		t.Error("custom render did not reach the draw list")
	}

	ctx.BeginFrame(FrameInput{PointerX: 25, PointerY: 25})
	if !ctx.IsHovered(id) {
		t.Error("custom clickable not hovered at its bounds")
	}
	ctx.Custom("paint", w, CustomOptions{Clickable: true})
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

// captureReporter records accessibility nodes per frame.
type captureReporter struct{ nodes []AccessibilityNode }

func (c *captureReporter) ReportNodes(nodes []AccessibilityNode) {
	c.nodes = append(c.nodes[:0], nodes...)
}

func TestAccessibilityReport(t *testing.T) {
	rep := &captureReporter{}
	ctx := New(Config{Accessibility: rep})

	ctx.BeginFrame(FrameInput{})
	ctx.Button("save", ButtonOptions{})
	ctx.Label("status", LabelOptions{})
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}

	if len(rep.nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(rep.nodes))
	}
	if rep.nodes[0].Role != RoleButton || rep.nodes[0].Label != "save" {
		t.Errorf("node 0 = %+v, want the button", rep.nodes[0])
	}
	if rep.nodes[1].Role != RoleText {
		t.Errorf("node 1 role = %v, want text", rep.nodes[1].Role)
	}
}

// captureRenderer stores the flushed command count.
type captureRenderer struct{ flushed int }

func (c *captureRenderer) Flush(cmds []DrawCommand) { c.flushed = len(cmds) }

func TestRendererFlush(t *testing.T) {
	r := &captureRenderer{}
	ctx := New(Config{Renderer: r})

	ctx.BeginFrame(FrameInput{})
	ctx.Label("x", LabelOptions{})
	if err := ctx.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if r.flushed != 1 {
		t.Errorf("flushed %d commands, want 1", r.flushed)
	}
}

func BenchmarkFrame(b *testing.B) {
	ctx := New(Config{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ctx.BeginFrame(FrameInput{PointerX: 100, PointerY: 100})
		ctx.Begin("toolbar", ContainerOptions{Axis: Horizontal, Gap: 8})
		ctx.Button("new", ButtonOptions{})
		ctx.Button("open", ButtonOptions{})
		ctx.Spacer(1)
		ctx.Button("close", ButtonOptions{})
		ctx.End()
		id := ctx.BeginScrollRegion("body", ScrollOptions{Flex: 1})
		for j := 0; j < 30; j++ {
			ctx.Label(fmt.Sprintf("row %d", j), LabelOptions{Fixed: Size{Width: 300, Height: 24}})
		}
		ctx.EndScrollRegion()
		_ = id
		if err := ctx.EndFrame(); err != nil {
			b.Fatal(err)
		}
	}
}

func TestScrolledOutWidgetNotHoverable(t *testing.T) {
	// A toolbar button at the top, and a scroll region below it whose inner
	// button scrolls up out of view. The inner button's shifted bounds land
	// over the toolbar; its hit rectangle must be clipped away so the
	// visible button keeps hover.
	ctx := New(Config{})
	declare := func(in FrameInput) {
		ctx.BeginFrame(in)
		ctx.Button("top", ButtonOptions{Fixed: Size{Width: 100, Height: 40}})
		ctx.BeginScrollRegion("list", ScrollOptions{Fixed: Size{Width: 200, Height: 100}})
		ctx.Button("inner", ButtonOptions{Fixed: Size{Width: 180, Height: 40}})
		for i := 0; i < 8; i++ {
			ctx.Label(fmt.Sprintf("item %d", i), LabelOptions{Fixed: Size{Width: 180, Height: 30}})
		}
		ctx.EndScrollRegion()
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	declare(FrameInput{})
	// Wheel over the region (y 40..140): offset 60 pushes the inner button
	// to y -20..20, overlapping the toolbar button.
	declare(FrameInput{PointerX: 50, PointerY: 90, WheelDeltaY: 60})

	declare(FrameInput{PointerX: 50, PointerY: 5})
	if !ctx.IsHovered(buttonID("top")) {
		t.Error("visible toolbar button lost hover")
	}
	if ctx.IsHovered(buttonID("list", "inner")) {
		t.Error("scrolled-out button claimed hover outside its viewport")
	}
}

func TestPartiallyScrolledWidgetHitsVisiblePartOnly(t *testing.T) {
	ctx := New(Config{})
	declare := func(in FrameInput) {
		ctx.BeginFrame(in)
		id := ctx.BeginScrollRegion("list", ScrollOptions{Fixed: Size{Width: 200, Height: 100}})
		ctx.Button("first", ButtonOptions{Fixed: Size{Width: 180, Height: 40}})
		for i := 0; i < 8; i++ {
			ctx.Label(fmt.Sprintf("item %d", i), LabelOptions{Fixed: Size{Width: 180, Height: 30}})
		}
		ctx.EndScrollRegion()
		_ = id
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	declare(FrameInput{})
	// Offset 20: the first button occupies y -20..20; only y 0..20 is
	// visible inside the viewport at y 0..100.
	declare(FrameInput{PointerX: 50, PointerY: 50, WheelDeltaY: 20})

	declare(FrameInput{PointerX: 50, PointerY: 10})
	if !ctx.IsHovered(buttonID("list", "first")) {
		t.Error("visible part of a partially scrolled button not hoverable")
	}
	got, ok := ctx.BoundingBox(buttonID("list", "first"))
	if !ok || got.Y != -20 {
		t.Errorf("bounding box = %+v, %v; want unclipped y -20", got, ok)
	}
}

func TestPanWidgetIntoView(t *testing.T) {
	ctx := New(Config{})
	declare := func(in FrameInput) {
		ctx.BeginFrame(in)
		ctx.BeginScrollRegion("list", ScrollOptions{Fixed: Size{Width: 200, Height: 100}})
		for i := 0; i < 10; i++ {
			ctx.Button(fmt.Sprintf("b%d", i), ButtonOptions{Fixed: Size{Width: 180, Height: 30}})
		}
		ctx.EndScrollRegion()
		if err := ctx.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	regionID := buttonID("list")
	targetID := buttonID("list", "b5")

	declare(FrameInput{})
	// b5 spans content y 150..180 in a 100-tall viewport: the minimal pan
	// aligns its bottom edge with the viewport bottom.
	if !ctx.PanIntoView(regionID, targetID) {
		t.Fatal("pan failed with recorded bounds present")
	}
	if got := ctx.Scroll().State(regionID).Offset.Y; got != 80 {
		t.Fatalf("offset = %v, want 80", got)
	}

	// Once visible, panning again is a no-op.
	declare(FrameInput{})
	if !ctx.PanIntoView(regionID, targetID) {
		t.Fatal("pan failed on second call")
	}
	if got := ctx.Scroll().State(regionID).Offset.Y; got != 80 {
		t.Errorf("offset moved to %v for an already-visible target", got)
	}

	if ctx.PanIntoView(regionID, buttonID("list", "missing")) {
		t.Error("pan reported success for a widget never declared")
	}
}
