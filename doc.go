// Package ink is the runtime core of an immediate-mode UI toolkit. The
// application declares its interface from scratch every frame; the core turns
// those declarations into layout, hit testing, focus, scrolling and an
// ordered draw-command list, while keeping steady-state frames free of heap
// allocation.
//
// The frame protocol is three calls:
//
//	ctx := ink.New(ink.Config{})
//	for running {
//		ctx.BeginFrame(input) // arena reset, snapshot swap, input routing
//		ctx.Button("save", ink.ButtonOptions{})
//		// ... declarations ...
//		if err := ctx.EndFrame(); err != nil { // layout, records, flush
//			log.Fatal(err)
//		}
//	}
//
// Interaction queries (hover, press, click) answer from the previous frame's
// solved layout: the current frame's bounds do not exist until its
// declarations are complete. This one-frame lag is a deliberate, documented
// property of the whole design, not an implementation accident.
//
// Per-frame memory comes from a bump-pointer arena that is reset, never
// freed, at BeginFrame. Nothing obtained during a frame may be retained past
// the next BeginFrame; state that must persist (scroll offsets, focus) lives
// in ordinary maps keyed by the stable WidgetID hash of each widget's
// declaration path.
//
// Rendering and text rasterization stay outside the core: EndFrame hands a
// Renderer a flat list of rect/text/clip commands, and layout measures text
// through the TextBackend interface. FixedMetrics serves tests and headless
// use; the textshape subpackage provides a HarfBuzz-backed implementation.
package ink
