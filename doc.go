// Package cascade drives scroll-synced, staggered title reveals.
//
// Each heading on a page is a section. As the page scrolls, every section
// maps the scroll position onto a progress value in [0, 1] between two
// edges, smooths it over time, and turns it into a pose: a horizontal
// offset for the section's container and a vertical offset for each of its
// glyphs. Glyphs start alternately above and below their resting line and
// settle one after another, so a heading assembles itself as the reader
// scrolls past it and comes apart again when scrolling back.
//
// # Quick start
//
//	sections := []cascade.SectionConfig{
//		{Text: "Subtle Phase"},
//		{Text: "Hidden Flow"},
//		{Text: "Calm Glide"},
//	}
//	scroller := cascade.NewSmoothScroller(0)
//	engine, err := cascade.NewEngine(sections, scroller, cascade.Options{
//		Viewport: cascade.Rect{Width: 1280, Height: 800},
//	})
//	if err != nil {
//		return err
//	}
//	scroller.SetLimit(engine.ScrollLimit())
//
//	ticker := cascade.NewTicker()
//	scroller.Attach(ticker)
//	engine.Attach(ticker)
//
//	// every frame:
//	ticker.Advance(time.Second / 60)
//
// The engine writes offsets to a [Node] tree rooted at [Engine.Root]. A
// renderer reads the nodes and paints them; see the ebitenview and termview
// packages for two.
//
// # Edges
//
// [ParseEdge] reads the "element viewport" syntax: "top bottom" starts when
// the section's top meets the viewport's bottom, "top -25%" ends when it is
// a quarter viewport above the top. Offsets are keywords (top, center,
// bottom), percentages or pixels, and either side may carry a "+=" or "-="
// shift. An edge of "+=300" is relative to the start edge.
//
// # Roles
//
// A [RoleRule] picks a [Role] per section and [RoleStyles] maps each role to
// an entrance. With [DefaultRoleRule] the middle section of three or more is
// emphasized: it slides in from the left and its glyphs settle right to
// left.
//
// # Clock
//
// The [Ticker] is the single frame clock. Handlers run in registration
// order, so attach the scroller before the engine. Tick work is
// single-threaded and does not allocate.
package cascade
