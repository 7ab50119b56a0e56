// Package scrollwork is a scroll choreography engine for [Ebitengine].
//
// A page is a tree of [Element] values laid out in document space. A
// [Viewport] scrolls over the document, and a [Choreographer] drives every
// registered animation from the scroll position once per frame:
//
//   - scrub bindings map scroll progress through a range onto eased
//     property values ([Choreographer.RegisterScrub]);
//   - triggers run a one-shot, optionally staggered reveal when an element
//     crosses a visibility threshold ([Choreographer.RegisterTrigger]);
//   - pins hold an element in the viewport while an inner timeline runs, as
//     in a horizontal rail ([Choreographer.RegisterPin], [RailTimeline]);
//   - ambient loops run on time alone: floating badges, tickers, counters
//     ([Choreographer.RegisterAmbient], [Choreographer.RegisterTicker],
//     [Choreographer.RegisterCounter]).
//
// # Quick start
//
//	scene := scrollwork.NewScene(scrollwork.DefaultConfig())
//	c := scene.Choreographer()
//
//	hero := scrollwork.NewElement("hero", 1024, 600)
//	c.Document().AddChild(hero)
//	c.RegisterScrub(hero, scrollwork.ViewportRange, []scrollwork.Property{
//		{Name: scrollwork.PropOpacity, From: 1, To: 0},
//	}, nil)
//
//	if err := scrollwork.Run(scene, scrollwork.RunConfig{Title: "demo"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Frames
//
// [Choreographer.Update] runs a read phase followed by a write phase. The
// read phase lays the document out, samples the [ScrollSignal] once into a
// [ViewportState], lets the [Measurer] republish extents, and resolves every
// range. The write phase applies style values, runs pins and observers, and
// advances reveals, loops and the theme transition. Every binding sees the
// same scroll sample within a frame.
//
// # Ranges
//
// A [ScrollRange] is a pair of [Edge] anchors: "top of the element at 80% of
// the viewport" is Edge{Element: 0, Viewport: 0.8}. An edge may add the
// binding's measured horizontal or vertical overflow, which is how a pinned
// rail lasts exactly as long as its content is wide. Ranges resolve against
// an [InvalidationToken]; any resize, box change or
// [Choreographer.InvalidateMeasurements] call bumps the token and all range
// math is redone.
//
// # Lifetime
//
// Every registration returns a [Disposer]. Page components collect them in
// a [Scope] and dispose it on unmount; the [Router] does this on every
// navigation. A binding whose target leaves the document is dropped on the
// next frame with a warning.
//
// # Theme
//
// [ThemeController] owns the light/dark theme.
// [Choreographer.RunThemeTransition] applies a change behind a circular
// reveal centered on the pointer, falling back to an instant change when
// transitions are disabled or reduced motion is on.
//
// # Debugging
//
// [Scene.SetDebugMode] prints per-frame read/write timings and binding
// counts. Warnings always go to the log writer set by [SetLogOutput].
// [LoadTestScript] drives a scene from a YAML script of scroll, click,
// resize and screenshot steps.
//
// [Ebitengine]: https://ebitengine.org
package scrollwork
