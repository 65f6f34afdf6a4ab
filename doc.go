// Package overlay provides a backend-agnostic 2D draw-command layer for
// on-screen overlay rendering.
//
// # Overview
//
// overlay sits between a UI layer that decides what to draw (menus,
// cursors, on-screen keyboards, text) and a graphics backend that knows
// how to draw it. UI code issues high-level operations (quads, polygons,
// nine-slice textures, glyph runs) against a Display session; the session
// lowers each operation into a backend-neutral DrawCommand and dispatches
// it through the bound Driver.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/overlay"
//
//	    _ "github.com/gogpu/overlay/driver/software"
//	)
//
//	disp := overlay.New(overlay.WithVideoIdent("software"))
//	if err := disp.Init(videoCtx, false); err != nil {
//	    // no compatible driver; drawing becomes a no-op
//	}
//	defer disp.Free()
//
//	white := overlay.ColorFromHex(0xFFFFFF, 1.0)
//	disp.DrawQuad(videoCtx, 1920, 1080, 100, 100, 64, 64, &white)
//
// # Drivers
//
// Concrete backends register themselves on import, in the same way
// database/sql drivers do. Selection walks a fixed priority order (GPU
// first, software fallback last), matches each candidate against the
// active video backend identifier, and binds the first one whose Init
// succeeds.
//
// # Redraw Gating
//
// Display tracks a framebuffer-dirty flag and an optional Animator.
// Callers should check UpdatePending before doing any layout or draw
// work; when it reports false, nothing changed and the previous frame
// can be reused.
//
// # Concurrency
//
// Display and the bound Driver are mutable shared state with no internal
// locking. All draw operations must run on the thread that owns the
// graphics context.
package overlay
