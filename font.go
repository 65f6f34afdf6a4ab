package overlay

import (
	"image"
	"sync"
)

// Font backend names for the backends shipped with this module.
const (
	// FontBackendGoText parses fonts with go-text/typesetting and emits
	// positioned glyph runs for a GPU glyph drawer.
	FontBackendGoText = "gotext"
	// FontBackendXImage rasterizes glyphs with golang.org/x/image into
	// a CPU raster target.
	FontBackendXImage = "ximage"
)

// TextAlign selects horizontal text alignment relative to the anchor x.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// FontRenderer is the contract a font backend implements: initialize
// from a font file, lay out and emit glyph runs, measure advances, and
// tear down. Rasterization details (CPU mask vs GPU atlas) belong to
// the backend.
type FontRenderer interface {
	// Name returns the backend identifier (e.g. "ximage").
	Name() string

	// Init loads the font and binds the renderer to a video context.
	// isThreaded hints that the caller is preparing resources off the
	// render thread; backends that must create GPU resources on the
	// render thread defer that work regardless.
	Init(videoCtx any, fontPath string, fontSize float32, isThreaded bool) error

	// RenderText draws one glyph run. (x, y) is the baseline anchor in
	// screen coordinates with a top-left origin; align shifts the run
	// relative to x.
	RenderText(text string, x, y float32, width, height int, color uint32, align TextAlign, scale float32)

	// Advance returns the horizontal advance of the text in pixels.
	Advance(text string) float32

	// Free releases everything Init acquired.
	Free()
}

// Font is an opaque handle to an initialized font renderer at one size.
type Font struct {
	renderer FontRenderer
	path     string
	size     float32
}

// Renderer returns the backend behind this font.
func (f *Font) Renderer() FontRenderer { return f.renderer }

// Size returns the font size in points.
func (f *Font) Size() float32 { return f.size }

// Path returns the font file path the renderer was initialized from.
func (f *Font) Path() string { return f.path }

// FontFree tears down a font handle. Safe to call with nil.
func FontFree(f *Font) {
	if f == nil || f.renderer == nil {
		return
	}
	f.renderer.Free()
	f.renderer = nil
}

// RasterTarget is implemented by video contexts that expose a CPU
// raster surface for glyph drawing. The ximage font backend requires
// it.
type RasterTarget interface {
	DrawTarget() *image.RGBA
}

// PositionedGlyph is one glyph of a shaped run, positioned relative to
// the run's baseline origin.
type PositionedGlyph struct {
	GID  uint32
	X, Y float32
}

// GlyphRun is a positioned glyph sequence ready for drawing.
type GlyphRun struct {
	Glyphs []PositionedGlyph
	Size   float32
	Color  uint32
}

// GlyphRunDrawer is implemented by video contexts that draw shaped
// glyph runs themselves (typically through a GPU glyph atlas). The
// gotext font backend requires it.
type GlyphRunDrawer interface {
	DrawGlyphRun(run GlyphRun)
}

// FontRendererFactory creates a new, uninitialized font renderer.
type FontRendererFactory func() FontRenderer

// fontRegistry holds registered font backends.
var (
	fontBackendsMu sync.RWMutex
	fontBackends   = map[string]FontRendererFactory{}
	// Priority order for font backend selection (first success wins).
	// The GPU glyph-run path is preferred; the CPU rasterizer is the
	// fallback.
	fontPriority = []string{FontBackendGoText, FontBackendXImage}
)

// RegisterFontBackend registers a font backend factory under a name.
// Registering an existing name replaces the previous factory.
func RegisterFontBackend(name string, factory FontRendererFactory) {
	fontBackendsMu.Lock()
	defer fontBackendsMu.Unlock()
	fontBackends[name] = factory
}

// UnregisterFontBackend removes a font backend. Useful for testing.
func UnregisterFontBackend(name string) {
	fontBackendsMu.Lock()
	defer fontBackendsMu.Unlock()
	delete(fontBackends, name)
}

// FontInitFirst tries each registered font backend in priority order
// and returns a Font wrapping the first renderer whose Init succeeds.
// Backends whose requirements the video context cannot satisfy fail
// Init and selection moves on; if none succeed, ErrNoFontRenderer is
// returned.
func FontInitFirst(videoCtx any, fontPath string, fontSize float32, isThreaded bool) (*Font, error) {
	fontBackendsMu.RLock()
	ordered := make([]FontRendererFactory, 0, len(fontBackends))
	names := make([]string, 0, len(fontBackends))
	seen := make(map[string]bool, len(fontBackends))
	for _, name := range fontPriority {
		if factory, ok := fontBackends[name]; ok {
			ordered = append(ordered, factory)
			names = append(names, name)
			seen[name] = true
		}
	}
	for name, factory := range fontBackends {
		if !seen[name] {
			ordered = append(ordered, factory)
			names = append(names, name)
		}
	}
	fontBackendsMu.RUnlock()

	for i, factory := range ordered {
		r := factory()
		if r == nil {
			continue
		}
		if err := r.Init(videoCtx, fontPath, fontSize, isThreaded); err != nil {
			Logger().Warn("overlay: font backend init failed",
				"backend", names[i], "path", fontPath, "err", err)
			continue
		}
		return &Font{renderer: r, path: fontPath, size: fontSize}, nil
	}
	return nil, ErrNoFontRenderer
}

// Font initializes a font for the bound driver, delegating to the
// driver's first-compatible font selection. Returns nil when no driver
// is bound or no font backend works.
func (d *Display) Font(videoCtx any, fontPath string, fontSize float32, isThreaded bool) *Font {
	drv := d.driver
	if drv == nil {
		return nil
	}
	f, err := drv.FontInitFirst(videoCtx, fontPath, fontSize, isThreaded)
	if err != nil {
		Logger().Warn("overlay: font init failed", "path", fontPath, "err", err)
		return nil
	}
	return f
}
