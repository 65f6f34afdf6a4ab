package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func init() {
	RegisterFontBackend(FontBackendXImage, func() FontRenderer {
		return &ximageFontRenderer{}
	})
}

// errNoRasterTarget is returned when the video context exposes no CPU
// raster surface for the ximage backend to draw into.
var errNoRasterTarget = errors.New("overlay: video context has no raster target")

// ximageFontRenderer rasterizes glyphs with golang.org/x/image directly
// into the video context's CPU raster target. It is the fallback font
// backend used with the software driver.
type ximageFontRenderer struct {
	target RasterTarget
	source *opentype.Font
	size   float32

	mu    sync.Mutex
	faces map[float32]font.Face // keyed by effective size (size * scale)
}

func (r *ximageFontRenderer) Name() string { return FontBackendXImage }

func (r *ximageFontRenderer) Init(videoCtx any, fontPath string, fontSize float32, isThreaded bool) error {
	target, ok := videoCtx.(RasterTarget)
	if !ok {
		return errNoRasterTarget
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return fmt.Errorf("overlay: read font: %w", err)
	}
	src, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("overlay: parse font: %w", err)
	}
	r.target = target
	r.source = src
	r.size = fontSize
	r.faces = make(map[float32]font.Face)
	// CPU rasterization has no GPU resources to defer, so isThreaded
	// needs no special handling here.
	return nil
}

// face returns a cached font.Face for the effective size.
func (r *ximageFontRenderer) face(scale float32) (font.Face, error) {
	if scale <= 0 {
		scale = 1
	}
	size := r.size * scale
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.source, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: create face: %w", err)
	}
	r.faces[size] = f
	return f, nil
}

func (r *ximageFontRenderer) RenderText(text string, x, y float32, width, height int, packed uint32, align TextAlign, scale float32) {
	if r.target == nil || text == "" {
		return
	}
	dst := r.target.DrawTarget()
	if dst == nil {
		return
	}
	face, err := r.face(scale)
	if err != nil {
		Logger().Warn("overlay: glyph face unavailable", "err", err)
		return
	}

	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(packedToNRGBA(packed)),
		Face: face,
	}
	switch align {
	case AlignCenter:
		x -= fixedToFloat(drawer.MeasureString(text)) / 2
	case AlignRight:
		x -= fixedToFloat(drawer.MeasureString(text))
	}
	drawer.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}
	drawer.DrawString(text)
}

func (r *ximageFontRenderer) Advance(text string) float32 {
	face, err := r.face(1)
	if err != nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(face, text))
}

func (r *ximageFontRenderer) Free() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.faces {
		if closer, ok := f.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
	r.faces = nil
	r.source = nil
	r.target = nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// packedToNRGBA expands a packed 0xRRGGBBAA color.
func packedToNRGBA(packed uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(packed >> 24),
		G: uint8(packed >> 16),
		B: uint8(packed >> 8),
		A: uint8(packed),
	}
}
