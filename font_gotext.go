package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
)

func init() {
	RegisterFontBackend(FontBackendGoText, func() FontRenderer {
		return &gotextFontRenderer{}
	})
}

// errNoGlyphDrawer is returned when the video context cannot draw
// shaped glyph runs itself.
var errNoGlyphDrawer = errors.New("overlay: video context has no glyph run drawer")

// gotextFontRenderer lays out glyph runs with go-text/typesetting and
// hands them to the video context's glyph drawer (typically a GPU glyph
// atlas). It is the preferred font backend on GPU drivers; contexts
// without a GlyphRunDrawer fail Init and selection falls back to the
// ximage backend.
//
// font.Face is not safe for concurrent use, but neither is the render
// thread contract of this package, so a single face is kept.
type gotextFontRenderer struct {
	drawer GlyphRunDrawer
	face   *font.Face
	size   float32
	upem   float32
}

func (r *gotextFontRenderer) Name() string { return FontBackendGoText }

func (r *gotextFontRenderer) Init(videoCtx any, fontPath string, fontSize float32, isThreaded bool) error {
	drawer, ok := videoCtx.(GlyphRunDrawer)
	if !ok {
		return errNoGlyphDrawer
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return fmt.Errorf("overlay: read font: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("overlay: parse font: %w", err)
	}
	r.drawer = drawer
	r.face = face
	r.size = fontSize
	r.upem = float32(face.Upem())
	if r.upem == 0 {
		r.upem = 1000
	}
	// Atlas uploads happen on first draw, on the render thread, so the
	// isThreaded hint needs nothing extra here.
	return nil
}

// layout positions the nominal glyph for every rune at the given
// effective size. Shaping beyond nominal glyph lookup (ligatures,
// complex scripts) is the glyph drawer's concern, not this layer's.
func (r *gotextFontRenderer) layout(text string, size float32) ([]PositionedGlyph, float32) {
	glyphs := make([]PositionedGlyph, 0, len(text))
	var penX float32
	for _, ch := range text {
		gid, ok := r.face.NominalGlyph(ch)
		if !ok {
			continue
		}
		glyphs = append(glyphs, PositionedGlyph{GID: uint32(gid), X: penX})
		penX += r.face.HorizontalAdvance(gid) * size / r.upem
	}
	return glyphs, penX
}

func (r *gotextFontRenderer) RenderText(text string, x, y float32, width, height int, packed uint32, align TextAlign, scale float32) {
	if r.drawer == nil || r.face == nil || text == "" {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	size := r.size * scale
	glyphs, advance := r.layout(text, size)
	if len(glyphs) == 0 {
		return
	}
	switch align {
	case AlignCenter:
		x -= advance / 2
	case AlignRight:
		x -= advance
	}
	for i := range glyphs {
		glyphs[i].X += x
		glyphs[i].Y += y
	}
	r.drawer.DrawGlyphRun(GlyphRun{Glyphs: glyphs, Size: size, Color: packed})
}

func (r *gotextFontRenderer) Advance(text string) float32 {
	if r.face == nil {
		return 0
	}
	_, advance := r.layout(text, r.size)
	return advance
}

func (r *gotextFontRenderer) Free() {
	r.drawer = nil
	r.face = nil
}
