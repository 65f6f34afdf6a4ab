package overlay

// offscreenSlack is how far outside the viewport a text anchor may sit
// before the draw is skipped (glyphs can extend past their anchor).
const offscreenSlack = 64

// DrawText renders one line of text through the font's renderer.
// color is packed 0xRRGGBBAA; align shifts the run relative to x.
//
// When shadowsEnable is set, the glyph run is rendered twice: first a
// darkened pass offset by (shadowOffset, shadowOffset) scaled by the
// text scale, then the main pass on top.
//
// Unless drawOutside is set, text anchored well outside the
// width x height viewport is skipped entirely.
func (d *Display) DrawText(f *Font, text string, x, y float32, width, height int,
	color uint32, align TextAlign, scale float32,
	shadowsEnable bool, shadowOffset float32, drawOutside bool) {
	if f == nil || f.renderer == nil || text == "" {
		return
	}
	// Fully transparent text draws nothing.
	if color&0xFF == 0 {
		return
	}
	if !drawOutside {
		if x < -offscreenSlack || x > float32(width)+offscreenSlack ||
			y < -offscreenSlack || y > float32(height)+offscreenSlack {
			return
		}
	}

	if shadowsEnable {
		off := shadowOffset * scale
		shadowAlpha := uint8(float32(color&0xFF) * 0.75)
		shadowColor := TextColorWithAlpha(0x000000FF, shadowAlpha)
		f.renderer.RenderText(text, x+off, y+off, width, height, shadowColor, align, scale)
	}
	f.renderer.RenderText(text, x, y, width, height, color, align, scale)
}
