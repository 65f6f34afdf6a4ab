package overlay

// On-screen keyboard grid dimensions: 11 keys per line, 4 lines.
const (
	oskCols = 11
	oskRows = 4
	// OSKKeys is the number of keys on the on-screen keyboard grid.
	OSKKeys = oskCols * oskRows
)

// oskKeyRect returns the rectangle of key i for a viewport of the given
// size. The keyboard is centered horizontally and occupies the lower
// half of the screen. Draw and hit test share this geometry so they
// always agree.
func oskKeyRect(i int, viewportWidth, viewportHeight uint32) (x, y int32, w, h uint32) {
	w = viewportWidth / oskCols
	h = viewportHeight / 10
	originX := int32(viewportWidth/2) - int32(w*oskCols)/2
	originY := int32(viewportHeight / 2)
	x = originX + int32(uint32(i%oskCols)*w)
	y = originY + int32(uint32(i/oskCols)*h)
	return x, y, w, h
}

// DrawKeyboard draws the on-screen keyboard: a darkened backdrop, the
// hover texture under the selected key, and one label per key. grid
// must hold at least OSKKeys labels; selected is the index of the
// highlighted key.
func (d *Display) DrawKeyboard(backendCtx any, viewportWidth, viewportHeight uint32,
	hoverTexture TextureHandle, f *Font, grid []string, selected int, textColor uint32) {
	if d.driver == nil || len(grid) < OSKKeys {
		return
	}

	// Backdrop over the keyboard area.
	backdrop := NewColorBuffer(0, 0, 0, 0.9)
	d.DrawQuad(backendCtx, viewportWidth, viewportHeight,
		0, int32(viewportHeight/2), viewportWidth, viewportHeight/2, &backdrop)

	for i := 0; i < OSKKeys; i++ {
		x, y, w, h := oskKeyRect(i, viewportWidth, viewportHeight)

		if i == selected && hoverTexture != NoTexture {
			d.drawTexturedQuad(backendCtx, viewportWidth, viewportHeight,
				x, y, w, h, hoverTexture, &opaqueWhite)
		}

		d.DrawText(f, grid[i],
			float32(x)+float32(w)/2, float32(y)+float32(h)/2,
			int(viewportWidth), int(viewportHeight),
			textColor, AlignCenter, 1, false, 0, false)
	}
}

// OSKPointerAt returns the index of the on-screen keyboard key at the
// given pointer position, or -1 when the position is outside the
// keyboard.
func OSKPointerAt(ptrX, ptrY int32, viewportWidth, viewportHeight uint32) int {
	for i := 0; i < OSKKeys; i++ {
		x, y, w, h := oskKeyRect(i, viewportWidth, viewportHeight)
		if ptrX >= x && ptrX < x+int32(w) && ptrY >= y && ptrY < y+int32(h) {
			return i
		}
	}
	return -1
}
