package overlay

// opaqueWhite is the color used when a draw operation is given no color
// buffer.
var opaqueWhite = NewColorBuffer(1, 1, 1, 1)

// Draw dispatches one command through the bound driver, selecting the
// effect pipeline path when the command requests one. It is a no-op
// when no driver is bound or the command has no vertices.
func (d *Display) Draw(cmd *DrawCommand, backendCtx any, viewportWidth, viewportHeight uint32) {
	drv := d.driver
	if drv == nil || cmd == nil {
		return
	}
	if cmd.VertexCount == 0 {
		return
	}
	if cmd.PipelineActive && cmd.Pipeline != PipelineNone {
		drv.DrawPipeline(cmd, d, backendCtx, viewportWidth, viewportHeight)
		return
	}
	drv.Draw(cmd, backendCtx, viewportWidth, viewportHeight)
}

// DrawQuad draws an axis-aligned colored rectangle. (x, y) is the
// top-left corner in screen coordinates with a top-left origin; the
// command is lowered to the backend's bottom-left convention here so
// every driver sees the same thing.
func (d *Display) DrawQuad(backendCtx any, viewportWidth, viewportHeight uint32, x, y int32, w, h uint32, color *ColorBuffer) {
	drv := d.driver
	if drv == nil || w == 0 || h == 0 {
		return
	}
	if color == nil {
		color = &opaqueWhite
	}

	drv.BlendBegin(backendCtx)
	cmd := DrawCommand{
		Colors:      color.Floats(),
		Vertices:    drv.DefaultVertices(),
		TexCoords:   drv.DefaultTexCoords(),
		VertexCount: 4,
		Texture:     d.whiteTexture,
		Width:       w,
		Height:      h,
		X:           float32(x),
		Y:           float32(int32(viewportHeight) - y - int32(h)),
		Prim:        PrimitiveTriangleStrip,
	}
	drv.Draw(&cmd, backendCtx, viewportWidth, viewportHeight)
	drv.BlendEnd(backendCtx)
}

// DrawPolygon draws a quadrilateral with four arbitrary corner points,
// given in triangle-strip order: top-left, top-right, bottom-left,
// bottom-right, with a top-left origin.
func (d *Display) DrawPolygon(backendCtx any, viewportWidth, viewportHeight uint32,
	x1, y1, x2, y2, x3, y3, x4, y4 int32, color *ColorBuffer) {
	drv := d.driver
	if drv == nil || viewportWidth == 0 || viewportHeight == 0 {
		return
	}
	if color == nil {
		color = &opaqueWhite
	}

	vw := float32(viewportWidth)
	vh := float32(viewportHeight)
	// Normalized strip vertices, flipped to the bottom-left origin.
	vertices := []float32{
		float32(x1) / vw, 1 - float32(y1)/vh,
		float32(x2) / vw, 1 - float32(y2)/vh,
		float32(x3) / vw, 1 - float32(y3)/vh,
		float32(x4) / vw, 1 - float32(y4)/vh,
	}

	drv.BlendBegin(backendCtx)
	cmd := DrawCommand{
		Colors:      color.Floats(),
		Vertices:    vertices,
		TexCoords:   drv.DefaultTexCoords(),
		VertexCount: 4,
		Texture:     d.whiteTexture,
		Width:       viewportWidth,
		Height:      viewportHeight,
		Prim:        PrimitiveTriangleStrip,
	}
	drv.Draw(&cmd, backendCtx, viewportWidth, viewportHeight)
	drv.BlendEnd(backendCtx)
}

// DrawTextureSlice draws a bordered texture stretched to (newW, newH)
// at (x, y) using nine-slice segmentation: the corner segments keep
// their size, edges stretch along one axis, and the center stretches
// along both. Zero-area segments are skipped, so degenerate quads never
// reach the driver.
func (d *Display) DrawTextureSlice(backendCtx any, viewportWidth, viewportHeight uint32,
	x, y int32, newW, newH, texW, texH uint32,
	color *ColorBuffer, offset uint32, scaleFactor float32, texture TextureHandle) {
	drv := d.driver
	if drv == nil || newW == 0 || newH == 0 || texture == NoTexture {
		return
	}
	if color == nil {
		color = &opaqueWhite
	}

	segs := NineSlice(float32(x), float32(y), newW, newH, texW, texH, offset, scaleFactor)

	drv.BlendBegin(backendCtx)
	for i := range segs {
		seg := &segs[i]
		if seg.ZeroArea() {
			continue
		}
		// Texture v is flipped along with the destination y so the
		// sampled region stays upright.
		texCoords := []float32{
			seg.U, seg.V + seg.VH,
			seg.U + seg.UW, seg.V + seg.VH,
			seg.U, seg.V,
			seg.U + seg.UW, seg.V,
		}
		cmd := DrawCommand{
			Colors:      color.Floats(),
			Vertices:    drv.DefaultVertices(),
			TexCoords:   texCoords,
			VertexCount: 4,
			Texture:     texture,
			Width:       uint32(seg.W),
			Height:      uint32(seg.H),
			X:           seg.X,
			Y:           float32(viewportHeight) - seg.Y - seg.H,
			Prim:        PrimitiveTriangleStrip,
		}
		drv.Draw(&cmd, backendCtx, viewportWidth, viewportHeight)
	}
	drv.BlendEnd(backendCtx)
}

// DrawCursor draws the pointer cursor texture centered on (x, y).
// Nothing is drawn while the cursor is not visible.
func (d *Display) DrawCursor(backendCtx any, viewportWidth, viewportHeight uint32,
	visible bool, color *ColorBuffer, cursorSize float32, texture TextureHandle, x, y float32) {
	drv := d.driver
	if drv == nil || !visible {
		return
	}
	if color == nil {
		color = &opaqueWhite
	}

	drv.BlendBegin(backendCtx)
	cmd := DrawCommand{
		Colors:      color.Floats(),
		Vertices:    drv.DefaultVertices(),
		TexCoords:   drv.DefaultTexCoords(),
		VertexCount: 4,
		Texture:     texture,
		Width:       uint32(cursorSize),
		Height:      uint32(cursorSize),
		X:           x - cursorSize/2,
		Y:           float32(viewportHeight) - y - cursorSize/2,
		Prim:        PrimitiveTriangleStrip,
	}
	drv.Draw(&cmd, backendCtx, viewportWidth, viewportHeight)
	drv.BlendEnd(backendCtx)
}

// DrawBG fills in the defaults of a background draw command (geometry,
// white texture, optional opacity override) and dispatches it. When the
// command requests an effect pipeline, the pipeline path is used.
func (d *Display) DrawBG(cmd *DrawCommand, backendCtx any, addOpacity bool, opacityOverride float32) {
	drv := d.driver
	if drv == nil || cmd == nil {
		return
	}
	if cmd.Vertices == nil {
		cmd.Vertices = drv.DefaultVertices()
	}
	if cmd.TexCoords == nil {
		cmd.TexCoords = drv.DefaultTexCoords()
	}
	if cmd.VertexCount == 0 {
		cmd.VertexCount = 4
	}
	if cmd.Texture == NoTexture {
		cmd.Texture = d.whiteTexture
	}
	if cmd.Prim == PrimitiveNone {
		cmd.Prim = PrimitiveTriangleStrip
	}
	if addOpacity && len(cmd.Colors) >= 16 {
		var buf ColorBuffer
		copy(buf[:], cmd.Colors[:16])
		buf.SetAlpha(opacityOverride)
		copy(cmd.Colors[:16], buf[:])
	}

	drv.BlendBegin(backendCtx)
	d.Draw(cmd, backendCtx, cmd.Width, cmd.Height)
	drv.BlendEnd(backendCtx)
}

// drawTexturedQuad is shared by cursor/keyboard drawing: a plain
// textured rectangle with a top-left origin.
func (d *Display) drawTexturedQuad(backendCtx any, viewportWidth, viewportHeight uint32,
	x, y int32, w, h uint32, texture TextureHandle, color *ColorBuffer) {
	drv := d.driver
	if drv == nil || w == 0 || h == 0 {
		return
	}
	if color == nil {
		color = &opaqueWhite
	}

	drv.BlendBegin(backendCtx)
	cmd := DrawCommand{
		Colors:      color.Floats(),
		Vertices:    drv.DefaultVertices(),
		TexCoords:   drv.DefaultTexCoords(),
		VertexCount: 4,
		Texture:     texture,
		Width:       w,
		Height:      h,
		X:           float32(x),
		Y:           float32(int32(viewportHeight) - y - int32(h)),
		Prim:        PrimitiveTriangleStrip,
	}
	drv.Draw(&cmd, backendCtx, viewportWidth, viewportHeight)
	drv.BlendEnd(backendCtx)
}
