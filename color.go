package overlay

// ColorBuffer holds per-vertex RGBA colors for one quad: four corners
// times four channels, 16 floats total. Each channel is in [0, 1].
// Vertex order matches the default unit-quad vertices returned by
// Driver.DefaultVertices.
type ColorBuffer [16]float32

// ColorFromHex expands a packed 24-bit 0xRRGGBB value plus an alpha in
// [0, 1] into a ColorBuffer with all four corners set to the same color.
func ColorFromHex(hex uint32, alpha float32) ColorBuffer {
	r := float32((hex>>16)&0xFF) / 255
	g := float32((hex>>8)&0xFF) / 255
	b := float32(hex&0xFF) / 255
	return ColorBuffer{
		r, g, b, alpha,
		r, g, b, alpha,
		r, g, b, alpha,
		r, g, b, alpha,
	}
}

// NewColorBuffer returns a ColorBuffer with all four corners set to the
// given RGBA channels.
func NewColorBuffer(r, g, b, a float32) ColorBuffer {
	return ColorBuffer{
		r, g, b, a,
		r, g, b, a,
		r, g, b, a,
		r, g, b, a,
	}
}

// SetAlpha replaces the alpha channel of all four corners, leaving the
// RGB channels untouched. Exactly the four alpha slots (indices 3, 7,
// 11, 15) are written.
func (c *ColorBuffer) SetAlpha(alpha float32) {
	c[3] = alpha
	c[7] = alpha
	c[11] = alpha
	c[15] = alpha
}

// Alpha returns the alpha channel of the first corner.
func (c *ColorBuffer) Alpha() float32 {
	return c[3]
}

// Floats returns the buffer as a flat slice suitable for
// DrawCommand.Colors. The slice aliases the buffer.
func (c *ColorBuffer) Floats() []float32 {
	return c[:]
}

// TextColorWithAlpha replaces the alpha byte of a packed 0xRRGGBBAA text
// color, keeping the RGB bytes.
func TextColorWithAlpha(color uint32, alpha uint8) uint32 {
	return (color & 0xFFFFFF00) | uint32(alpha)
}
