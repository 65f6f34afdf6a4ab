package software

import (
	"image"
	"image/color"
)

// Framebuffer is the CPU pixel buffer the software driver rasterizes
// into. The host's software video backend owns one and presents it
// after each frame.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int { return f.img.Rect.Dx() }

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int { return f.img.Rect.Dy() }

// DrawTarget exposes the backing image. It satisfies the raster-target
// contract the ximage font backend draws into.
func (f *Framebuffer) DrawTarget() *image.RGBA { return f.img }

// Pix returns the raw RGBA pixel data.
func (f *Framebuffer) Pix() []uint8 { return f.img.Pix }

// Clear fills the whole framebuffer with one color.
func (f *Framebuffer) Clear(c color.RGBA) {
	pix := f.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// At returns the pixel at (x, y), or zero outside bounds.
func (f *Framebuffer) At(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return color.RGBA{}
	}
	return f.img.RGBAAt(x, y)
}
