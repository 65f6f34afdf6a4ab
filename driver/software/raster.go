package software

import "image"

// vertex is one screen-space vertex with interpolated attributes.
type vertex struct {
	x, y       float32
	u, v       float32
	r, g, b, a float32
}

// fillTriangle rasterizes one triangle with barycentric attribute
// interpolation, clipped to clip. Colors are multiplied with the
// texture sample when a texture is present; alpha blending applies
// while a blend bracket is open.
func (d *Driver) fillTriangle(v0, v1, v2 vertex, tex *image.RGBA, clip image.Rectangle) {
	area := edge(v0, v1, v2)
	if area == 0 {
		return
	}
	// Accept either winding.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(min3(v0.x, v1.x, v2.x))
	maxX := int(max3(v0.x, v1.x, v2.x)) + 1
	minY := int(min3(v0.y, v1.y, v2.y))
	maxY := int(max3(v0.y, v1.y, v2.y)) + 1
	if minX < clip.Min.X {
		minX = clip.Min.X
	}
	if minY < clip.Min.Y {
		minY = clip.Min.Y
	}
	if maxX > clip.Max.X {
		maxX = clip.Max.X
	}
	if maxY > clip.Max.Y {
		maxY = clip.Max.Y
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	inv := 1 / area
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			// Sample at the pixel center.
			p := vertex{x: float32(x) + 0.5, y: float32(y) + 0.5}
			w0 := edge(v1, v2, p) * inv
			w1 := edge(v2, v0, p) * inv
			w2 := edge(v0, v1, p) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			r := w0*v0.r + w1*v1.r + w2*v2.r
			g := w0*v0.g + w1*v1.g + w2*v2.g
			b := w0*v0.b + w1*v1.b + w2*v2.b
			a := w0*v0.a + w1*v1.a + w2*v2.a

			if tex != nil {
				u := w0*v0.u + w1*v1.u + w2*v2.u
				vv := w0*v0.v + w1*v1.v + w2*v2.v
				tr, tg, tb, ta := sampleNearest(tex, u, vv)
				r *= tr
				g *= tg
				b *= tb
				a *= ta
			}

			d.writePixel(x, y, r, g, b, a)
		}
	}
}

// writePixel stores one pixel, source-over blending when a blend
// bracket is open.
func (d *Driver) writePixel(x, y int, r, g, b, a float32) {
	img := d.fb.img
	i := img.PixOffset(x, y)
	pix := img.Pix

	if d.blending && a < 1 {
		if a <= 0 {
			return
		}
		ia := 1 - a
		r = r*a + float32(pix[i+0])/255*ia
		g = g*a + float32(pix[i+1])/255*ia
		b = b*a + float32(pix[i+2])/255*ia
		a = a + float32(pix[i+3])/255*ia
	}

	pix[i+0] = clamp255(r)
	pix[i+1] = clamp255(g)
	pix[i+2] = clamp255(b)
	pix[i+3] = clamp255(a)
}

// sampleNearest samples a texture at normalized (u, v) with clamping.
func sampleNearest(tex *image.RGBA, u, v float32) (r, g, b, a float32) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	x := int(u * float32(w))
	y := int(v * float32(h))
	if x < 0 {
		x = 0
	}
	if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	i := tex.PixOffset(tex.Rect.Min.X+x, tex.Rect.Min.Y+y)
	return float32(tex.Pix[i+0]) / 255,
		float32(tex.Pix[i+1]) / 255,
		float32(tex.Pix[i+2]) / 255,
		float32(tex.Pix[i+3]) / 255
}

// edge is the signed doubled area of triangle (a, b, c); its sign tells
// which side of edge ab the point c lies on.
func edge(a, b, c vertex) float32 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func clamp255(v float32) uint8 {
	v *= 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
