package overlay

// SliceSegment is one of the nine sub-rectangles of a nine-slice draw.
// X, Y, W, H are the destination rectangle in pixels; U, V, UW, VH are
// the normalized source rectangle in the texture.
type SliceSegment struct {
	X, Y, W, H float32
	U, V       float32
	UW, VH     float32
}

// ZeroArea reports whether the segment has nothing to draw.
func (s SliceSegment) ZeroArea() bool {
	return s.W <= 0 || s.H <= 0
}

// NineSlice computes the nine segments needed to stretch a bordered
// texture to an on-screen rectangle without distorting its corners:
// corners keep their size, edges stretch along one axis, the center
// stretches along both.
//
// (x, y) is the destination origin, (newW, newH) the on-screen target
// size, (texW, texH) the source texture dimensions, offset the border
// thickness in texels, and scaleFactor the display scale applied to the
// border. Segments are returned row-major, top-left to bottom-right.
//
// The scaled border is clamped so opposing borders never overlap: when
// the destination is smaller than twice the border, the border shrinks
// proportionally, down to zero-width segments for a zero-area
// destination. Callers skip segments reporting ZeroArea.
func NineSlice(x, y float32, newW, newH, texW, texH, offset uint32, scaleFactor float32) [9]SliceSegment {
	var segs [9]SliceSegment
	if texW == 0 || texH == 0 {
		return segs
	}

	dw := float32(newW)
	dh := float32(newH)

	b := float32(offset) * scaleFactor
	if b < 0 {
		b = 0
	}
	if b > dw/2 {
		b = dw / 2
	}
	if b > dh/2 {
		b = dh / 2
	}

	// Normalized source border, clamped the same way so the source
	// grid stays well-formed for small textures.
	ub := float32(offset) / float32(texW)
	if ub > 0.5 {
		ub = 0.5
	}
	vb := float32(offset) / float32(texH)
	if vb > 0.5 {
		vb = 0.5
	}

	xs := [3]float32{x, x + b, x + dw - b}
	ws := [3]float32{b, dw - 2*b, b}
	ys := [3]float32{y, y + b, y + dh - b}
	hs := [3]float32{b, dh - 2*b, b}

	us := [3]float32{0, ub, 1 - ub}
	uws := [3]float32{ub, 1 - 2*ub, ub}
	vs := [3]float32{0, vb, 1 - vb}
	vhs := [3]float32{vb, 1 - 2*vb, vb}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			segs[row*3+col] = SliceSegment{
				X: xs[col], Y: ys[row],
				W: ws[col], H: hs[row],
				U: us[col], V: vs[row],
				UW: uws[col], VH: vhs[row],
			}
		}
	}
	return segs
}
