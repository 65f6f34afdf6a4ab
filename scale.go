package overlay

import "github.com/chewxy/math32"

// DiagonalPixels1080P is the number of pixels corner-to-corner on a
// 1080p display: sqrt(1920*1920 + 1080*1080). It is the reference
// diagonal against which DPI scale is computed.
const DiagonalPixels1080P = 2202.90717008229831581901

// Scale bounds. A scale outside this range produces unusably small or
// absurdly large UI elements, so adjusted scales are clamped to it.
const (
	minScale = 0.1
	maxScale = 10.0
)

// DPIScale returns the scale factor for a framebuffer of the given
// dimensions relative to a 1080p display. A 1920x1080 framebuffer
// yields exactly 1.0. The result is clamped to [0.1, 10].
func DPIScale(width, height uint32) float32 {
	if width == 0 || height == 0 {
		return 1
	}
	w := float32(width)
	h := float32(height)
	diag := math32.Sqrt(w*w + h*h)
	return clampScale(diag / DiagonalPixels1080P)
}

// AdjustedScale applies a user-configured scale-factor multiplier to a
// base scale and clamps the result to the sane range.
func AdjustedScale(baseScale, scaleFactor float32) float32 {
	return clampScale(baseScale * scaleFactor)
}

func clampScale(s float32) float32 {
	if s < minScale {
		return minScale
	}
	if s > maxScale {
		return maxScale
	}
	return s
}
