package overlay

import "github.com/chewxy/math32"

// Matrix4 is a 4x4 transform matrix in column-major order, the layout
// expected by GPU uniform buffers. Element (row, col) is at index
// col*4 + row.
type Matrix4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation by the given angle in radians about the
// display's forward (z) axis.
func RotationZ(radians float32) Matrix4 {
	cos := math32.Cos(radians)
	sin := math32.Sin(radians)
	m := Identity4()
	m[0] = cos
	m[1] = sin
	m[4] = -sin
	m[5] = cos
	return m
}

// ScaleXYZ returns a matrix scaling each axis independently.
func ScaleXYZ(x, y, z float32) Matrix4 {
	m := Identity4()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// Mul returns m * n. With column vectors this applies n first, then m.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// ComposeRotation builds the model transform for a RotateDraw: rotation
// about z, optionally followed by independent (x, y, z) scaling in the
// rotated frame. When scaleEnable is false the scale factors are ignored
// and the result is exactly the rotation matrix, so all backends agree
// on the unscaled case bit-for-bit.
func ComposeRotation(rotation, scaleX, scaleY, scaleZ float32, scaleEnable bool) Matrix4 {
	rot := RotationZ(rotation)
	if !scaleEnable {
		return rot
	}
	return ScaleXYZ(scaleX, scaleY, scaleZ).Mul(rot)
}
