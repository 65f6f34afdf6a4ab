package overlay

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity4Mul(t *testing.T) {
	id := Identity4()
	rot := RotationZ(0.7)
	if got := id.Mul(rot); got != rot {
		t.Errorf("I * R = %v, want %v", got, rot)
	}
	if got := rot.Mul(id); got != rot {
		t.Errorf("R * I = %v, want %v", got, rot)
	}
}

func TestRotationZLayout(t *testing.T) {
	const angle = 1.2
	m := RotationZ(angle)
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)

	if m[0] != cos || m[5] != cos {
		t.Errorf("diagonal = %v, %v, want %v", m[0], m[5], cos)
	}
	if m[1] != sin || m[4] != -sin {
		t.Errorf("off-diagonal = %v, %v, want %v, %v", m[1], m[4], sin, -sin)
	}
	if m[10] != 1 || m[15] != 1 {
		t.Errorf("z/w diagonal = %v, %v, want 1, 1", m[10], m[15])
	}
}

func TestComposeRotationWithoutScale(t *testing.T) {
	// With scaling disabled the result must be bit-identical to the
	// plain rotation, whatever the scale factors say.
	got := ComposeRotation(0.35, 2, 3, 4, false)
	want := RotationZ(0.35)
	if got != want {
		t.Errorf("ComposeRotation(scaleEnable=false) = %v, want %v", got, want)
	}
}

func TestComposeRotationWithScale(t *testing.T) {
	got := ComposeRotation(0.35, 2, 3, 1, true)
	want := ScaleXYZ(2, 3, 1).Mul(RotationZ(0.35))
	if got != want {
		t.Errorf("ComposeRotation(scaleEnable=true) = %v, want %v", got, want)
	}
}

func TestMulAppliesRightHandSideFirst(t *testing.T) {
	// Scaling after rotating differs from rotating after scaling for
	// non-uniform scales; this pins the convention.
	scale := ScaleXYZ(2, 1, 1)
	rot := RotationZ(math32.Pi / 2)

	// scale.Mul(rot) applies rot first: unit x -> y -> scaled (0, 1).
	m := scale.Mul(rot)
	x := m[0]*1 + m[4]*0
	y := m[1]*1 + m[5]*0
	if math32.Abs(x) > 1e-6 || math32.Abs(y-1) > 1e-6 {
		t.Errorf("(1,0) mapped to (%v, %v), want (0, 1)", x, y)
	}
}
