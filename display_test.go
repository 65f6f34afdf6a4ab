package overlay

import "testing"

type stubAnimator struct{ active bool }

func (a *stubAnimator) Active() bool { return a.active }

func TestUpdatePending(t *testing.T) {
	anim := &stubAnimator{}
	d := New(WithAnimator(anim))

	tests := []struct {
		name   string
		active bool
		dirty  bool
		want   bool
	}{
		{"idle", false, false, false},
		{"animating", true, false, true},
		{"dirty", false, true, true},
		{"both", true, true, true},
	}
	for _, tt := range tests {
		anim.active = tt.active
		d.dirty = tt.dirty
		if got := d.UpdatePending(); got != tt.want {
			t.Errorf("%s: UpdatePending() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUpdatePendingNoAnimator(t *testing.T) {
	d := New()
	if d.UpdatePending() {
		t.Error("UpdatePending() = true with no animator and clean framebuffer")
	}
	d.MarkDirty()
	if !d.UpdatePending() {
		t.Error("UpdatePending() = false after MarkDirty")
	}
	d.FramebufferClean()
	if d.UpdatePending() {
		t.Error("UpdatePending() = true after FramebufferClean")
	}
}

func TestClampScissor(t *testing.T) {
	tests := []struct {
		name           string
		x, y           int32
		w, h           uint32
		fbW, fbH       uint32
		wantX, wantY   int32
		wantW, wantH   uint32
	}{
		{"inside", 10, 10, 20, 20, 100, 100, 10, 10, 20, 20},
		{"negative origin", -10, 5, 50, 50, 100, 100, 0, 5, 40, 50},
		{"overflows right", 90, 0, 50, 10, 100, 100, 90, 0, 10, 10},
		{"overflows bottom", 0, 95, 10, 50, 100, 100, 0, 95, 10, 5},
		{"fully left of fb", -60, 0, 50, 50, 100, 100, 0, 0, 0, 0},
		{"fully past fb", 150, 0, 50, 50, 100, 100, 0, 0, 0, 0},
		{"zero fb leaves unbounded", -10, -10, 50, 50, 0, 0, 0, 0, 40, 40},
	}
	for _, tt := range tests {
		x, y, w, h := clampScissor(tt.x, tt.y, tt.w, tt.h, tt.fbW, tt.fbH)
		if x != tt.wantX || y != tt.wantY || w != tt.wantW || h != tt.wantH {
			t.Errorf("%s: clampScissor = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				tt.name, x, y, w, h, tt.wantX, tt.wantY, tt.wantW, tt.wantH)
		}
	}
}

func TestScissorBeginClampsBeforeDriver(t *testing.T) {
	d, drv := displayWithStub()
	d.SetWidth(100)
	d.SetHeight(100)

	d.ScissorBegin(nil, 100, 100, -10, 5, 50, 50)
	if len(drv.scissors) != 1 {
		t.Fatalf("driver saw %d scissor calls, want 1", len(drv.scissors))
	}
	got := drv.scissors[0]
	if got.x != 0 || got.y != 5 || got.w != 40 || got.h != 50 {
		t.Errorf("driver scissor = (%d, %d, %d, %d), want (0, 5, 40, 50)",
			got.x, got.y, got.w, got.h)
	}

	d.ScissorEnd(nil, 100, 100)
	if drv.scissorEnds != 1 {
		t.Errorf("scissor ends = %d, want 1", drv.scissorEnds)
	}
}

func TestScissorBeginEmptyAfterClampSkipsDriver(t *testing.T) {
	d, drv := displayWithStub()
	d.SetWidth(100)
	d.SetHeight(100)

	d.ScissorBegin(nil, 100, 100, 200, 0, 50, 50)
	if len(drv.scissors) != 0 {
		t.Errorf("driver called for empty scissor, %d calls", len(drv.scissors))
	}
}

func TestFreeIdempotent(t *testing.T) {
	d, drv := displayWithStub()
	d.SetWidth(640)
	d.SetHeight(480)
	d.MarkDirty()

	d.Free()
	d.Free()
	if drv.frees != 1 {
		t.Errorf("driver freed %d times, want 1", drv.frees)
	}
	if w, h, _ := d.FramebufferSize(); w != 0 || h != 0 {
		t.Errorf("framebuffer size after Free = %dx%d, want 0x0", w, h)
	}
	if d.FramebufferDirty() {
		t.Error("framebuffer dirty after Free")
	}
	if d.Driver() != nil {
		t.Error("driver still bound after Free")
	}
}

func TestUnboundOperationsNoOp(t *testing.T) {
	d := New()
	// None of these may panic or reach a driver without a binding.
	d.Draw(&DrawCommand{VertexCount: 4}, nil, 100, 100)
	d.DrawQuad(nil, 100, 100, 0, 0, 10, 10, nil)
	d.ScissorBegin(nil, 100, 100, 0, 0, 10, 10)
	d.ScissorEnd(nil, 100, 100)
	d.RotateZ(&RotateDraw{Matrix: &Matrix4{}}, nil)
	d.Free()
}

func TestRotateZComposesOntoDefaultMVP(t *testing.T) {
	d, drv := displayWithStub()
	mvp := Identity4()
	drv.mvp = &mvp

	var m Matrix4
	rd := RotateDraw{Matrix: &m, Rotation: 0.5}
	d.RotateZ(&rd, nil)

	want := mvp.Mul(ComposeRotation(0.5, 0, 0, 0, false))
	if m != want {
		t.Errorf("RotateZ matrix = %v, want %v", m, want)
	}
}

func TestRotateZWithScale(t *testing.T) {
	d, drv := displayWithStub()
	mvp := RotationZ(0.1)
	drv.mvp = &mvp

	var m Matrix4
	rd := RotateDraw{Matrix: &m, Rotation: 0.5, ScaleX: 2, ScaleY: 3, ScaleZ: 1, ScaleEnable: true}
	d.RotateZ(&rd, nil)

	want := mvp.Mul(ComposeRotation(0.5, 2, 3, 1, true))
	if m != want {
		t.Errorf("RotateZ matrix = %v, want %v", m, want)
	}
}

func TestRotateZDriverHandlesTransform(t *testing.T) {
	d, drv := displayWithStub()
	drv.transform = true

	m := ScaleXYZ(9, 9, 9)
	rd := RotateDraw{Matrix: &m, Rotation: 0.5}
	d.RotateZ(&rd, nil)

	if m != ScaleXYZ(9, 9, 9) {
		t.Error("matrix touched although the driver handles the transform")
	}
}

func TestRotateZNilMVPFallsBackToTransform(t *testing.T) {
	d, drv := displayWithStub()
	drv.mvp = nil

	var m Matrix4
	rd := RotateDraw{Matrix: &m, Rotation: 0.25}
	d.RotateZ(&rd, nil)

	if want := RotationZ(0.25); m != want {
		t.Errorf("RotateZ matrix = %v, want plain rotation %v", m, want)
	}
}

func TestDisplayAccessors(t *testing.T) {
	d := New(
		WithMenuKind(MenuOzone),
		WithWindowedSupport(true),
	)
	if d.MenuKind() != MenuOzone {
		t.Errorf("MenuKind() = %v, want MenuOzone", d.MenuKind())
	}
	if !d.HasWindowed() {
		t.Error("HasWindowed() = false, want true")
	}

	d.SetHeaderHeight(42)
	if d.HeaderHeight() != 42 {
		t.Errorf("HeaderHeight() = %d, want 42", d.HeaderHeight())
	}

	d.SetMessageForce(true)
	if !d.MessageForce() {
		t.Error("MessageForce() = false after SetMessageForce(true)")
	}

	d.SetWidth(1280)
	d.SetHeight(720)
	d.SetPitch(5120)
	if w, h, pitch := d.FramebufferSize(); w != 1280 || h != 720 || pitch != 5120 {
		t.Errorf("FramebufferSize() = (%d, %d, %d), want (1280, 720, 5120)", w, h, pitch)
	}
}
