package overlay

import "testing"

// recordingRenderer captures RenderText calls for inspection.
type recordingRenderer struct {
	calls []renderCall
	freed bool
}

type renderCall struct {
	text  string
	x, y  float32
	color uint32
	align TextAlign
	scale float32
}

func (r *recordingRenderer) Name() string { return "recording" }

func (r *recordingRenderer) Init(videoCtx any, fontPath string, fontSize float32, isThreaded bool) error {
	return nil
}

func (r *recordingRenderer) RenderText(text string, x, y float32, width, height int,
	color uint32, align TextAlign, scale float32) {
	r.calls = append(r.calls, renderCall{text: text, x: x, y: y, color: color, align: align, scale: scale})
}

func (r *recordingRenderer) Advance(text string) float32 { return float32(len(text)) * 8 }

func (r *recordingRenderer) Free() { r.freed = true }

func testFont(r FontRenderer) *Font {
	return &Font{renderer: r, path: "test.ttf", size: 16}
}

func TestDrawTextPlain(t *testing.T) {
	d := New()
	r := &recordingRenderer{}

	d.DrawText(testFont(r), "hello", 10, 20, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)

	if len(r.calls) != 1 {
		t.Fatalf("render calls = %d, want 1", len(r.calls))
	}
	call := r.calls[0]
	if call.text != "hello" || call.x != 10 || call.y != 20 {
		t.Errorf("call = %+v, want hello at (10, 20)", call)
	}
	if call.color != 0xFFFFFFFF {
		t.Errorf("color = %#x, want 0xFFFFFFFF", call.color)
	}
}

func TestDrawTextShadow(t *testing.T) {
	d := New()
	r := &recordingRenderer{}

	d.DrawText(testFont(r), "hi", 10, 20, 640, 480, 0xFF0000FF, AlignLeft, 2, true, 1.5, false)

	if len(r.calls) != 2 {
		t.Fatalf("render calls = %d, want shadow + main", len(r.calls))
	}
	shadow, main := r.calls[0], r.calls[1]

	// Shadow offset scales with the text scale.
	if shadow.x != 13 || shadow.y != 23 {
		t.Errorf("shadow at (%v, %v), want (13, 23)", shadow.x, shadow.y)
	}
	// Shadow is black at three quarters of the text alpha.
	srcAlpha := float32(0xFF)
	wantAlpha := uint32(srcAlpha * 0.75)
	if shadow.color != wantAlpha {
		t.Errorf("shadow color = %#x, want %#x", shadow.color, wantAlpha)
	}
	if main.x != 10 || main.y != 20 || main.color != 0xFF0000FF {
		t.Errorf("main pass = %+v, want original position and color", main)
	}
}

func TestDrawTextTransparentSkipped(t *testing.T) {
	d := New()
	r := &recordingRenderer{}
	d.DrawText(testFont(r), "x", 0, 0, 640, 480, 0xFFFFFF00, AlignLeft, 1, true, 1, false)
	if len(r.calls) != 0 {
		t.Errorf("render calls = %d for transparent text, want 0", len(r.calls))
	}
}

func TestDrawTextEmptyAndNil(t *testing.T) {
	d := New()
	r := &recordingRenderer{}
	d.DrawText(testFont(r), "", 0, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	d.DrawText(nil, "x", 0, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	d.DrawText(&Font{}, "x", 0, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	if len(r.calls) != 0 {
		t.Errorf("render calls = %d, want 0", len(r.calls))
	}
}

func TestDrawTextOffscreen(t *testing.T) {
	d := New()
	r := &recordingRenderer{}

	// Far outside the viewport plus slack: skipped.
	d.DrawText(testFont(r), "x", -100, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	d.DrawText(testFont(r), "x", 0, 600, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	if len(r.calls) != 0 {
		t.Fatalf("offscreen text rendered %d times, want 0", len(r.calls))
	}

	// Just inside the slack: rendered.
	d.DrawText(testFont(r), "x", -60, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, false)
	if len(r.calls) != 1 {
		t.Errorf("text within slack rendered %d times, want 1", len(r.calls))
	}

	// drawOutside bypasses the check.
	d.DrawText(testFont(r), "x", -100, 0, 640, 480, 0xFFFFFFFF, AlignLeft, 1, false, 0, true)
	if len(r.calls) != 2 {
		t.Errorf("drawOutside text rendered %d times total, want 2", len(r.calls))
	}
}

func TestFontFree(t *testing.T) {
	r := &recordingRenderer{}
	f := testFont(r)
	FontFree(f)
	if !r.freed {
		t.Error("renderer not freed")
	}
	if f.Renderer() != nil {
		t.Error("font keeps renderer after FontFree")
	}
	// Safe on nil and double free.
	FontFree(nil)
	FontFree(f)
}

func TestFontAccessors(t *testing.T) {
	f := testFont(&recordingRenderer{})
	if f.Path() != "test.ttf" {
		t.Errorf("Path() = %q, want test.ttf", f.Path())
	}
	if f.Size() != 16 {
		t.Errorf("Size() = %v, want 16", f.Size())
	}
}
