package overlay

// MenuKind identifies which menu-rendering style is active. It affects
// layout decisions in the UI layer, not the drawing mechanics here.
type MenuKind uint8

const (
	MenuUnknown MenuKind = iota
	MenuRGUI
	MenuOzone
	MenuGLUI
	MenuXMB
	MenuXUI
	MenuStripes
)

// Animator reports whether any animation is currently active. It is
// consumed only by the update-pending predicate.
type Animator interface {
	Active() bool
}

// Display is the live session tying together the bound driver, the
// framebuffer dimensions, the dirty flag, and derived layout constants.
// Construct one with New, bind a driver with Init, and release it with
// Free.
//
// Display has no internal locking; it must only be used from the render
// thread.
type Display struct {
	driver     Driver
	videoIdent string
	anim       Animator

	fbWidth  uint32
	fbHeight uint32
	fbPitch  int

	headerHeight uint32
	menuKind     MenuKind

	hasWindowed  bool
	forceMessage bool
	dirty        bool

	baseScale       float32
	scaleMultiplier float32

	whiteTexture TextureHandle
}

// New creates a Display session. The session has no bound driver until
// Init is called; until then every draw operation is a silent no-op.
func New(opts ...Option) *Display {
	d := &Display{
		videoIdent:      IdentSoftware,
		baseScale:       1,
		scaleMultiplier: 1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init performs driver selection against the registered drivers and
// binds the first compatible one that initializes. On failure the
// session is left with no bound driver and ErrNoDriver is returned;
// drawing stays a no-op layer until a later Init succeeds.
func (d *Display) Init(videoCtx any, isThreaded bool) error {
	if d.driver != nil {
		d.Free()
	}
	drv, err := selectDriver(RegisteredDrivers(), d.videoIdent, videoCtx, isThreaded)
	if err != nil {
		return err
	}
	d.driver = drv
	d.dirty = true
	return nil
}

// Free releases the bound driver's resources and clears the session
// state. It is idempotent: calling Free on an already-freed session
// does nothing.
func (d *Display) Free() {
	if d.driver != nil {
		d.driver.Free()
		d.driver = nil
	}
	d.fbWidth = 0
	d.fbHeight = 0
	d.fbPitch = 0
	d.headerHeight = 0
	d.forceMessage = false
	d.dirty = false
	d.whiteTexture = NoTexture
}

// Driver returns the bound driver, or nil before Init or after Free.
func (d *Display) Driver() Driver { return d.driver }

// SetWidth sets the logical framebuffer width.
func (d *Display) SetWidth(width uint32) { d.fbWidth = width }

// SetHeight sets the logical framebuffer height.
func (d *Display) SetHeight(height uint32) { d.fbHeight = height }

// SetPitch sets the framebuffer pitch in bytes.
func (d *Display) SetPitch(pitch int) { d.fbPitch = pitch }

// FramebufferSize returns width, height, and pitch as of the last set.
func (d *Display) FramebufferSize() (width, height uint32, pitch int) {
	return d.fbWidth, d.fbHeight, d.fbPitch
}

// SetHeaderHeight sets the derived display header height.
func (d *Display) SetHeaderHeight(h uint32) { d.headerHeight = h }

// HeaderHeight returns the display header height.
func (d *Display) HeaderHeight() uint32 { return d.headerHeight }

// MenuKind returns the active menu-rendering style.
func (d *Display) MenuKind() MenuKind { return d.menuKind }

// SetMessageForce overrides suppression of on-screen messages.
func (d *Display) SetMessageForce(force bool) { d.forceMessage = force }

// MessageForce reports whether on-screen messages are forced.
func (d *Display) MessageForce() bool { return d.forceMessage }

// HasWindowed reports whether the host environment supports windowed
// output.
func (d *Display) HasWindowed() bool { return d.hasWindowed }

// MarkDirty flags the framebuffer content as changed, so the next
// UpdatePending check reports a redraw is needed.
func (d *Display) MarkDirty() { d.dirty = true }

// FramebufferDirty reports whether drawable content changed since the
// last completed render pass.
func (d *Display) FramebufferDirty() bool { return d.dirty }

// FramebufferClean clears the dirty flag. Call exactly once per
// completed render pass.
func (d *Display) FramebufferClean() { d.dirty = false }

// UpdatePending reports whether a redraw is necessary: true when an
// animation is active or the framebuffer is dirty. Callers should
// check this before any expensive layout or draw pass.
func (d *Display) UpdatePending() bool {
	if d.anim != nil && d.anim.Active() {
		return true
	}
	return d.dirty
}

// DPIScale returns the display scale for the given framebuffer size,
// adjusted by the configured base scale and multiplier and clamped to
// the sane range.
func (d *Display) DPIScale(width, height uint32) float32 {
	return clampScale(DPIScale(width, height) * d.baseScale * d.scaleMultiplier)
}

// ScissorBegin clamps the requested rectangle to
// [0,0]..[framebufferWidth,framebufferHeight] and restricts subsequent
// draws to it. A rectangle that is empty after clamping draws nothing
// and the driver is not called.
func (d *Display) ScissorBegin(backendCtx any, viewportWidth, viewportHeight uint32, x, y int32, width, height uint32) {
	drv := d.driver
	if drv == nil {
		return
	}
	cx, cy, cw, ch := clampScissor(x, y, width, height, d.fbWidth, d.fbHeight)
	if cw == 0 || ch == 0 {
		return
	}
	drv.ScissorBegin(backendCtx, viewportWidth, viewportHeight, cx, cy, cw, ch)
}

// ScissorEnd restores the unclamped viewport.
func (d *Display) ScissorEnd(backendCtx any, viewportWidth, viewportHeight uint32) {
	drv := d.driver
	if drv == nil {
		return
	}
	drv.ScissorEnd(backendCtx, viewportWidth, viewportHeight)
}

// RotateZ populates rd.Matrix with the rotation (and optional scale)
// composed onto the driver's default model-view-projection. Drivers
// that handle the transform themselves are left to do so and the
// matrix is not touched.
func (d *Display) RotateZ(rd *RotateDraw, backendCtx any) {
	drv := d.driver
	if drv == nil || rd == nil || rd.Matrix == nil || drv.HandlesTransform() {
		return
	}
	xform := ComposeRotation(rd.Rotation, rd.ScaleX, rd.ScaleY, rd.ScaleZ, rd.ScaleEnable)
	if mvp := drv.DefaultMVP(backendCtx); mvp != nil {
		*rd.Matrix = mvp.Mul(xform)
	} else {
		*rd.Matrix = xform
	}
}

// clampScissor clamps a requested scissor rectangle to a non-negative,
// in-bounds region of a fbWidth x fbHeight framebuffer. A zero fb
// dimension leaves that axis unbounded above.
func clampScissor(x, y int32, width, height, fbWidth, fbHeight uint32) (int32, int32, uint32, uint32) {
	if x < 0 {
		over := uint32(-x)
		if over >= width {
			return 0, 0, 0, 0
		}
		width -= over
		x = 0
	}
	if y < 0 {
		over := uint32(-y)
		if over >= height {
			return 0, 0, 0, 0
		}
		height -= over
		y = 0
	}
	if fbWidth > 0 {
		if uint32(x) >= fbWidth {
			return 0, 0, 0, 0
		}
		if uint32(x)+width > fbWidth {
			width = fbWidth - uint32(x)
		}
	}
	if fbHeight > 0 {
		if uint32(y) >= fbHeight {
			return 0, 0, 0, 0
		}
		if uint32(y)+height > fbHeight {
			height = fbHeight - uint32(y)
		}
	}
	return x, y, width, height
}
