// Package wgpu provides the GPU driver for the overlay draw-command
// layer, built on gogpu/wgpu's hardware abstraction layer. The driver
// receives a device from the host video backend through the gpucontext
// integration surface; it never creates its own.
package wgpu

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/overlay"
	"github.com/gogpu/wgpu/hal"
)

// Driver init errors.
var (
	// ErrNoDeviceProvider is returned when the video context does not
	// carry a shared GPU device.
	ErrNoDeviceProvider = errors.New("wgpu: video context is not a device provider")

	// ErrNoHalAccess is returned when the provider cannot hand out the
	// underlying HAL device and queue.
	ErrNoHalAccess = errors.New("wgpu: device provider has no HAL access")

	// ErrNoTarget is returned when the video context exposes no render
	// target for the overlay pass.
	ErrNoTarget = errors.New("wgpu: video context has no render target")
)

// VideoContext is what the wgpu video backend must expose to this
// driver, on top of the shared-device contract: the render target view
// of the frame currently being composed, and its format.
type VideoContext interface {
	gpucontext.DeviceProvider

	// TargetView returns the texture view the overlay is drawn into.
	TargetView() hal.TextureView

	// TargetFormat returns the pixel format of the target view.
	TargetFormat() gputypes.TextureFormat
}

// HalProvider gives direct access to the HAL device and queue behind a
// shared gpucontext device. Hosts built on gogpu implement it.
type HalProvider interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// Default unit-quad geometry, bottom-left origin, v flipped so textures
// appear upright after the y flip in the draw layer.
var (
	defaultVertices  = []float32{0, 0, 1, 0, 0, 1, 1, 1}
	defaultTexCoords = []float32{0, 1, 1, 1, 0, 0, 1, 0}
	defaultMVP       = overlay.Identity4()
)

// Driver is the WebGPU overlay backend.
type Driver struct {
	device hal.Device
	queue  hal.Queue
	target VideoContext

	pipelines pipelineCache

	mu         sync.Mutex
	textures   map[overlay.TextureHandle]gpuTexture
	nextHandle overlay.TextureHandle
	white      overlay.TextureHandle

	blending  bool
	scissorOn bool
	scissorX  int32
	scissorY  int32
	scissorW  uint32
	scissorH  uint32

	start time.Time // effect pipelines animate on time since Init

	logger *slog.Logger
}

func init() {
	overlay.RegisterDriver(NewDriver())
}

// NewDriver creates an unbound wgpu driver.
func NewDriver() *Driver {
	return &Driver{
		textures:   make(map[overlay.TextureHandle]gpuTexture),
		nextHandle: 1,
		logger:     overlay.Logger(),
	}
}

// SetLogger lets the overlay package propagate its logger.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l != nil {
		d.logger = l
	}
}

func (d *Driver) Kind() overlay.Kind { return overlay.KindWGPU }

func (d *Driver) Ident() string { return overlay.IdentWGPU }

// Compatible matches only the wgpu video backend.
func (d *Driver) Compatible(videoIdent string) bool {
	return videoIdent == overlay.IdentWGPU
}

func (d *Driver) HandlesTransform() bool { return false }

// Init binds the driver to the host's shared GPU device and compiles
// the overlay shaders. On any failure everything acquired so far is
// released, so selection can move on with no partial state.
func (d *Driver) Init(videoCtx any, isThreaded bool) error {
	vc, ok := videoCtx.(VideoContext)
	if !ok {
		return ErrNoDeviceProvider
	}
	hp, ok := videoCtx.(HalProvider)
	if !ok {
		return ErrNoHalAccess
	}
	device := hp.HalDevice()
	queue := hp.HalQueue()
	if device == nil || queue == nil {
		return ErrNoHalAccess
	}

	d.device = device
	d.queue = queue
	d.target = vc
	d.start = time.Now()

	if err := d.pipelines.init(device, vc.TargetFormat()); err != nil {
		d.Free()
		return err
	}
	if err := d.initWhiteTexture(); err != nil {
		d.Free()
		return err
	}
	return nil
}

// Free releases all GPU resources and clears the binding. Safe to call
// on an unbound driver.
func (d *Driver) Free() {
	if d.device != nil {
		d.mu.Lock()
		for handle, t := range d.textures {
			d.destroyTexture(t)
			delete(d.textures, handle)
		}
		d.mu.Unlock()
		d.pipelines.destroy(d.device)
	}
	d.device = nil
	d.queue = nil
	d.target = nil
	d.white = overlay.NoTexture
	d.blending = false
	d.scissorOn = false
}

func (d *Driver) BlendBegin(backendCtx any) { d.blending = true }

func (d *Driver) BlendEnd(backendCtx any) { d.blending = false }

func (d *Driver) DefaultMVP(backendCtx any) *overlay.Matrix4 { return &defaultMVP }

func (d *Driver) DefaultVertices() []float32 { return defaultVertices }

func (d *Driver) DefaultTexCoords() []float32 { return defaultTexCoords }

// ScissorBegin records the clip rectangle applied to subsequent render
// passes. Coordinates arrive pre-clamped with a top-left origin, which
// matches the WebGPU scissor convention directly.
func (d *Driver) ScissorBegin(backendCtx any, viewportWidth, viewportHeight uint32, x, y int32, width, height uint32) {
	d.scissorOn = true
	d.scissorX = x
	d.scissorY = y
	d.scissorW = width
	d.scissorH = height
}

// ScissorEnd restores the full viewport.
func (d *Driver) ScissorEnd(backendCtx any, viewportWidth, viewportHeight uint32) {
	d.scissorOn = false
}

// FontInitFirst selects the first working font backend for this driver.
// The video context is handed through unchanged: hosts with a GPU glyph
// atlas implement overlay.GlyphRunDrawer and get the gotext backend;
// anything else falls through the priority order.
func (d *Driver) FontInitFirst(videoCtx any, fontPath string, fontSize float32, isThreaded bool) (*overlay.Font, error) {
	return overlay.FontInitFirst(videoCtx, fontPath, fontSize, isThreaded)
}
