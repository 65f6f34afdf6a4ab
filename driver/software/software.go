// Package software provides the CPU fallback driver for the overlay
// draw-command layer. It rasterizes triangle strips directly into a
// Framebuffer and serves as the last candidate in driver selection,
// compatible with any video backend identifier.
package software

import (
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/overlay"
)

// ErrNoSurface is returned by Init when the video context does not
// expose a software framebuffer.
var ErrNoSurface = errors.New("software: video context has no framebuffer surface")

// Surface is what the software video backend must expose to this
// driver: the framebuffer the overlay is rasterized into.
type Surface interface {
	Framebuffer() *Framebuffer
}

// Default unit-quad geometry in the GL-style bottom-left convention
// shared by all drivers.
var (
	defaultVertices  = []float32{0, 0, 1, 0, 0, 1, 1, 1}
	defaultTexCoords = []float32{0, 1, 1, 1, 0, 0, 1, 0}
	defaultMVP       = overlay.Identity4()
)

// Driver is the software rasterizer backend.
type Driver struct {
	fb       *Framebuffer
	blending bool

	scissorOn bool
	scissor   image.Rectangle

	mu         sync.Mutex
	textures   map[overlay.TextureHandle]*image.RGBA
	nextHandle overlay.TextureHandle

	logger *slog.Logger
}

func init() {
	overlay.RegisterDriver(NewDriver())
}

// NewDriver creates an unbound software driver.
func NewDriver() *Driver {
	return &Driver{
		textures:   make(map[overlay.TextureHandle]*image.RGBA),
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

func (d *Driver) Kind() overlay.Kind { return overlay.KindSoftware }

func (d *Driver) Ident() string { return overlay.IdentSoftware }

// Compatible always reports true: the software rasterizer is the
// generic fallback for any video backend.
func (d *Driver) Compatible(videoIdent string) bool { return true }

func (d *Driver) HandlesTransform() bool { return false }

// Init binds the driver to the video context's framebuffer surface.
func (d *Driver) Init(videoCtx any, isThreaded bool) error {
	s, ok := videoCtx.(Surface)
	if !ok {
		return ErrNoSurface
	}
	fb := s.Framebuffer()
	if fb == nil {
		return ErrNoSurface
	}
	d.fb = fb
	return nil
}

// Free releases the binding. Registered textures survive a rebind so
// handles held by the UI layer stay valid across resolution changes.
func (d *Driver) Free() {
	d.fb = nil
	d.blending = false
	d.scissorOn = false
}

func (d *Driver) BlendBegin(backendCtx any) { d.blending = true }

func (d *Driver) BlendEnd(backendCtx any) { d.blending = false }

func (d *Driver) DefaultMVP(backendCtx any) *overlay.Matrix4 { return &defaultMVP }

func (d *Driver) DefaultVertices() []float32 { return defaultVertices }

func (d *Driver) DefaultTexCoords() []float32 { return defaultTexCoords }

// ScissorBegin restricts rasterization to the given rectangle. The
// rectangle arrives pre-clamped from the session; coordinates use a
// top-left origin.
func (d *Driver) ScissorBegin(backendCtx any, viewportWidth, viewportHeight uint32, x, y int32, width, height uint32) {
	d.scissorOn = true
	d.scissor = image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
}

// ScissorEnd restores unrestricted rasterization.
func (d *Driver) ScissorEnd(backendCtx any, viewportWidth, viewportHeight uint32) {
	d.scissorOn = false
}

// FontInitFirst selects the first working font backend for this driver.
// The framebuffer is passed as the font video context, so the ximage
// CPU rasterizer binds and the GPU glyph-run backend naturally fails
// over.
func (d *Driver) FontInitFirst(videoCtx any, fontPath string, fontSize float32, isThreaded bool) (*overlay.Font, error) {
	target := any(d.fb)
	if d.fb == nil {
		target = videoCtx
	}
	return overlay.FontInitFirst(target, fontPath, fontSize, isThreaded)
}

// DrawPipeline falls back to a plain draw: the software rasterizer has
// no effect pipelines.
func (d *Driver) DrawPipeline(cmd *overlay.DrawCommand, disp *overlay.Display, backendCtx any, viewportWidth, viewportHeight uint32) {
	d.Draw(cmd, backendCtx, viewportWidth, viewportHeight)
}

// Draw rasterizes one command into the framebuffer. Unsupported or
// degenerate commands are skipped; nothing here can fail the caller.
func (d *Driver) Draw(cmd *overlay.DrawCommand, backendCtx any, viewportWidth, viewportHeight uint32) {
	// Anything under 3 vertices has no area.
	if d.fb == nil || cmd == nil || cmd.VertexCount < 3 {
		return
	}

	verts := cmd.Vertices
	if verts == nil {
		verts = defaultVertices
	}
	texc := cmd.TexCoords
	if texc == nil {
		texc = defaultTexCoords
	}
	if len(verts) < cmd.VertexCount*2 {
		d.logger.Warn("software: vertex buffer shorter than vertex count",
			"len", len(verts), "count", cmd.VertexCount)
		return
	}

	var tex *image.RGBA
	if cmd.Texture != overlay.NoTexture {
		d.mu.Lock()
		tex = d.textures[cmd.Texture]
		d.mu.Unlock()
	}

	screen := make([]vertex, cmd.VertexCount)
	vh := float32(viewportHeight)
	for i := 0; i < cmd.VertexCount; i++ {
		vx := verts[i*2]
		vy := verts[i*2+1]
		screen[i].x = cmd.X + vx*float32(cmd.Width)
		// Command space has a bottom-left origin; the framebuffer a
		// top-left one.
		screen[i].y = vh - (cmd.Y + vy*float32(cmd.Height))
		if len(texc) >= (i+1)*2 {
			screen[i].u = texc[i*2]
			screen[i].v = texc[i*2+1]
		}
		screen[i].r, screen[i].g, screen[i].b, screen[i].a = vertexColor(cmd.Colors, i)
	}

	clip := d.fb.img.Rect
	if d.scissorOn {
		clip = clip.Intersect(d.scissor)
		if clip.Empty() {
			return
		}
	}

	switch cmd.Prim {
	case overlay.PrimitiveTriangles:
		for i := 0; i+2 < len(screen); i += 3 {
			d.fillTriangle(screen[i], screen[i+1], screen[i+2], tex, clip)
		}
	default:
		// Triangle strip, also the fallback for PrimitiveNone.
		for i := 0; i+2 < len(screen); i++ {
			d.fillTriangle(screen[i], screen[i+1], screen[i+2], tex, clip)
		}
	}
}

// RegisterTexture adds decoded pixels to the driver's texture table and
// returns their handle. The image is retained; the caller must not
// mutate it afterwards.
func (d *Driver) RegisterTexture(img *image.RGBA) overlay.TextureHandle {
	if img == nil {
		return overlay.NoTexture
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	handle := d.nextHandle
	d.nextHandle++
	d.textures[handle] = img
	return handle
}

// FreeTexture removes a texture from the table.
func (d *Driver) FreeTexture(handle overlay.TextureHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.textures, handle)
}

// WhiteTexture lazily registers the 1x1 white placeholder used for
// flat-color draws and returns its handle.
func (d *Driver) WhiteTexture() overlay.TextureHandle {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Pix[0] = 0xFF
	white.Pix[1] = 0xFF
	white.Pix[2] = 0xFF
	white.Pix[3] = 0xFF
	return d.RegisterTexture(white)
}

// vertexColor reads the RGBA channels of vertex i, defaulting to opaque
// white when the buffer is missing or short.
func vertexColor(colors []float32, i int) (r, g, b, a float32) {
	if len(colors) < (i+1)*4 {
		return 1, 1, 1, 1
	}
	return colors[i*4], colors[i*4+1], colors[i*4+2], colors[i*4+3]
}
