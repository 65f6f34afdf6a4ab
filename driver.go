package overlay

import "errors"

// Common errors.
var (
	// ErrNoDriver is returned when no compatible display driver can be
	// bound for the active video backend.
	ErrNoDriver = errors.New("overlay: no compatible display driver")

	// ErrNoFontRenderer is returned when no font backend can be
	// initialized for a video context.
	ErrNoFontRenderer = errors.New("overlay: no compatible font renderer")

	// ErrTextureLoad is returned when a texture cannot be loaded or
	// registered with the backend.
	ErrTextureLoad = errors.New("overlay: texture load failed")
)

// Kind identifies the graphics API family behind a driver.
type Kind uint8

const (
	// KindGeneric is the null/unknown backend.
	KindGeneric Kind = iota
	// KindWGPU is the WebGPU backend (gogpu/wgpu).
	KindWGPU
	// KindSoftware is the CPU rasterizer fallback.
	KindSoftware
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindWGPU:
		return "wgpu"
	case KindSoftware:
		return "software"
	default:
		return "generic"
	}
}

// Driver is the capability set every concrete rendering backend must
// implement. One instance exists per backend, registered at package
// init time and never destroyed during the process lifetime.
//
// Per-draw calls have no error path: once a driver is bound, a draw
// either succeeds or is silently skipped. Failures at bind time are
// reported synchronously by Init and must leave no partial state.
type Driver interface {
	// Draw issues one draw command. The driver must respect the
	// command's primitive, texture handle, color buffer, and matrix
	// (or its default MVP when the matrix is nil).
	Draw(cmd *DrawCommand, backendCtx any, viewportWidth, viewportHeight uint32)

	// DrawPipeline is like Draw but selects a built-in visual-effect
	// pipeline by cmd.Pipeline. Drivers without pipeline support
	// implement this as a fallback to plain Draw.
	DrawPipeline(cmd *DrawCommand, disp *Display, backendCtx any, viewportWidth, viewportHeight uint32)

	// BlendBegin and BlendEnd bracket alpha-blended draw sequences.
	// Exactly one begin precedes one end; no reentrancy is required.
	BlendBegin(backendCtx any)
	BlendEnd(backendCtx any)

	// DefaultMVP returns the backend-owned default model-view-projection
	// matrix, used when a DrawCommand omits an explicit matrix.
	DefaultMVP(backendCtx any) *Matrix4

	// DefaultVertices and DefaultTexCoords return backend-owned constant
	// geometry representing a unit quad in the backend's native
	// coordinate convention.
	DefaultVertices() []float32
	DefaultTexCoords() []float32

	// FontInitFirst tries, in a fixed priority order, each font backend
	// compatible with this driver, and returns the first that
	// initializes, or ErrNoFontRenderer if none do.
	FontInitFirst(videoCtx any, fontPath string, fontSize float32, isThreaded bool) (*Font, error)

	// ScissorBegin restricts subsequent draws to the given rectangle.
	// The rectangle has already been clamped to the framebuffer by the
	// caller. ScissorEnd fully restores the unclamped viewport.
	ScissorBegin(backendCtx any, viewportWidth, viewportHeight uint32, x, y int32, width, height uint32)
	ScissorEnd(backendCtx any, viewportWidth, viewportHeight uint32)

	// Init binds the driver to a video context. It is called during
	// driver selection; an error moves selection on to the next
	// candidate. Free releases everything Init acquired.
	Init(videoCtx any, isThreaded bool) error
	Free()

	// Kind tags the graphics API family; Ident is the human-readable
	// name matched against the active video backend identifier.
	Kind() Kind
	Ident() string

	// Compatible reports whether this driver can serve the given video
	// backend identifier. Fallback drivers may accept any identifier.
	Compatible(videoIdent string) bool

	// HandlesTransform reports whether the driver applies rotation and
	// scale itself. When true, Display.RotateZ skips CPU-side matrix
	// composition.
	HandlesTransform() bool
}
