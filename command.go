package overlay

// Primitive selects the vertex topology of a DrawCommand.
type Primitive uint8

const (
	// PrimitiveNone leaves the topology to the driver.
	PrimitiveNone Primitive = iota
	// PrimitiveTriangleStrip draws a triangle strip.
	PrimitiveTriangleStrip
	// PrimitiveTriangles draws a triangle list.
	PrimitiveTriangles
)

// String returns the string representation of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangleStrip:
		return "triangle-strip"
	case PrimitiveTriangles:
		return "triangles"
	default:
		return "none"
	}
}

// PipelineID selects a built-in visual-effect pipeline for DrawPipeline.
// PipelineNone means a plain textured or flat-color draw.
type PipelineID uint32

const (
	PipelineNone PipelineID = iota
	PipelineRibbon
	PipelineRibbonSimplified
	PipelineSimpleSnow
	PipelineSnow
	PipelineBokeh
	PipelineSnowflake
)

// TextureHandle is an opaque handle into the backend's texture table.
// NoTexture means "no texture, flat color only".
type TextureHandle uint64

// NoTexture is the zero TextureHandle.
const NoTexture TextureHandle = 0

// DrawCommand is the backend-neutral description of one draw operation.
// Commands are stack-scoped value objects constructed per draw call and
// passed by reference to the bound driver for the duration of that call;
// drivers must not retain them.
type DrawCommand struct {
	// Colors holds per-vertex RGBA channels. Its length is always a
	// multiple of 4. Nil means opaque white.
	Colors []float32

	// Vertices and TexCoords hold VertexCount (x, y) pairs each, in the
	// backend's native unit-quad convention. Nil means the driver's
	// defaults.
	Vertices  []float32
	TexCoords []float32

	// BackendPayload carries driver-specific extra state, such as custom
	// coordinate arrays. A driver only interprets payloads it produced.
	BackendPayload []byte

	// Matrix is the transform to apply, or nil for the driver's default
	// model-view-projection.
	Matrix *Matrix4

	// Texture is the texture to sample, or NoTexture for flat color.
	Texture TextureHandle

	// VertexCount is the number of (x, y) pairs in Vertices/TexCoords.
	VertexCount int

	// Width and Height are the on-screen size of the drawn element in
	// pixels; X and Y its position with a bottom-left origin.
	Width  uint32
	Height uint32
	X      float32
	Y      float32

	// Rotation in radians and ScaleFactor for drivers that handle the
	// transform themselves (Driver.HandlesTransform).
	Rotation    float32
	ScaleFactor float32

	Prim Primitive

	// Pipeline selects a built-in effect when PipelineActive is set.
	Pipeline       PipelineID
	PipelineActive bool
}

// RotateDraw describes a rotation (and optional non-uniform scale) to
// be composed into Matrix by Display.RotateZ. When ScaleEnable is
// false, the scale factors are treated as 1 regardless of their values.
type RotateDraw struct {
	Matrix      *Matrix4
	Rotation    float32
	ScaleX      float32
	ScaleY      float32
	ScaleZ      float32
	ScaleEnable bool
}
