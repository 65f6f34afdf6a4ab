package overlay

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureFilter selects the sampling filter used for a loaded texture.
type TextureFilter uint8

const (
	TextureFilterLinear TextureFilter = iota
	TextureFilterNearest
	TextureFilterMipmapLinear
	TextureFilterMipmapNearest
)

// TextureUpload is decoded pixel data ready for registration with a
// backend texture table. Pixels is tightly packed, Width*Height texels
// in the given format.
type TextureUpload struct {
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Pixels []byte
}

// TextureLoader is the capability this core consumes from the
// texture/image subsystem: load an image from a path (falling back to
// an icon path), register it with the backend, and return its handle
// and dimensions.
type TextureLoader interface {
	LoadTexture(path, iconPath string, filter TextureFilter) (handle TextureHandle, width, height uint32, err error)
	FreeTexture(handle TextureHandle)
}

// ResetTexturesList loads and registers a texture, returning its handle
// and dimensions. Failure is surfaced to the caller and never fatal to
// the session.
func (d *Display) ResetTexturesList(loader TextureLoader, path, iconPath string, filter TextureFilter) (TextureHandle, uint32, uint32, error) {
	if loader == nil {
		return NoTexture, 0, 0, ErrTextureLoad
	}
	handle, w, h, err := loader.LoadTexture(path, iconPath, filter)
	if err != nil {
		return NoTexture, 0, 0, fmt.Errorf("%w: %s: %v", ErrTextureLoad, path, err)
	}
	return handle, w, h, nil
}

// InitWhiteTexture records the handle of the 1x1 white placeholder
// texture used for flat-color draws. The texture itself is created and
// registered by the host through the backend's texture table.
func (d *Display) InitWhiteTexture(handle TextureHandle) {
	d.whiteTexture = handle
}

// WhiteTexture returns the white placeholder texture handle, or
// NoTexture if none was registered.
func (d *Display) WhiteTexture() TextureHandle {
	return d.whiteTexture
}

// FreeWhiteTexture releases the white placeholder texture.
func (d *Display) FreeWhiteTexture(loader TextureLoader) {
	if d.whiteTexture == NoTexture {
		return
	}
	if loader != nil {
		loader.FreeTexture(d.whiteTexture)
	}
	d.whiteTexture = NoTexture
}
