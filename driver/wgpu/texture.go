package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/overlay"
	"github.com/gogpu/wgpu/hal"
)

// gpuTexture is one entry in the driver's texture table.
type gpuTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// RegisterTexture uploads decoded pixels to the GPU and returns their
// handle. Pixels must be tightly packed in the upload's format.
func (d *Driver) RegisterTexture(up overlay.TextureUpload) (overlay.TextureHandle, error) {
	if d.device == nil {
		return overlay.NoTexture, ErrNoHalAccess
	}
	if up.Width == 0 || up.Height == 0 || len(up.Pixels) == 0 {
		return overlay.NoTexture, fmt.Errorf("wgpu: empty texture upload")
	}
	format := up.Format
	if format == 0 {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "overlay_texture",
		Size:          hal.Extent3D{Width: up.Width, Height: up.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return overlay.NoTexture, fmt.Errorf("wgpu: create texture: %w", err)
	}

	bytesPerRow := uint32(len(up.Pixels)) / up.Height
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		up.Pixels,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: bytesPerRow, RowsPerImage: up.Height},
		&hal.Extent3D{Width: up.Width, Height: up.Height, DepthOrArrayLayers: 1},
	)

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "overlay_texture_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return overlay.NoTexture, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	d.mu.Lock()
	handle := d.nextHandle
	d.nextHandle++
	d.textures[handle] = gpuTexture{tex: tex, view: view, width: up.Width, height: up.Height}
	d.mu.Unlock()
	return handle, nil
}

// FreeTexture removes a texture from the table and releases its GPU
// resources. The white placeholder cannot be freed this way.
func (d *Driver) FreeTexture(handle overlay.TextureHandle) {
	if handle == overlay.NoTexture || handle == d.white {
		return
	}
	d.mu.Lock()
	t, ok := d.textures[handle]
	if ok {
		delete(d.textures, handle)
	}
	d.mu.Unlock()
	if ok {
		d.destroyTexture(t)
	}
}

// WhiteTexture returns the handle of the 1x1 white placeholder bound to
// flat-color draws.
func (d *Driver) WhiteTexture() overlay.TextureHandle { return d.white }

// initWhiteTexture uploads the 1x1 white placeholder.
func (d *Driver) initWhiteTexture() error {
	handle, err := d.RegisterTexture(overlay.TextureUpload{
		Width:  1,
		Height: 1,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
	})
	if err != nil {
		return err
	}
	d.white = handle
	return nil
}

// textureView resolves a command's texture handle to a view, falling
// back to the white placeholder for flat-color draws and stale handles.
func (d *Driver) textureView(handle overlay.TextureHandle) hal.TextureView {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.textures[handle]; ok {
		return t.view
	}
	if t, ok := d.textures[d.white]; ok {
		return t.view
	}
	return nil
}

func (d *Driver) destroyTexture(t gpuTexture) {
	if d.device == nil {
		return
	}
	if t.view != nil {
		d.device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		d.device.DestroyTexture(t.tex)
	}
}
