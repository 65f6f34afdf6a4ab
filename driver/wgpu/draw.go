package wgpu

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/overlay"
	"github.com/gogpu/wgpu/hal"
)

// Draw encodes one command into its own render pass over the host's
// target view and submits it. Degenerate commands are skipped; GPU
// errors are logged, never surfaced, so a failed draw cannot take the
// session down.
func (d *Driver) Draw(cmd *overlay.DrawCommand, backendCtx any, viewportWidth, viewportHeight uint32) {
	if d.device == nil || cmd == nil || cmd.VertexCount < 3 {
		return
	}
	pipeline := d.pipelines.pipelineFor(cmd.Prim, d.blending)
	d.encodeDraw(pipeline, cmd, viewportWidth, viewportHeight, 0)
}

// DrawPipeline encodes one command through a built-in effect pipeline.
// Unknown effect ids fall back to a plain draw.
func (d *Driver) DrawPipeline(cmd *overlay.DrawCommand, disp *overlay.Display, backendCtx any, viewportWidth, viewportHeight uint32) {
	if d.device == nil || cmd == nil || cmd.VertexCount < 3 {
		return
	}
	pipeline := d.pipelines.effectPipeline(cmd.Pipeline)
	if pipeline == nil {
		d.Draw(cmd, backendCtx, viewportWidth, viewportHeight)
		return
	}
	d.encodeDraw(pipeline, cmd, viewportWidth, viewportHeight, effectVariant(cmd.Pipeline))
}

// encodeDraw uploads the command's vertices and uniforms, records one
// render pass and submits it. Per-draw GPU objects are released after
// the fence signals.
func (d *Driver) encodeDraw(pipeline hal.RenderPipeline, cmd *overlay.DrawCommand,
	viewportWidth, viewportHeight uint32, variant float32) {
	if pipeline == nil {
		return
	}

	vertexData, ok := d.buildVertexData(cmd, viewportWidth, viewportHeight)
	if !ok {
		return
	}
	uniformData := d.buildUniformData(cmd, viewportWidth, viewportHeight, variant)

	vertBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.logger.Warn("wgpu: create vertex buffer", "err", err)
		return
	}
	defer d.device.DestroyBuffer(vertBuf)
	d.queue.WriteBuffer(vertBuf, 0, vertexData)

	uniformBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.logger.Warn("wgpu: create uniform buffer", "err", err)
		return
	}
	defer d.device.DestroyBuffer(uniformBuf)
	d.queue.WriteBuffer(uniformBuf, 0, uniformData)

	view := d.textureView(cmd.Texture)
	if view == nil {
		d.logger.Warn("wgpu: no texture view for draw", "texture", cmd.Texture)
		return
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "overlay_bind",
		Layout: d.pipelines.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: d.pipelines.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		d.logger.Warn("wgpu: create bind group", "err", err)
		return
	}
	defer d.device.DestroyBindGroup(bindGroup)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "overlay_encoder",
	})
	if err != nil {
		d.logger.Warn("wgpu: create command encoder", "err", err)
		return
	}
	if err := encoder.BeginEncoding("overlay_draw"); err != nil {
		d.logger.Warn("wgpu: begin encoding", "err", err)
		return
	}

	target := d.target.TargetView()
	if target == nil {
		d.logger.Warn("wgpu: draw with no render target", "err", ErrNoTarget)
		encoder.DiscardEncoding()
		return
	}

	// The overlay composes over the already-rendered frame, so the
	// attachment loads instead of clearing.
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "overlay_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    target,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	rp.SetPipeline(pipeline)
	if d.scissorOn {
		rp.SetScissorRect(uint32(d.scissorX), uint32(d.scissorY), d.scissorW, d.scissorH)
	}
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(uint32(cmd.VertexCount), 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		d.logger.Warn("wgpu: end encoding", "err", err)
		return
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		d.logger.Warn("wgpu: create fence", "err", err)
		return
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		d.logger.Warn("wgpu: submit", "err", err)
		return
	}
	// The per-draw buffers and bind group are destroyed on return, so
	// wait for the submission before releasing them.
	if ok, err := d.device.Wait(fence, 1, time.Second); err != nil || !ok {
		d.logger.Warn("wgpu: fence wait", "ok", ok, "err", err)
	}
}

// buildVertexData lowers the command's unit-quad geometry to clip space
// and interleaves it with texcoords and per-vertex colors.
func (d *Driver) buildVertexData(cmd *overlay.DrawCommand, viewportWidth, viewportHeight uint32) ([]byte, bool) {
	verts := cmd.Vertices
	if verts == nil {
		verts = defaultVertices
	}
	texc := cmd.TexCoords
	if texc == nil {
		texc = defaultTexCoords
	}
	if len(verts) < cmd.VertexCount*2 {
		d.logger.Warn("wgpu: vertex buffer shorter than vertex count",
			"len", len(verts), "count", cmd.VertexCount)
		return nil, false
	}

	vw := float32(viewportWidth)
	vh := float32(viewportHeight)
	if vw == 0 || vh == 0 {
		return nil, false
	}

	data := make([]byte, cmd.VertexCount*vertexStride)
	off := 0
	for i := 0; i < cmd.VertexCount; i++ {
		// Command space has a bottom-left origin, matching clip-space
		// y-up directly.
		px := cmd.X + verts[i*2]*float32(cmd.Width)
		py := cmd.Y + verts[i*2+1]*float32(cmd.Height)
		cx := px/vw*2 - 1
		cy := py/vh*2 - 1

		var u, v float32
		if len(texc) >= (i+1)*2 {
			u = texc[i*2]
			v = texc[i*2+1]
		}
		r, g, b, a := vertexColor(cmd.Colors, i)

		for _, f := range [8]float32{cx, cy, u, v, r, g, b, a} {
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(f))
			off += 4
		}
	}
	return data, true
}

// buildUniformData packs the 80-byte uniform block: the command's mvp
// (or identity) followed by viewport size, time and effect variant.
func (d *Driver) buildUniformData(cmd *overlay.DrawCommand, viewportWidth, viewportHeight uint32, variant float32) []byte {
	mvp := overlay.Identity4()
	if cmd.Matrix != nil {
		mvp = *cmd.Matrix
	}

	buf := make([]byte, uniformSize)
	off := 0
	for _, f := range mvp {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	params := [4]float32{
		float32(viewportWidth),
		float32(viewportHeight),
		float32(time.Since(d.start).Seconds()),
		variant,
	}
	for _, f := range params {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	return buf
}

// vertexColor reads the RGBA channels of vertex i, defaulting to opaque
// white when the buffer is missing or short.
func vertexColor(colors []float32, i int) (r, g, b, a float32) {
	if len(colors) < (i+1)*4 {
		return 1, 1, 1, 1
	}
	return colors[i*4], colors[i*4+1], colors[i*4+2], colors[i*4+3]
}
