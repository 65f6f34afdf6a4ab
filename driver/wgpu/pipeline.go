package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/overlay"
	"github.com/gogpu/wgpu/hal"
)

// Embedded overlay shader sources.
//
//go:embed shaders/overlay.wgsl
var overlayShaderSource string

//go:embed shaders/ribbon.wgsl
var ribbonShaderSource string

//go:embed shaders/snow.wgsl
var snowShaderSource string

//go:embed shaders/bokeh.wgsl
var bokehShaderSource string

// vertexStride is the byte stride per vertex. Layout:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex.
const vertexStride = 32

// uniformSize is the byte size of the overlay uniform buffer:
// mvp (mat4x4<f32>) = 64 bytes + params (vec4<f32>) = 16 bytes.
const uniformSize = 80

// pipelineKey identifies one plain-pipeline variant. Blend state is
// baked into WebGPU pipelines, so the blend bracket selects a variant
// rather than toggling device state.
type pipelineKey struct {
	topology gputypes.PrimitiveTopology
	blend    bool
}

// pipelineCache owns the shader modules, layouts and render pipelines
// shared by all draws. Plain variants cover textured and flat-color
// commands; effect pipelines cover the built-in background effects.
type pipelineCache struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	format     gputypes.TextureFormat

	plain         map[pipelineKey]hal.RenderPipeline
	effects       map[overlay.PipelineID]hal.RenderPipeline
	effectShaders []hal.ShaderModule
}

// compileSPIRV compiles WGSL source to SPIR-V words. SPIR-V is
// little-endian 32-bit words.
func compileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// overlayVertexLayout returns the vertex buffer layout shared by every
// overlay pipeline. Matches the vs_main inputs in shaders/.
func overlayVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		},
	}
}

// init creates the layouts, the sampler, the plain pipeline variants
// and the effect pipelines for the given target format.
func (c *pipelineCache) init(device hal.Device, format gputypes.TextureFormat) error {
	if format == 0 {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	c.format = format
	c.plain = make(map[pipelineKey]hal.RenderPipeline)
	c.effects = make(map[overlay.PipelineID]hal.RenderPipeline)

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "overlay_shader",
		Source: hal.ShaderSource{WGSL: overlayShaderSource},
	})
	if err != nil {
		return fmt.Errorf("wgpu: compile overlay shader: %w", err)
	}
	c.shader = shader

	// Bind group layout:
	//   Binding 0: Uniforms (uniform buffer, vertex+fragment)
	//   Binding 1: texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "overlay_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "overlay_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "overlay_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	c.sampler = sampler

	topologies := []gputypes.PrimitiveTopology{
		gputypes.PrimitiveTopologyTriangleStrip,
		gputypes.PrimitiveTopologyTriangleList,
	}
	for _, topo := range topologies {
		for _, blend := range []bool{false, true} {
			pipeline, err := c.createPipeline(device, c.shader, topo, blend, "overlay")
			if err != nil {
				return err
			}
			c.plain[pipelineKey{topology: topo, blend: blend}] = pipeline
		}
	}

	return c.initEffects(device)
}

// initEffects compiles the effect shaders through naga and builds one
// pipeline per effect family. Variants within a family share a pipeline
// and are selected through the uniform params.
func (c *pipelineCache) initEffects(device hal.Device) error {
	families := []struct {
		name   string
		source string
		ids    []overlay.PipelineID
	}{
		{"ribbon", ribbonShaderSource, []overlay.PipelineID{overlay.PipelineRibbon, overlay.PipelineRibbonSimplified}},
		{"snow", snowShaderSource, []overlay.PipelineID{overlay.PipelineSimpleSnow, overlay.PipelineSnow, overlay.PipelineSnowflake}},
		{"bokeh", bokehShaderSource, []overlay.PipelineID{overlay.PipelineBokeh}},
	}

	for _, fam := range families {
		words, err := compileSPIRV(fam.source)
		if err != nil {
			return fmt.Errorf("wgpu: %s: %w", fam.name, err)
		}
		shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  fam.name + "_shader",
			Source: hal.ShaderSource{SPIRV: words},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create %s shader: %w", fam.name, err)
		}
		c.effectShaders = append(c.effectShaders, shader)

		// Effects always blend over the frame and draw strips.
		pipeline, err := c.createPipeline(device, shader,
			gputypes.PrimitiveTopologyTriangleStrip, true, fam.name)
		if err != nil {
			return err
		}
		for _, id := range fam.ids {
			c.effects[id] = pipeline
		}
	}
	return nil
}

// createPipeline builds one render pipeline variant against the shared
// layout and target format.
func (c *pipelineCache) createPipeline(device hal.Device, shader hal.ShaderModule,
	topology gputypes.PrimitiveTopology, blend bool, label string) (hal.RenderPipeline, error) {

	var blendState *gputypes.BlendState
	if blend {
		premul := gputypes.BlendStatePremultiplied()
		blendState = &premul
	}

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: c.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    overlayVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.format,
					Blend:     blendState,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s pipeline: %w", label, err)
	}
	return pipeline, nil
}

// pipelineFor returns the plain pipeline variant for a primitive and
// the current blend bracket. PrimitiveNone draws as a strip.
func (c *pipelineCache) pipelineFor(prim overlay.Primitive, blend bool) hal.RenderPipeline {
	topo := gputypes.PrimitiveTopologyTriangleStrip
	if prim == overlay.PrimitiveTriangles {
		topo = gputypes.PrimitiveTopologyTriangleList
	}
	return c.plain[pipelineKey{topology: topo, blend: blend}]
}

// effectPipeline returns the pipeline for a built-in effect, or nil
// when the id has no effect pipeline.
func (c *pipelineCache) effectPipeline(id overlay.PipelineID) hal.RenderPipeline {
	return c.effects[id]
}

// effectVariant returns the params.w value selecting the variant within
// an effect family.
func effectVariant(id overlay.PipelineID) float32 {
	switch id {
	case overlay.PipelineRibbonSimplified:
		return 1
	case overlay.PipelineSnow:
		return 1
	case overlay.PipelineSnowflake:
		return 2
	default:
		return 0
	}
}

// destroy releases all cached GPU objects in reverse creation order.
func (c *pipelineCache) destroy(device hal.Device) {
	if device == nil {
		return
	}
	seen := make(map[hal.RenderPipeline]bool)
	for id, p := range c.effects {
		if p != nil && !seen[p] {
			device.DestroyRenderPipeline(p)
			seen[p] = true
		}
		delete(c.effects, id)
	}
	for key, p := range c.plain {
		if p != nil {
			device.DestroyRenderPipeline(p)
		}
		delete(c.plain, key)
	}
	for _, s := range c.effectShaders {
		if s != nil {
			device.DestroyShaderModule(s)
		}
	}
	c.effectShaders = nil
	if c.sampler != nil {
		device.DestroySampler(c.sampler)
		c.sampler = nil
	}
	if c.pipeLayout != nil {
		device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.shader != nil {
		device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}
