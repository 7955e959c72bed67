package renderer

import (
	"fmt"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"fractalviewer/internal/camera"
)

// quadVertices spans the whole clip space; the fractal is computed per pixel
// in the fragment stage.
var quadVertices = []float32{
	-1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
	1.0, -1.0,
}

// quadIndices covers the quad with two triangles.
var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// FractalParams matches the shader uniform block layout.
type FractalParams struct {
	Width      uint32
	Height     uint32
	Iterations uint32
	Zoom       float32
	Offset     [2]float32
	_          [2]float32
}

// Renderer owns the GPU resources for the full-screen fractal pass. The quad
// geometry and the uniform buffer are allocated once at creation; per-frame
// work is one uniform upload and one indexed draw.
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat
	presentMode     wgpu.PresentMode

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
	uniformBuffer   *wgpu.Buffer
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer

	iterations    uint32
	width, height uint32
}

// NewRenderer builds the swap chain, pipeline and static quad geometry.
// vsync selects Fifo presentation; without it frames present immediately.
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32, iterations uint32, vsync bool) (*Renderer, error) {
	presentMode := wgpu.PresentMode_Fifo
	if !vsync {
		presentMode = wgpu.PresentMode_Immediate
	}

	r := &Renderer{
		adapter:     adapter,
		device:      device,
		queue:       queue,
		surface:     surface,
		presentMode: presentMode,
		iterations:  iterations,
		width:       width,
		height:      height,
	}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	if err := r.createSwapChain(); err != nil {
		return err
	}

	// Shader module creation surfaces the compiler log in the returned error.
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "fractal_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: FractalShader},
	})
	if err != nil {
		return fmt.Errorf("shader compilation failed: %w", err)
	}
	defer shader.Release()

	r.bindGroupLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "fractal_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStage_Fragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
		}},
	})
	if err != nil {
		return fmt.Errorf("bind group layout creation failed: %w", err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "fractal_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout creation failed: %w", err)
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "fractal_pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: 2 * 4,
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x2, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline creation failed: %w", err)
	}

	// Static quad geometry, uploaded once.
	r.vertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad_vertices",
		Contents: wgpu.ToBytes(quadVertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("vertex buffer creation failed: %w", err)
	}

	r.indexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad_indices",
		Contents: wgpu.ToBytes(quadIndices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("index buffer creation failed: %w", err)
	}

	r.uniformBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "fractal_params",
		Contents: wgpu.ToBytes([]FractalParams{{}}),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("uniform buffer creation failed: %w", err)
	}

	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "fractal_bind_group",
		Layout: r.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.uniformBuffer,
			Size:    uint64(unsafe.Sizeof(FractalParams{})),
		}},
	})
	if err != nil {
		return fmt.Errorf("bind group creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createSwapChain() error {
	swapChain, err := r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       r.width,
		Height:      r.height,
		PresentMode: r.presentMode,
	})
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}
	r.swapChain = swapChain
	return nil
}

// Render draws one frame for the given camera state and presents it. The
// present call is where vsync blocking, if enabled, occurs.
func (r *Renderer) Render(cam *camera.Camera) error {
	params := FractalParams{
		Width:      r.width,
		Height:     r.height,
		Iterations: r.iterations,
		Zoom:       cam.Zoom,
		Offset:     [2]float32{cam.Offset.X(), cam.Offset.Y()},
	}
	r.queue.WriteBuffer(r.uniformBuffer, 0, wgpu.ToBytes([]FractalParams{params}))

	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return fmt.Errorf("acquiring swap chain texture failed: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return fmt.Errorf("command encoder creation failed: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
		}},
	})

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormat_Uint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return fmt.Errorf("command encoding failed: %w", err)
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

// Resize rebuilds the swap chain for a new drawable size. Zero dimensions
// (minimized window) are ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
		r.swapChain = nil
	}
	return r.createSwapChain()
}

// Release frees all GPU resources in reverse creation order. The order is a
// hard invariant of the underlying driver, not a convenience.
func (r *Renderer) Release() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.bindGroupLayout != nil {
		r.bindGroupLayout.Release()
	}
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
