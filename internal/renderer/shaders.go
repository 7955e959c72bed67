package renderer

// FractalShader renders the Mandelbrot set on a full-screen quad. The
// fragment stage maps each pixel to the complex plane, scaled by the zoom
// level and translated by the pan offset, and colors by smoothed escape time.
const FractalShader = `
struct FractalParams {
    width: u32,
    height: u32,
    max_iter: u32,
    zoom: f32,
    offset: vec2<f32>,
}

@group(0) @binding(0) var<uniform> params: FractalParams;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(@location(0) position: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(position, 0.0, 1.0);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let res = vec2<f32>(f32(params.width), f32(params.height));
    // Aspect-correct mapping: the vertical span of the view is fixed, the
    // horizontal span follows the window shape.
    let uv = (in.position.xy - 0.5 * res) / res.y;
    let c = vec2<f32>(uv.x, -uv.y) * 2.5 * params.zoom
        + params.offset + vec2<f32>(-0.5, 0.0);

    var z = vec2<f32>(0.0, 0.0);
    var i: u32 = 0u;
    loop {
        if (i >= params.max_iter || dot(z, z) > 4.0) {
            break;
        }
        z = vec2<f32>(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
        i = i + 1u;
    }

    if (i >= params.max_iter) {
        return vec4<f32>(0.0, 0.0, 0.0, 1.0);
    }

    // Smoothed escape time keeps the bands continuous at high zoom.
    let smoothed = f32(i) + 1.0 - log2(max(log2(dot(z, z)), 1.0));
    let t = log2(1.0 + smoothed) * 0.35;
    let col = vec3<f32>(
        0.5 + 0.5 * cos(3.0 + t),
        0.5 + 0.5 * cos(3.6 + t),
        0.5 + 0.5 * cos(4.2 + t),
    );
    return vec4<f32>(col, 1.0);
}
`
