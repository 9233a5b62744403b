package kernel

const glslTemplate = `#version 430
layout(local_size_x = 16, local_size_y = 16) in;
layout(rgba8, binding = 0) writeonly uniform image2D frame;

uniform dvec2 center;
uniform double scale;
uniform ivec2 size;
uniform int mode;
uniform dvec2 juliaC;
uniform int samples;

const int NITER = {{NITER}};
const double R2 = {{R2}};
const double TOL2 = {{TOL2}};

dvec2 c_mul(dvec2 a, dvec2 b) { return dvec2(a.x * b.x - a.y * b.y, a.x * b.y + a.y * b.x); }
dvec2 c_div(dvec2 a, dvec2 b) {
	double d = dot(b, b);
	return dvec2(a.x * b.x + a.y * b.y, a.y * b.x - a.x * b.y) / d;
}
dvec2 c_inv(dvec2 z) { return c_div(dvec2(1.0, 0.0), z); }
dvec2 c_conj(dvec2 z) { return dvec2(z.x, -z.y); }
dvec2 c_re(dvec2 z) { return dvec2(z.x, 0.0); }
dvec2 c_im(dvec2 z) { return dvec2(z.y, 0.0); }
dvec2 c_abs(dvec2 z) { return dvec2(sqrt(dot(z, z)), 0.0); }
dvec2 c_arg(dvec2 z) { return dvec2(atan(float(z.y), float(z.x)), 0.0); }
dvec2 c_sqrt(dvec2 z) {
	double r = sqrt(dot(z, z));
	double re = sqrt(max((r + z.x) * 0.5, 0.0));
	double im = sqrt(max((r - z.x) * 0.5, 0.0));
	return dvec2(re, z.y < 0.0 ? -im : im);
}
dvec2 c_exp(dvec2 z) {
	vec2 f = vec2(z);
	return dvec2(exp(f.x) * vec2(cos(f.y), sin(f.y)));
}
dvec2 c_log(dvec2 z) { return dvec2(log(float(sqrt(dot(z, z)))), atan(float(z.y), float(z.x))); }
dvec2 c_sin(dvec2 z) {
	vec2 f = vec2(z);
	return dvec2(sin(f.x) * cosh(f.y), cos(f.x) * sinh(f.y));
}
dvec2 c_cos(dvec2 z) {
	vec2 f = vec2(z);
	return dvec2(cos(f.x) * cosh(f.y), -sin(f.x) * sinh(f.y));
}
dvec2 c_tan(dvec2 z) { return c_div(c_sin(z), c_cos(z)); }
dvec2 c_sinh(dvec2 z) {
	vec2 f = vec2(z);
	return dvec2(sinh(f.x) * cos(f.y), cosh(f.x) * sin(f.y));
}
dvec2 c_cosh(dvec2 z) {
	vec2 f = vec2(z);
	return dvec2(cosh(f.x) * cos(f.y), sinh(f.x) * sin(f.y));
}
dvec2 c_tanh(dvec2 z) { return c_div(c_sinh(z), c_cosh(z)); }
dvec2 c_asin(dvec2 z) {
	dvec2 s = c_sqrt(dvec2(1.0, 0.0) - c_mul(z, z));
	dvec2 w = c_log(dvec2(-z.y, z.x) + s);
	return dvec2(w.y, -w.x);
}
dvec2 c_acos(dvec2 z) {
	dvec2 s = c_sqrt(dvec2(1.0, 0.0) - c_mul(z, z));
	dvec2 w = c_log(z + dvec2(-s.y, s.x));
	return dvec2(w.y, -w.x);
}
dvec2 c_atan(dvec2 z) {
	dvec2 iz = dvec2(-z.y, z.x);
	dvec2 w = c_log(dvec2(1.0, 0.0) - iz) - c_log(dvec2(1.0, 0.0) + iz);
	return dvec2(-w.y, w.x) * 0.5;
}
dvec2 c_powi(dvec2 a, int n) {
	bool neg = n < 0;
	n = abs(n);
	dvec2 r = dvec2(1.0, 0.0);
	while (n > 0) {
		if ((n & 1) == 1) r = c_mul(r, a);
		n >>= 1;
		if (n > 0) a = c_mul(a, a);
	}
	return neg ? c_inv(r) : r;
}
dvec2 c_pow(dvec2 a, dvec2 b) {
	if (a.x == 0.0 && a.y == 0.0) return dvec2(0.0);
	return c_exp(c_mul(b, c_log(a)));
}

dvec2 f(dvec2 z, dvec2 c) {
	return {{FORMULA}};
}

vec3 hsv(float h, float s, float v) {
	float ch = v * s;
	float hp = h / 60.0;
	float x = ch * (1.0 - abs(mod(hp, 2.0) - 1.0));
	vec3 rgb;
	if (hp < 1.0) rgb = vec3(ch, x, 0.0);
	else if (hp < 2.0) rgb = vec3(x, ch, 0.0);
	else if (hp < 3.0) rgb = vec3(0.0, ch, x);
	else if (hp < 4.0) rgb = vec3(0.0, x, ch);
	else if (hp < 5.0) rgb = vec3(x, 0.0, ch);
	else rgb = vec3(ch, 0.0, x);
	return rgb + (v - ch);
}

vec3 ramp(float t) {
	float h = mod({{RAMP_HUE}} + {{RAMP_SPAN}} * t, 360.0);
	return hsv(h, {{RAMP_SAT}}, {{RAMP_VMIN}} + (1.0 - {{RAMP_VMIN}}) * sqrt(t));
}

vec3 domain(dvec2 v) {
	double m2 = dot(v, v);
	if (isnan(m2) || isinf(m2)) return vec3(0.0);
	float h = degrees(atan(float(v.y), float(v.x)));
	if (h < 0.0) h += 360.0;
	float frac = 0.0;
	if (m2 > 0.0) {
		float l = log2(float(sqrt(m2)));
		frac = l - floor(l);
	}
	return hsv(h, {{DOMAIN_SAT}}, {{DOMAIN_VMIN}} + (1.0 - {{DOMAIN_VMIN}}) * frac);
}

vec3 shade(dvec2 w) {
	dvec2 z = w;
	dvec2 c = mode == {{MODE_JULIA}} ? juliaC : w;
	if (mode == {{MODE_DOMAIN}}) return domain(f(z, c));
	for (int k = 1; k <= NITER; k++) {
		dvec2 next = f(z, c);
		if (mode == {{MODE_CONVERGE}}) {
			dvec2 d = next - z;
			z = next;
			if (dot(d, d) < TOL2) return ramp(float(k) / float(NITER));
		} else {
			z = next;
			if (!(dot(z, z) <= R2)) return ramp(float(k) / float(NITER));
		}
	}
	return vec3(0.0);
}

void main() {
	ivec2 px = ivec2(gl_GlobalInvocationID.xy);
	if (px.x >= size.x || px.y >= size.y) return;
	int n = max(samples, 1);
	vec3 acc = vec3(0.0);
	for (int sy = 0; sy < n; sy++) {
		for (int sx = 0; sx < n; sx++) {
			dvec2 off = dvec2(sx, sy) / double(n);
			dvec2 w = center + dvec2(
				(double(px.x) + off.x - double(size.x) * 0.5) * scale,
				(double(size.y) * 0.5 - (double(px.y) + off.y)) * scale);
			acc += shade(w);
		}
	}
	imageStore(frame, px, vec4(acc / float(n * n), 1.0));
}
`

const wgslTemplate = `struct Params {
	center: vec2<f32>,
	julia_c: vec2<f32>,
	size: vec2<u32>,
	scale: f32,
	mode: u32,
	samples: u32,
	pad0: u32,
	pad1: u32,
	pad2: u32,
}

@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var<storage, read_write> pixels: array<u32>;

fn c_mul(a: vec2<f32>, b: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(a.x * b.x - a.y * b.y, a.x * b.y + a.y * b.x);
}

fn c_div(a: vec2<f32>, b: vec2<f32>) -> vec2<f32> {
	let d = dot(b, b);
	return vec2<f32>(a.x * b.x + a.y * b.y, a.y * b.x - a.x * b.y) / d;
}

fn c_inv(z: vec2<f32>) -> vec2<f32> {
	return c_div(vec2<f32>(1.0, 0.0), z);
}

fn c_conj(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(z.x, -z.y);
}

fn c_re(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(z.x, 0.0);
}

fn c_im(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(z.y, 0.0);
}

fn c_abs(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(sqrt(dot(z, z)), 0.0);
}

fn c_arg(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(atan2(z.y, z.x), 0.0);
}

fn c_sqrt(z: vec2<f32>) -> vec2<f32> {
	let r = sqrt(dot(z, z));
	let re = sqrt(max((r + z.x) * 0.5, 0.0));
	var im = sqrt(max((r - z.x) * 0.5, 0.0));
	if (z.y < 0.0) {
		im = -im;
	}
	return vec2<f32>(re, im);
}

fn c_exp(z: vec2<f32>) -> vec2<f32> {
	let m = exp(z.x);
	return vec2<f32>(m * cos(z.y), m * sin(z.y));
}

fn c_log(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(log(sqrt(dot(z, z))), atan2(z.y, z.x));
}

fn r_sinh(x: f32) -> f32 {
	return 0.5 * (exp(x) - exp(-x));
}

fn r_cosh(x: f32) -> f32 {
	return 0.5 * (exp(x) + exp(-x));
}

fn c_sin(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(sin(z.x) * r_cosh(z.y), cos(z.x) * r_sinh(z.y));
}

fn c_cos(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(cos(z.x) * r_cosh(z.y), -sin(z.x) * r_sinh(z.y));
}

fn c_tan(z: vec2<f32>) -> vec2<f32> {
	return c_div(c_sin(z), c_cos(z));
}

fn c_sinh(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(r_sinh(z.x) * cos(z.y), r_cosh(z.x) * sin(z.y));
}

fn c_cosh(z: vec2<f32>) -> vec2<f32> {
	return vec2<f32>(r_cosh(z.x) * cos(z.y), r_sinh(z.x) * sin(z.y));
}

fn c_tanh(z: vec2<f32>) -> vec2<f32> {
	return c_div(c_sinh(z), c_cosh(z));
}

fn c_asin(z: vec2<f32>) -> vec2<f32> {
	let s = c_sqrt(vec2<f32>(1.0, 0.0) - c_mul(z, z));
	let w = c_log(vec2<f32>(-z.y, z.x) + s);
	return vec2<f32>(w.y, -w.x);
}

fn c_acos(z: vec2<f32>) -> vec2<f32> {
	let s = c_sqrt(vec2<f32>(1.0, 0.0) - c_mul(z, z));
	let w = c_log(z + vec2<f32>(-s.y, s.x));
	return vec2<f32>(w.y, -w.x);
}

fn c_atan(z: vec2<f32>) -> vec2<f32> {
	let iz = vec2<f32>(-z.y, z.x);
	let w = c_log(vec2<f32>(1.0, 0.0) - iz) - c_log(vec2<f32>(1.0, 0.0) + iz);
	return vec2<f32>(-w.y, w.x) * 0.5;
}

fn c_powi(base: vec2<f32>, e: i32) -> vec2<f32> {
	var a = base;
	var n = abs(e);
	var r = vec2<f32>(1.0, 0.0);
	loop {
		if (n <= 0) {
			break;
		}
		if ((n & 1) == 1) {
			r = c_mul(r, a);
		}
		n = n >> 1u;
		a = c_mul(a, a);
	}
	if (e < 0) {
		return c_inv(r);
	}
	return r;
}

fn c_pow(a: vec2<f32>, b: vec2<f32>) -> vec2<f32> {
	if (a.x == 0.0 && a.y == 0.0) {
		return vec2<f32>(0.0, 0.0);
	}
	return c_exp(c_mul(b, c_log(a)));
}

fn f(z: vec2<f32>, c: vec2<f32>) -> vec2<f32> {
	return {{FORMULA}};
}

fn hsv(h: f32, s: f32, v: f32) -> vec3<f32> {
	let ch = v * s;
	let hp = h / 60.0;
	let m2 = hp - 2.0 * floor(hp / 2.0);
	let x = ch * (1.0 - abs(m2 - 1.0));
	var rgb = vec3<f32>(ch, 0.0, x);
	if (hp < 1.0) {
		rgb = vec3<f32>(ch, x, 0.0);
	} else if (hp < 2.0) {
		rgb = vec3<f32>(x, ch, 0.0);
	} else if (hp < 3.0) {
		rgb = vec3<f32>(0.0, ch, x);
	} else if (hp < 4.0) {
		rgb = vec3<f32>(0.0, x, ch);
	} else if (hp < 5.0) {
		rgb = vec3<f32>(x, 0.0, ch);
	}
	return rgb + vec3<f32>(v - ch, v - ch, v - ch);
}

fn ramp(t: f32) -> vec3<f32> {
	let raw = {{RAMP_HUE}} + {{RAMP_SPAN}} * t;
	let h = raw - 360.0 * floor(raw / 360.0);
	return hsv(h, {{RAMP_SAT}}, {{RAMP_VMIN}} + (1.0 - {{RAMP_VMIN}}) * sqrt(t));
}

fn domain(v: vec2<f32>) -> vec3<f32> {
	let m2 = dot(v, v);
	if (!(m2 <= 3.0e38)) {
		return vec3<f32>(0.0, 0.0, 0.0);
	}
	var h = atan2(v.y, v.x) * 57.29578;
	if (h < 0.0) {
		h = h + 360.0;
	}
	var frac = 0.0;
	if (m2 > 0.0) {
		let l = log2(sqrt(m2));
		frac = l - floor(l);
	}
	return hsv(h, {{DOMAIN_SAT}}, {{DOMAIN_VMIN}} + (1.0 - {{DOMAIN_VMIN}}) * frac);
}

fn shade(w: vec2<f32>) -> vec3<f32> {
	var z = w;
	var c = w;
	if (params.mode == {{MODE_JULIA}}u) {
		c = params.julia_c;
	}
	if (params.mode == {{MODE_DOMAIN}}u) {
		return domain(f(z, c));
	}
	for (var k: i32 = 1; k <= {{NITER}}; k = k + 1) {
		let next = f(z, c);
		let t = f32(k) / f32({{NITER}});
		if (params.mode == {{MODE_CONVERGE}}u) {
			let d = next - z;
			z = next;
			if (dot(d, d) < {{TOL2}}) {
				return ramp(t);
			}
		} else {
			z = next;
			if (!(dot(z, z) <= {{R2}})) {
				return ramp(t);
			}
		}
	}
	return vec3<f32>(0.0, 0.0, 0.0);
}

@compute @workgroup_size(16, 16, 1)
fn cs_main(@builtin(global_invocation_id) gid: vec3<u32>) {
	if (gid.x >= params.size.x || gid.y >= params.size.y) {
		return;
	}
	let n = max(params.samples, 1u);
	var acc = vec3<f32>(0.0, 0.0, 0.0);
	for (var sy: u32 = 0u; sy < n; sy = sy + 1u) {
		for (var sx: u32 = 0u; sx < n; sx = sx + 1u) {
			let ox = f32(sx) / f32(n);
			let oy = f32(sy) / f32(n);
			let w = params.center + vec2<f32>(
				(f32(gid.x) + ox - f32(params.size.x) * 0.5) * params.scale,
				(f32(params.size.y) * 0.5 - (f32(gid.y) + oy)) * params.scale);
			acc = acc + shade(w);
		}
	}
	let rgb = clamp(acc / f32(n * n), vec3<f32>(0.0, 0.0, 0.0), vec3<f32>(1.0, 1.0, 1.0));
	let r = u32(rgb.x * 255.0 + 0.5);
	let g = u32(rgb.y * 255.0 + 0.5);
	let b = u32(rgb.z * 255.0 + 0.5);
	pixels[gid.y * params.size.x + gid.x] = r | (g << 8u) | (b << 16u) | (255u << 24u);
}
`
