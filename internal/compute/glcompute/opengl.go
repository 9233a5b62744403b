// Package glcompute runs generated GLSL kernels as OpenGL 4.3 compute
// shaders. Importing it registers the "opengl" backend with compute.
package glcompute

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gogpu/gg"
	"github.com/san-kum/zplane/internal/compute"
	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/kernel"
	"github.com/san-kum/zplane/internal/plane"
)

const workGroupSize = 16

func init() {
	compute.Register("opengl", func() (compute.Backend, error) {
		b := NewOpenGLBackend()
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil
	})
}

// OpenGLBackend must only be used from the goroutine that owns the GL
// context.
type OpenGLBackend struct {
	Program     uint32
	Texture     uint32
	Width       int32
	Height      int32
	Initialized bool

	kernel   *kernel.Kernel
	uniforms map[string]int32
}

func NewOpenGLBackend() *OpenGLBackend {
	return &OpenGLBackend{}
}

func (c *OpenGLBackend) Name() string    { return "opengl" }
func (c *OpenGLBackend) Available() bool { return c.Initialized }

// Init loads GL entry points and checks for compute shader support.
func (c *OpenGLBackend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: failed to init opengl: %v", dynamo.ErrBackendUnavailable, err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major < 4 || (major == 4 && minor < 3) {
		return fmt.Errorf("%w: compute shaders need OpenGL 4.3, context is %d.%d",
			dynamo.ErrBackendUnavailable, major, minor)
	}

	var maxWorkGroupCount [3]int32
	var maxWorkGroupSize [3]int32
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 0, &maxWorkGroupCount[0])
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 0, &maxWorkGroupSize[0])
	dynamo.Logger().Info("opengl compute initialized",
		"version", fmt.Sprintf("%d.%d", major, minor),
		"max_work_groups", maxWorkGroupCount[0],
		"max_work_group_size", maxWorkGroupSize[0])

	c.Initialized = true
	return nil
}

func (c *OpenGLBackend) Render(ctx context.Context, k *kernel.Kernel, vp plane.Viewport, p dynamo.Params, dst *gg.Pixmap) error {
	if !c.Initialized {
		return dynamo.ErrBackendUnavailable
	}
	if k == nil {
		return dynamo.ErrNoKernel
	}
	if dst == nil || dst.Width() != vp.Width || dst.Height() != vp.Height {
		return fmt.Errorf("glcompute: frame does not match %dx%d viewport", vp.Width, vp.Height)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if k != c.kernel {
		if err := c.load(k); err != nil {
			return err
		}
	}
	c.resize(int32(vp.Width), int32(vp.Height))

	gl.UseProgram(c.Program)
	gl.Uniform2d(c.uniforms["center"], real(vp.Center), imag(vp.Center))
	gl.Uniform1d(c.uniforms["scale"], vp.Scale)
	gl.Uniform2i(c.uniforms["size"], c.Width, c.Height)
	gl.Uniform1i(c.uniforms["mode"], int32(p.Mode))
	gl.Uniform2d(c.uniforms["juliaC"], real(p.JuliaC), imag(p.JuliaC))
	gl.Uniform1i(c.uniforms["samples"], int32(p.Samples()))

	gl.BindImageTexture(0, c.Texture, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)
	gl.DispatchCompute(
		uint32((c.Width+workGroupSize-1)/workGroupSize),
		uint32((c.Height+workGroupSize-1)/workGroupSize),
		1)
	gl.MemoryBarrier(gl.TEXTURE_UPDATE_BARRIER_BIT | gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)

	gl.BindTexture(gl.TEXTURE_2D, c.Texture)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst.Data()))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glcompute: dispatch failed with GL error 0x%x", code)
	}
	return nil
}

// load compiles the shader for k, replacing the previous program.
func (c *OpenGLBackend) load(k *kernel.Kernel) error {
	program, err := createComputeProgram(k.GLSL())
	if err != nil {
		return err
	}
	if c.Program != 0 {
		gl.DeleteProgram(c.Program)
	}
	c.Program = program
	c.kernel = k
	c.uniforms = map[string]int32{}
	for _, name := range []string{"center", "scale", "size", "mode", "juliaC", "samples"} {
		c.uniforms[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	dynamo.Logger().Debug("compute shader compiled", "formula", k.Expr().String(), "niter", k.Niter())
	return nil
}

func (c *OpenGLBackend) resize(w, h int32) {
	if c.Texture != 0 && w == c.Width && h == c.Height {
		return
	}
	// storage is immutable, so a new size needs a new texture
	if c.Texture != 0 {
		gl.DeleteTextures(1, &c.Texture)
	}
	gl.GenTextures(1, &c.Texture)
	gl.BindTexture(gl.TEXTURE_2D, c.Texture)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA8, w, h)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	c.Width, c.Height = w, h
}

func (c *OpenGLBackend) Cleanup() {
	if c.Program != 0 {
		gl.DeleteProgram(c.Program)
		c.Program = 0
	}
	if c.Texture != 0 {
		gl.DeleteTextures(1, &c.Texture)
		c.Texture = 0
	}
	c.kernel = nil
	c.Initialized = false
}

func createComputeProgram(source string) (uint32, error) {
	content := source + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteShader(shader)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
