package glbackend

import (
	"strings"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/backdrop/engine/gfx"
)

var loaded atomic.Bool

// Init loads the GL entry points for the current context. Nothing in this
// package may issue a GL call before it has succeeded once.
func Init() error {
	if err := gl.Init(); err != nil {
		return err
	}
	loaded.Store(true)
	return nil
}

// Ready reports whether Init has succeeded.
func Ready() bool { return loaded.Load() }

// Context implements gfx.Context on top of an OpenGL 3.3 core context.
// Init must have succeeded on the calling thread's current context.
type Context struct{}

var _ gfx.Context = (*Context)(nil)

func New() *Context { return &Context{} }

// Version reports the driver's GL version string.
func Version() string {
	v := gl.GetString(gl.VERSION)
	if v == nil {
		return ""
	}
	return gl.GoStr(v)
}

// --- Shaders ---

func (c *Context) CreateShader(stage gfx.Stage) uint32 {
	switch stage {
	case gfx.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case gfx.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (c *Context) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(nullTerminated(src))
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
}

func (c *Context) CompileShader(sh uint32) { gl.CompileShader(sh) }

func (c *Context) ShaderCompiled(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(sh uint32) string {
	var logLen int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

// --- Programs ---

func (c *Context) CreateProgram() uint32 { return gl.CreateProgram() }

func (c *Context) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }

func (c *Context) LinkProgram(prog uint32) { gl.LinkProgram(prog) }

func (c *Context) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(prog uint32) string {
	var logLen int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }

func (c *Context) UseProgram(prog uint32) { gl.UseProgram(prog) }

func (c *Context) AttribLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(nullTerminated(name)))
}

func (c *Context) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(nullTerminated(name)))
}

// --- Vertex data ---

func (c *Context) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (c *Context) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (c *Context) DeleteVertexArray(vao uint32) {
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
}

func (c *Context) CreateBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (c *Context) BindArrayBuffer(buf uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, buf) }

func (c *Context) BufferStaticData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) DeleteBuffer(buf uint32) {
	if buf != 0 {
		gl.DeleteBuffers(1, &buf)
	}
}

func (c *Context) EnableVertexAttribArray(loc uint32) { gl.EnableVertexAttribArray(loc) }

func (c *Context) VertexAttribPointer(loc uint32, size int32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(loc, size, gl.FLOAT, normalized, stride, gl.PtrOffset(offset))
}

// --- Uniforms ---

func (c *Context) Uniform1f(loc int32, v float32)    { gl.Uniform1f(loc, v) }
func (c *Context) Uniform2f(loc int32, x, y float32) { gl.Uniform2f(loc, x, y) }
func (c *Context) Uniform1i(loc int32, v int32)      { gl.Uniform1i(loc, v) }

// --- Frame ---

func (c *Context) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (c *Context) DrawTriangles(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

// gl.Str and gl.Strs expect C strings.
func nullTerminated(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
