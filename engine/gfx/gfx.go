package gfx

// Stage identifies a shader stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Context is a handle to hardware-accelerated drawing bound to a surface.
// Object handles are plain uint32 names, 0 meaning "none", and locations
// follow GL: -1 means the name was not found in the linked program.
//
// A Context is not safe for concurrent use; all calls happen on the thread
// that owns the surface.
type Context interface {
	// Shaders
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	// Vertex data
	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateBuffer() uint32
	BindArrayBuffer(buf uint32)
	BufferStaticData(data []float32)
	DeleteBuffer(buf uint32)
	EnableVertexAttribArray(loc uint32)
	VertexAttribPointer(loc uint32, size int32, normalized bool, stride int32, offset int)

	// Uniforms, written to the currently bound program
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform1i(loc int32, v int32)

	// Frame
	Viewport(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangles(first, count int32)
}
