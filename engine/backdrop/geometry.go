package backdrop

import "github.com/hubastard/backdrop/engine/gfx"

// FullscreenQuad covers [-1,1]x[-1,1] with two triangles, x,y per vertex.
var FullscreenQuad = [12]float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}

const (
	quadComponents = 2
	quadVertices   = len(FullscreenQuad) / quadComponents
)

// GeometryBuffer owns the static quad the fragment shader is rasterized
// over. It is uploaded once and never resized: surface size changes go
// through the resolution uniform instead.
type GeometryBuffer struct {
	ctx      gfx.Context
	vao      uint32
	vbo      uint32
	vertices int32
	released bool
}

// Upload stores vertices in a new buffer and binds attrib as two tightly
// packed, unnormalized floats per vertex.
func Upload(ctx gfx.Context, attrib uint32, vertices [12]float32) *GeometryBuffer {
	g := &GeometryBuffer{ctx: ctx, vertices: int32(quadVertices)}

	g.vao = ctx.CreateVertexArray()
	ctx.BindVertexArray(g.vao)

	g.vbo = ctx.CreateBuffer()
	ctx.BindArrayBuffer(g.vbo)
	ctx.BufferStaticData(vertices[:])

	ctx.EnableVertexAttribArray(attrib)
	ctx.VertexAttribPointer(attrib, quadComponents, false, 0, 0)

	ctx.BindVertexArray(0)
	ctx.BindArrayBuffer(0)
	return g
}

// Draw issues the six-vertex triangle draw. The program must be bound.
func (g *GeometryBuffer) Draw() {
	if g.released {
		panic("backdrop: draw on released geometry")
	}
	g.ctx.BindVertexArray(g.vao)
	g.ctx.DrawTriangles(0, g.vertices)
	g.ctx.BindVertexArray(0)
}

// Release deletes the GL objects. Safe to call more than once.
func (g *GeometryBuffer) Release() {
	if g.released {
		return
	}
	g.ctx.DeleteBuffer(g.vbo)
	g.ctx.DeleteVertexArray(g.vao)
	g.released = true
}
