package backdrop

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/gfx"
)

// fakeContext is a recording gfx.Context with a toy "compiler": a stage
// fails to compile when it contains #error or references a known uniform it
// never declares, and a program exposes exactly the declared inputs.
type fakeContext struct {
	calls  []string
	nextID uint32

	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	deleted  map[uint32]bool
	bound    uint32

	failLink string
	viewport [4]int32
	draws    int
	buffer   []float32
	attrib   struct {
		loc        uint32
		size       int32
		normalized bool
		stride     int32
	}
}

type fakeShader struct {
	stage    gfx.Stage
	src      string
	ok       bool
	log      string
	uniforms []string
	inputs   []string
}

type fakeProgram struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	attribs  map[string]int32
	values   map[int32]any
}

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
	inputDecl   = regexp.MustCompile(`(?m)^\s*in\s+\w+\s+(\w+)\s*;`)
)

func newFakeContext() *fakeContext {
	return &fakeContext{
		shaders:  map[uint32]*fakeShader{},
		programs: map[uint32]*fakeProgram{},
		deleted:  map[uint32]bool{},
	}
}

func (f *fakeContext) rec(name string) { f.calls = append(f.calls, name) }

func (f *fakeContext) id() uint32 {
	f.nextID++
	return f.nextID
}

// uniform reads back the value last written to name in program prog.
func (f *fakeContext) uniform(prog uint32, name string) any {
	p := f.programs[prog]
	loc, ok := p.uniforms[name]
	if !ok {
		return nil
	}
	return p.values[loc]
}

func (f *fakeContext) CreateShader(stage gfx.Stage) uint32 {
	f.rec("CreateShader")
	id := f.id()
	f.shaders[id] = &fakeShader{stage: stage}
	return id
}

func (f *fakeContext) ShaderSource(sh uint32, src string) {
	f.rec("ShaderSource")
	f.shaders[sh].src = src
}

func (f *fakeContext) CompileShader(sh uint32) {
	f.rec("CompileShader")
	s := f.shaders[sh]
	if strings.Contains(s.src, "#error") {
		s.log = "0:1: '#error' : forced failure"
		return
	}
	declared := map[string]bool{}
	for _, m := range uniformDecl.FindAllStringSubmatch(s.src, -1) {
		declared[m[1]] = true
		s.uniforms = append(s.uniforms, m[1])
	}
	body := uniformDecl.ReplaceAllString(s.src, "")
	for _, name := range uniformNames {
		if declared[name] {
			continue
		}
		if regexp.MustCompile(`\b` + name + `\b`).MatchString(body) {
			s.log = fmt.Sprintf("0:1: '%s' : undeclared identifier\n", name)
			return
		}
	}
	for _, m := range inputDecl.FindAllStringSubmatch(s.src, -1) {
		s.inputs = append(s.inputs, m[1])
	}
	s.ok = true
}

func (f *fakeContext) ShaderCompiled(sh uint32) bool { f.rec("ShaderCompiled"); return f.shaders[sh].ok }
func (f *fakeContext) ShaderInfoLog(sh uint32) string {
	f.rec("ShaderInfoLog")
	return f.shaders[sh].log
}

func (f *fakeContext) DeleteShader(sh uint32) {
	f.rec("DeleteShader")
	f.deleted[sh] = true
}

func (f *fakeContext) CreateProgram() uint32 {
	f.rec("CreateProgram")
	id := f.id()
	f.programs[id] = &fakeProgram{}
	return id
}

func (f *fakeContext) AttachShader(prog, sh uint32) {
	f.rec("AttachShader")
	p := f.programs[prog]
	p.shaders = append(p.shaders, sh)
}

func (f *fakeContext) LinkProgram(prog uint32) {
	f.rec("LinkProgram")
	p := f.programs[prog]
	if f.failLink != "" {
		p.log = f.failLink
		return
	}
	p.uniforms = map[string]int32{}
	p.attribs = map[string]int32{}
	p.values = map[int32]any{}
	for _, sh := range p.shaders {
		s := f.shaders[sh]
		for _, u := range s.uniforms {
			if _, ok := p.uniforms[u]; !ok {
				p.uniforms[u] = int32(len(p.uniforms))
			}
		}
		if s.stage == gfx.StageVertex {
			for _, in := range s.inputs {
				p.attribs[in] = int32(len(p.attribs))
			}
		}
	}
	p.linked = true
}

func (f *fakeContext) ProgramLinked(prog uint32) bool {
	f.rec("ProgramLinked")
	return f.programs[prog].linked
}

func (f *fakeContext) ProgramInfoLog(prog uint32) string {
	f.rec("ProgramInfoLog")
	return f.programs[prog].log
}

func (f *fakeContext) DeleteProgram(prog uint32) {
	f.rec("DeleteProgram")
	f.deleted[prog] = true
}

func (f *fakeContext) UseProgram(prog uint32) {
	f.rec("UseProgram")
	f.bound = prog
}

func (f *fakeContext) AttribLocation(prog uint32, name string) int32 {
	f.rec("AttribLocation")
	if loc, ok := f.programs[prog].attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeContext) UniformLocation(prog uint32, name string) int32 {
	f.rec("UniformLocation")
	if loc, ok := f.programs[prog].uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeContext) CreateVertexArray() uint32 { f.rec("CreateVertexArray"); return f.id() }
func (f *fakeContext) BindVertexArray(uint32)    { f.rec("BindVertexArray") }
func (f *fakeContext) DeleteVertexArray(vao uint32) {
	f.rec("DeleteVertexArray")
	f.deleted[vao] = true
}
func (f *fakeContext) CreateBuffer() uint32 { f.rec("CreateBuffer"); return f.id() }
func (f *fakeContext) BindArrayBuffer(uint32) {
	f.rec("BindArrayBuffer")
}

func (f *fakeContext) BufferStaticData(data []float32) {
	f.rec("BufferStaticData")
	f.buffer = append([]float32(nil), data...)
}

func (f *fakeContext) DeleteBuffer(buf uint32) {
	f.rec("DeleteBuffer")
	f.deleted[buf] = true
}

func (f *fakeContext) EnableVertexAttribArray(uint32) { f.rec("EnableVertexAttribArray") }

func (f *fakeContext) VertexAttribPointer(loc uint32, size int32, normalized bool, stride int32, _ int) {
	f.rec("VertexAttribPointer")
	f.attrib.loc, f.attrib.size, f.attrib.normalized, f.attrib.stride = loc, size, normalized, stride
}

func (f *fakeContext) setUniform(loc int32, v any) {
	p := f.programs[f.bound]
	if p == nil || !p.linked {
		panic("uniform write with no linked program bound")
	}
	p.values[loc] = v
}

func (f *fakeContext) Uniform1f(loc int32, v float32) {
	f.rec("Uniform1f")
	f.setUniform(loc, v)
}

func (f *fakeContext) Uniform2f(loc int32, x, y float32) {
	f.rec("Uniform2f")
	f.setUniform(loc, [2]float32{x, y})
}

func (f *fakeContext) Uniform1i(loc int32, v int32) {
	f.rec("Uniform1i")
	f.setUniform(loc, v)
}

func (f *fakeContext) Viewport(x, y, w, h int32) {
	f.rec("Viewport")
	f.viewport = [4]int32{x, y, w, h}
}

func (f *fakeContext) ClearColor(r, g, b, a float32) { f.rec("ClearColor") }
func (f *fakeContext) Clear()                        { f.rec("Clear") }

func (f *fakeContext) DrawTriangles(first, count int32) {
	f.rec("DrawTriangles")
	f.draws++
}

// countSince counts calls to name from index i onwards.
func (f *fakeContext) countSince(i int, name string) int {
	n := 0
	for _, c := range f.calls[i:] {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeContext) indexOf(name string) int {
	for i, c := range f.calls {
		if c == name {
			return i
		}
	}
	return -1
}

type fakeSurface struct {
	ctx      *fakeContext
	w, h     int
	released bool
}

func (s *fakeSurface) Context() gfx.Context {
	if s.released {
		return nil
	}
	return s.ctx
}
func (s *fakeSurface) Size() (int, int) { return s.w, s.h }
func (s *fakeSurface) SetSize(w, h int) { s.w, s.h = w, h }
func (s *fakeSurface) Release()         { s.released = true }

// fakeHost keeps every callback it was ever handed so tests can fire one
// after it was cancelled.
type fakeHost struct {
	ctx *fakeContext

	probeErr   error
	probePanic bool
	probeNil   bool
	probes     int
	released   int

	surfaceErr error
	surfaces   []*fakeSurface

	now     time.Duration
	nextID  core.FrameID
	frames  map[core.FrameID]core.FrameCallback
	pending []core.FrameID
}

func newFakeHost() *fakeHost {
	return &fakeHost{ctx: newFakeContext(), frames: map[core.FrameID]core.FrameCallback{}}
}

func (h *fakeHost) ScratchContext() (gfx.Context, func(), error) {
	h.probes++
	if h.probePanic {
		panic("driver exploded")
	}
	if h.probeErr != nil {
		return nil, nil, h.probeErr
	}
	release := func() { h.released++ }
	if h.probeNil {
		return nil, release, nil
	}
	return newFakeContext(), release, nil
}

func (h *fakeHost) NewSurface(w, hh int) (core.Surface, error) {
	if h.surfaceErr != nil {
		return nil, h.surfaceErr
	}
	s := &fakeSurface{ctx: h.ctx, w: w, h: hh}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) RequestFrame(cb core.FrameCallback) core.FrameID {
	h.nextID++
	h.frames[h.nextID] = cb
	h.pending = append(h.pending, h.nextID)
	return h.nextID
}

func (h *fakeHost) CancelFrame(id core.FrameID) {
	for i, p := range h.pending {
		if p == id {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

func (h *fakeHost) Now() time.Duration { return h.now }

// tick fires the callbacks pending at this point with timestamp now.
func (h *fakeHost) tick(now time.Duration) {
	h.now = now
	ids := h.pending
	h.pending = nil
	for _, id := range ids {
		h.frames[id](now)
	}
}

var errNoGPU = errors.New("no gpu")

type fakeContainer struct {
	w, h      int
	children  []core.Node
	listeners map[int]func(w, h int)
	nextID    int
}

func newFakeContainer(w, h int) *fakeContainer {
	return &fakeContainer{w: w, h: h, listeners: map[int]func(int, int){}}
}

func (c *fakeContainer) Size() (int, int) { return c.w, c.h }
func (c *fakeContainer) Append(n core.Node) {
	c.children = append(c.children, n)
}

func (c *fakeContainer) Remove(n core.Node) {
	for i, x := range c.children {
		if x == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
	panic("remove of a node that is not a child")
}

func (c *fakeContainer) Contains(n core.Node) bool {
	for _, x := range c.children {
		if x == n {
			return true
		}
	}
	return false
}

func (c *fakeContainer) OnResize(fn func(w, h int)) func() {
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *fakeContainer) resize(w, h int) {
	c.w, c.h = w, h
	for _, fn := range c.listeners {
		fn(w, h)
	}
}
