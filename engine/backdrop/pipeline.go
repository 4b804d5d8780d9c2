package backdrop

import (
	"strings"

	"github.com/hubastard/backdrop/engine/gfx"
)

// Shader input names. Both stages must declare them exactly so.
const (
	AttribPosition       = "position"
	UniformResolution    = "resolution"
	UniformBrightness    = "brightness"
	UniformBlobiness     = "blobiness"
	UniformParticleCount = "particleCount"
	UniformScanlines     = "scanlines"
	UniformEnergy        = "energy"
	UniformElapsedMillis = "elapsedMillis"
)

type uniformSlot int

const (
	slotResolution uniformSlot = iota
	slotBrightness
	slotBlobiness
	slotParticleCount
	slotScanlines
	slotEnergy
	slotElapsedMillis
	numUniforms
)

var uniformNames = [numUniforms]string{
	slotResolution:    UniformResolution,
	slotBrightness:    UniformBrightness,
	slotBlobiness:     UniformBlobiness,
	slotParticleCount: UniformParticleCount,
	slotScanlines:     UniformScanlines,
	slotEnergy:        UniformEnergy,
	slotElapsedMillis: UniformElapsedMillis,
}

// Program is a successfully linked shader program with its input locations
// resolved. It only exists in that state: failures never produce one.
type Program struct {
	ctx      gfx.Context
	handle   uint32
	position uint32
	uniforms [numUniforms]int32

	inUse    bool
	released bool
}

// CompileAndLink compiles both stages, links them and resolves the position
// attribute and every uniform. Each failure mode has its own error type and
// leaves no GL objects behind.
func CompileAndLink(ctx gfx.Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compileStage(ctx, gfx.StageVertex, vertexSrc)
	if err != nil {
		return nil, err
	}
	fs, err := compileStage(ctx, gfx.StageFragment, fragmentSrc)
	if err != nil {
		ctx.DeleteShader(vs)
		return nil, err
	}

	prog := ctx.CreateProgram()
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	ctx.LinkProgram(prog)
	linked := ctx.ProgramLinked(prog)

	// Flagged for deletion; they go away with the program.
	ctx.DeleteShader(vs)
	ctx.DeleteShader(fs)

	if !linked {
		log := ctx.ProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return nil, &LinkError{Log: strings.TrimSpace(log)}
	}

	p := &Program{ctx: ctx, handle: prog}
	loc := ctx.AttribLocation(prog, AttribPosition)
	if loc < 0 {
		ctx.DeleteProgram(prog)
		return nil, &UniformResolutionError{Name: AttribPosition}
	}
	p.position = uint32(loc)
	for slot, name := range uniformNames {
		loc := ctx.UniformLocation(prog, name)
		if loc < 0 {
			ctx.DeleteProgram(prog)
			return nil, &UniformResolutionError{Name: name}
		}
		p.uniforms[slot] = loc
	}
	return p, nil
}

func compileStage(ctx gfx.Context, stage gfx.Stage, src string) (uint32, error) {
	sh := ctx.CreateShader(stage)
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if !ctx.ShaderCompiled(sh) {
		log := ctx.ShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return 0, &CompileError{Stage: stage, Log: strings.TrimSpace(log)}
	}
	return sh, nil
}

// Use binds the program. Uniform writes and draws require it.
func (p *Program) Use() {
	if p.released {
		panic("backdrop: Use on released program")
	}
	p.ctx.UseProgram(p.handle)
	p.inUse = true
}

// InUse reports whether Use has been called since the program was created.
func (p *Program) InUse() bool { return p.inUse && !p.released }

func (p *Program) Handle() uint32 { return p.handle }

// PositionLocation is the resolved location of the position attribute.
func (p *Program) PositionLocation() uint32 { return p.position }

func (p *Program) location(slot uniformSlot) int32 {
	if !p.InUse() {
		panic("backdrop: uniform write without the program bound")
	}
	return p.uniforms[slot]
}

// Release unbinds and deletes the program. Safe to call more than once.
func (p *Program) Release() {
	if p.released {
		return
	}
	if p.inUse {
		p.ctx.UseProgram(0)
	}
	p.ctx.DeleteProgram(p.handle)
	p.released = true
	p.inUse = false
}
