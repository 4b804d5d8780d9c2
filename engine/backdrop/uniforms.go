package backdrop

// Values is a snapshot of everything UniformSet has written.
type Values struct {
	Resolution    [2]float32
	Brightness    float32
	Blobiness     float32
	ParticleCount float32
	Scanlines     bool
	Energy        float32
	ElapsedMillis float32
}

// UniformSet pushes shader parameters to the program. It never binds the
// program itself: callers bind first, and a write to an unbound program
// panics.
type UniformSet struct {
	prog   *Program
	values Values
}

func NewUniformSet(prog *Program) *UniformSet {
	return &UniformSet{prog: prog}
}

// Initialize writes every uniform once, in declaration order, with the
// current resolution w x h and zero elapsed time.
func (u *UniformSet) Initialize(p Params, w, h int) {
	u.values = Values{
		Resolution:    [2]float32{float32(w), float32(h)},
		Brightness:    p.Brightness,
		Blobiness:     p.Blobiness,
		ParticleCount: p.ParticleCount,
		Scanlines:     p.Scanlines,
		Energy:        p.Energy,
	}
	ctx := u.prog.ctx
	ctx.Uniform2f(u.prog.location(slotResolution), u.values.Resolution[0], u.values.Resolution[1])
	ctx.Uniform1f(u.prog.location(slotBrightness), p.Brightness)
	ctx.Uniform1f(u.prog.location(slotBlobiness), p.Blobiness)
	ctx.Uniform1f(u.prog.location(slotParticleCount), p.ParticleCount)
	ctx.Uniform1i(u.prog.location(slotScanlines), boolToInt(p.Scanlines))
	ctx.Uniform1f(u.prog.location(slotEnergy), p.Energy)
	ctx.Uniform1f(u.prog.location(slotElapsedMillis), 0)
}

// UpdateElapsed is the only per-frame write.
func (u *UniformSet) UpdateElapsed(ms float32) {
	u.prog.ctx.Uniform1f(u.prog.location(slotElapsedMillis), ms)
	u.values.ElapsedMillis = ms
}

// UpdateResolution is idempotent.
func (u *UniformSet) UpdateResolution(w, h int) {
	u.values.Resolution = [2]float32{float32(w), float32(h)}
	u.prog.ctx.Uniform2f(u.prog.location(slotResolution), u.values.Resolution[0], u.values.Resolution[1])
}

func (u *UniformSet) Values() Values { return u.values }

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
