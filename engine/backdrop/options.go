package backdrop

import (
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/fallback"
)

// MaxParticles is the loop bound of the built-in fragment shader
// (MAX_PARTICLES in backdrop.frag). Larger counts are clamped.
const MaxParticles = 256

// Options overrides the shader parameters for one activation. Nil fields
// keep their defaults. Field tags name the config keys.
type Options struct {
	Brightness *float32 `toml:"brightness" yaml:"brightness"`
	Blobiness  *float32 `toml:"blobiness" yaml:"blobiness"`

	// ParticleCount is capped at MaxParticles.
	ParticleCount *float32 `toml:"particle_count" yaml:"particle_count"`
	Scanlines     *bool    `toml:"scanlines" yaml:"scanlines"`
	Energy        *float32 `toml:"energy" yaml:"energy"`

	// ForceFallback skips the accelerated path entirely.
	ForceFallback bool `toml:"force_fallback" yaml:"force_fallback"`

	// Fallback replaces the default degraded gradient.
	Fallback *fallback.Gradient `toml:"-" yaml:"-"`

	// VertexSource and FragmentSource replace the built-in shaders when both
	// are set. They must declare the same inputs as the built-ins.
	VertexSource   string `toml:"-" yaml:"-"`
	FragmentSource string `toml:"-" yaml:"-"`
}

// Params are the resolved shader parameters fixed at activation.
type Params struct {
	Brightness    float32
	Blobiness     float32
	ParticleCount float32
	Scanlines     bool
	Energy        float32
}

func DefaultParams() Params {
	return Params{
		Brightness:    0.8,
		Blobiness:     1.5,
		ParticleCount: 40,
		Scanlines:     true,
		Energy:        1.01,
	}
}

// Params resolves o against the defaults.
func (o Options) Params() Params {
	p := DefaultParams()
	if o.Brightness != nil {
		p.Brightness = *o.Brightness
	}
	if o.Blobiness != nil {
		p.Blobiness = *o.Blobiness
	}
	if o.ParticleCount != nil {
		p.ParticleCount = *o.ParticleCount
		if p.ParticleCount > MaxParticles {
			core.Logger().Debug("particle count clamped", "requested", p.ParticleCount, "max", MaxParticles)
			p.ParticleCount = MaxParticles
		}
	}
	if o.Scanlines != nil {
		p.Scanlines = *o.Scanlines
	}
	if o.Energy != nil {
		p.Energy = *o.Energy
	}
	return p
}

// Float returns a pointer to v, for filling Options literals.
func Float(v float32) *float32 { return &v }

// Bool returns a pointer to v, for filling Options literals.
func Bool(v bool) *bool { return &v }
