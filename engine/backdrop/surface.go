package backdrop

import (
	"fmt"

	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/gfx"
)

// SurfaceManager owns the drawable surface and keeps its size, the viewport
// and the resolution uniform in step with the container.
type SurfaceManager struct {
	host      core.Host
	container core.Container
	surface   core.Surface

	prog     *Program
	uniforms *UniformSet
	detached bool
}

func NewSurfaceManager(host core.Host) *SurfaceManager {
	return &SurfaceManager{host: host}
}

// Attach creates a surface sized to the container, mounts it and sets the
// viewport to match.
func (m *SurfaceManager) Attach(c core.Container) error {
	w, h := c.Size()
	s, err := m.host.NewSurface(w, h)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	if s == nil || s.Context() == nil {
		if s != nil {
			s.Release()
		}
		return fmt.Errorf("create surface: %w", ErrCapabilityUnavailable)
	}
	m.container = c
	m.surface = s
	c.Append(s)
	s.Context().Viewport(0, 0, int32(w), int32(h))
	return nil
}

// Bind connects the linked program so later resizes also update the
// resolution uniform.
func (m *SurfaceManager) Bind(prog *Program, uniforms *UniformSet) {
	m.prog = prog
	m.uniforms = uniforms
}

// Context is the surface's accelerated context. Valid after Attach.
func (m *SurfaceManager) Context() gfx.Context { return m.surface.Context() }

func (m *SurfaceManager) Size() (int, int) { return m.surface.Size() }

// Resize applies a container size change. Non-positive sizes (a minimized
// window) are ignored. After Detach it does nothing.
func (m *SurfaceManager) Resize(w, h int) {
	if m.detached || m.surface == nil {
		return
	}
	if w < 1 || h < 1 {
		core.Logger().Debug("ignoring empty resize", "w", w, "h", h)
		return
	}
	m.surface.SetSize(w, h)
	ctx := m.surface.Context()
	ctx.Viewport(0, 0, int32(w), int32(h))
	if m.uniforms != nil {
		m.prog.Use()
		m.uniforms.UpdateResolution(w, h)
	}
}

// Detach unmounts the surface, if the container still holds it, and
// releases it. Safe to call more than once.
func (m *SurfaceManager) Detach() {
	if m.detached {
		return
	}
	m.detached = true
	if m.surface == nil {
		return
	}
	// The host may have torn the container down already.
	if m.container.Contains(m.surface) {
		m.container.Remove(m.surface)
	}
	m.surface.Release()
}
