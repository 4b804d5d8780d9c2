// Package backdrop renders a procedural, shader-driven animated background
// into a host container and degrades to a GPU-free gradient when hardware
// acceleration is missing or the shaders fail to build.
//
// One call to Activate is one complete attach-run-detach lifecycle:
//
//	a := backdrop.Activate(host, container, backdrop.Options{Brightness: backdrop.Float(1)})
//	defer a.Deactivate()
//
// Everything runs on the host's render thread; no locks are taken.
package backdrop

import (
	"errors"
	"fmt"

	"github.com/hubastard/backdrop/engine/assets"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/fallback"
	"github.com/hubastard/backdrop/engine/profiler"
)

// Mode is the rendering path an activation ended up on.
type Mode int

const (
	ModeAccelerated Mode = iota
	ModeFallback
)

func (m Mode) String() string {
	if m == ModeFallback {
		return "fallback"
	}
	return "accelerated"
}

var errForcedFallback = errors.New("backdrop: fallback forced by options")

// Activation holds every resource of one lifecycle. The accelerated path's
// objects are nil when the activation fell back.
type Activation struct {
	host      core.Host
	container core.Container
	mode      Mode
	err       error

	surfaces     *SurfaceManager
	prog         *Program
	geom         *GeometryBuffer
	uniforms     *UniformSet
	loop         *RenderLoop
	cancelResize func()

	fallback *fallback.Node
	done     bool
}

// Activate mounts the backdrop in c. It never fails: capability, compile,
// link and resolution errors are logged and replaced by the fallback
// gradient. The accelerated path is not retried for this activation.
func Activate(host core.Host, c core.Container, opts Options) *Activation {
	defer profiler.Start("backdrop.activate")()
	a := &Activation{host: host, container: c}
	if err := a.activate(opts); err != nil {
		a.err = err
		a.releaseAccelerated()
		fr := fallback.NewRenderer()
		if opts.Fallback != nil {
			fr.Gradient = *opts.Fallback
		}
		a.fallback = fr.Render(c)
		a.mode = ModeFallback
		logFallback(err)
		return a
	}
	w, h := a.surfaces.Size()
	core.Logger().Info("backdrop activated", "mode", a.mode, "w", w, "h", h)
	return a
}

func (a *Activation) activate(opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backdrop: activation panic: %v", r)
		}
	}()
	if opts.ForceFallback {
		return errForcedFallback
	}

	endProbe := profiler.Start("backdrop.probe")
	probe := NewProbe(a.host)
	ok := probe.Probe()
	endProbe()
	if !ok {
		return probe.Err()
	}

	a.surfaces = NewSurfaceManager(a.host)
	if err := a.surfaces.Attach(a.container); err != nil {
		return err
	}
	ctx := a.surfaces.Context()

	vs, fs := shaderSources(opts)
	endCompile := profiler.Start("backdrop.compile")
	prog, err := CompileAndLink(ctx, vs, fs)
	endCompile()
	if err != nil {
		return err
	}
	a.prog = prog
	a.geom = Upload(ctx, prog.PositionLocation(), FullscreenQuad)

	a.uniforms = NewUniformSet(prog)
	prog.Use()
	w, h := a.surfaces.Size()
	a.uniforms.Initialize(opts.Params(), w, h)
	ctx.ClearColor(0, 0, 0, 1)

	a.surfaces.Bind(prog, a.uniforms)
	a.cancelResize = a.container.OnResize(a.surfaces.Resize)
	// Layout may have settled since the surface was measured.
	a.surfaces.Resize(a.container.Size())

	a.loop = NewRenderLoop(a.host, ctx, prog, a.uniforms, a.geom)
	return a.loop.Start(a.host.Now())
}

func shaderSources(opts Options) (string, string) {
	if opts.VertexSource != "" && opts.FragmentSource != "" {
		return opts.VertexSource, opts.FragmentSource
	}
	return assets.MustShader(assets.BackdropVertex), assets.MustShader(assets.BackdropFragment)
}

func logFallback(err error) {
	l := core.Logger()
	var (
		ce *CompileError
		le *LinkError
		ue *UniformResolutionError
	)
	switch {
	case errors.As(err, &ce):
		l.Warn("shader compile failed, using fallback", "stage", ce.Stage, "log", ce.Log)
	case errors.As(err, &le):
		l.Warn("program link failed, using fallback", "log", le.Log)
	case errors.As(err, &ue):
		l.Warn("shader input missing, using fallback", "name", ue.Name)
	case errors.Is(err, errForcedFallback):
		l.Info("fallback forced by options")
	default:
		l.Warn("accelerated rendering unavailable, using fallback", "err", err)
	}
}

// releaseAccelerated tears down whatever part of the accelerated path
// exists: loop, resize listener, program, buffer, surface, in that order.
func (a *Activation) releaseAccelerated() {
	if a.loop != nil {
		a.loop.Stop()
	}
	if a.cancelResize != nil {
		a.cancelResize()
		a.cancelResize = nil
	}
	if a.prog != nil {
		a.prog.Release()
	}
	if a.geom != nil {
		a.geom.Release()
	}
	if a.surfaces != nil {
		a.surfaces.Detach()
	}
}

// Deactivate runs the full teardown. It is idempotent.
func (a *Activation) Deactivate() {
	if a.done {
		return
	}
	a.done = true
	if a.mode == ModeFallback {
		fallback.Unmount(a.container, a.fallback)
	} else {
		a.releaseAccelerated()
	}
	core.Logger().Info("backdrop deactivated", "mode", a.mode)
}

func (a *Activation) Mode() Mode { return a.mode }

// Err is the failure that routed this activation to the fallback.
func (a *Activation) Err() error { return a.err }

// Uniforms reports the values last written to the program. ok is false on
// the fallback path.
func (a *Activation) Uniforms() (v Values, ok bool) {
	if a.uniforms == nil || a.mode == ModeFallback {
		return Values{}, false
	}
	return a.uniforms.Values(), true
}

// Loop is the running render loop, nil on the fallback path.
func (a *Activation) Loop() *RenderLoop {
	if a.mode == ModeFallback {
		return nil
	}
	return a.loop
}

// Fallback is the mounted fallback node, nil on the accelerated path.
func (a *Activation) Fallback() *fallback.Node { return a.fallback }
