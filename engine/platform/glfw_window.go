package platform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/fallback"
	"github.com/hubastard/backdrop/engine/gfx"
	glbackend "github.com/hubastard/backdrop/engine/gfx/gl"
)

// Fallback visuals are smooth gradients; they are rasterized at a fraction
// of the framebuffer size and stretched by the blit.
const fallbackDownscale = 8

// GLFWWindow is a desktop host: it is the container the backdrop mounts
// into, the source of resize notifications and the display-refresh
// scheduler.
type GLFWWindow struct {
	mountList
	w       *glfw.Window
	onEv    func(core.Event)
	frames  *core.FrameQueue
	now     func() time.Duration
	blitter glbackend.Blitter
}

var (
	_ core.Host      = (*GLFWWindow)(nil)
	_ core.Container = (*GLFWWindow)(nil)
	_ core.Window    = (*GLFWWindow)(nil)
)

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	contextHints()
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := glbackend.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	core.Logger().Debug("window context", "gl", glbackend.Version())
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gw := &GLFWWindow{
		w:      win,
		onEv:   onEvent,
		frames: core.NewFrameQueue(nil),
		now:    core.Clock(),
	}

	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
		gw.notifyResize(w, h)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{Key: k, Down: action != glfw.Release})
	})

	return gw, nil
}

// GL 3.3 core profile (Mac requires forward-compatible flag).
func contextHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// RequestClose makes ShouldClose report true after the current iteration.
func (g *GLFWWindow) RequestClose() { g.w.SetShouldClose(true) }

// core.Container impl; the surface is the window's default framebuffer.
func (g *GLFWWindow) Size() (int, int) { return g.w.GetFramebufferSize() }

// core.Host impl

func (g *GLFWWindow) RequestFrame(cb core.FrameCallback) core.FrameID {
	return g.frames.RequestFrame(cb)
}

func (g *GLFWWindow) CancelFrame(id core.FrameID) { g.frames.CancelFrame(id) }

func (g *GLFWWindow) Now() time.Duration { return g.now() }

// Post runs fn on the render thread; safe from any goroutine.
func (g *GLFWWindow) Post(fn func()) { g.frames.Post(fn) }

// ScratchContext opens a hidden 1x1 window with its own GL context.
// Releasing it destroys the window and restores the main context.
func (g *GLFWWindow) ScratchContext() (gfx.Context, func(), error) {
	glfw.DefaultWindowHints()
	contextHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	scratch, err := glfw.CreateWindow(1, 1, "probe", nil, nil)
	glfw.DefaultWindowHints()
	if err != nil {
		return nil, nil, fmt.Errorf("scratch window: %w", err)
	}
	release := func() {
		scratch.Destroy()
		g.w.MakeContextCurrent()
	}

	scratch.MakeContextCurrent()
	if err := glbackend.Init(); err != nil {
		release()
		return nil, nil, fmt.Errorf("gl init: %w", err)
	}
	version := glbackend.Version()
	if version == "" {
		release()
		return nil, nil, fmt.Errorf("gl init: driver reports no version")
	}
	core.Logger().Debug("probe context", "gl", version)
	return glbackend.New(), release, nil
}

func (g *GLFWWindow) NewSurface(w, h int) (core.Surface, error) {
	g.w.MakeContextCurrent()
	if err := glbackend.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	core.Logger().Debug("surface context", "gl", glbackend.Version(), "w", w, "h", h)
	return &windowSurface{ctx: glbackend.New(), w: w, h: h}, nil
}

// Run drives the window until it is closed.
func (g *GLFWWindow) Run() {
	core.Run(g, g.frames, g.now, g.present)
}

// present composites mounted fallback nodes; accelerated surfaces have
// already drawn into the default framebuffer during frame dispatch.
func (g *GLFWWindow) present() {
	if !glbackend.Ready() {
		if len(g.children) > 0 {
			core.Logger().Debug("fallback present skipped", "reason", "gl not loaded")
		}
		return
	}
	for _, n := range g.children {
		fb, ok := n.(*fallback.Node)
		if !ok {
			continue
		}
		w, h := g.w.GetFramebufferSize()
		img, err := fb.Rasterize(g.now(), max(w/fallbackDownscale, 1), max(h/fallbackDownscale, 1))
		if err != nil {
			core.Logger().Debug("fallback rasterize", "err", err)
			return
		}
		if !g.blitter.Blit(img, w, h) {
			core.Logger().Debug("fallback blit skipped", "w", w, "h", h)
		}
	}
}

// Destroy releases the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.blitter.Release()
	g.w.Destroy()
	glfw.Terminate()
}

type windowSurface struct {
	ctx      gfx.Context
	w, h     int
	released bool
}

func (s *windowSurface) Context() gfx.Context {
	if s.released {
		return nil
	}
	return s.ctx
}

func (s *windowSurface) Size() (int, int) { return s.w, s.h }

// The window owns the framebuffer; the surface only tracks its size.
func (s *windowSurface) SetSize(w, h int) { s.w, s.h = w, h }

func (s *windowSurface) Release() { s.released = true }

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyF:
		return core.KeyF
	default:
		return core.KeyUnknown
	}
}
