package backdrop

import (
	"errors"
	"time"

	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/gfx"
	"github.com/hubastard/backdrop/engine/profiler"
)

// LoopState is Idle -> Running -> Stopped. Stopped is terminal.
type LoopState int

const (
	LoopIdle LoopState = iota
	LoopRunning
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	default:
		return "invalid"
	}
}

var errLoopStarted = errors.New("backdrop: render loop already started")

// loopHandle is shared by every callback of one loop; invalidating it turns
// callbacks still queued in the scheduler into no-ops.
type loopHandle struct{ valid bool }

// RenderLoop draws one frame per scheduler tick. Elapsed time is recomputed
// from the tick timestamp every frame, never counted in frames, so variable
// refresh rates and dropped frames keep the animation on wall-clock time.
type RenderLoop struct {
	sched    core.Scheduler
	ctx      gfx.Context
	prog     *Program
	uniforms *UniformSet
	geom     *GeometryBuffer

	state   LoopState
	t0      time.Duration
	handle  *loopHandle
	pending core.FrameID
	frames  uint64
}

func NewRenderLoop(sched core.Scheduler, ctx gfx.Context, prog *Program, uniforms *UniformSet, geom *GeometryBuffer) *RenderLoop {
	return &RenderLoop{sched: sched, ctx: ctx, prog: prog, uniforms: uniforms, geom: geom}
}

// Start records t0 and schedules the first frame. A loop starts at most
// once; a new activation builds a new loop.
func (l *RenderLoop) Start(t0 time.Duration) error {
	if l.state != LoopIdle {
		return errLoopStarted
	}
	l.t0 = t0
	l.handle = &loopHandle{valid: true}
	l.state = LoopRunning
	l.schedule()
	return nil
}

func (l *RenderLoop) schedule() {
	h := l.handle
	l.pending = l.sched.RequestFrame(func(now time.Duration) { l.tick(h, now) })
}

func (l *RenderLoop) tick(h *loopHandle, now time.Duration) {
	if !h.valid {
		return
	}
	defer profiler.Start("backdrop.frame")()
	l.pending = 0

	elapsed := now - l.t0
	if elapsed < 0 {
		elapsed = 0
	}
	ms := float32(float64(elapsed) / float64(time.Millisecond))

	l.prog.Use()
	l.uniforms.UpdateElapsed(ms)
	l.ctx.Clear()
	l.geom.Draw()
	l.frames++

	if h.valid {
		l.schedule()
	}
}

// Stop invalidates the loop handle and cancels the pending request.
// It is idempotent and safe to call from inside a frame callback.
func (l *RenderLoop) Stop() {
	if l.state == LoopStopped {
		return
	}
	if l.handle != nil {
		l.handle.valid = false
	}
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
	l.state = LoopStopped
}

func (l *RenderLoop) State() LoopState { return l.state }

// Frames reports how many frames were drawn.
func (l *RenderLoop) Frames() uint64 { return l.frames }
