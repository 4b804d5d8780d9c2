package platform

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/fallback"
	"github.com/hubastard/backdrop/engine/gfx"
)

// ErrNoAcceleration is returned by Headless for every accelerated request.
var ErrNoAcceleration = errors.New("platform: headless host has no accelerated context")

// Headless is a fixed-size host without hardware acceleration. Time only
// advances through Tick, which makes it suitable for tools and tests.
type Headless struct {
	mountList
	w, h   int
	frames *core.FrameQueue
	clock  time.Duration
}

var (
	_ core.Host      = (*Headless)(nil)
	_ core.Container = (*Headless)(nil)
)

func NewHeadless(w, h int) *Headless {
	return &Headless{w: w, h: h, frames: core.NewFrameQueue(nil)}
}

func (hl *Headless) Size() (int, int) { return hl.w, hl.h }

// Resize changes the container size and notifies listeners.
func (hl *Headless) Resize(w, h int) {
	hl.w, hl.h = w, h
	hl.notifyResize(w, h)
}

func (hl *Headless) ScratchContext() (gfx.Context, func(), error) {
	return nil, nil, ErrNoAcceleration
}

func (hl *Headless) NewSurface(int, int) (core.Surface, error) {
	return nil, ErrNoAcceleration
}

func (hl *Headless) RequestFrame(cb core.FrameCallback) core.FrameID {
	return hl.frames.RequestFrame(cb)
}

func (hl *Headless) CancelFrame(id core.FrameID) { hl.frames.CancelFrame(id) }

func (hl *Headless) Now() time.Duration { return hl.clock }

// Tick advances the clock to now and dispatches one frame.
func (hl *Headless) Tick(now time.Duration) int {
	hl.clock = now
	hl.frames.RunPosted()
	return hl.frames.Dispatch(now)
}

// Snapshot rasterizes the mounted fallback visual at time t.
func (hl *Headless) Snapshot(t time.Duration) (*image.RGBA, error) {
	for _, n := range hl.children {
		if fb, ok := n.(*fallback.Node); ok {
			return fb.Rasterize(t, hl.w, hl.h)
		}
	}
	return nil, fmt.Errorf("snapshot: no fallback visual mounted")
}
