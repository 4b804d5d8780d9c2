package core

import (
	"time"

	"github.com/hubastard/backdrop/engine/gfx"
)

// Node is anything a Container can hold: a drawable surface or a
// declarative visual such as the fallback gradient.
type Node any

// Container is the host-owned element the backdrop mounts into.
type Container interface {
	// Size reports the available size in device pixels.
	Size() (w, h int)
	Append(n Node)
	Remove(n Node)
	Contains(n Node) bool
	// OnResize registers fn for size-change notifications. The returned
	// cancel func unregisters it and is safe to call more than once.
	OnResize(fn func(w, h int)) (cancel func())
}

// Surface is a drawable with an accelerated-rendering context attached.
type Surface interface {
	Context() gfx.Context
	Size() (w, h int)
	SetSize(w, h int)
	Release()
}

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameCallback receives the host's high-resolution timestamp.
type FrameCallback func(now time.Duration)

// Scheduler delivers one callback per display refresh.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// Host provides the platform services the backdrop depends on.
type Host interface {
	Scheduler
	// ScratchContext creates a throwaway accelerated context. The release
	// func discards it; it is only valid when err is nil.
	ScratchContext() (ctx gfx.Context, release func(), err error)
	NewSurface(w, h int) (Surface, error)
	// Now is the host's high-resolution clock, on the same timeline as the
	// timestamps passed to frame callbacks.
	Now() time.Duration
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
}

func (EventKey) isEvent() {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF
)

// Config for the host window.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

func DefaultConfig() Config {
	return Config{
		Title:  "backdrop",
		Width:  1280,
		Height: 720,
		VSync:  true,
	}
}
