package core

import (
	"runtime"
	"time"
)

// Clock returns a high-resolution clock measured from the moment it is made.
func Clock() func() time.Duration {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

// Run executes the host loop until the window asks to close. Each iteration
// polls OS events (resize notifications fire from there), runs work posted
// from other goroutines, dispatches one frame tick, lets present composite
// anything the host draws itself, and swaps buffers. With vsync on, the swap
// paces the loop to the display refresh; nothing here assumes a fixed tick.
func Run(win Window, frames *FrameQueue, now func() time.Duration, present func()) {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	for !win.ShouldClose() {
		win.PollEvents()
		frames.RunPosted()
		frames.Dispatch(now())
		if present != nil {
			present()
		}
		win.SwapBuffers()
	}
	Logger().Info("host loop exit")
}
