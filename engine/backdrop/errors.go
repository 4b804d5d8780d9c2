package backdrop

import (
	"errors"
	"fmt"

	"github.com/hubastard/backdrop/engine/gfx"
)

// ErrCapabilityUnavailable means no accelerated context could be obtained.
var ErrCapabilityUnavailable = errors.New("backdrop: accelerated rendering unavailable")

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage gfx.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("backdrop: %s shader compile error: %s", e.Stage, e.Log)
}

// LinkError reports a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "backdrop: program link error: " + e.Log
}

// UniformResolutionError reports an attribute or uniform missing from the
// linked program, usually because the shader never declared or used it.
type UniformResolutionError struct {
	Name string
}

func (e *UniformResolutionError) Error() string {
	return fmt.Sprintf("backdrop: program has no active input %q", e.Name)
}
