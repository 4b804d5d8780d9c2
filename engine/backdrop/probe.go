package backdrop

import (
	"fmt"

	"github.com/hubastard/backdrop/engine/core"
)

// Probe checks once whether the host can create an accelerated context.
// The result is never re-evaluated within an activation.
type Probe struct {
	host core.Host
	err  error
}

func NewProbe(host core.Host) *Probe { return &Probe{host: host} }

// Probe creates and immediately discards a scratch context. It returns false
// if creation fails, yields no context, or panics inside the platform.
func (p *Probe) Probe() bool {
	p.err = p.check()
	if p.err != nil {
		core.Logger().Debug("capability probe failed", "err", p.err)
	}
	return p.err == nil
}

// Err explains the last false result; it wraps ErrCapabilityUnavailable.
func (p *Probe) Err() error { return p.err }

func (p *Probe) check() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: platform panic: %v", ErrCapabilityUnavailable, r)
		}
	}()
	ctx, release, err := p.host.ScratchContext()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCapabilityUnavailable, err)
	}
	if release != nil {
		defer release()
	}
	if ctx == nil {
		return fmt.Errorf("%w: platform returned no context", ErrCapabilityUnavailable)
	}
	return nil
}
