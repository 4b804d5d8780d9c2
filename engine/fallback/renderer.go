// Package fallback provides the degraded visual used when accelerated
// rendering is unavailable. It creates no GPU objects and runs no loop: the
// container receives a declarative Node and the host animates it.
package fallback

import (
	"image"
	"time"

	"github.com/hubastard/backdrop/engine/core"
)

// Node is the mounted fallback visual.
type Node struct {
	Gradient Gradient
}

// Rasterize evaluates the node at time t for a w x h container.
func (n *Node) Rasterize(t time.Duration, w, h int) (*image.RGBA, error) {
	return n.Gradient.Rasterize(t, w, h)
}

type Renderer struct {
	Gradient Gradient
}

func NewRenderer() *Renderer {
	return &Renderer{Gradient: DefaultGradient()}
}

// Render mounts a gradient node into c.
func (r *Renderer) Render(c core.Container) *Node {
	n := &Node{Gradient: r.Gradient}
	c.Append(n)
	return n
}

// Unmount removes n from c if c still holds it.
func Unmount(c core.Container, n *Node) {
	if n != nil && c.Contains(n) {
		c.Remove(n)
	}
}
